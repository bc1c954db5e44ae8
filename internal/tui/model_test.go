package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnav/finnav/internal/domain"
)

func pressKey(m Model, key string) Model {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestWizardWalkthrough(t *testing.T) {
	m := NewModel()
	require.False(t, m.Done())
	require.NotEmpty(t, m.Profile().Meta.SessionID)

	// Age.
	m = typeText(m, "35")
	m = pressKey(m, "enter")

	// Household stays on single, employment stays on employed.
	m = pressKey(m, "enter")
	m = pressKey(m, "enter")

	// Income and fixed costs.
	m = typeText(m, "3000")
	m = pressKey(m, "enter")
	m = typeText(m, "1500")
	m = pressKey(m, "enter")

	// Optional asset and debt questions skipped.
	m = pressKey(m, "enter")
	m = pressKey(m, "enter")
	m = pressKey(m, "enter")
	m = pressKey(m, "enter")

	// Emergency fund 0 months.
	m = pressKey(m, "enter")

	// Private pension: down to "no".
	m = pressKey(m, "down")
	m = pressKey(m, "enter")

	// Income protection: down twice to "unknown".
	m = pressKey(m, "down")
	m = pressKey(m, "down")
	m = pressKey(m, "enter")

	require.True(t, m.Done())

	p := m.Profile()
	assert.True(t, p.Meta.IsFinished)
	require.NotNil(t, p.Basic.Age)
	assert.Equal(t, 35, *p.Basic.Age)
	assert.Equal(t, domain.AnswerNo, p.Protection.PrivatePension)
	assert.Equal(t, domain.AnswerUnknown, p.Protection.IncomeProtection)
	assert.Equal(t, 51, p.Scores.Overall)
	assert.NotEmpty(t, p.RecommendedModules)

	view := m.View()
	assert.Contains(t, view, "Overall")
	assert.Contains(t, view, "Pension gap analysis")
}

func TestWizardRejectsInvalidAge(t *testing.T) {
	m := NewModel()

	m = typeText(m, "12")
	m = pressKey(m, "enter")

	assert.False(t, m.Done())
	assert.Contains(t, m.View(), "between 16 and 100")
	assert.Nil(t, m.Profile().Basic.Age)
}

func TestWizardRejectsNonNumericAmount(t *testing.T) {
	m := NewModel()

	m = typeText(m, "35")
	m = pressKey(m, "enter")
	m = pressKey(m, "enter") // household
	m = pressKey(m, "enter") // employment

	m = typeText(m, "lots")
	m = pressKey(m, "enter")

	assert.Contains(t, m.View(), "enter a number")
}

func TestWizardChoiceNavigationStopsAtBounds(t *testing.T) {
	m := NewModel()
	m = typeText(m, "35")
	m = pressKey(m, "enter")

	// Household question: walking past the last option stays on it.
	for i := 0; i < 5; i++ {
		m = pressKey(m, "down")
	}
	m = pressKey(m, "enter")

	assert.Equal(t, domain.HouseholdFamily, m.Profile().Basic.HouseholdType)
}

func TestWizardQuit(t *testing.T) {
	m := NewModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, "", next.(Model).View(), "Quitting clears the screen")
}
