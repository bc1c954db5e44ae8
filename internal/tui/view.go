package tui

import (
	"fmt"
	"strings"

	"github.com/finnav/finnav/internal/domain"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Financial Self-Assessment"))
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(m.resultView())
		b.WriteString(HintStyle.Render("press q to quit"))
		b.WriteString("\n")
		return AppStyle.Render(b.String())
	}

	cur := m.steps[m.current]

	b.WriteString(HintStyle.Render(fmt.Sprintf("Question %d of %d", m.current+1, len(m.steps))))
	b.WriteString("\n\n")
	b.WriteString(PromptStyle.Render(cur.prompt))
	b.WriteString("\n")
	if cur.hint != "" {
		b.WriteString(HintStyle.Render(cur.hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch cur.kind {
	case stepChoice:
		for i, choice := range cur.choices {
			cursor := "  "
			style := UnselectedChoiceStyle
			if i == m.choiceIdx {
				cursor = "> "
				style = SelectedChoiceStyle
			}
			b.WriteString(cursor + style.Render(choice) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(HintStyle.Render("↑/↓ select · enter confirm · esc quit"))
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(HintStyle.Render("enter confirm · esc quit"))
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
	}
	b.WriteString("\n")

	return AppStyle.Render(b.String())
}

// resultView renders the scored profile with traffic lights.
func (m Model) resultView() string {
	var b strings.Builder

	scores := []struct {
		label string
		value int
	}{
		{"Overall", m.profile.Scores.Overall},
		{"Liquidity", m.profile.Scores.Liquidity},
		{"Wealth building", m.profile.Scores.Wealth},
		{"Protection", m.profile.Scores.Protection},
		{"Retirement", m.profile.Scores.Retirement},
		{"Debt", m.profile.Scores.Debt},
	}

	for i, s := range scores {
		status := domain.ClassifyScore(s.value)
		b.WriteString(fmt.Sprintf("%s %3d  %s\n",
			ScoreLabelStyle.Render(s.label),
			s.value,
			statusStyle(status).Render("● "+strings.ToUpper(string(status)))))
		if i == 0 {
			b.WriteString(HintStyle.Render(strings.Repeat("─", 34)))
			b.WriteString("\n")
		}
	}

	if len(m.profile.RecommendedModules) > 0 {
		b.WriteString("\n")
		b.WriteString(PromptStyle.Render("Where to dig deeper:"))
		b.WriteString("\n")
		for _, mod := range m.profile.RecommendedModules {
			b.WriteString("  • " + moduleLabel(mod) + "\n")
		}
	}
	b.WriteString("\n")

	return b.String()
}

func moduleLabel(id domain.ModuleID) string {
	switch id {
	case domain.ModulePension:
		return "Pension gap analysis"
	case domain.ModuleFinancing:
		return "Mortgage affordability check"
	case domain.ModuleRisk:
		return "Income-shock runway"
	default:
		return string(id)
	}
}
