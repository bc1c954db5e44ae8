// Package tui implements the interactive intake wizard: it walks through the
// basic assessment questions in the terminal and shows the scored result.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/calculation"
	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/session"
)

type stepKind int

const (
	stepText stepKind = iota
	stepChoice
)

// step is one wizard question. Text steps parse the typed value, choice
// steps apply the selected option. Optional text steps accept an empty input.
type step struct {
	prompt   string
	hint     string
	kind     stepKind
	choices  []string
	optional bool
	apply    func(p *domain.Profile, value string) error
}

func intakeSteps() []step {
	return []step{
		{
			prompt: "How old are you?",
			kind:   stepText,
			apply: func(p *domain.Profile, value string) error {
				age, err := strconv.Atoi(value)
				if err != nil || age < 16 || age > 100 {
					return fmt.Errorf("enter an age between 16 and 100")
				}
				p.Basic.Age = &age
				return nil
			},
		},
		{
			prompt:  "What does your household look like?",
			kind:    stepChoice,
			choices: []string{"single", "couple", "family"},
			apply: func(p *domain.Profile, value string) error {
				p.Basic.HouseholdType = domain.HouseholdType(value)
				return nil
			},
		},
		{
			prompt:  "How do you earn your income?",
			kind:    stepChoice,
			choices: []string{"employed", "self_employed", "part_time"},
			apply: func(p *domain.Profile, value string) error {
				p.Basic.Employment = domain.EmploymentType(value)
				return nil
			},
		},
		{
			prompt: "Monthly net household income?",
			hint:   "in euros",
			kind:   stepText,
			apply:  applyAmount(func(p *domain.Profile, d *decimal.Decimal) { p.Cashflow.NetIncomeMonthly = d }),
		},
		{
			prompt: "Monthly fixed costs (rent, insurance, subscriptions)?",
			hint:   "in euros",
			kind:   stepText,
			apply:  applyAmount(func(p *domain.Profile, d *decimal.Decimal) { p.Cashflow.FixedCostsMonthly = d }),
		},
		{
			prompt:   "Savings and cash reserves?",
			hint:     "in euros, leave empty to skip",
			kind:     stepText,
			optional: true,
			apply:    applyAmount(func(p *domain.Profile, d *decimal.Decimal) { p.Assets.Savings = d }),
		},
		{
			prompt:   "Invested assets (funds, shares, crypto)?",
			hint:     "in euros, leave empty to skip",
			kind:     stepText,
			optional: true,
			apply:    applyAmount(func(p *domain.Profile, d *decimal.Decimal) { p.Assets.Investments = d }),
		},
		{
			prompt:   "Remaining mortgage balance?",
			hint:     "in euros, leave empty if none",
			kind:     stepText,
			optional: true,
			apply:    applyAmount(func(p *domain.Profile, d *decimal.Decimal) { p.Debts.MortgageRemaining = d }),
		},
		{
			prompt:   "Monthly payments on consumer loans?",
			hint:     "in euros, leave empty if none",
			kind:     stepText,
			optional: true,
			apply:    applyAmount(func(p *domain.Profile, d *decimal.Decimal) { p.Debts.ConsumerLoansMonthly = d }),
		},
		{
			prompt:  "How many months of expenses could your emergency fund cover?",
			kind:    stepChoice,
			choices: []string{"0", "1", "2", "3", "6", "12"},
			apply: func(p *domain.Profile, value string) error {
				months, err := strconv.Atoi(value)
				if err != nil {
					return err
				}
				p.Protection.EmergencyFundMonths = months
				return nil
			},
		},
		{
			prompt:  "Do you have a private pension plan?",
			kind:    stepChoice,
			choices: []string{"yes", "no", "unknown"},
			apply: func(p *domain.Profile, value string) error {
				p.Protection.PrivatePension = domain.TriState(value)
				return nil
			},
		},
		{
			prompt:  "Do you have income protection insurance?",
			kind:    stepChoice,
			choices: []string{"yes", "no", "unknown"},
			apply: func(p *domain.Profile, value string) error {
				p.Protection.IncomeProtection = domain.TriState(value)
				return nil
			},
		},
	}
}

func applyAmount(set func(*domain.Profile, *decimal.Decimal)) func(*domain.Profile, string) error {
	return func(p *domain.Profile, value string) error {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if d.LessThan(decimal.Zero) {
			return fmt.Errorf("enter a non-negative amount")
		}
		set(p, &d)
		return nil
	}
}

// Model is the wizard state.
type Model struct {
	profile   domain.Profile
	steps     []step
	current   int
	choiceIdx int
	input     textinput.Model
	errMsg    string
	done      bool
	quitting  bool
}

// NewModel creates the wizard with a fresh session profile.
func NewModel() Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 12
	ti.Width = 20

	return Model{
		profile: session.NewProfile(),
		steps:   intakeSteps(),
		input:   ti,
	}
}

// Profile returns the wizard's profile, scored once the wizard is done.
func (m Model) Profile() domain.Profile {
	return m.profile
}

// Done reports whether the wizard has finished all steps.
func (m Model) Done() bool {
	return m.done
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "q":
		if m.done {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.done {
		return m, nil
	}

	cur := m.steps[m.current]

	switch cur.kind {
	case stepChoice:
		switch keyMsg.String() {
		case "up", "left", "k":
			if m.choiceIdx > 0 {
				m.choiceIdx--
			}
		case "down", "right", "j":
			if m.choiceIdx < len(cur.choices)-1 {
				m.choiceIdx++
			}
		case "enter":
			m.errMsg = ""
			if err := cur.apply(&m.profile, cur.choices[m.choiceIdx]); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.advance()
		}
		return m, nil

	default:
		if keyMsg.String() == "enter" {
			value := m.input.Value()
			m.errMsg = ""
			if value == "" && cur.optional {
				m.advance()
				return m, nil
			}
			if err := cur.apply(&m.profile, value); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.advance()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// advance moves to the next step, scoring the profile after the last one.
func (m *Model) advance() {
	m.current++
	m.choiceIdx = 0
	m.input.SetValue("")

	if m.current >= len(m.steps) {
		m.profile = calculation.CalculateScores(m.profile)
		m.profile.Meta.IsFinished = true
		m.done = true
	}
}
