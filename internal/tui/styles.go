package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/finnav/finnav/internal/domain"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorGreen   = lipgloss.Color(domain.StatusGreen.Color())
	ColorYellow  = lipgloss.Color(domain.StatusYellow.Color())
	ColorRed     = lipgloss.Color(domain.StatusRed.Color())

	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().Bold(true)

	HintStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SelectedChoiceStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedChoiceStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)

	ScoreLabelStyle = lipgloss.NewStyle().Width(18)
)

// statusStyle returns the lipgloss style for a traffic light status.
func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusGreen:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	case domain.StatusYellow:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	}
}
