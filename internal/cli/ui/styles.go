package ui

import "github.com/charmbracelet/lipgloss"

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("35")).
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Center)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35")).
			Bold(true)

	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
