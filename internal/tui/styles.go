package tui

import "github.com/charmbracelet/lipgloss"

const panelWidth = 28

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(panelWidth).
			Padding(0, 1)

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(panelWidth).
			Padding(0, 1).
			Bold(true).
			Align(lipgloss.Right)

	errorDisplayStyle = displayStyle.
				Foreground(lipgloss.Color("196"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(3).
			Align(lipgloss.Center)

	actionButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("86"))
)
