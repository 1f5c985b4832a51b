package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorResult  = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorKey     = lipgloss.Color("#F9FAFB")
	colorKeyBg   = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Foreground(colorResult).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			Foreground(colorKey).
			Background(colorKeyBg).
			Align(lipgloss.Center)

	buttonPressedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorKeyBg).
				Background(colorPrimary).
				Bold(true).
				Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
