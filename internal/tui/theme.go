package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the finder.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Selected  lipgloss.Style
	FullMatch lipgloss.Style
	Partial   lipgloss.Style
	Mismatch  lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Box       lipgloss.Style
	Primary   lipgloss.Color
	Muted     lipgloss.Color
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#7c3aed"),
	Muted:   lipgloss.Color("#737373"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	FullMatch: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	Partial: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	Mismatch: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}
