package ui

import "github.com/charmbracelet/lipgloss"

// Palette entries adapt to light and dark terminal backgrounds.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1F7A6E", Dark: "#51B9A9"}
	colorSoft    = lipgloss.AdaptiveColor{Light: "#2F9589", Dark: "#A3E1D5"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#5A6270", Dark: "#6C7585"}
	colorFaint   = lipgloss.AdaptiveColor{Light: "#9AA1AC", Dark: "#4E5560"}
	colorOK      = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#63D78E"}
	colorFail    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#F9C424"}
)

var (
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// DimStyle is for secondary text such as sources and hints.
	DimStyle = lipgloss.NewStyle().Foreground(colorMuted)

	// CodeStyle marks paths, locators and file names.
	CodeStyle = lipgloss.NewStyle().Foreground(colorSoft)

	// CommandStyle marks commands the user can run next.
	CommandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorPrimary)
)
