package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan — primary accent
	colorAccent  = lipgloss.Color("#FFD700") // Gold — highest complexity
	colorMuted   = lipgloss.Color("#636363") // Gray — de-emphasized
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorSurface = lipgloss.Color("#1E1E2E") // Dark surface — status bar bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleRow = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleTopRank = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleDetailHeader = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)
)
