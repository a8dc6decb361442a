package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: lacquer, gold leaf and ink on dark wood.
var (
	Primary   = lipgloss.Color("#C8102E") // Vermilion lacquer
	Secondary = lipgloss.Color("#D4A017") // Gold leaf
	Accent    = lipgloss.Color("#E9C46A") // Pale gold
	Success   = lipgloss.Color("#4C9A2A") // Pine
	Error     = lipgloss.Color("#E63946") // Blood red
	Text      = lipgloss.Color("#F4EBD9") // Washi
	TextDim   = lipgloss.Color("#A89F91") // Ash
	BgDark    = lipgloss.Color("#1B1410") // Charred wood
	BgCard    = lipgloss.Color("#2B211B") // Walnut
	Border    = lipgloss.Color("#5C4A3D") // Bark
	Locked    = lipgloss.Color("#5F5F5F") // Stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Panels
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Banner = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Accent).
		Padding(0, 1)

	Alert = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 3)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Disabled = lipgloss.NewStyle().
			Foreground(Locked)
)

// Section cells on the home grid.
var (
	CellAvailable = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Width(8).
			Align(lipgloss.Center)

	CellComplete = CellAvailable.
			Foreground(Success).
			BorderForeground(Success)

	CellLocked = CellAvailable.
			Foreground(Locked).
			BorderForeground(Locked)

	CellFocused = CellAvailable.
			Foreground(Primary).
			BorderForeground(Primary).
			Bold(true)
)
