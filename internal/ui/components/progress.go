package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/ui/theme"
)

// ProgressBar shows how far a count is towards its goal.
type ProgressBar struct {
	Label string
	Count int
	Goal  int
	Width int
}

// Fraction returns Count/Goal clamped to [0, 1]. A zero goal is complete.
func (p ProgressBar) Fraction() float64 {
	if p.Goal <= 0 {
		return 1
	}
	return min(max(float64(p.Count)/float64(p.Goal), 0), 1)
}

// View renders the label, the bar and a count/goal suffix.
func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	suffix := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", p.Count, p.Goal))

	barWidth := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth) * p.Fraction())

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		suffix
}
