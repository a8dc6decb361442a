// Package updaterequired blocks play until the player installs a newer build.
package updaterequired

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
	"github.com/sengokuquiz/sengoku/internal/ui/theme"
	"github.com/sengokuquiz/sengoku/internal/updatecheck"
)

// Screen shows the remote update message. It cannot be dismissed.
type Screen struct {
	verdict updatecheck.Verdict
}

var _ screen.Screen = (*Screen)(nil)

func New(v updatecheck.Verdict) *Screen {
	return &Screen{verdict: v}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Update required" }

func (s *Screen) HandlesEscape() bool { return true }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "q" {
		return s, tea.Quit
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("⚠  Update required"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(min(width-12, 60)).Render(s.verdict.Message))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Installed %s, minimum %s", s.verdict.Current, s.verdict.Minimum)))
	if s.verdict.UpdateURL != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Selected.Render(s.verdict.UpdateURL))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Alert.Render(b.String()))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Q", Description: "Quit"}}
}
