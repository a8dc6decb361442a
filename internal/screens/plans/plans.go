// Package plans lets the player buy or restore premium.
package plans

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/premium"
	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/ui/components"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
	"github.com/sengokuquiz/sengoku/internal/ui/theme"
)

// doneMsg carries the outcome of a purchase or restore back to the screen.
type doneMsg struct {
	state premium.PurchaseState
}

// Screen lists the plans the store offers plus a restore entry.
type Screen struct {
	env   *shared.Env
	menu  components.Menu
	busy  bool
	state premium.PurchaseState
}

var _ screen.Screen = (*Screen)(nil)

// New builds the plan menu from the premium service's product list.
// env.Premium must be set.
func New(env *shared.Env) *Screen {
	s := &Screen{env: env, state: env.Premium.State()}

	var items []components.MenuItem
	for _, p := range env.Premium.Products() {
		items = append(items, components.MenuItem{
			Label:  p.Title,
			Detail: fmt.Sprintf("%s / %s", p.Price, p.Period),
			Action: s.run(func(ctx context.Context) premium.PurchaseState {
				return env.Premium.Purchase(ctx, p.ID)
			}),
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Restore purchases",
		Action: s.run(env.Premium.Restore),
	})
	s.menu = components.NewMenu(items)
	return s
}

// run wraps a store call as a menu action. The call happens off the UI
// loop and input is ignored until it reports back.
func (s *Screen) run(call func(context.Context) premium.PurchaseState) func() tea.Cmd {
	return func() tea.Cmd {
		s.busy = true
		s.state = premium.PurchaseState{Status: premium.Purchasing}
		return func() tea.Msg {
			return doneMsg{state: call(context.Background())}
		}
	}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Premium" }

// HandlesEscape holds the screen open while a store call is in flight.
func (s *Screen) HandlesEscape() bool { return s.busy }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		s.busy = false
		s.state = msg.state
		return s, nil
	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Sengoku Quiz Premium"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("No checkpoint interstitials between sections."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("The footer banner stays for everyone."))
	b.WriteString("\n\n")

	if s.env.IsPremium() {
		b.WriteString(theme.Correct.Render("Premium is active."))
		b.WriteString("\n\n")
	}
	if len(s.env.Premium.Products()) == 0 {
		b.WriteString(theme.Hint.Render("Plans are unavailable right now."))
		b.WriteString("\n\n")
	}
	b.WriteString(s.menu.View())

	if status := s.statusLine(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(b.String()))
}

func (s *Screen) statusLine() string {
	switch s.state.Status {
	case premium.Purchasing:
		return theme.Hint.Render("Contacting the store...")
	case premium.Succeeded:
		if s.env.IsPremium() {
			return theme.Correct.Render("Thank you! Interstitials are now off.")
		}
		return theme.Hint.Render("No premium purchase found to restore.")
	case premium.Failed:
		return theme.Incorrect.Render(s.state.Message)
	}
	return ""
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "...", Description: "Waiting for the store"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Buy"},
		{Key: "Esc", Description: "Back"},
	}
}
