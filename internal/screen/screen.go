// Package screen holds the contract every TUI page of the quiz satisfies,
// from the title card through the question view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/sengokuquiz/sengoku/internal/ui/layout"
)

// Screen is one page on the router's stack. The app draws the header and
// footer around View; Title fills the header.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the footer's default hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them, such as a quiz asking to confirm
// an abandon or a screen that must not be dismissed.
type EscapeHandler interface {
	HandlesEscape() bool
}
