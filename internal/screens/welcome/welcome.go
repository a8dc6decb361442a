// Package welcome is the title card shown on launch.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	castleEnd    = 600 * time.Millisecond // castle drawn, banners start to wave
	titleEnd     = 1500 * time.Millisecond
)

const castleArt = `        ▲
     ╱▔▔▔▔▔╲
    ╱ ▀▀▀▀▀ ╲
   ▔▔╱▔▔▔▔▔╲▔▔
    ╱ ▀▀▀▀▀ ╲
  ▔▔▔▔▔▔▔▔▔▔▔▔▔
   ┃ ┃  ▄  ┃ ┃
 ▄▄█▄█▄███▄█▄█▄▄`

const titleArt = `
 ███████╗███████╗███╗   ██╗ ██████╗  ██████╗ ██╗  ██╗██╗   ██╗
 ██╔════╝██╔════╝████╗  ██║██╔════╝ ██╔═══██╗██║ ██╔╝██║   ██║
 ███████╗█████╗  ██╔██╗ ██║██║  ███╗██║   ██║█████╔╝ ██║   ██║
 ╚════██║██╔══╝  ██║╚██╗██║██║   ██║██║   ██║██╔═██╗ ██║   ██║
 ███████║███████╗██║ ╚████║╚██████╔╝╚██████╔╝██║  ██╗╚██████╔╝
 ╚══════╝╚══════╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝`

const titleCompact = "S E N G O K U"

// flagFrames alternate beside the castle.
var flagFrames = []string{"⚑", "⚐"}

type tickMsg time.Time

// Screen animates the title card, then replaces itself with the screen
// built by next.
type Screen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*Screen)(nil)

func New(next func() screen.Screen) *Screen {
	return &Screen{next: next}
}

func (w *Screen) Title() string {
	return ""
}

func (w *Screen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < titleEnd {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// The first key mid-animation only completes it.
		if w.elapsed < titleEnd {
			w.elapsed = titleEnd
			return w, nil
		}
		return w, w.transition()
	}
	return w, nil
}

func (w *Screen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Swap(w.next())
}

// RenderTitle returns the game title in the primary color, compact below
// 64 columns.
func RenderTitle(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 64 {
		return style.Render(titleCompact)
	}
	return style.Render(titleArt)
}

func (w *Screen) View(width, height int) string {
	castle := lipgloss.NewStyle().Foreground(theme.Secondary).Render(castleArt)
	if w.elapsed >= castleEnd {
		flag := flagFrames[w.tickCount%len(flagFrames)]
		left := lipgloss.NewStyle().Foreground(theme.Primary).Render(flag)
		right := lipgloss.NewStyle().Foreground(theme.Accent).Render(flag)
		lines := strings.Split(castle, "\n")
		lines[0] = left + "  " + lines[0] + "  " + right
		castle = strings.Join(lines, "\n")
	}

	sections := []string{castle}
	if w.elapsed >= titleEnd {
		sections = append(sections,
			"",
			RenderTitle(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("The realm awaits its unifier."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
