// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/ads"
	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/screens/home"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/screens/updaterequired"
	"github.com/sengokuquiz/sengoku/internal/screens/welcome"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
	"github.com/sengokuquiz/sengoku/internal/updatecheck"
)

// bannerInterval is how long each footer banner stays up.
const bannerInterval = 30 * time.Second

type bannerTickMsg time.Time

func bannerTick() tea.Cmd {
	return tea.Tick(bannerInterval, func(t time.Time) tea.Msg { return bannerTickMsg(t) })
}

// Options configures the root model.
type Options struct {
	Env *shared.Env
	// Banner supplies footer banners; nil hides the banner line.
	Banner *ads.HouseAds
	// Verdict from the startup update check. A required update replaces
	// the whole game with a blocking screen.
	Verdict updatecheck.Verdict
	// Splash shows the title card before home.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *shared.Env
	banner *ads.HouseAds
	router *router.Router
	tick   int
	width  int
	height int
}

// NewAppModel builds the root model on the home screen, or on the update
// screen when the verdict demands it.
func NewAppModel(opts Options) AppModel {
	var first screen.Screen
	switch {
	case opts.Verdict.RequiresUpdate:
		first = updaterequired.New(opts.Verdict)
	case opts.Splash:
		first = welcome.New(func() screen.Screen { return home.New(opts.Env) })
	default:
		first = home.New(opts.Env)
	}
	return AppModel{
		env:    opts.Env,
		banner: opts.Banner,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.banner != nil {
		return tea.Batch(cmd, bannerTick())
	}
	return cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bannerTickMsg:
		m.tick++
		return m, bannerTick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders the header, the active screen and the footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	banner := ""
	if m.banner != nil {
		banner = m.banner.Banner(m.tick)
	}
	footer := layout.RenderFooter(hints, banner, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// status is the header's rank readout. It is blank when the game is
// blocked behind an update.
func (m AppModel) status() layout.Status {
	if m.env == nil || m.env.Machine == nil {
		return layout.Status{}
	}
	if _, blocked := m.router.Active().(*updaterequired.Screen); blocked {
		return layout.Status{}
	}
	cur := m.env.Machine.CurrentTier()
	return layout.Status{
		Rank:     cur.DisplayName(),
		Correct:  m.env.Machine.Correct(cur),
		Required: cur.RequiredCorrect(),
		Premium:  m.env.IsPremium(),
	}
}

// Run preloads the first interstitial and starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	if opts.Env != nil && opts.Env.Ads != nil && opts.Env.Machine != nil {
		stop := opts.Env.Ads.Watch(ctx, opts.Env.Machine)
		defer stop()
		opts.Env.Ads.Load(ctx)
	}

	p := tea.NewProgram(NewAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
