package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newWelcome() (*Screen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *Screen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

const tagline = "The realm awaits its unifier."

func TestTitleAppearsAfterCastle(t *testing.T) {
	w, _ := newWelcome()
	assert.NotContains(t, w.View(100, 30), tagline)
	assert.NotContains(t, w.View(100, 30), "⚑")

	sendTicks(w, 6)
	assert.Equal(t, castleEnd, w.elapsed)
	assert.NotContains(t, w.View(100, 30), tagline)

	sendTicks(w, 9)
	view := w.View(100, 30)
	assert.Contains(t, view, tagline)
	assert.Contains(t, view, "███████╗")
	assert.Contains(t, w.View(60, 30), titleCompact)
}

func TestFirstKeyCompletesAnimation(t *testing.T) {
	w, calls := newWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	assert.Nil(t, cmd)
	assert.Equal(t, titleEnd, w.elapsed)
	assert.Contains(t, w.View(100, 30), tagline)
	assert.Zero(t, *calls)

	_, cmd = w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, replace.Screen)
	assert.Equal(t, 1, *calls)
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newWelcome()
	sendTicks(w, 45)
	assert.Zero(t, *calls)
	assert.Equal(t, titleEnd, w.elapsed, "elapsed is capped")
}

func TestNextBuiltOnce(t *testing.T) {
	w, calls := newWelcome()
	sendTicks(w, 20)
	w.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)

	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd, "ticking stops after the transition")
	assert.Empty(t, w.Title())
}
