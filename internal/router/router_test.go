package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/screen"
)

type stubScreen struct {
	title string
	inits int
	seen  []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

// run feeds the message produced by cmd into r.
func run(t *testing.T, r *Router, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	r.Update(cmd())
}

func TestToAndBack(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	section := &stubScreen{title: "section"}
	run(t, r, To(section))
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "section", r.Active().Title())
	assert.Equal(t, 1, section.inits)

	run(t, r, Back)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.View(80, 24))
	assert.Equal(t, 1, home.inits, "revealed screen refreshes")

	run(t, r, Back)
	assert.Equal(t, 1, r.Depth(), "home is never popped")
	assert.Equal(t, 1, home.inits)
}

func TestSwapKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "title card"})
	home := &stubScreen{title: "home"}
	run(t, r, Swap(home))

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
	assert.Equal(t, 1, home.inits)
}

func TestRestart(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "records"})
	r.Push(&stubScreen{title: "premium"})

	blocked := &stubScreen{title: "update"}
	run(t, r, Restart(blocked))

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "update", r.Active().Title())
	assert.Equal(t, 1, blocked.inits)
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	section := &stubScreen{title: "section"}
	r.Push(section)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	assert.Len(t, section.seen, 1)
	assert.Empty(t, home.seen)
}
