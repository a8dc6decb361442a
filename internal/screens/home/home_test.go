package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/progress"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screens/history"
	"github.com/sengokuquiz/sengoku/internal/screens/question"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/store"
	"github.com/sengokuquiz/sengoku/internal/tier"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newHome(t *testing.T) *Screen {
	t.Helper()
	env := &shared.Env{
		Machine: progress.NewMachine(context.Background(), progress.NewMemoryBackend(nil), nil),
		Bank:    questionbank.New(questionbank.BundledFS(), nil).Load(),
	}
	return New(env)
}

func TestFreshCampaign(t *testing.T) {
	h := newHome(t)
	assert.Equal(t, tier.SmallDaimyo, h.selected)
	assert.Equal(t, 0, h.cursor)

	view := h.View(100, 30)
	assert.Contains(t, view, "Battle of Okehazama")
	assert.Contains(t, view, "Sections cleared: 0/10")
	assert.Contains(t, view, "ready")
	assert.Contains(t, view, "locked")

	h.Update(specialKey(tea.KeyTab))
	assert.Equal(t, tier.SmallDaimyo, h.selected, "other ranks are locked")
}

func TestCellStates(t *testing.T) {
	h := newHome(t)
	h.env.Machine.DebugSetProgress(context.Background(), tier.SmallDaimyo, 34)

	assert.Equal(t, cellComplete, h.cell(0))
	assert.Equal(t, cellComplete, h.cell(2))
	assert.Equal(t, cellAvailable, h.cell(3))
	assert.Equal(t, cellLocked, h.cell(4))
	assert.Equal(t, cellLocked, h.cell(9))
}

func TestGridNavigation(t *testing.T) {
	h := newHome(t)

	h.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, 0, h.cursor)
	h.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 5, h.cursor)
	h.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 5, h.cursor)
	h.Update(keyPress('l'))
	h.Update(keyPress('l'))
	h.Update(keyPress('l'))
	h.Update(keyPress('l'))
	h.Update(keyPress('l'))
	assert.Equal(t, 9, h.cursor)
	h.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 4, h.cursor)
}

func TestPlay(t *testing.T) {
	h := newHome(t)

	h.Update(specialKey(tea.KeyRight))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, h.View(100, 30), "Clear section 1 first.")

	h.Update(specialKey(tea.KeyLeft))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, isQuestion := push.Screen.(*question.Screen)
	assert.True(t, isQuestion)
	assert.Equal(t, "Small Daimyo · Section 1", push.Screen.Title())
}

func TestTabsSkipLockedRanks(t *testing.T) {
	h := newHome(t)
	h.env.Machine.DebugSetProgress(context.Background(), tier.SmallDaimyo, 100)

	h.Update(specialKey(tea.KeyTab))
	assert.Equal(t, tier.LargeDaimyo, h.selected)
	h.Update(specialKey(tea.KeyTab))
	assert.Equal(t, tier.SmallDaimyo, h.selected, "wraps past locked ranks")
	h.Update(keyPress('['))
	assert.Equal(t, tier.LargeDaimyo, h.selected)
}

func TestFollowsPromotion(t *testing.T) {
	h := newHome(t)
	ctx := context.Background()
	h.env.Machine.DebugSetProgress(ctx, tier.SmallDaimyo, 99)
	h.env.Machine.RecordCorrect(ctx, 1, tier.SmallDaimyo)
	require.Equal(t, tier.LargeDaimyo, h.env.Machine.CurrentTier())

	h.Init()
	assert.Equal(t, tier.LargeDaimyo, h.selected)
	assert.Equal(t, 0, h.cursor)
	assert.Contains(t, h.View(100, 30), "Great Daimyo unlocked!")
}

func TestPremiumKeyWithoutService(t *testing.T) {
	h := newHome(t)
	_, cmd := h.Update(keyPress('p'))
	assert.Nil(t, cmd)
	for _, hint := range h.KeyHints() {
		assert.NotEqual(t, "Premium", hint.Description)
	}

	_, cmd = h.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRecordsKey(t *testing.T) {
	h := newHome(t)
	_, cmd := h.Update(keyPress('r'))
	assert.Nil(t, cmd, "no journal to read")

	st, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	defer st.Close()
	h.env.Records = st.EventRepo()

	assert.Contains(t, h.KeyHints(), layout.KeyHint{Key: "R", Description: "Records"})
	_, cmd = h.Update(keyPress('r'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &history.Screen{}, push.Screen)
}
