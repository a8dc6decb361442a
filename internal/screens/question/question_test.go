package question

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/ads"
	"github.com/sengokuquiz/sengoku/internal/progress"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/quiz"
	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/store"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

type notPremium struct{}

func (notPremium) IsPremium() bool { return false }

type sessionLog struct {
	actions []string
	answers int
}

func (l *sessionLog) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	l.actions = append(l.actions, d.Action)
	return nil
}

func (l *sessionLog) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	l.answers++
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSet() questionbank.Set {
	return questionbank.Set{
		Tier:  tier.SmallDaimyo,
		Index: 0,
		Questions: []questionbank.Question{
			{ID: 1, Prompt: "Who won at Okehazama?", Options: []string{"Oda Nobunaga", "Imagawa Yoshimoto"}, CorrectIndex: 0, Explanation: "Nobunaga ambushed Imagawa in 1560.", Tier: tier.SmallDaimyo},
			{ID: 2, Prompt: "Where was Uesugi Kenshin based?", Options: []string{"Kai", "Echigo", "Owari"}, CorrectIndex: 1, Tier: tier.SmallDaimyo},
		},
	}
}

func newEnv(t *testing.T, values map[string]string) (*shared.Env, *sessionLog) {
	t.Helper()
	journal := &sessionLog{}
	return &shared.Env{
		Machine: progress.NewMachine(context.Background(), progress.NewMemoryBackend(values), nil),
		Journal: journal,
	}, journal
}

func isPop(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

func TestPlaySection(t *testing.T) {
	env, journal := newEnv(t, nil)
	s := New(env, testSet())
	assert.Equal(t, "Small Daimyo · Section 1", s.Title())
	assert.Contains(t, s.View(100, 30), "Who won at Okehazama?")

	s.Update(keyPress('1'))
	assert.Equal(t, phaseFeedback, s.phase)
	assert.Contains(t, s.View(100, 30), "Correct!")
	assert.Contains(t, s.View(100, 30), "ambushed")

	s.Update(keyPress('1'))
	assert.Equal(t, phaseFeedback, s.phase, "second answer ignored")

	s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, phaseAsking, s.phase)

	s.Update(specialKey(tea.KeyEnter))
	assert.Contains(t, s.View(100, 30), "Not quite. The answer was Echigo.")

	s.Update(specialKey(tea.KeySpace))
	assert.Equal(t, phaseSummary, s.phase)
	view := s.View(100, 30)
	assert.Contains(t, view, "Section 1 complete!")
	assert.Contains(t, view, "Correct this section: 1/2")

	assert.Equal(t, 1, env.Machine.Correct(tier.SmallDaimyo))
	assert.Equal(t, []string{quiz.ActionStart, quiz.ActionEnd}, journal.actions)
	assert.Equal(t, 2, journal.answers)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.True(t, isPop(t, cmd))
}

func TestOutOfRangeShortcutIgnored(t *testing.T) {
	env, _ := newEnv(t, nil)
	s := New(env, testSet())

	s.Update(keyPress('3'))
	assert.Equal(t, phaseAsking, s.phase)
	assert.False(t, s.choice.Submitted)
}

func TestLeaveConfirmation(t *testing.T) {
	env, journal := newEnv(t, nil)
	s := New(env, testSet())
	assert.True(t, s.HandlesEscape())

	s.Update(specialKey(tea.KeyEscape))
	assert.True(t, s.confirmQuit)
	assert.Contains(t, s.View(100, 30), "Leave this section?")

	s.Update(keyPress('1'))
	assert.Equal(t, phaseAsking, s.phase, "answers blocked while confirming")

	s.Update(keyPress('n'))
	assert.False(t, s.confirmQuit)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	assert.True(t, isPop(t, cmd))
	assert.Equal(t, []string{quiz.ActionStart, quiz.ActionAbandon}, journal.actions)
}

func TestEmptySectionGoesStraightToSummary(t *testing.T) {
	env, journal := newEnv(t, nil)
	s := New(env, questionbank.Set{Tier: tier.Hasha, Index: 4})

	assert.Equal(t, phaseSummary, s.phase)
	assert.Contains(t, s.View(100, 30), "No questions have been written")
	assert.Empty(t, journal.actions)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	assert.True(t, isPop(t, cmd))
}

func TestCheckpointInterstitial(t *testing.T) {
	ctx := context.Background()
	env, _ := newEnv(t, map[string]string{progress.KeyCheckpointCount: "9"})
	env.Ads = ads.NewManager(ads.NewHouseAds(), notPremium{}, nil)
	env.Ads.Load(ctx)

	set := testSet()
	set.Questions = set.Questions[:1]
	s := New(env, set)

	s.Update(keyPress('2'))
	s.Update(specialKey(tea.KeyEnter))
	require.Equal(t, phaseSummary, s.phase)
	require.True(t, env.Machine.ShouldShowCheckpointAd())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, phaseInterstitial, s.phase)
	assert.Equal(t, ads.Showing, env.Ads.State())
	assert.Contains(t, s.View(100, 30), "You can continue in 5s")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "cannot close during countdown")

	for range interstitialDelay {
		s.Update(countdownMsg{})
	}
	assert.Zero(t, s.wait)
	assert.Contains(t, s.View(100, 30), "Press Enter to continue")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	assert.True(t, isPop(t, cmd))
	assert.False(t, env.Machine.ShouldShowCheckpointAd(), "dismiss consumes the checkpoint")
}

func TestCheckpointWithoutFillStaysDue(t *testing.T) {
	env, _ := newEnv(t, map[string]string{progress.KeyCheckpointCount: "12"})
	env.Ads = ads.NewManager(ads.NewHouseAds(), notPremium{}, nil)

	s := New(env, questionbank.Set{Tier: tier.SmallDaimyo})
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	assert.True(t, isPop(t, cmd))
	assert.True(t, env.Machine.ShouldShowCheckpointAd())
}
