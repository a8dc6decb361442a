package history

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/quiz"
	"github.com/sengokuquiz/sengoku/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

// load runs Init and feeds its message back, as the router would.
func load(t *testing.T, s *Screen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestRecordsWithAnswers(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{SessionID: "a", Action: quiz.ActionStart, Tier: "small_daimyo"}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID: "a", QuestionID: 1, Tier: "small_daimyo",
		QuestionText: "Who won at Okehazama?", ChosenAnswer: "Oda Nobunaga", CorrectAnswer: "Oda Nobunaga", Correct: true,
	}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID: "a", QuestionID: 2, Tier: "small_daimyo",
		QuestionText: "Who fell at Okehazama?", ChosenAnswer: "Takeda Shingen", CorrectAnswer: "Imagawa Yoshimoto",
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "a", Action: quiz.ActionAbandon, Tier: "small_daimyo", QuestionsServed: 2, CorrectAnswers: 1, DurationSecs: 75,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{SessionID: "b", Action: quiz.ActionStart, Tier: "hasha", Section: 3}))
	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "b", Action: quiz.ActionEnd, Tier: "hasha", Section: 3, QuestionsServed: 10, CorrectAnswers: 9,
	}))

	s := New(repo)
	load(t, s)
	require.Len(t, s.sessions, 2, "start events are not listed")

	view := s.View(120, 30)
	assert.Contains(t, view, "Hegemon, section 4  cleared  9/10 correct")
	assert.Contains(t, view, "Small Daimyo, section 1  withdrew  1/2 correct  1:15")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 30), "Loading answers...")

	s.Update(cmd())
	view = s.View(120, 30)
	assert.Contains(t, view, "✓ Who won at Okehazama?  Oda Nobunaga")
	assert.Contains(t, view, "✗ Who fell at Okehazama?  Takeda Shingen (answer: Imagawa Yoshimoto)")

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "answers are cached")
	assert.NotContains(t, s.View(120, 30), "Okehazama")
}

func TestNoRecords(t *testing.T) {
	s := New(openRepo(t))
	assert.Contains(t, s.View(100, 30), "Unrolling the scrolls")
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No battles fought yet")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

type failingRecords struct{}

func (failingRecords) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, errors.New("disk on fire")
}

func (failingRecords) QueryAnswerEvents(context.Context, store.QueryOpts) ([]store.AnswerEvent, error) {
	return nil, errors.New("disk on fire")
}

func TestLoadError(t *testing.T) {
	s := New(failingRecords{})
	load(t, s)
	assert.Contains(t, s.View(100, 30), "Error: disk on fire")
}
