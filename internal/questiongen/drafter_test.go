package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/llm"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

func testBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	data, err := questionbank.EncodeTier([]questionbank.Question{
		{ID: 301, Prompt: "Who commanded the Takeda at Nagashino?", Options: []string{"Takeda Katsuyori", "Takeda Shingen", "Baba Nobuharu", "Yamagata Masakage"}},
		{ID: 302, Prompt: "In which year was Honno-ji?", Options: []string{"1582", "1575", "1560", "1600"}},
	})
	require.NoError(t, err)
	small, err := questionbank.EncodeTier([]questionbank.Question{
		{ID: 7, Prompt: "Who won at Okehazama?", Options: []string{"Oda Nobunaga", "Imagawa Yoshimoto"}},
	})
	require.NoError(t, err)
	fsys := fstest.MapFS{
		questionbank.FileName(tier.Hasha):       {Data: data},
		questionbank.FileName(tier.SmallDaimyo): {Data: small},
	}
	return questionbank.New(fsys, nil).Load()
}

type draft struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func batch(t *testing.T, drafts ...draft) json.RawMessage {
	t.Helper()
	if drafts == nil {
		drafts = []draft{}
	}
	b, err := json.Marshal(map[string]any{"questions": drafts})
	require.NoError(t, err)
	return b
}

func TestDraft_AssignsIDsAndFilters(t *testing.T) {
	mock := llm.NewMockProvider(llm.Reply{Content: batch(t,
		draft{"Which castle did Hideyoshi besiege with a dam in 1582?", []string{"Takamatsu", "Odawara", "Osaka", "Himeji"}, 0, "He flooded Bitchu-Takamatsu."},
		draft{"  in which YEAR was honno-ji? ", []string{"1582", "1575", "1560", "1600"}, 0, "Repeat."},
		draft{"Was Shibata Katsuie defeated at Shizugatake?", []string{"Shibata Katsuie", "Akechi", "Niwa", "Ikeda"}, 0, "Leaks the answer."},
		draft{"Which clan ruled Satsuma?", []string{"Shimazu", "Shimazu", "Otomo", "Ryuzoji"}, 0, "Duplicate option."},
		draft{"Who led the Western Army at Sekigahara?", []string{"Ishida Mitsunari", "Tokugawa Ieyasu", "Kobayakawa Hideaki", "Otani Yoshitsugu"}, 0, "Mitsunari organised it."},
	)})

	var logged strings.Builder
	d := NewDrafter(mock, testBank(t), DefaultConfig(), newLogger(&logged))
	res, err := d.Draft(context.Background(), tier.Hasha)
	require.NoError(t, err)

	require.Len(t, res.Accepted, 2)
	assert.Equal(t, 303, res.Accepted[0].ID)
	assert.Equal(t, 304, res.Accepted[1].ID)
	assert.Equal(t, tier.Hasha, res.Accepted[1].Tier)
	assert.Equal(t, "Ishida Mitsunari", res.Accepted[1].CorrectAnswerText())

	require.Len(t, res.Rejected, 3)
	assert.Equal(t, "distinct", res.Rejected[0].Check)
	assert.Equal(t, "answer-leak", res.Rejected[1].Check)
	assert.Equal(t, "record", res.Rejected[2].Check)
	assert.Contains(t, logged.String(), "warning: rejected hasha draft (distinct)")

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, BatchSchema, reqs[0].Schema)
	user := reqs[0].Messages[0].Content
	assert.Contains(t, user, "Rank: ")
	assert.Contains(t, user, "Number of questions: 10")
	assert.Contains(t, user, "2. In which year was Honno-ji?")
}

func TestDraft_DuplicateWithinBatch(t *testing.T) {
	q := draft{"Who built Azuchi Castle?", []string{"Oda Nobunaga", "Toyotomi Hideyoshi", "Tokugawa Ieyasu", "Akechi Mitsuhide"}, 0, ""}
	mock := llm.NewMockProvider(llm.Reply{Content: batch(t, q, q)})

	res, err := NewDrafter(mock, testBank(t), DefaultConfig(), nil).Draft(context.Background(), tier.Gunyuu)
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, 303, res.Accepted[0].ID)
	require.Len(t, res.Rejected, 1)
}

func TestDraft_ProviderErrors(t *testing.T) {
	d := NewDrafter(llm.NewMockProvider(llm.Reply{Err: &llm.Error{Kind: llm.KindRateLimited}}), testBank(t), DefaultConfig(), nil)
	_, err := d.Draft(context.Background(), tier.Hasha)
	assert.True(t, llm.IsKind(err, llm.KindRateLimited))
	assert.ErrorContains(t, err, "draft hasha questions")

	bad := llm.NewMockProvider(llm.Reply{Content: json.RawMessage(`{"questions":[{"question":"x"}]}`)})
	_, err = NewDrafter(bad, testBank(t), DefaultConfig(), nil).Draft(context.Background(), tier.Hasha)
	assert.True(t, llm.IsKind(err, llm.KindInvalidResponse))

	_, err = d.Draft(context.Background(), tier.Tier(9))
	assert.ErrorContains(t, err, "invalid tier")
}

func TestDraft_JournalsPurpose(t *testing.T) {
	j := &recordingJournal{}
	p := llm.WithJournal(llm.NewMockProvider(llm.Reply{Content: batch(t)}), "mock", j, nil)
	_, err := NewDrafter(p, testBank(t), DefaultConfig(), nil).Draft(context.Background(), tier.SmallDaimyo)
	require.NoError(t, err)
	require.Len(t, j.purposes, 1)
	assert.Equal(t, Purpose, j.purposes[0])
}

func TestBuildUserMessage_PriorCap(t *testing.T) {
	msg := buildUserMessage(tier.SmallDaimyo, 5, []string{"a", "b", "c"}, 2)
	assert.Contains(t, msg, "1. b\n2. c")
	assert.NotContains(t, msg, "1. a")

	msg = buildUserMessage(tier.Tenkabito, 5, nil, 2)
	assert.True(t, strings.HasSuffix(msg, "Already in this rank:\nNone"))
}

func TestWriteTier(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "questions")
	qs := []questionbank.Question{
		{ID: 401, Prompt: "Who founded the Edo shogunate?", Options: []string{"Tokugawa Ieyasu", "Oda Nobunaga"}, CorrectIndex: 0},
	}

	path, err := WriteTier(dir, tier.Tenkabito, qs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "questions_tenkabito.json"), path)

	bank := questionbank.New(os.DirFS(dir), nil)
	loaded := bank.LoadTier(tier.Tenkabito)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Tokugawa Ieyasu", loaded[0].CorrectAnswerText())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = WriteTier(dir, tier.Tenkabito, []questionbank.Question{{ID: 1, Prompt: "no options"}})
	assert.Error(t, err)
	assert.Len(t, bank.LoadTier(tier.Tenkabito), 1)
}

func TestChecks(t *testing.T) {
	q := questionbank.Question{ID: 1, Prompt: "Who unified Japan?", Options: []string{"Hideyoshi", "Kenshin"}}
	assert.NoError(t, DistinctPromptCheck{}.Check(q, []string{"Who lost Japan?"}))
	assert.Error(t, DistinctPromptCheck{}.Check(q, []string{"who  unified japan?"}))
	assert.NoError(t, AnswerNotInPromptCheck{}.Check(q, nil))
	assert.True(t, errors.Is(RecordCheck{}.Check(questionbank.Question{ID: 2}, nil), questionbank.ErrInvalidRecord))
}
