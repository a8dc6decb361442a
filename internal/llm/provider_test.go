package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/store"
)

var titleSchema = &Schema{
	Name: "test-title",
	Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"title": map[string]any{"type": "string"}},
		"required":             []any{"title"},
		"additionalProperties": false,
	},
}

func TestConform(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"title":"Nagashino"}`, true},
		{"missing field", `{}`, false},
		{"extra field", `{"title":"x","year":1575}`, false},
		{"wrong type", `{"title":1575}`, false},
		{"not json", `Nagashino`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := conform(titleSchema, json.RawMessage(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, KindInvalidResponse, e.Kind)
			assert.Equal(t, tt.raw, string(e.Content))
		})
	}
	assert.NoError(t, conform(nil, json.RawMessage(`anything`)))
}

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "llm: provider unavailable", (&Error{}).Error())
	inner := errors.New("dial tcp: refused")
	err := &Error{Kind: KindRateLimited, Err: inner}
	assert.Equal(t, "llm: rate limited: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.False(t, IsKind(inner, KindRateLimited))
}

func TestMockProvider(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(Reply{Content: json.RawMessage(`{"title":"a"}`), Usage: Usage{InputTokens: 3}})
	m.Push(Reply{Err: boom}, Reply{Content: json.RawMessage(`{"nope":1}`)})
	ctx := context.Background()

	resp, err := m.Generate(ctx, Request{Schema: titleSchema})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Usage.InputTokens)

	_, err = m.Generate(ctx, Request{})
	assert.ErrorIs(t, err, boom)

	_, err = m.Generate(ctx, Request{Schema: titleSchema})
	assert.True(t, IsKind(err, KindInvalidResponse))

	_, err = m.Generate(ctx, Request{})
	assert.True(t, IsKind(err, KindUnavailable))

	assert.Len(t, m.Requests(), 4)
	assert.Equal(t, "mock", m.ModelID())
}

type memJournal struct {
	mu   sync.Mutex
	recs []store.LLMRequestEventData
	err  error
}

func (j *memJournal) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs = append(j.recs, d)
	return j.err
}

func TestWithJournal(t *testing.T) {
	j := &memJournal{}
	m := NewMockProvider(
		Reply{Content: json.RawMessage(`{"title":"Anegawa"}`), Usage: Usage{InputTokens: 10, OutputTokens: 4}},
		Reply{Err: &Error{Kind: KindRateLimited}},
	)
	p := WithJournal(m, "mock", j, nil)
	ctx := WithPurpose(context.Background(), "question-draft")
	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "draft"}},
		Schema:   titleSchema,
	}

	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), req)
	require.Error(t, err)

	require.Len(t, j.recs, 2)
	ok := j.recs[0]
	assert.True(t, ok.Success)
	assert.Equal(t, "question-draft", ok.Purpose)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, 10, ok.InputTokens)
	assert.Equal(t, `{"title":"Anegawa"}`, ok.ResponseBody)
	assert.True(t, strings.HasPrefix(ok.RequestBody, "[system]\nsys"))
	assert.Contains(t, ok.RequestBody, "[user]\ndraft")
	assert.Contains(t, ok.RequestBody, "[schema test-title]")

	failed := j.recs[1]
	assert.False(t, failed.Success)
	assert.Equal(t, "unspecified", failed.Purpose)
	assert.Contains(t, failed.ErrorMessage, "rate limited")
}

func TestWithJournal_WriteFailureIgnored(t *testing.T) {
	var logged strings.Builder
	j := &memJournal{err: errors.New("disk full")}
	m := NewMockProvider(Reply{Content: json.RawMessage(`{"title":"x"}`)})
	p := WithJournal(m, "mock", j, newTestLogger(&logged))

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Contains(t, logged.String(), "warning: journal llm request: disk full")
}

func TestNew(t *testing.T) {
	j := &memJournal{}
	p, err := New(context.Background(), Config{Provider: ProviderMock}, j, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindUnavailable))
	assert.Len(t, j.recs, 1)

	_, err = New(context.Background(), Config{Provider: "carrier-pigeon"}, nil, nil)
	assert.ErrorContains(t, err, "unknown llm provider")

	_, err = New(context.Background(), Config{Provider: ProviderOpenAI}, nil, nil)
	assert.ErrorContains(t, err, "SENGOKU_OPENAI_API_KEY")
}
