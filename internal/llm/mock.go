package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted outcome for MockProvider.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every request.
// Replies still pass the schema check, so tests see the same errors a real
// provider would produce for malformed output.
type MockProvider struct {
	mu       sync.Mutex
	script   []Reply
	requests []Request
}

func NewMockProvider(replies ...Reply) *MockProvider {
	return &MockProvider{script: replies}
}

// Push appends replies to the script.
func (m *MockProvider) Push(replies ...Reply) {
	m.mu.Lock()
	m.script = append(m.script, replies...)
	m.mu.Unlock()
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindUnavailable, Err: err}
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, &Error{Kind: KindUnavailable}
	}
	r := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return finish(req, &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: stopEnd})
}

func (m *MockProvider) ModelID() string { return "mock" }

// Requests returns a copy of every request seen so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
