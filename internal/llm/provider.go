// Package llm talks to hosted language models for the offline question
// drafting tools. Nothing on the quiz path depends on it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion per call.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt with an optional output schema.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, switches the provider to its native JSON output
	// mode and the reply is checked against it before returning.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema document. Name doubles as the cache key for
// the compiled form, so distinct definitions need distinct names.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output plus accounting.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// aliases resolves a short model name to the provider's id. Unknown names
// pass through so full model ids keep working.
func alias(name string, table map[string]string) string {
	if id, ok := table[name]; ok {
		return id
	}
	return name
}

// finish applies the checks every provider shares once raw content is in
// hand: truncation first, then schema conformance.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == stopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Content: resp.Content}
	}
	if err := conform(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
