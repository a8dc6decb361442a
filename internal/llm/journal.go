package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/sengokuquiz/sengoku/internal/store"
)

// RequestJournal receives one record per provider call.
type RequestJournal interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// journaled records every call of inner. A failed write is logged and
// never changes the call's outcome.
type journaled struct {
	inner   Provider
	name    string
	journal RequestJournal
	logger  *log.Logger
	now     func() time.Time
}

// WithJournal wraps p so each call is appended to journal. name is the
// provider label stored alongside the model id.
func WithJournal(p Provider, name string, journal RequestJournal, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &journaled{inner: p, name: name, journal: journal, logger: logger, now: time.Now}
}

func (j *journaled) ModelID() string { return j.inner.ModelID() }

func (j *journaled) Generate(ctx context.Context, req Request) (*Response, error) {
	started := j.now()
	resp, err := j.inner.Generate(ctx, req)

	rec := store.LLMRequestEventData{
		Provider:    j.name,
		Model:       j.inner.ModelID(),
		Purpose:     purposeOf(ctx),
		LatencyMs:   j.now().Sub(started).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.ResponseBody = string(resp.Content)
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// The journal write uses a fresh context so a cancelled call is still recorded.
	if jerr := j.journal.AppendLLMRequest(context.WithoutCancel(ctx), rec); jerr != nil {
		j.logger.Printf("warning: journal llm request: %v", jerr)
	}
	return resp, err
}

// transcript renders req in a plain, greppable layout.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
