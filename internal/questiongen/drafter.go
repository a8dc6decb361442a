// Package questiongen drafts new tier questions with a language model and
// writes them into question bank files for human review.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/sengokuquiz/sengoku/internal/llm"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

// Purpose labels drafting calls in the LLM request journal.
const Purpose = "question-draft"

// Drafter asks a provider for question batches and filters them against
// the bank.
type Drafter struct {
	provider llm.Provider
	bank     *questionbank.Bank
	config   Config
	logger   *log.Logger
}

func NewDrafter(provider llm.Provider, bank *questionbank.Bank, cfg Config, logger *log.Logger) *Drafter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Drafter{provider: provider, bank: bank, config: cfg, logger: logger}
}

// Result is the outcome of one Draft call.
type Result struct {
	Tier     tier.Tier
	Accepted []questionbank.Question
	Rejected []Rejection
}

// Draft requests one batch for t. Accepted questions get ids above the
// bank's current maximum, in reply order.
func (d *Drafter) Draft(ctx context.Context, t tier.Tier) (Result, error) {
	if !t.Valid() {
		return Result{}, fmt.Errorf("draft questions: invalid tier %d", int(t))
	}
	count := d.config.Count
	if count <= 0 {
		count = DefaultConfig().Count
	}

	var prior []string
	for _, q := range d.bank.Questions(t) {
		prior = append(prior, q.Prompt)
	}

	resp, err := d.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(t, count, prior, d.config.MaxPriorQuestions)}},
		Schema:      BatchSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("draft %s questions: %w", t, err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, fmt.Errorf("parse %s draft: %w", t, err)
	}

	res := Result{Tier: t}
	next := d.bank.MaxID() + 1
	for _, raw := range out.Questions {
		q := questionbank.Question{
			ID:           next,
			Prompt:       raw.Question,
			Options:      raw.Options,
			CorrectIndex: raw.CorrectAnswer,
			Explanation:  raw.Explanation,
			Tier:         t,
		}
		if rej, ok := d.check(q, prior); !ok {
			d.logger.Printf("warning: rejected %s draft (%s): %s", t, rej.Check, rej.Reason)
			res.Rejected = append(res.Rejected, rej)
			continue
		}
		res.Accepted = append(res.Accepted, q)
		prior = append(prior, q.Prompt)
		next++
	}
	return res, nil
}

func (d *Drafter) check(q questionbank.Question, existing []string) (Rejection, bool) {
	for _, c := range d.config.Checks {
		if err := c.Check(q, existing); err != nil {
			return Rejection{Prompt: q.Prompt, Check: c.Name(), Reason: err.Error()}, false
		}
	}
	return Rejection{}, true
}
