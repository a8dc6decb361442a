package questiongen

import (
	"fmt"
	"strings"

	"github.com/sengokuquiz/sengoku/internal/questionbank"
)

// Check inspects one drafted question. existing holds every prompt already
// in the tier plus the drafts accepted earlier in the same batch.
type Check interface {
	Name() string
	Check(q questionbank.Question, existing []string) error
}

// Rejection records a draft that failed a check.
type Rejection struct {
	Prompt string
	Check  string
	Reason string
}

// RecordCheck applies the bank's own record rules.
type RecordCheck struct{}

func (RecordCheck) Name() string { return "record" }

func (RecordCheck) Check(q questionbank.Question, _ []string) error {
	return questionbank.ValidateRecord(q)
}

// DistinctPromptCheck rejects prompts that repeat an existing one, ignoring
// case and surrounding space.
type DistinctPromptCheck struct{}

func (DistinctPromptCheck) Name() string { return "distinct" }

func (DistinctPromptCheck) Check(q questionbank.Question, existing []string) error {
	want := normalize(q.Prompt)
	for _, p := range existing {
		if normalize(p) == want {
			return fmt.Errorf("duplicates %q", p)
		}
	}
	return nil
}

// AnswerNotInPromptCheck rejects questions whose prompt quotes the correct option.
type AnswerNotInPromptCheck struct{}

func (AnswerNotInPromptCheck) Name() string { return "answer-leak" }

func (AnswerNotInPromptCheck) Check(q questionbank.Question, _ []string) error {
	ans := normalize(q.CorrectAnswerText())
	if ans != "" && strings.Contains(normalize(q.Prompt), ans) {
		return fmt.Errorf("prompt contains the answer %q", q.CorrectAnswerText())
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
