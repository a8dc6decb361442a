package questionbank

import "github.com/sengokuquiz/sengoku/internal/tier"

// Question is a single multiple-choice quiz question.
type Question struct {
	ID           int
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
	Tier         tier.Tier
}

// CorrectAnswerText returns the text of the correct option, or "" when the
// correct index falls outside the options.
func (q Question) CorrectAnswerText() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option >= 0 && option < len(q.Options) && option == q.CorrectIndex
}

// Set is one section of a tier: a contiguous run of at most SectionSize questions.
type Set struct {
	Tier      tier.Tier
	Index     int
	Questions []Question
}

// Len returns the number of questions in the set.
func (s Set) Len() int {
	return len(s.Questions)
}

// partition splits questions into contiguous sets of size, the last one possibly shorter.
func partition(t tier.Tier, questions []Question, size int) []Set {
	if size <= 0 || len(questions) == 0 {
		return nil
	}
	sets := make([]Set, 0, (len(questions)+size-1)/size)
	for start := 0; start < len(questions); start += size {
		end := min(start+size, len(questions))
		sets = append(sets, Set{
			Tier:      t,
			Index:     len(sets),
			Questions: questions[start:end:end],
		})
	}
	return sets
}
