package questionbank

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"slices"
	"sync"

	"github.com/sengokuquiz/sengoku/internal/tier"
)

// tierFile is the on-disk shape of a tier's question file.
type tierFile struct {
	Questions []record `json:"questions"`
}

// record is one question as stored in a tier file.
type record struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// FileName returns the data file name for a tier, e.g. "questions_hasha.json".
func FileName(t tier.Tier) string {
	return fmt.Sprintf("questions_%s.json", t)
}

// Bank holds the question content of every tier. It is read-only once loaded.
type Bank struct {
	mu     sync.RWMutex
	fsys   fs.FS
	byTier map[tier.Tier][]Question
	logger *log.Logger
}

// New creates a Bank reading tier files from fsys. Nothing is read until
// Load or LoadTier is called.
func New(fsys fs.FS, logger *log.Logger) *Bank {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Bank{
		fsys:   fsys,
		byTier: make(map[tier.Tier][]Question),
		logger: logger,
	}
}

// Load reads every tier's file. Missing or invalid files leave that tier empty.
func (b *Bank) Load() *Bank {
	for _, t := range tier.All() {
		b.LoadTier(t)
	}
	return b
}

// LoadTier reads the tier's file and returns its questions in file order.
// A missing or unparsable file yields an empty list. Reloading replaces the
// tier's questions rather than appending to them.
func (b *Bank) LoadTier(t tier.Tier) []Question {
	questions, err := b.readTier(t)
	if err != nil {
		b.logger.Printf("warning: questions for %s unavailable: %v", t, err)
		questions = nil
	}

	b.mu.Lock()
	b.byTier[t] = questions
	b.mu.Unlock()

	return slices.Clone(questions)
}

func (b *Bank) readTier(t tier.Tier) ([]Question, error) {
	if b.fsys == nil {
		return nil, fmt.Errorf("no question source configured")
	}
	data, err := fs.ReadFile(b.fsys, FileName(t))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName(t), err)
	}
	return decodeTier(t, data, b.logger)
}

// decodeTier validates and decodes a tier file. The tier is assigned from t.
func decodeTier(t tier.Tier, data []byte, logger *log.Logger) ([]Question, error) {
	if err := ValidateFile(data); err != nil {
		return nil, err
	}
	var f tierFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	questions := make([]Question, 0, len(f.Questions))
	seen := make(map[int]bool, len(f.Questions))
	for _, r := range f.Questions {
		if seen[r.ID] {
			logger.Printf("warning: %s: duplicate question id %d skipped", FileName(t), r.ID)
			continue
		}
		seen[r.ID] = true
		q := Question{
			ID:           r.ID,
			Prompt:       r.Question,
			Options:      r.Options,
			CorrectIndex: r.CorrectAnswer,
			Explanation:  r.Explanation,
			Tier:         t,
		}
		if err := ValidateRecord(q); err != nil {
			// Kept: lookups against a bad index degrade to "" instead of failing.
			logger.Printf("warning: %s: %v", FileName(t), err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Questions returns the loaded questions of a tier.
func (b *Bank) Questions(t tier.Tier) []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.byTier[t])
}

// Sections partitions a tier's questions into sets of tier.SectionSize.
func (b *Bank) Sections(t tier.Tier) []Set {
	return partition(t, b.Questions(t), tier.SectionSize)
}

// Section returns the set at index i of tier t.
func (b *Bank) Section(t tier.Tier, i int) (Set, bool) {
	sets := b.Sections(t)
	if i < 0 || i >= len(sets) {
		return Set{Tier: t, Index: i}, false
	}
	return sets[i], true
}

// FindByID searches every loaded tier for the question with id.
func (b *Bank) FindByID(id int) (Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, t := range tier.All() {
		for _, q := range b.byTier[t] {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// MaxID returns the highest question id across all loaded tiers, or 0.
func (b *Bank) MaxID() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	maxID := 0
	for _, qs := range b.byTier {
		for _, q := range qs {
			maxID = max(maxID, q.ID)
		}
	}
	return maxID
}

// Count returns the number of loaded questions per tier.
func (b *Bank) Count() map[tier.Tier]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	counts := make(map[tier.Tier]int, len(b.byTier))
	for t, qs := range b.byTier {
		counts[t] = len(qs)
	}
	return counts
}

// EncodeTier renders questions in the tier file format.
func EncodeTier(questions []Question) ([]byte, error) {
	f := tierFile{Questions: make([]record, len(questions))}
	for i, q := range questions {
		f.Questions[i] = record{
			ID:            q.ID,
			Question:      q.Prompt,
			Options:       q.Options,
			CorrectAnswer: q.CorrectIndex,
			Explanation:   q.Explanation,
		}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tier file: %w", err)
	}
	return append(data, '\n'), nil
}
