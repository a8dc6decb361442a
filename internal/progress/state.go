package progress

import (
	"maps"

	"github.com/sengokuquiz/sengoku/internal/tier"
)

// CheckpointInterval is the number of answered questions after which an
// interstitial is due.
const CheckpointInterval = 10

// State is a player's persisted progress.
type State struct {
	CurrentTier            tier.Tier
	PerTier                map[tier.Tier]int
	CheckpointCount        int
	LastAnsweredQuestionID *int
	TotalCorrect           int
}

// DefaultState returns the state of a first launch.
func DefaultState() State {
	return State{
		CurrentTier: tier.First(),
		PerTier:     make(map[tier.Tier]int),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.PerTier = maps.Clone(s.PerTier)
	if c.PerTier == nil {
		c.PerTier = make(map[tier.Tier]int)
	}
	if s.LastAnsweredQuestionID != nil {
		id := *s.LastAnsweredQuestionID
		c.LastAnsweredQuestionID = &id
	}
	return c
}

// Correct returns the cumulative correct answers recorded for t.
func (s State) Correct(t tier.Tier) int {
	return s.PerTier[t]
}

// SumPerTier returns the sum of all per-tier counts.
func (s State) SumPerTier() int {
	total := 0
	for _, t := range tier.All() {
		total += s.PerTier[t]
	}
	return total
}

// CompletedSections returns floor(correct/SectionSize) capped at SectionsPerTier.
func (s State) CompletedSections(t tier.Tier) int {
	return min(s.PerTier[t]/tier.SectionSize, tier.SectionsPerTier)
}

// CurrentSectionIndex returns the section the player is working through in t.
// A fully completed tier stays on its last section.
func (s State) CurrentSectionIndex(t tier.Tier) int {
	return min(s.PerTier[t]/tier.SectionSize, tier.SectionsPerTier-1)
}

// IsUnlocked reports whether t may be played.
func (s State) IsUnlocked(t tier.Tier) bool {
	prev, ok := t.Prev()
	if !ok {
		return t.Valid()
	}
	return s.CompletedSections(prev) >= tier.SectionsPerTier
}

// ShouldShowCheckpointAd reports whether the checkpoint counter has reached the interval.
func (s State) ShouldShowCheckpointAd() bool {
	return s.CheckpointCount >= CheckpointInterval
}
