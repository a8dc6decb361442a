package progress

import "github.com/sengokuquiz/sengoku/internal/tier"

// EventKind identifies what changed.
type EventKind int

const (
	// ProgressChanged fires after any answer is recorded or a count is force-set.
	ProgressChanged EventKind = iota
	// TierChanged fires when the active tier is promoted.
	TierChanged
	// CheckpointReached fires when the checkpoint counter reaches the interval.
	CheckpointReached
	// CheckpointConsumed fires when the counter is reset after an interstitial.
	CheckpointConsumed
	// ProgressReset fires after ResetAll.
	ProgressReset
)

func (k EventKind) String() string {
	switch k {
	case ProgressChanged:
		return "progress_changed"
	case TierChanged:
		return "tier_changed"
	case CheckpointReached:
		return "checkpoint_reached"
	case CheckpointConsumed:
		return "checkpoint_consumed"
	case ProgressReset:
		return "progress_reset"
	default:
		return "unknown"
	}
}

// Event describes one change. State is a copy taken after the mutation.
type Event struct {
	Kind EventKind
	// Tier is the tier whose count changed, or the new active tier for TierChanged.
	Tier tier.Tier
	// From is the previous active tier; only set for TierChanged.
	From  tier.Tier
	State State
}

// Observer receives events. It is called synchronously after the mutation
// completes, outside the machine's lock, so it may query the machine.
type Observer func(Event)
