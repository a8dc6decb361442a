package progress

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/sengokuquiz/sengoku/internal/tier"
)

// Machine owns a player's progress and applies every transition to it.
// Mutations are serialized and written through to the backend; persistence
// failures are logged and the in-memory state stays authoritative.
type Machine struct {
	mu      sync.RWMutex
	state   State
	backend Backend
	logger  *log.Logger

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int
}

// NewMachine loads the persisted state from backend and returns a Machine
// owning it. Unreadable or malformed data is defaulted field by field.
func NewMachine(ctx context.Context, backend Backend, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if backend == nil {
		backend = NewMemoryBackend(nil)
	}
	m := &Machine{
		state:     DefaultState(),
		backend:   backend,
		logger:    logger,
		observers: make(map[int]Observer),
	}

	values, err := backend.Load(ctx)
	if err != nil {
		logger.Printf("warning: load progress: %v", err)
		return m
	}
	state, problems := Decode(values)
	for _, p := range problems {
		logger.Printf("warning: progress field defaulted: %s", p)
	}
	m.state = state
	return m
}

// Subscribe registers obs and returns a function that removes it.
func (m *Machine) Subscribe(obs Observer) (unsubscribe func()) {
	m.obsMu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = obs
	m.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.obsMu.Lock()
			delete(m.observers, id)
			m.obsMu.Unlock()
		})
	}
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// CurrentTier returns the active tier.
func (m *Machine) CurrentTier() tier.Tier {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CurrentTier
}

// Correct returns the cumulative correct answers for t.
func (m *Machine) Correct(t tier.Tier) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Correct(t)
}

// CompletedSections returns the number of fully completed sections of t.
func (m *Machine) CompletedSections(t tier.Tier) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CompletedSections(t)
}

// CurrentSectionIndex returns the index of the section being worked on in t.
func (m *Machine) CurrentSectionIndex(t tier.Tier) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CurrentSectionIndex(t)
}

// IsUnlocked reports whether t may be played.
func (m *Machine) IsUnlocked(t tier.Tier) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsUnlocked(t)
}

// ShouldShowCheckpointAd reports whether an interstitial is due.
func (m *Machine) ShouldShowCheckpointAd() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.ShouldShowCheckpointAd()
}

// RecordCorrect records a correct answer to questionID belonging to t and
// promotes the active tier once its threshold is reached.
func (m *Machine) RecordCorrect(ctx context.Context, questionID int, t tier.Tier) {
	if !t.Valid() {
		m.logger.Printf("warning: correct answer for invalid tier %d ignored", int(t))
		return
	}

	m.mu.Lock()
	reached := m.answeredLocked(questionID)
	m.state.PerTier[t]++
	m.state.TotalCorrect++
	m.persistLocked(ctx)

	events := []Event{{Kind: ProgressChanged, Tier: t}}
	if reached {
		events = append(events, Event{Kind: CheckpointReached, Tier: t})
	}

	// Only the active tier promotes; counts on other tiers never move the player.
	if t == m.state.CurrentTier && m.state.PerTier[t] >= t.RequiredCorrect() {
		if next, ok := t.Next(); ok {
			m.state.CurrentTier = next
			m.persistLocked(ctx)
			events = append(events, Event{Kind: TierChanged, Tier: next, From: t})
		}
	}
	snap := m.state.Clone()
	m.mu.Unlock()

	m.notify(events, snap)
}

// RecordIncorrect records a wrong answer. Only the checkpoint counter and
// the last answered question change.
func (m *Machine) RecordIncorrect(ctx context.Context, questionID int) {
	m.mu.Lock()
	reached := m.answeredLocked(questionID)
	m.persistLocked(ctx)
	snap := m.state.Clone()
	m.mu.Unlock()

	events := []Event{{Kind: ProgressChanged, Tier: snap.CurrentTier}}
	if reached {
		events = append(events, Event{Kind: CheckpointReached, Tier: snap.CurrentTier})
	}
	m.notify(events, snap)
}

// answeredLocked applies the bookkeeping common to every answer and reports
// whether the checkpoint counter just reached the interval.
func (m *Machine) answeredLocked(questionID int) bool {
	id := questionID
	m.state.LastAnsweredQuestionID = &id
	before := m.state.CheckpointCount
	m.state.CheckpointCount++
	return before < CheckpointInterval && m.state.CheckpointCount >= CheckpointInterval
}

// ResetCheckpoint marks the pending checkpoint as consumed.
func (m *Machine) ResetCheckpoint(ctx context.Context) {
	m.mu.Lock()
	m.state.CheckpointCount = 0
	m.persistLocked(ctx)
	snap := m.state.Clone()
	m.mu.Unlock()

	m.notify([]Event{{Kind: CheckpointConsumed, Tier: snap.CurrentTier}}, snap)
}

// ResetAll restores the first-launch state.
func (m *Machine) ResetAll(ctx context.Context) {
	m.mu.Lock()
	from := m.state.CurrentTier
	m.state = DefaultState()
	m.persistLocked(ctx)
	snap := m.state.Clone()
	m.mu.Unlock()

	m.notify([]Event{{Kind: ProgressReset, Tier: snap.CurrentTier, From: from}}, snap)
}

// DebugSetProgress force-sets the correct count of t. The total is recomputed
// from the per-tier counts and the checkpoint counter becomes count mod 10.
// It never promotes. Negative counts are clamped to zero.
func (m *Machine) DebugSetProgress(ctx context.Context, t tier.Tier, count int) {
	if !t.Valid() {
		m.logger.Printf("warning: debug progress for invalid tier %d ignored", int(t))
		return
	}
	count = max(count, 0)

	m.mu.Lock()
	m.state.PerTier[t] = count
	m.state.TotalCorrect = m.state.SumPerTier()
	m.state.CheckpointCount = count % CheckpointInterval
	m.persistLocked(ctx)
	snap := m.state.Clone()
	m.mu.Unlock()

	m.notify([]Event{{Kind: ProgressChanged, Tier: t}}, snap)
}

func (m *Machine) persistLocked(ctx context.Context) {
	if err := m.backend.Save(ctx, Encode(m.state)); err != nil {
		m.logger.Printf("warning: save progress: %v", err)
	}
}

func (m *Machine) notify(events []Event, snap State) {
	m.obsMu.Lock()
	observers := make([]Observer, 0, len(m.observers))
	for id := 0; id < m.nextObs; id++ {
		if obs, ok := m.observers[id]; ok {
			observers = append(observers, obs)
		}
	}
	m.obsMu.Unlock()

	for _, ev := range events {
		ev.State = snap.Clone()
		for _, obs := range observers {
			obs(ev)
		}
	}
}
