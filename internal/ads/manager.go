package ads

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/sengokuquiz/sengoku/internal/progress"
)

// Entitlement reports whether the player has paid to remove interstitials.
type Entitlement interface {
	IsPremium() bool
}

// State of the interstitial slot.
type State int

const (
	Empty State = iota
	Loading
	Ready
	Errored
	Showing
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "error"
	case Showing:
		return "showing"
	default:
		return "empty"
	}
}

// Manager holds at most one loaded interstitial. It is safe for concurrent use.
type Manager struct {
	src    Source
	ent    Entitlement
	logger *log.Logger

	mu        sync.Mutex
	state     State
	ad        Ad
	onDismiss func()
}

func NewManager(src Source, ent Entitlement, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{src: src, ent: ent, logger: logger}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Ready reports whether an interstitial can be shown right now.
func (m *Manager) Ready() bool { return m.State() == Ready }

// Load fetches an interstitial unless one is ready, one is loading, or the
// player is premium. A failed load leaves the slot in Errored; the next Load
// tries again.
func (m *Manager) Load(ctx context.Context) {
	if m.ent.IsPremium() {
		return
	}
	m.mu.Lock()
	if m.state == Ready || m.state == Loading || m.state == Showing {
		m.mu.Unlock()
		return
	}
	m.state = Loading
	m.mu.Unlock()

	ad, err := m.src.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.logger.Printf("warning: load interstitial: %v", err)
		m.state = Errored
		return
	}
	m.ad, m.state = ad, Ready
}

// Show presents the loaded interstitial. onDismiss runs once when Dismiss is
// called. It returns false, and starts a load for next time, when nothing is
// ready; premium players are never shown anything.
func (m *Manager) Show(ctx context.Context, onDismiss func()) (Ad, bool) {
	if m.ent.IsPremium() {
		return Ad{}, false
	}
	m.mu.Lock()
	if m.state != Ready {
		m.mu.Unlock()
		m.Load(ctx)
		return Ad{}, false
	}
	m.state = Showing
	m.onDismiss = onDismiss
	ad := m.ad
	m.mu.Unlock()
	return ad, true
}

// Dismiss closes the showing interstitial, runs its callback and preloads
// the next one. It is a no-op when nothing is showing.
func (m *Manager) Dismiss(ctx context.Context) {
	m.mu.Lock()
	if m.state != Showing {
		m.mu.Unlock()
		return
	}
	cb := m.onDismiss
	m.onDismiss = nil
	m.ad, m.state = Ad{}, Empty
	m.mu.Unlock()

	if cb != nil {
		cb()
	}
	m.Load(ctx)
}

// Watch preloads an interstitial whenever machine reaches a checkpoint.
func (m *Manager) Watch(ctx context.Context, machine *progress.Machine) (stop func()) {
	return machine.Subscribe(func(e progress.Event) {
		if e.Kind == progress.CheckpointReached {
			m.Load(ctx)
		}
	})
}

// ConsumeCheckpoint settles a due checkpoint at the end of a section.
// Premium players have it reset silently. Otherwise the interstitial is
// shown and the checkpoint resets when it is dismissed; with no ad ready the
// checkpoint stays due for the next section. The returned Ad is valid when
// shown is true.
func (m *Manager) ConsumeCheckpoint(ctx context.Context, machine *progress.Machine) (ad Ad, shown bool) {
	if !machine.ShouldShowCheckpointAd() {
		return Ad{}, false
	}
	if m.ent.IsPremium() {
		machine.ResetCheckpoint(ctx)
		return Ad{}, false
	}
	return m.Show(ctx, func() { machine.ResetCheckpoint(ctx) })
}
