package plans

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/premium"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
)

type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func (k *memKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.m == nil {
		k.m = make(map[string]string)
	}
	k.m[key] = value
	return nil
}

func newScreen(t *testing.T) *Screen {
	t.Helper()
	kv := &memKV{}
	svc := premium.NewService(context.Background(), premium.NewLocalBilling(kv), kv, nil)
	return New(&shared.Env{Premium: svc})
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestPurchase(t *testing.T) {
	s := newScreen(t)
	require.Len(t, s.menu.Items, 3)
	assert.Contains(t, s.View(100, 30), "Premium (monthly)")
	assert.NotContains(t, s.View(100, 30), "Premium is active.")

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, s.busy)
	assert.True(t, s.HandlesEscape())
	assert.Contains(t, s.View(100, 30), "Contacting the store")

	_, again := s.Update(enter())
	assert.Nil(t, again, "input ignored while busy")

	s.Update(cmd())
	assert.False(t, s.busy)
	assert.Equal(t, premium.Succeeded, s.state.Status)
	assert.True(t, s.env.IsPremium())

	view := s.View(100, 30)
	assert.Contains(t, view, "Premium is active.")
	assert.Contains(t, view, "Interstitials are now off")
}

func TestRestoreWithNothingOwned(t *testing.T) {
	s := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)

	s.Update(cmd())
	assert.Equal(t, premium.Succeeded, s.state.Status)
	assert.False(t, s.env.IsPremium())
	assert.Contains(t, s.View(100, 30), "No premium purchase found")
}

func TestFailureMessage(t *testing.T) {
	s := newScreen(t)
	s.Update(doneMsg{state: premium.PurchaseState{Status: premium.Failed, Message: "purchase is pending approval"}})
	assert.Contains(t, s.View(100, 30), "purchase is pending approval")
}
