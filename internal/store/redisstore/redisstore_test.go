package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengokuquiz/sengoku/internal/progress"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

// openTestBackend starts an in-process Redis and connects a Backend to it.
func openTestBackend(t *testing.T, opts ...Option) (*Backend, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	b, err := New(context.Background(), "redis://"+srv.Addr(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, srv
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestNew_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := New(context.Background(), "redis://"+addr)
	assert.ErrorContains(t, err, "ping redis")
}

func TestSaveReplaces(t *testing.T) {
	b, srv := openTestBackend(t)
	ctx := context.Background()

	values, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, b.Save(ctx, map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, b.Save(ctx, map[string]string{"a": "3"}))

	values, err = b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3"}, values)
	keys, err := srv.HKeys(DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys)

	require.NoError(t, b.Save(ctx, nil))
	assert.False(t, srv.Exists(DefaultKey))
}

func TestWithKey(t *testing.T) {
	b, srv := openTestBackend(t, WithKey("sengoku:player:2"))
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, map[string]string{"currentTier": "hasha"}))
	assert.Equal(t, "hasha", srv.HGet("sengoku:player:2", "currentTier"))
	assert.False(t, srv.Exists(DefaultKey))
}

func TestLoad_ServerError(t *testing.T) {
	b, srv := openTestBackend(t)
	srv.SetError("ERR disk full")

	_, err := b.Load(context.Background())
	assert.ErrorContains(t, err, "load progress hash")
	assert.ErrorContains(t, b.Save(context.Background(), map[string]string{"a": "1"}), "save progress hash")
}

func TestMachineRoundTrip(t *testing.T) {
	b, _ := openTestBackend(t)
	ctx := context.Background()

	m := progress.NewMachine(ctx, b, nil)
	for i := range 12 {
		m.RecordCorrect(ctx, i, tier.SmallDaimyo)
	}
	m.RecordIncorrect(ctx, 99)

	reloaded := progress.NewMachine(ctx, b, nil)
	assert.Equal(t, m.Snapshot(), reloaded.Snapshot())
}
