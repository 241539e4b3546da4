package store

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/blog/internal/bee"
)

func newTestSession(id string, at time.Time) *Session {
	return NewSession(id, bee.NewGame(bee.DefaultRules, rand.New(rand.NewPCG(1, 2))), at)
}

func TestMemory_SaveGet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	s := newTestSession("abc", time.Now())
	require.NoError(t, m.Save(ctx, s))

	got, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_SweepDropsIdleOnly(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newMemory(func() time.Time { return clock })
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, newTestSession("old", clock.Add(-2*time.Hour))))
	require.NoError(t, m.Save(ctx, newTestSession("fresh", clock.Add(-2*time.Hour))))
	_, err := m.Get(ctx, "fresh") // touch
	require.NoError(t, err)

	n := m.Sweep(clock.Add(-time.Hour))
	assert.Equal(t, 1, n)
	_, err = m.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSweeper_Run(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Save(context.Background(), newTestSession("a", time.Now().Add(-time.Hour))))

	sw := NewSweeper(m, 30*time.Minute)
	assert.Equal(t, 1, sw.Run())
	assert.Zero(t, m.Len())
}

func TestSweeper_Schedule(t *testing.T) {
	c := cron.New()
	sw := NewSweeper(NewMemoryStore(), time.Minute)

	id, err := sw.Schedule(c, "@every 5m")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = sw.Schedule(c, "not a spec")
	assert.Error(t, err)
}
