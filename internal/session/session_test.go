package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryStore().WithClock(func() time.Time { return now })

	require.NoError(t, m.Save(ctx, "abc", time.Hour))
	ok, err := m.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Hour)
	ok, _ = m.Exists(ctx, "abc")
	assert.False(t, ok, "session must expire at its ttl")
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Save(ctx, "abc", time.Hour))
	require.NoError(t, m.Delete(ctx, "abc"))
	require.NoError(t, m.Delete(ctx, "missing"))

	ok, _ := m.Exists(ctx, "abc")
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	s := NewRedis(RedisConfig{Addr: mr.Addr()})
	defer s.Close()
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, s.Save(ctx, "sid-1", 30*time.Minute))
	assert.True(t, mr.Exists("admin_session:sid-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("admin_session:sid-1"))

	ok, err := s.Exists(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(31 * time.Minute)
	ok, err = s.Exists(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "sid-2", time.Hour))
	require.NoError(t, s.Delete(ctx, "sid-2"))
	ok, _ = s.Exists(ctx, "sid-2")
	assert.False(t, ok)
}
