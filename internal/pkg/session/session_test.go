package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/nvago/internal/pkg/clock"
	"github.com/shandysiswandi/nvago/internal/pkg/hash"
)

type memStore struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.data[key] = string(value.([]byte))
	m.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (m *memStore) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(1, nil)
}

type fixedToken string

func (f fixedToken) Generate() string { return string(f) }

func newTestStore(s *memStore) *Redis {
	return &Redis{
		client: s,
		tokens: fixedToken("tok-123"),
		keyer:  hash.NewHMACSHA256("secret"),
		clock:  clock.NewFixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		ttl:    time.Hour,
	}
}

func TestRedis_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	st := newTestStore(mem)

	s, err := st.Create(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", s.Token)
	assert.Equal(t, s.CreatedAt.Add(time.Hour), s.ExpiresAt)

	require.Len(t, mem.data, 1)
	for k, v := range mem.data {
		assert.True(t, strings.HasPrefix(k, "session:"))
		assert.NotContains(t, k, "tok-123")
		assert.NotContains(t, v, "tok-123")
		assert.Equal(t, time.Hour, mem.ttls[k])
	}

	got, err := st.Get(ctx, "tok-123")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "tok-123", got.Token)

	require.NoError(t, st.Destroy(ctx, "tok-123"))
	_, err = st.Get(ctx, "tok-123")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Destroy(ctx, ""))
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	st := newTestStore(mem)

	_, err := st.Get(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)

	mem.err = errors.New("redis down")
	_, err = st.Create(ctx, 1, "bob")
	require.ErrorContains(t, err, "redis down")
	_, err = st.Get(ctx, "x")
	require.ErrorContains(t, err, "redis down")
	require.ErrorContains(t, st.Destroy(ctx, "x"), "redis down")

	mem.err = nil
	mem.data[st.key("bad")] = "{not json"
	_, err = st.Get(ctx, "bad")
	require.ErrorContains(t, err, "decode")
}

func TestNewRedis_DefaultTTL(t *testing.T) {
	st := NewRedis(Config{})
	assert.Equal(t, 14*24*time.Hour, st.TTL())
}
