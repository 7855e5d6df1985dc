package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/i474232898/weather-bot/internal/dialogue"
	"github.com/i474232898/weather-bot/internal/domain"
)

func sampleSession() dialogue.Session {
	lang := domain.LangEN
	lat, lon := 55.75, 37.61
	return dialogue.Session{
		State: dialogue.AwaitingTempUnit,
		Pending: dialogue.Pending{
			Language:  &lang,
			Latitude:  &lat,
			Longitude: &lon,
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Idle, got.State)
	assert.Empty(t, got.Pending.Fields())

	require.NoError(t, s.Set(ctx, 1, sampleSession()))
	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)

	// other users are unaffected
	other, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Session{}, other)

	require.NoError(t, s.Clear(ctx, 1))
	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Session{}, got)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	require.NoError(t, s.Set(ctx, 1, sampleSession()))

	now = now.Add(2 * time.Hour)
	require.NoError(t, s.Set(ctx, 2, sampleSession()))

	removed := s.Sweep(time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, dialogue.AwaitingTempUnit, got.State)
}

func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	return client, func() {
		_ = client.Close()
		_ = testcontainers.TerminateContainer(ctr)
	}
}

func TestRedisStore(t *testing.T) {
	client, cleanup := setupRedis(t)
	defer cleanup()
	ctx := context.Background()

	s := NewRedisStore(client, time.Minute)

	got, err := s.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Session{}, got)

	require.NoError(t, s.Set(ctx, 10, sampleSession()))
	got, err = s.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)

	ttl, err := client.TTL(ctx, "weather-bot:session:10").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Clear(ctx, 10))
	got, err = s.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Session{}, got)
}

func TestBadgerStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBadgerStore("", time.Hour)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Session{}, got)

	require.NoError(t, s.Set(ctx, 5, sampleSession()))
	got, err = s.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)

	require.NoError(t, s.Clear(ctx, 5))
	got, err = s.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, dialogue.Session{}, got)

	removed, err := s.CollectGarbage()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestBadgerStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, 7, sampleSession()))
	require.NoError(t, s.Close())

	s, err = OpenBadgerStore(dir, 0)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)
}
