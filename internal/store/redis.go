package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/weather-bot/internal/dialogue"
)

const keyPrefix = "weather-bot:session:"

// RedisStore keeps sessions as JSON documents with a TTL, so an abandoned
// dialogue expires on its own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (dialogue.Session, error) {
	const op = "store.RedisStore.Get"

	raw, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dialogue.Session{}, nil
	}
	if err != nil {
		return dialogue.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var session dialogue.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return dialogue.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

func (s *RedisStore) Set(ctx context.Context, userID int64, session dialogue.Session) error {
	const op = "store.RedisStore.Set"

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.client.Set(ctx, key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID int64) error {
	const op = "store.RedisStore.Clear"

	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
