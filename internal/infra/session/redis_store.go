package session

import (
	"context"
	"time"

	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a fixed TTL per entry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ repository.SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionKey string) string {
	return redisKeyPrefix + sessionKey
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	userID, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "session: redis get")
	}

	return userID, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, userID string) error {
	if key == "" || userID == "" {
		return errors.New("session: missing key or user id")
	}

	return errors.Wrap(s.client.Set(ctx, s.key(key), userID, s.ttl).Err(), "session: redis set")
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrap(s.client.Del(ctx, s.key(key)).Err(), "session: redis del")
}
