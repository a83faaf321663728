package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares flags between server instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID uint) string {
	return fmt.Sprintf("session:flags:%d", userID)
}

func (s *RedisStore) Load(ctx context.Context, userID uint) (Flags, error) {
	b, err := s.client.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Flags{}, nil
	}
	if err != nil {
		return Flags{}, fmt.Errorf("load session flags: %w", err)
	}
	var f Flags
	if err := json.Unmarshal(b, &f); err != nil {
		return Flags{}, fmt.Errorf("decode session flags: %w", err)
	}
	return f, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uint, f Flags) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(userID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session flags: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, redisKey(userID)).Err()
}
