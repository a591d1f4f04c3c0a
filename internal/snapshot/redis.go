package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each slot in a redis key. Useful when the service runs
// somewhere without a writable disk.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context, slot string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot %s: %w", slot, err)
	}
	return data, true, nil
}

func (s *RedisStore) Save(ctx context.Context, slot string, data []byte) error {
	if err := s.client.Set(ctx, slot, data, 0).Err(); err != nil {
		return fmt.Errorf("set slot %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, slot).Err(); err != nil {
		return fmt.Errorf("del slot %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
