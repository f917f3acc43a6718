package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"villa/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// Cache-aside helper
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error

	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
	logger *logger.Logger
}

func NewService(client *redis.Client) Service {
	return &service{client: client, logger: logger.GetDefault()}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// DeletePattern walks the keyspace with SCAN so large databases are not blocked
func (s *service) DeletePattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}
	return s.Delete(ctx, keys...)
}

func (s *service) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	err := s.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.WarnContext(ctx, "Cache get failed, falling back to source", "key", key, "error", err.Error())
	}

	data, err := fetcher()
	if err != nil {
		return err
	}

	if setErr := s.Set(ctx, key, data, ttl); setErr != nil {
		s.logger.WarnContext(ctx, "Cache set failed", "key", key, "error", setErr.Error())
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal fetched data error: %w", err)
	}
	return json.Unmarshal(jsonData, dest)
}

func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
