package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisStore implements the CacheStore contract on a shared Redis client.
// One instance is created at startup and reused for the process lifetime;
// the underlying go-redis pool dials lazily and is safe for concurrent use.
//
// Read and write failures never propagate: the cache is an optimization
// layer, so a broken store degrades to misses rather than failing requests.
type RedisStore struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisStore builds a store from a redis URL. A missing URL is a
// configuration error: the store is required infrastructure and the caller
// is expected to treat this as fatal at startup.
func NewRedisStore(redisURL string, logger *logrus.Logger) (*RedisStore, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.ReadTimeout = 5 * time.Second
	opt.WriteTimeout = 5 * time.Second

	return &RedisStore{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

// Get returns the raw JSON payload stored under key. Store failures are
// logged and reported as a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache read failed, treating as miss")
		return nil, false
	}
	return payload, true
}

// Set serializes value to JSON and stores it with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to serialize cache value")
		return false
	}

	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
		return false
	}
	return true
}

// DeleteMatching removes all keys matching the glob pattern using SCAN so
// large keyspaces are walked incrementally.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) bool {
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.WithError(err).WithField("pattern", pattern).Error("Cache scan failed")
		return false
	}

	if len(keys) == 0 {
		return true
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.WithError(err).WithField("pattern", pattern).Error("Cache delete failed")
		return false
	}

	s.logger.WithFields(logrus.Fields{
		"pattern": pattern,
		"deleted": len(keys),
	}).Debug("Cache entries invalidated")
	return true
}

// Ping reports store liveness for the health endpoint.
func (s *RedisStore) Ping(ctx context.Context) (bool, string) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return false, err.Error()
	}
	return true, "Redis connection successful"
}
