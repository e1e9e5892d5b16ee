package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/halls510/project-list-pokemons/internal/metrics"
	"github.com/halls510/project-list-pokemons/pkg/database/redis"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// Backend is the slice of the Redis client the store needs. A miss is
// signalled by redis.ErrNil.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

var _ Backend = (*redis.Client)(nil)

// Store is a fail-open cache: backend failures degrade to misses on read
// and no-ops on write, so a Redis outage never breaks a request.
type Store struct {
	backend Backend
	logger  logger.Logger
}

// NewStore creates a Store over backend.
func NewStore(backend Backend, l logger.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  l.Named("cache"),
	}
}

// GetJSON fetches key and unmarshals it into a T. The second return is
// false on a miss, a backend failure or a corrupt entry.
func GetJSON[T any](s *Store, ctx context.Context, entity, key string) (*T, bool) {
	val, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrNil) {
			metrics.CacheErrors.WithLabelValues("get").Inc()
			s.logger.Warn("cache get failed, treating as miss", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(entity).Inc()
		return nil, false
	}

	var obj T
	if err := json.Unmarshal([]byte(val), &obj); err != nil {
		metrics.CacheErrors.WithLabelValues("decode").Inc()
		s.logger.Warn("corrupt cache entry, treating as miss", "key", key, "error", err)
		metrics.CacheMisses.WithLabelValues(entity).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(entity).Inc()
	return &obj, true
}

// SetJSON stores value at key as JSON with the given TTL. Failures are
// logged and swallowed.
func (s *Store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.CacheErrors.WithLabelValues("encode").Inc()
		s.logger.Warn("cache encode failed, skipping write", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(ctx, key, data, ttl); err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn("cache set failed, skipping write", "key", key, "error", err)
	}
}

// Invalidate removes keys. Failures are logged and swallowed; a stale
// entry expires on its own TTL.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if _, err := s.backend.Del(ctx, keys...); err != nil {
		metrics.CacheErrors.WithLabelValues("del").Inc()
		s.logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
