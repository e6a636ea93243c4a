package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type cacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService wraps the cache repository with an enabled switch and a
// warn-and-continue failure policy. A broken cache must never take a request
// down with it, so every error short of a miss is logged and swallowed.
type CacheService struct {
	repo    cacheRepository
	enabled bool
	ttl     time.Duration
	logger  *zap.Logger
	metrics *MetricsService
}

// NewCacheService constructs the cache service. A nil repository disables
// caching regardless of the flag.
func NewCacheService(repo cacheRepository, enabled bool, ttl time.Duration, logger *zap.Logger, metrics *MetricsService) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if repo == nil {
		enabled = false
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{repo: repo, enabled: enabled, ttl: ttl, logger: logger, metrics: metrics}
}

// Enabled reports whether reads and writes go through the cache.
func (s *CacheService) Enabled() bool {
	return s.enabled
}

// Get loads key into dest. The boolean is true only on a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.enabled {
		return false
	}
	err := s.repo.Get(ctx, key, dest)
	if err == nil {
		s.metrics.RecordCacheOperation(true)
		return true
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	s.metrics.RecordCacheOperation(false)
	return false
}

// Set stores value under key with the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.enabled {
		return
	}
	if err := s.repo.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every key matching the pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if !s.enabled {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
