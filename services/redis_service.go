package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
)

const parishCacheKey = "survey:parishes"

// InterfaceRedisService caches small, frequently read lookups. A nil
// Redis client degrades every call to a cache miss so the service
// works without Redis deployed.
type InterfaceRedisService interface {
	GetCachedParishes(ctx context.Context) ([]string, bool)
	CacheParishes(ctx context.Context, parishes []string)
	InvalidateParishes(ctx context.Context)
}

// RedisService provides Redis-backed caching
type RedisService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisService creates a new Redis cache service
func NewRedisService(cfg *config.Config, client *redis.Client) InterfaceRedisService {
	return &RedisService{
		client: client,
		ttl:    10 * time.Minute,
	}
}

// GetCachedParishes returns the cached parish roster if present
func (s *RedisService) GetCachedParishes(ctx context.Context) ([]string, bool) {
	if s.client == nil {
		return nil, false
	}
	raw, err := s.client.Get(ctx, parishCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var parishes []string
	if err := json.Unmarshal([]byte(raw), &parishes); err != nil {
		return nil, false
	}
	return parishes, true
}

// CacheParishes stores the parish roster
func (s *RedisService) CacheParishes(ctx context.Context, parishes []string) {
	if s.client == nil {
		return
	}
	raw, err := json.Marshal(parishes)
	if err != nil {
		return
	}
	s.client.Set(ctx, parishCacheKey, raw, s.ttl)
}

// InvalidateParishes drops the cached roster
func (s *RedisService) InvalidateParishes(ctx context.Context) {
	if s.client == nil {
		return
	}
	s.client.Del(ctx, parishCacheKey)
}
