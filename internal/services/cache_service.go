package services

import (
	"context"
	"time"

	"affiliatenest/pkg/cache"
)

type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Increment(ctx context.Context, key string, expiration time.Duration) (int64, error)
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	cache *cache.RedisCache
}

func NewRedisCacheService(c *cache.RedisCache) CacheService {
	return &redisCacheService{cache: c}
}

func (s *redisCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.cache.Get(ctx, key, dest)
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.cache.Set(ctx, key, value, expiration)
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	return s.cache.Delete(ctx, keys...)
}

func (s *redisCacheService) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	return s.cache.Increment(ctx, key, expiration)
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
