package cache

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/post-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	repo redisrepo.Default
	ttl  time.Duration
}

func NewRedis(repo redisrepo.Default, ttl time.Duration) Cache {
	return &redisCache{
		repo: repo,
		ttl:  ttl,
	}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.repo.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}

	return value, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.repo.Set(ctx, key, value, c.ttl)
}

func (c *redisCache) Clear(ctx context.Context) error {
	_, err := c.repo.DelByPattern(ctx, redisrepo.FEED_KEYS_MATCH)
	return err
}

func (c *redisCache) TTL() time.Duration {
	return c.ttl
}
