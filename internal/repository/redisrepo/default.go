package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const SCAN_BATCH = 100

type defaultRepo struct {
	rdb *redis.Client
}

func newDefaultRepo(rdb *redis.Client) Default {
	return &defaultRepo{
		rdb: rdb,
	}
}

func (r *defaultRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *defaultRepo) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.rdb.Get(ctx, key)
}

// DelByPattern walks the keyspace with SCAN (never KEYS) and deletes every
// match, returning how many keys were removed.
func (r *defaultRepo) DelByPattern(ctx context.Context, pattern string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, pattern, SCAN_BATCH).Result()
		if err != nil {
			return deleted, err
		}

		if len(keys) > 0 {
			n, err := r.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
