package repository

import (
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/BloggingApp/post-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	Postgres *postgres.PostgresRepository
	Redis    *redisrepo.RedisRepository
}

// New wires the store repositories. rdb may be nil when the cache is disabled.
func New(db postgres.DB, rdb *redis.Client) *Repository {
	repo := &Repository{
		Postgres: postgres.New(db),
	}
	if rdb != nil {
		repo.Redis = redisrepo.New(rdb)
	}

	return repo
}
