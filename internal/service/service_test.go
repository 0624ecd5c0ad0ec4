package service

import (
	"testing"

	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testPageSize = 10

type testEnv struct {
	repo    *repoMocks
	pub     *mockPublisher
	store   *mockStorage
	cache   *memCache
	metrics *metrics.Metrics
	svc     *Service
}

func newTestEnv(t *testing.T, withStorage bool) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:    newRepoMocks(),
		pub:     new(mockPublisher),
		store:   new(mockStorage),
		cache:   newMemCache(),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	env.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	opts := DefaultOptions()
	opts.PageSize = testPageSize

	deps := Deps{
		Logger:    zap.NewNop(),
		Repo:      &repository.Repository{Postgres: env.repo.postgres()},
		Cache:     env.cache,
		Publisher: env.pub,
		Metrics:   env.metrics,
		Options:   opts,
	}
	if withStorage {
		deps.Storage = env.store
	}
	env.svc = New(deps)

	return env
}

func newIdentity(username string) *model.Identity {
	return &model.Identity{
		ID:       uuid.New(),
		Username: username,
	}
}

func newAdmin() *model.Identity {
	admin := newIdentity("admin")
	admin.Role = model.ROLE_ADMIN
	return admin
}

func authorOf(identity *model.Identity) *model.Author {
	return &model.Author{
		ID:       identity.ID,
		Username: identity.Username,
	}
}
