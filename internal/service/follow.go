package service

import (
	"context"

	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"go.uber.org/zap"
)

type followService struct {
	logger  *zap.Logger
	repo    *repository.Repository
	authors Author
	metrics *metrics.Metrics
}

func newFollowService(logger *zap.Logger, repo *repository.Repository, metrics *metrics.Metrics) Follow {
	return &followService{
		logger:  logger,
		repo:    repo,
		authors: newAuthorService(logger, repo),
		metrics: metrics,
	}
}

// Follow makes actor a follower of username. Following twice keeps a single
// edge and following yourself does nothing.
func (s *followService) Follow(ctx context.Context, actor *model.Identity, username string) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	author, err := s.authors.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == actor.ID {
		return nil
	}

	created, err := s.repo.Postgres.Follow.Create(ctx, model.Follow{
		FollowerID: actor.ID,
		FolloweeID: author.ID,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create follow(%s -> %s) in postgres: %s", actor.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}
	if created {
		s.metrics.Follows.WithLabelValues("follow").Inc()
	}

	return nil
}

// Unfollow removes the edge if there is one.
func (s *followService) Unfollow(ctx context.Context, actor *model.Identity, username string) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	author, err := s.authors.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Postgres.Follow.Delete(ctx, actor.ID, author.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s) from postgres: %s", actor.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}
	if deleted {
		s.metrics.Follows.WithLabelValues("unfollow").Inc()
	}

	return nil
}
