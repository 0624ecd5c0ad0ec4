package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type authorService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newAuthorService(logger *zap.Logger, repo *repository.Repository) Author {
	return &authorService{
		logger: logger,
		repo:   repo,
	}
}

// Ensure records the token identity as a local author, refreshing the
// username when it changed upstream. A concurrent insert of the same
// username surfaces as a duplicate and is retried once.
func (s *authorService) Ensure(ctx context.Context, identity model.Identity) (*model.Author, error) {
	candidate := model.Author{
		ID:       identity.ID,
		Username: identity.Username,
	}

	author, err := s.repo.Postgres.Author.Upsert(ctx, candidate)
	if errors.Is(err, postgres.ErrDuplicate) {
		author, err = s.repo.Postgres.Author.Upsert(ctx, candidate)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to upsert author(%s) in postgres: %s", identity.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return author, nil
}

func (s *authorService) FindByUsername(ctx context.Context, username string) (*model.Author, error) {
	author, err := s.repo.Postgres.Author.FindByUsername(ctx, strings.TrimPrefix(username, "@"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}

		s.logger.Sugar().Errorf("failed to find author(%s) in postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	return author, nil
}
