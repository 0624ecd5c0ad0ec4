package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type groupService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newGroupService(logger *zap.Logger, repo *repository.Repository) Group {
	return &groupService{
		logger: logger,
		repo:   repo,
	}
}

func requireAdmin(actor *model.Identity) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

func (s *groupService) Create(ctx context.Context, actor *model.Identity, input dto.GroupInput) (*model.Group, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Description = strings.TrimSpace(input.Description)
	if verr := validateStruct(input); verr != nil {
		return nil, verr
	}

	group, err := s.repo.Postgres.Group.Create(ctx, model.Group{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, newValidationError("slug", "group with this slug already exists")
		}

		s.logger.Sugar().Errorf("failed to create group(%s) in postgres: %s", input.Slug, err.Error())
		return nil, ErrInternal
	}

	return group, nil
}

// Delete removes the group. Its posts stay and become ungrouped.
func (s *groupService) Delete(ctx context.Context, actor *model.Identity, slug string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	deleted, err := s.repo.Postgres.Group.DeleteBySlug(ctx, slug)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete group(%s) from postgres: %s", slug, err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrGroupNotFound
	}

	return nil
}

func (s *groupService) List(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.repo.Postgres.Group.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find groups in postgres: %s", err.Error())
		return nil, ErrInternal
	}
	if groups == nil {
		groups = []*model.Group{}
	}

	return groups, nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	group, err := s.repo.Postgres.Group.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}

		s.logger.Sugar().Errorf("failed to find group(%s) in postgres: %s", slug, err.Error())
		return nil, ErrInternal
	}

	return group, nil
}
