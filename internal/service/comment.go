package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/post-service/internal/events"
	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher events.Publisher
	metrics   *metrics.Metrics
	opts      Options
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, publisher events.Publisher, metrics *metrics.Metrics, opts Options) Comment {
	return &commentService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		opts:      opts,
	}
}

// Add attaches a comment by actor to the post. The post must exist before the
// text is looked at.
func (s *commentService) Add(ctx context.Context, actor *model.Identity, postID uuid.UUID, text string) (*model.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) in postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	text = strings.TrimSpace(text)
	if verr := validateText("text", text, s.opts.CommentMinLen, 0); verr != nil {
		return nil, verr
	}

	comment, err := s.repo.Postgres.Comment.Create(ctx, model.Comment{
		PostID:   post.ID,
		AuthorID: actor.ID,
		Text:     text,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%s) in postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	s.metrics.Comments.Inc()

	if err := s.publisher.Publish(ctx, s.opts.CommentsTopic, post.ID.String(), events.CommentCreated{
		ID:           comment.ID,
		PostID:       post.ID,
		PostAuthorID: post.AuthorID,
		AuthorID:     comment.AuthorID,
		Text:         comment.Text,
		CreatedAt:    comment.CreatedAt,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to publish to kafka topic(%s): %s", s.opts.CommentsTopic, err.Error())
	}

	return comment, nil
}
