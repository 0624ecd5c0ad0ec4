package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/events"
	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/BloggingApp/post-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const POST_IMAGES_PREFIX = "posts/"

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher events.Publisher
	storage   storage.Attachments
	metrics   *metrics.Metrics
	opts      Options
}

func newPostService(logger *zap.Logger, repo *repository.Repository, publisher events.Publisher, storage storage.Attachments, metrics *metrics.Metrics, opts Options) Post {
	return &postService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		storage:   storage,
		metrics:   metrics,
		opts:      opts,
	}
}

func (s *postService) Create(ctx context.Context, actor *model.Identity, input dto.PostInput, image *dto.Upload) (*model.Post, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	text, err := s.validateInput(ctx, input, image)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		Text:     text,
		AuthorID: actor.ID,
		GroupID:  input.GroupID,
	}
	var uploaded string
	if image != nil {
		key, ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		uploaded = key
		post.Image = &ref
	}

	created, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post in postgres: %s", err.Error())
		s.discardImage(ctx, uploaded)
		return nil, ErrInternal
	}

	s.metrics.PostsCreated.Inc()

	if err := s.publisher.Publish(ctx, s.opts.PostsTopic, created.ID.String(), events.PostCreated{
		ID:        created.ID,
		AuthorID:  created.AuthorID,
		GroupID:   created.GroupID,
		Text:      created.Text,
		Image:     created.Image,
		CreatedAt: created.CreatedAt,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to publish to kafka topic(%s): %s", s.opts.PostsTopic, err.Error())
	}

	return created, nil
}

// Edit replaces the text and group of a post. The image is replaced only when
// a new one is attached.
func (s *postService) Edit(ctx context.Context, actor *model.Identity, postID uuid.UUID, input dto.PostInput, image *dto.Upload) (*model.Post, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	post, err := s.findOwned(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	text, err := s.validateInput(ctx, input, image)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = input.GroupID
	var uploaded string
	if image != nil {
		key, ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		uploaded = key
		post.Image = &ref
	}

	if err := s.repo.Postgres.Post.Update(ctx, *post); err != nil {
		s.discardImage(ctx, uploaded)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to update post(%s) in postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, actor *model.Identity, postID uuid.UUID) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	if _, err := s.findOwned(ctx, actor, postID); err != nil {
		return err
	}

	if err := s.repo.Postgres.Post.DeleteByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to delete post(%s) from postgres: %s", postID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// Detail returns the post with its comments, newest first, and the number of
// posts its author has written.
func (s *postService) Detail(ctx context.Context, postID uuid.UUID) (*dto.PostDetail, error) {
	post, err := s.repo.Postgres.Post.FindFullByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) in postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	authorID := post.Author.ID
	count, err := s.repo.Postgres.Post.Count(ctx, model.PostFilter{AuthorID: &authorID})
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts of author(%s) in postgres: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	comments, err := s.repo.Postgres.Comment.FindByPostID(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments of post(%s) in postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}
	if comments == nil {
		comments = []*model.FullComment{}
	}

	return &dto.PostDetail{
		Post:             post,
		AuthorPostsCount: count,
		Comments:         comments,
	}, nil
}

func (s *postService) findOwned(ctx context.Context, actor *model.Identity, postID uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) in postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}
	if post.AuthorID != actor.ID {
		return nil, ErrNotPostAuthor
	}

	return post, nil
}

// validateInput checks every field and reports all failures at once. It
// returns the trimmed text.
func (s *postService) validateInput(ctx context.Context, input dto.PostInput, image *dto.Upload) (string, error) {
	text := strings.TrimSpace(input.Text)
	verr := validateText("text", text, s.opts.PostMinTextLen, s.opts.PostMaxTextLen)

	if input.GroupID != nil {
		if _, err := s.repo.Postgres.Group.FindByID(ctx, *input.GroupID); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				s.logger.Sugar().Errorf("failed to find group(%s) in postgres: %s", input.GroupID.String(), err.Error())
				return "", ErrInternal
			}
			verr = verr.merge(newValidationError("group_id", "selected group does not exist"))
		}
	}

	if image != nil {
		verr = verr.merge(s.validateImage(image))
	}

	if verr != nil {
		return "", verr
	}

	return text, nil
}

func (s *postService) validateImage(image *dto.Upload) *ValidationError {
	if s.storage == nil {
		return newValidationError("image", "image uploads are disabled")
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return newValidationError("image", "file is not an image")
	}
	if s.opts.MaxImageBytes > 0 && image.Size > s.opts.MaxImageBytes {
		return newValidationError("image", fmt.Sprintf("image must be at most %d bytes", s.opts.MaxImageBytes))
	}
	return nil
}

// storeImage uploads the image under a fresh key and returns the key along
// with the reference saved on the post.
func (s *postService) storeImage(ctx context.Context, image *dto.Upload) (string, string, error) {
	key := POST_IMAGES_PREFIX + uuid.NewString() + strings.ToLower(filepath.Ext(image.Filename))
	ref, err := s.storage.Put(ctx, key, image.ContentType, image.Content, image.Size)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upload image(%s) to minio: %s", key, err.Error())
		return "", "", ErrInternal
	}

	return key, ref, nil
}

// discardImage removes an upload whose post was never saved.
func (s *postService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Sugar().Errorf("failed to delete orphaned image(%s) from minio: %s", key, err.Error())
	}
}
