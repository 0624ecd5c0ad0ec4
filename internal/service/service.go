package service

import (
	"context"

	"github.com/BloggingApp/post-service/internal/cache"
	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/events"
	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/BloggingApp/post-service/internal/storage"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Author interface {
	Ensure(ctx context.Context, identity model.Identity) (*model.Author, error)
	FindByUsername(ctx context.Context, username string) (*model.Author, error)
}

type Group interface {
	Create(ctx context.Context, actor *model.Identity, input dto.GroupInput) (*model.Group, error)
	Delete(ctx context.Context, actor *model.Identity, slug string) error
	List(ctx context.Context) ([]*model.Group, error)
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
}

type Post interface {
	Create(ctx context.Context, actor *model.Identity, input dto.PostInput, image *dto.Upload) (*model.Post, error)
	Edit(ctx context.Context, actor *model.Identity, postID uuid.UUID, input dto.PostInput, image *dto.Upload) (*model.Post, error)
	Delete(ctx context.Context, actor *model.Identity, postID uuid.UUID) error
	Detail(ctx context.Context, postID uuid.UUID) (*dto.PostDetail, error)
}

type Comment interface {
	Add(ctx context.Context, actor *model.Identity, postID uuid.UUID, text string) (*model.Comment, error)
}

type Follow interface {
	Follow(ctx context.Context, actor *model.Identity, username string) error
	Unfollow(ctx context.Context, actor *model.Identity, username string) error
}

type Feed interface {
	Global(ctx context.Context, page int) (*dto.FeedPage, error)
	Group(ctx context.Context, slug string, page int) (*dto.GroupFeed, error)
	Profile(ctx context.Context, viewer *model.Identity, username string, page int) (*dto.ProfileFeed, error)
	Following(ctx context.Context, viewer *model.Identity, page int) (*dto.FeedPage, error)
	ClearCache(ctx context.Context, actor *model.Identity) error
}

type Service struct {
	Author
	Group
	Post
	Comment
	Follow
	Feed
}

// Options are the content rules and feed settings taken from configuration.
type Options struct {
	PageSize       int
	PostMinTextLen int
	PostMaxTextLen int
	MaxImageBytes  int64
	CommentMinLen  int
	PostsTopic     string
	CommentsTopic  string
}

func DefaultOptions() Options {
	return Options{
		PageSize:       10,
		PostMinTextLen: 10,
		PostMaxTextLen: 500,
		MaxImageBytes:  5 << 20,
		CommentMinLen:  5,
		PostsTopic:     events.POSTS_CREATED_TOPIC,
		CommentsTopic:  events.COMMENTS_CREATED_TOPIC,
	}
}

// Deps groups the collaborators of the services. Cache, Publisher and Metrics
// fall back to no-op implementations when nil; a nil Storage disables image
// uploads.
type Deps struct {
	Logger    *zap.Logger
	Repo      *repository.Repository
	Cache     cache.Cache
	Publisher events.Publisher
	Storage   storage.Attachments
	Metrics   *metrics.Metrics
	Options   Options
}

func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NopPublisher()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New(prometheus.NewRegistry())
	}
	if deps.Options.PageSize <= 0 {
		deps.Options.PageSize = DefaultOptions().PageSize
	}
	if deps.Options.PageSize > postgres.MAX_LIMIT {
		deps.Options.PageSize = postgres.MAX_LIMIT
	}
	if deps.Options.PostsTopic == "" {
		deps.Options.PostsTopic = events.POSTS_CREATED_TOPIC
	}
	if deps.Options.CommentsTopic == "" {
		deps.Options.CommentsTopic = events.COMMENTS_CREATED_TOPIC
	}

	return &Service{
		Author:  newAuthorService(deps.Logger, deps.Repo),
		Group:   newGroupService(deps.Logger, deps.Repo),
		Post:    newPostService(deps.Logger, deps.Repo, deps.Publisher, deps.Storage, deps.Metrics, deps.Options),
		Comment: newCommentService(deps.Logger, deps.Repo, deps.Publisher, deps.Metrics, deps.Options),
		Follow:  newFollowService(deps.Logger, deps.Repo, deps.Metrics),
		Feed:    newFeedService(deps.Logger, deps.Repo, deps.Cache, deps.Metrics, deps.Options.PageSize),
	}
}
