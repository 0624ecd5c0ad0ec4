package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/BloggingApp/post-service/internal/cache"
	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/paginator"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/BloggingApp/post-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

const GLOBAL_FEED = "global"

type feedService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	cache    cache.Cache
	metrics  *metrics.Metrics
	groups   Group
	authors  Author
	pageSize int
}

func newFeedService(logger *zap.Logger, repo *repository.Repository, cache cache.Cache, metrics *metrics.Metrics, pageSize int) Feed {
	return &feedService{
		logger:   logger,
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		groups:   newGroupService(logger, repo),
		authors:  newAuthorService(logger, repo),
		pageSize: pageSize,
	}
}

// Global lists every post, newest first. Pages are served from the cache while
// fresh, so new posts may take up to one TTL to appear. The post count is read
// on every request so that the cache is keyed by the clamped page number.
func (s *feedService) Global(ctx context.Context, page int) (*dto.FeedPage, error) {
	p, err := s.paginate(ctx, model.PostFilter{}, page)
	if err != nil {
		return nil, err
	}
	key := redisrepo.FeedPageKey(GLOBAL_FEED, p.Number, s.pageSize)

	data, err := s.cache.Get(ctx, key)
	if err == nil {
		var feed dto.FeedPage
		uerr := json.Unmarshal(data, &feed)
		if uerr == nil {
			s.metrics.CacheHit()
			return &feed, nil
		}
		s.logger.Sugar().Errorf("failed to unmarshal cached feed page(%s): %s", key, uerr.Error())
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Sugar().Errorf("failed to get feed page(%s) from cache: %s", key, err.Error())
	}
	s.metrics.CacheMiss()

	feed, err := s.fill(ctx, model.PostFilter{}, p)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(feed)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal feed page(%s): %s", key, err.Error())
		return feed, nil
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Sugar().Errorf("failed to set feed page(%s) in cache: %s", key, err.Error())
	}

	return feed, nil
}

func (s *feedService) Group(ctx context.Context, slug string, page int) (*dto.GroupFeed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	groupID := group.ID
	feed, err := s.page(ctx, model.PostFilter{GroupID: &groupID}, page)
	if err != nil {
		return nil, err
	}

	return &dto.GroupFeed{
		Group: group,
		Page:  feed,
	}, nil
}

// Profile lists the posts of username. Following reports whether viewer
// follows that author and is always false for anonymous viewers and for
// the author's own profile.
func (s *feedService) Profile(ctx context.Context, viewer *model.Identity, username string, page int) (*dto.ProfileFeed, error) {
	author, err := s.authors.FindByUsername(ctx, strings.TrimPrefix(username, "@"))
	if err != nil {
		return nil, err
	}

	authorID := author.ID
	feed, err := s.page(ctx, model.PostFilter{AuthorID: &authorID}, page)
	if err != nil {
		return nil, err
	}

	following := false
	if viewer != nil && viewer.ID != author.ID {
		following, err = s.repo.Postgres.Follow.Exists(ctx, viewer.ID, author.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check follow(%s -> %s) in postgres: %s", viewer.ID.String(), author.ID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	return &dto.ProfileFeed{
		Author:     author,
		PostsCount: feed.Count,
		Following:  following,
		Page:       feed,
	}, nil
}

func (s *feedService) Following(ctx context.Context, viewer *model.Identity, page int) (*dto.FeedPage, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	followerID := viewer.ID
	return s.page(ctx, model.PostFilter{FollowerID: &followerID}, page)
}

// ClearCache drops every cached feed page.
func (s *feedService) ClearCache(ctx context.Context, actor *model.Identity) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Sugar().Errorf("failed to clear feed cache: %s", err.Error())
		return ErrInternal
	}

	return nil
}

func (s *feedService) page(ctx context.Context, filter model.PostFilter, number int) (*dto.FeedPage, error) {
	p, err := s.paginate(ctx, filter, number)
	if err != nil {
		return nil, err
	}

	return s.fill(ctx, filter, p)
}

func (s *feedService) paginate(ctx context.Context, filter model.PostFilter, number int) (paginator.Page, error) {
	count, err := s.repo.Postgres.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts in postgres: %s", err.Error())
		return paginator.Page{}, ErrInternal
	}

	return paginator.Get(count, s.pageSize, number), nil
}

func (s *feedService) fill(ctx context.Context, filter model.PostFilter, p paginator.Page) (*dto.FeedPage, error) {
	if p.Count == 0 {
		return dto.NewFeedPage(p, nil), nil
	}

	posts, err := s.repo.Postgres.Post.Find(ctx, filter, p.Limit(), p.Offset())
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return dto.NewFeedPage(p, posts), nil
}
