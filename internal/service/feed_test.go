package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fullPosts(n int) []*model.FullPost {
	posts := make([]*model.FullPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, &model.FullPost{
			ID:     uuid.New(),
			Text:   "some post text",
			Author: model.Author{ID: uuid.New(), Username: "leo"},
		})
	}
	return posts
}

func TestGlobalFeedEmptyStore(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.posts.On("Count", mock.Anything, model.PostFilter{}).Return(int64(0), nil)

	feed, err := env.svc.Feed.Global(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, feed.Items)
	assert.Equal(t, 1, feed.Number)
	assert.Equal(t, 1, feed.NumPages)
	assert.False(t, feed.HasNext)
	assert.False(t, feed.HasPrevious)
	env.repo.posts.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGlobalFeedClampsPageNumber(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		wantNumber int
		wantOffset int
	}{
		{name: "first", page: 1, wantNumber: 1, wantOffset: 0},
		{name: "last", page: 2, wantNumber: 2, wantOffset: 10},
		{name: "past the end", page: 3, wantNumber: 2, wantOffset: 10},
		{name: "zero", page: 0, wantNumber: 2, wantOffset: 10},
		{name: "negative", page: -4, wantNumber: 2, wantOffset: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)
			env.repo.posts.On("Count", mock.Anything, model.PostFilter{}).Return(int64(13), nil)
			env.repo.posts.On("Find", mock.Anything, model.PostFilter{}, testPageSize, tt.wantOffset).
				Return(fullPosts(13-tt.wantOffset), nil)

			feed, err := env.svc.Feed.Global(context.Background(), tt.page)
			require.NoError(t, err)

			assert.Equal(t, tt.wantNumber, feed.Number)
			assert.Equal(t, 2, feed.NumPages)
			assert.Equal(t, int64(13), feed.Count)
			env.repo.posts.AssertExpectations(t)
		})
	}
}

func TestGlobalFeedServedFromCacheUntilCleared(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.repo.posts.On("Count", mock.Anything, model.PostFilter{}).Return(int64(1), nil)
	env.repo.posts.On("Find", mock.Anything, model.PostFilter{}, testPageSize, 0).Return(fullPosts(1), nil)

	first, err := env.svc.Feed.Global(ctx, 1)
	require.NoError(t, err)

	second, err := env.svc.Feed.Global(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)
	env.repo.posts.AssertNumberOfCalls(t, "Count", 2)
	env.repo.posts.AssertNumberOfCalls(t, "Find", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CacheRequests.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CacheRequests.WithLabelValues("miss")))

	require.NoError(t, env.svc.Feed.ClearCache(ctx, newAdmin()))

	_, err = env.svc.Feed.Global(ctx, 1)
	require.NoError(t, err)
	env.repo.posts.AssertNumberOfCalls(t, "Find", 2)
}

func TestGlobalFeedOutOfRangePagesShareCacheEntry(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.repo.posts.On("Count", mock.Anything, model.PostFilter{}).Return(int64(13), nil)
	env.repo.posts.On("Find", mock.Anything, model.PostFilter{}, testPageSize, 10).Return(fullPosts(3), nil)

	for _, page := range []int{2, 3, 999, 0, -1} {
		feed, err := env.svc.Feed.Global(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, 2, feed.Number)
	}

	env.repo.posts.AssertNumberOfCalls(t, "Find", 1)
	assert.Len(t, env.cache.entries, 1)
	assert.Contains(t, env.cache.entries, redisrepo.FeedPageKey(GLOBAL_FEED, 2, testPageSize))
}

func TestGlobalFeedFallsThroughOnCacheError(t *testing.T) {
	env := newTestEnv(t, false)
	env.cache.getErr = errors.New("connection refused")
	env.repo.posts.On("Count", mock.Anything, model.PostFilter{}).Return(int64(0), nil)

	feed, err := env.svc.Feed.Global(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Number)
}

func TestClearCacheRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, false)

	assert.ErrorIs(t, env.svc.Feed.ClearCache(context.Background(), nil), ErrUnauthenticated)
	assert.ErrorIs(t, env.svc.Feed.ClearCache(context.Background(), newIdentity("leo")), ErrPermissionDenied)
}

func TestGroupFeed(t *testing.T) {
	env := newTestEnv(t, false)
	group := &model.Group{ID: uuid.New(), Title: "Cats", Slug: "cats"}
	filter := model.PostFilter{GroupID: &group.ID}

	env.repo.groups.On("FindBySlug", mock.Anything, "cats").Return(group, nil)
	env.repo.posts.On("Count", mock.Anything, filter).Return(int64(3), nil)
	env.repo.posts.On("Find", mock.Anything, filter, testPageSize, 0).Return(fullPosts(3), nil)

	feed, err := env.svc.Feed.Group(context.Background(), "cats", 1)
	require.NoError(t, err)

	assert.Equal(t, group, feed.Group)
	assert.Len(t, feed.Page.Items, 3)
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.groups.On("FindBySlug", mock.Anything, "nope").Return(nil, pgx.ErrNoRows)

	_, err := env.svc.Feed.Group(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileFeedFollowingFlag(t *testing.T) {
	author := newIdentity("leo")
	viewer := newIdentity("tolstoy")
	filter := model.PostFilter{AuthorID: &author.ID}

	tests := []struct {
		name          string
		viewer        *model.Identity
		follows       bool
		wantFollowing bool
		wantLookup    bool
	}{
		{name: "anonymous", viewer: nil},
		{name: "follower", viewer: viewer, follows: true, wantFollowing: true, wantLookup: true},
		{name: "not a follower", viewer: viewer, follows: false, wantLookup: true},
		{name: "own profile", viewer: author},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)
			env.repo.authors.On("FindByUsername", mock.Anything, "leo").Return(authorOf(author), nil)
			env.repo.posts.On("Count", mock.Anything, filter).Return(int64(0), nil)
			env.repo.follows.On("Exists", mock.Anything, viewer.ID, author.ID).Return(tt.follows, nil).Maybe()

			feed, err := env.svc.Feed.Profile(context.Background(), tt.viewer, "@leo", 1)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFollowing, feed.Following)
			assert.Equal(t, author.ID, feed.Author.ID)
			if !tt.wantLookup {
				env.repo.follows.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProfileFeedUnknownAuthor(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.authors.On("FindByUsername", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows)

	_, err := env.svc.Feed.Profile(context.Background(), nil, "ghost", 1)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestFollowingFeed(t *testing.T) {
	env := newTestEnv(t, false)
	viewer := newIdentity("tolstoy")
	filter := model.PostFilter{FollowerID: &viewer.ID}

	env.repo.posts.On("Count", mock.Anything, filter).Return(int64(2), nil)
	env.repo.posts.On("Find", mock.Anything, filter, testPageSize, 0).Return(fullPosts(2), nil)

	feed, err := env.svc.Feed.Following(context.Background(), viewer, 1)
	require.NoError(t, err)
	assert.Len(t, feed.Items, 2)

	_, err = env.svc.Feed.Following(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
