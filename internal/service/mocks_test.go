package service

import (
	"context"
	"io"
	"time"

	"github.com/BloggingApp/post-service/internal/cache"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthorRepo struct {
	mock.Mock
}

func (m *mockAuthorRepo) Upsert(ctx context.Context, author model.Author) (*model.Author, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *mockAuthorRepo) FindByUsername(ctx context.Context, username string) (*model.Author, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *mockAuthorRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *mockGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *mockGroupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *mockGroupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Group), args.Error(1)
}

func (m *mockGroupRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) FindFullByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FullPost), args.Error(1)
}

func (m *mockPostRepo) Update(ctx context.Context, post model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepo) Count(ctx context.Context, filter model.PostFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FullPost), args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *mockCommentRepo) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FullComment), args.Error(1)
}

type mockFollowRepo struct {
	mock.Mock
}

func (m *mockFollowRepo) Create(ctx context.Context, follow model.Follow) (bool, error) {
	args := m.Called(ctx, follow)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowRepo) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowRepo) Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Put(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, r, size)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// memCache is an in-process cache.Cache used to observe what the feed caches.
type memCache struct {
	entries map[string][]byte
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte) error {
	c.entries[key] = value
	return nil
}

func (c *memCache) Clear(ctx context.Context) error {
	c.entries = map[string][]byte{}
	return nil
}

func (c *memCache) TTL() time.Duration {
	return 20 * time.Second
}

type repoMocks struct {
	authors  *mockAuthorRepo
	groups   *mockGroupRepo
	posts    *mockPostRepo
	comments *mockCommentRepo
	follows  *mockFollowRepo
}

func newRepoMocks() *repoMocks {
	return &repoMocks{
		authors:  new(mockAuthorRepo),
		groups:   new(mockGroupRepo),
		posts:    new(mockPostRepo),
		comments: new(mockCommentRepo),
		follows:  new(mockFollowRepo),
	}
}

func (m *repoMocks) postgres() *postgres.PostgresRepository {
	return &postgres.PostgresRepository{
		Author:  m.authors,
		Group:   m.groups,
		Post:    m.posts,
		Comment: m.comments,
		Follow:  m.follows,
	}
}
