package handler

import (
	"context"

	"github.com/BloggingApp/post-service/internal/dto"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthorService struct {
	mock.Mock
}

func (m *mockAuthorService) Ensure(ctx context.Context, identity model.Identity) (*model.Author, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *mockAuthorService) FindByUsername(ctx context.Context, username string) (*model.Author, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

type mockGroupService struct {
	mock.Mock
}

func (m *mockGroupService) Create(ctx context.Context, actor *model.Identity, input dto.GroupInput) (*model.Group, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *mockGroupService) Delete(ctx context.Context, actor *model.Identity, slug string) error {
	args := m.Called(ctx, actor, slug)
	return args.Error(0)
}

func (m *mockGroupService) List(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Group), args.Error(1)
}

func (m *mockGroupService) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) Create(ctx context.Context, actor *model.Identity, input dto.PostInput, image *dto.Upload) (*model.Post, error) {
	args := m.Called(ctx, actor, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostService) Edit(ctx context.Context, actor *model.Identity, postID uuid.UUID, input dto.PostInput, image *dto.Upload) (*model.Post, error) {
	args := m.Called(ctx, actor, postID, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostService) Delete(ctx context.Context, actor *model.Identity, postID uuid.UUID) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

func (m *mockPostService) Detail(ctx context.Context, postID uuid.UUID) (*dto.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostDetail), args.Error(1)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) Add(ctx context.Context, actor *model.Identity, postID uuid.UUID, text string) (*model.Comment, error) {
	args := m.Called(ctx, actor, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

type mockFollowService struct {
	mock.Mock
}

func (m *mockFollowService) Follow(ctx context.Context, actor *model.Identity, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

func (m *mockFollowService) Unfollow(ctx context.Context, actor *model.Identity, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

type mockFeedService struct {
	mock.Mock
}

func (m *mockFeedService) Global(ctx context.Context, page int) (*dto.FeedPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedPage), args.Error(1)
}

func (m *mockFeedService) Group(ctx context.Context, slug string, page int) (*dto.GroupFeed, error) {
	args := m.Called(ctx, slug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupFeed), args.Error(1)
}

func (m *mockFeedService) Profile(ctx context.Context, viewer *model.Identity, username string, page int) (*dto.ProfileFeed, error) {
	args := m.Called(ctx, viewer, username, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileFeed), args.Error(1)
}

func (m *mockFeedService) Following(ctx context.Context, viewer *model.Identity, page int) (*dto.FeedPage, error) {
	args := m.Called(ctx, viewer, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedPage), args.Error(1)
}

func (m *mockFeedService) ClearCache(ctx context.Context, actor *model.Identity) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

var (
	_ service.Author  = (*mockAuthorService)(nil)
	_ service.Group   = (*mockGroupService)(nil)
	_ service.Post    = (*mockPostService)(nil)
	_ service.Comment = (*mockCommentService)(nil)
	_ service.Follow  = (*mockFollowService)(nil)
	_ service.Feed    = (*mockFeedService)(nil)
)
