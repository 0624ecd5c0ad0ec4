package dto

import (
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/paginator"
)

type FeedPage struct {
	Items       []*model.FullPost `json:"items"`
	Number      int               `json:"number"`
	NumPages    int               `json:"num_pages"`
	Count       int64             `json:"count"`
	HasNext     bool              `json:"has_next"`
	HasPrevious bool              `json:"has_previous"`
}

func NewFeedPage(page paginator.Page, items []*model.FullPost) *FeedPage {
	if items == nil {
		items = []*model.FullPost{}
	}

	return &FeedPage{
		Items:       items,
		Number:      page.Number,
		NumPages:    page.NumPages,
		Count:       page.Count,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
	}
}

type GroupFeed struct {
	Group *model.Group `json:"group"`
	Page  *FeedPage    `json:"page"`
}

type ProfileFeed struct {
	Author     *model.Author `json:"author"`
	PostsCount int64         `json:"posts_count"`
	Following  bool          `json:"following"`
	Page       *FeedPage     `json:"page"`
}
