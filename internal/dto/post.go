package dto

import (
	"io"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
)

type PostInput struct {
	Text    string
	GroupID *uuid.UUID
}

// Upload is an attached file as received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type PostDetail struct {
	Post             *model.FullPost      `json:"post"`
	AuthorPostsCount int64                `json:"author_posts_count"`
	Comments         []*model.FullComment `json:"comments"`
}
