package events

import (
	"time"

	"github.com/google/uuid"
)

type PostCreated struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	Text      string     `json:"text"`
	Image     *string    `json:"image,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CommentCreated struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"post_id"`
	PostAuthorID uuid.UUID `json:"post_author_id"`
	AuthorID     uuid.UUID `json:"author_id"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
