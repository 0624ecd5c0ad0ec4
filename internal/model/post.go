package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	AuthorID  uuid.UUID  `json:"author_id"`
	GroupID   *uuid.UUID `json:"group_id"`
	Image     *string    `json:"image"`
	CreatedAt time.Time  `json:"created_at"`
}

// FullPost is a post joined with its author and group for listings.
type FullPost struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	Group     *GroupRef `json:"group"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// PostFilter narrows a post listing. Zero value means all posts.
type PostFilter struct {
	AuthorID   *uuid.UUID
	GroupID    *uuid.UUID
	FollowerID *uuid.UUID
}
