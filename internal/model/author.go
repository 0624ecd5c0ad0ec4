package model

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the verified caller of a request, taken from the access token.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

const ROLE_ADMIN = "admin"

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == ROLE_ADMIN
}
