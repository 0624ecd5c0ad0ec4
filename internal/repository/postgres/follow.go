package postgres

import (
	"context"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
)

type followRepo struct {
	db DB
}

func newFollowRepo(db DB) Follow {
	return &followRepo{
		db: db,
	}
}

// Create inserts the edge unless it already exists and reports whether a row
// was written. The primary key makes concurrent calls collapse to one edge.
func (r *followRepo) Create(ctx context.Context, follow model.Follow) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, followee_id) VALUES($1, $2) ON CONFLICT (follower_id, followee_id) DO NOTHING",
		follow.FollowerID,
		follow.FolloweeID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2", followerID, followeeID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followee_id = $2)",
		followerID,
		followeeID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
