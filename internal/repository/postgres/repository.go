package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const UNIQUE_VIOLATION = "23505"

var ErrDuplicate = errors.New("duplicate key")

// DB is the subset of *pgxpool.Pool and *pgx.Conn the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Author interface {
	Upsert(ctx context.Context, author model.Author) (*model.Author, error)
	FindByUsername(ctx context.Context, username string) (*model.Author, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Group interface {
	Create(ctx context.Context, group model.Group) (*model.Group, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindFullByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error)
	Update(ctx context.Context, post model.Post) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter model.PostFilter) (int64, error)
	Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error)
}

type Follow interface {
	Create(ctx context.Context, follow model.Follow) (bool, error)
	Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
}

type PostgresRepository struct {
	Author
	Group
	Post
	Comment
	Follow
}

func New(db DB) *PostgresRepository {
	return &PostgresRepository{
		Author:  newAuthorRepo(db),
		Group:   newGroupRepo(db),
		Post:    newPostRepo(db),
		Comment: newCommentRepo(db),
		Follow:  newFollowRepo(db),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UNIQUE_VIOLATION
}
