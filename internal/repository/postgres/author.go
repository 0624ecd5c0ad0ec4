package postgres

import (
	"context"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type authorRepo struct {
	db DB
}

func newAuthorRepo(db DB) Author {
	return &authorRepo{
		db: db,
	}
}

// Upsert keeps the local author row in step with the identity service: a
// known id gets its username refreshed, an unknown one is inserted. A
// username still held by another id is stale (that account was renamed
// upstream), so it is released to "<username>#<id>" first.
func (r *authorRepo) Upsert(ctx context.Context, author model.Author) (*model.Author, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			"UPDATE authors SET username = username || '#' || id::text WHERE username = $1 AND id <> $2",
			author.Username,
			author.ID,
		); err != nil {
			return err
		}

		return tx.QueryRow(
			ctx,
			`
			INSERT INTO authors(id, username) VALUES($1, $2)
			ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username
			RETURNING id, username, created_at
			`,
			author.ID,
			author.Username,
		).Scan(&author.ID, &author.Username, &author.CreatedAt)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &author, nil
}

func (r *authorRepo) FindByUsername(ctx context.Context, username string) (*model.Author, error) {
	var author model.Author
	if err := r.db.QueryRow(ctx, "SELECT a.id, a.username, a.created_at FROM authors a WHERE a.username = $1", username).Scan(
		&author.ID,
		&author.Username,
		&author.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &author, nil
}

func (r *authorRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	return err
}
