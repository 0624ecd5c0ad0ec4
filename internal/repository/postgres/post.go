package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const MAX_LIMIT = 50

const fullPostSelect = `
	SELECT
	p.id, p.text, p.image, p.created_at, a.id, a.username, a.created_at, g.id, g.title, g.slug
	FROM posts p
	JOIN authors a ON a.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
	`

type postRepo struct {
	db DB
}

func newPostRepo(db DB) Post {
	return &postRepo{
		db: db,
	}
}

func maximumLimit(l *int) {
	if *l > MAX_LIMIT {
		*l = MAX_LIMIT
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(id, text, author_id, group_id, image) VALUES($1, $2, $3, $4, $5) RETURNING created_at",
		post.ID,
		post.Text,
		post.AuthorID,
		post.GroupID,
		post.Image,
	).Scan(&post.CreatedAt); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(ctx, `
	SELECT p.id, p.text, p.author_id, p.group_id, p.image, p.created_at
	FROM posts p
	WHERE p.id = $1
	`, id).Scan(
		&post.ID,
		&post.Text,
		&post.AuthorID,
		&post.GroupID,
		&post.Image,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindFullByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error) {
	rows, err := r.db.Query(ctx, fullPostSelect+"WHERE p.id = $1", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanFullPosts(rows)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

// Update writes the mutable columns only; author and creation time are fixed
// once the row exists.
func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE posts SET text = $1, group_id = $2, image = $3 WHERE id = $4",
		post.Text,
		post.GroupID,
		post.Image,
		post.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *postRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *postRepo) Count(ctx context.Context, filter model.PostFilter) (int64, error) {
	where, args := postFilterWhere(filter, nil)

	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	where, args := postFilterWhere(filter, nil)
	query := fullPostSelect + where +
		" ORDER BY p.created_at DESC, p.id DESC" +
		" LIMIT $" + strconv.Itoa(len(args)+1) +
		" OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFullPosts(rows)
}

func postFilterWhere(filter model.PostFilter, args []any) (string, []any) {
	conditions := []string{}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, "p.author_id = $"+strconv.Itoa(len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conditions = append(conditions, "p.group_id = $"+strconv.Itoa(len(args)))
	}
	if filter.FollowerID != nil {
		args = append(args, *filter.FollowerID)
		conditions = append(conditions, "EXISTS(SELECT 1 FROM follows f WHERE f.followee_id = p.author_id AND f.follower_id = $"+strconv.Itoa(len(args))+")")
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanFullPosts(rows pgx.Rows) ([]*model.FullPost, error) {
	posts := []*model.FullPost{}
	for rows.Next() {
		var (
			post       model.FullPost
			groupID    *uuid.UUID
			groupTitle *string
			groupSlug  *string
		)
		if err := rows.Scan(
			&post.ID,
			&post.Text,
			&post.Image,
			&post.CreatedAt,
			&post.Author.ID,
			&post.Author.Username,
			&post.Author.CreatedAt,
			&groupID,
			&groupTitle,
			&groupSlug,
		); err != nil {
			return nil, err
		}

		if groupID != nil && groupTitle != nil && groupSlug != nil {
			post.Group = &model.GroupRef{
				ID:    *groupID,
				Title: *groupTitle,
				Slug:  *groupSlug,
			}
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
