package postgres

import (
	"context"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
)

type commentRepo struct {
	db DB
}

func newCommentRepo(db DB) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.ID = uuid.New()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(id, post_id, author_id, text) VALUES($1, $2, $3, $4) RETURNING created_at",
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Text,
	).Scan(&comment.CreatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT c.id, c.post_id, c.text, c.created_at, a.id, a.username, a.created_at
		FROM comments c
		JOIN authors a ON a.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.FullComment{}
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.Author.ID,
			&comment.Author.Username,
			&comment.Author.CreatedAt,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
