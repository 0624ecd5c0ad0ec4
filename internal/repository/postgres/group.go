package postgres

import (
	"context"

	"github.com/BloggingApp/post-service/internal/model"
	"github.com/google/uuid"
)

type groupRepo struct {
	db DB
}

func newGroupRepo(db DB) Group {
	return &groupRepo{
		db: db,
	}
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	group.ID = uuid.New()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO groups(id, title, slug, description) VALUES($1, $2, $3, $4)",
		group.ID,
		group.Title,
		group.Slug,
		group.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &group, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g WHERE g.id = $1", id).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
	); err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g WHERE g.slug = $1", slug).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
	); err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	rows, err := r.db.Query(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g ORDER BY g.title, g.slug")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*model.Group{}
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(
			&group.ID,
			&group.Title,
			&group.Slug,
			&group.Description,
		); err != nil {
			return nil, err
		}

		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// DeleteBySlug removes the group; its posts stay and lose the reference.
func (r *groupRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM groups WHERE slug = $1", slug)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
