package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aironlab/backend/internal/db"
	"github.com/aironlab/backend/internal/query"
)

var _ Repository = (*postgresRepository)(nil)

type postgresRepository struct {
	exec db.Executor
}

func NewPostgresRepository(exec db.Executor) Repository {
	return &postgresRepository{exec: exec}
}

func (r *postgresRepository) List(ctx context.Context, spec *query.Spec) ([]*Post, error) {
	sqlText, args := spec.Select()
	rows := []*Post{}
	if err := r.exec.SelectContext(ctx, &rows, sqlText, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) Count(ctx context.Context, spec *query.Spec) (int, error) {
	sqlText, args := spec.Count()
	var total int
	if err := r.exec.GetContext(ctx, &total, sqlText, args...); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*Post, error) {
	var p Post
	err := r.exec.GetContext(ctx, &p, "SELECT * FROM posts WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var p Post
	err := r.exec.GetContext(ctx, &p, "SELECT * FROM posts WHERE slug = $1", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) SlugTaken(ctx context.Context, slug string, excludeID int) (bool, error) {
	var taken bool
	err := r.exec.GetContext(ctx, &taken,
		"SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)", slug, excludeID)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return taken, nil
}

func (r *postgresRepository) Insert(ctx context.Context, p *Post) (*Post, error) {
	const q = `
		INSERT INTO posts (title, slug, content, excerpt, author, featured_image, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *`
	var created Post
	err := r.exec.GetContext(ctx, &created, q,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Author, p.FeaturedImage, p.Status, p.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int, changes []Change) (*Post, error) {
	sets := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)
	for _, c := range changes {
		args = append(args, c.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.Column, len(args)))
	}
	args = append(args, id)

	q := fmt.Sprintf("UPDATE posts SET %s WHERE id = $%d RETURNING *",
		strings.Join(sets, ", "), len(args))
	var updated Post
	err := r.exec.GetContext(ctx, &updated, q, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) (*Post, error) {
	var deleted Post
	err := r.exec.GetContext(ctx, &deleted, "DELETE FROM posts WHERE id = $1 RETURNING *", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return &deleted, nil
}
