package posts

import (
	"context"

	"github.com/aironlab/backend/internal/query"
)

type Repository interface {
	List(ctx context.Context, spec *query.Spec) ([]*Post, error)
	Count(ctx context.Context, spec *query.Spec) (int, error)
	GetByID(ctx context.Context, id int) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	SlugTaken(ctx context.Context, slug string, excludeID int) (bool, error)
	Insert(ctx context.Context, p *Post) (*Post, error)
	Update(ctx context.Context, id int, changes []Change) (*Post, error)
	Delete(ctx context.Context, id int) (*Post, error)
}
