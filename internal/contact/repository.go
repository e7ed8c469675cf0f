package contact

import (
	"context"

	"github.com/aironlab/backend/internal/query"
)

type Repository interface {
	List(ctx context.Context, spec *query.Spec) ([]*Request, error)
	Count(ctx context.Context, spec *query.Spec) (int, error)
	// StatusCounts aggregates over the whole table, independent of any filter.
	StatusCounts(ctx context.Context) (map[string]int, error)
	Insert(ctx context.Context, r *Request) (*Request, error)
	UpdateStatus(ctx context.Context, id int, status Status) (*Request, error)
	UpdateNotes(ctx context.Context, id int, notes string) (*Request, error)
	Delete(ctx context.Context, id int) (*Request, error)
}
