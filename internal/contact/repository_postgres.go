package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *postgresRepository) List(ctx context.Context, spec *query.Spec) ([]*Request, error) {
	sqlText, args := spec.Select()
	rows := []*Request{}
	if err := r.exec.SelectContext(ctx, &rows, sqlText, args...); err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) Count(ctx context.Context, spec *query.Spec) (int, error) {
	sqlText, args := spec.Count()
	var total int
	if err := r.exec.GetContext(ctx, &total, sqlText, args...); err != nil {
		return 0, fmt.Errorf("count contact requests: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err := r.exec.SelectContext(ctx, &rows,
		"SELECT status, COUNT(*) AS count FROM contact_requests GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *postgresRepository) Insert(ctx context.Context, req *Request) (*Request, error) {
	const q = `
		INSERT INTO contact_requests (name, email, phone, subject, message, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *`
	var created Request
	err := r.exec.GetContext(ctx, &created, q,
		req.Name, req.Email, req.Phone, req.Subject, req.Message, req.IPAddress, req.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("insert contact request: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int, status Status) (*Request, error) {
	var updated Request
	err := r.exec.GetContext(ctx, &updated,
		"UPDATE contact_requests SET status = $1 WHERE id = $2 RETURNING *", status, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) UpdateNotes(ctx context.Context, id int, notes string) (*Request, error) {
	var updated Request
	err := r.exec.GetContext(ctx, &updated,
		"UPDATE contact_requests SET admin_notes = $1 WHERE id = $2 RETURNING *", notes, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update contact notes: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) (*Request, error) {
	var deleted Request
	err := r.exec.GetContext(ctx, &deleted,
		"DELETE FROM contact_requests WHERE id = $1 RETURNING *", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete contact request: %w", err)
	}
	return &deleted, nil
}
