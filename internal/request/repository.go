package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/pkg/pagination"
)

// Repository defines methods for accessing item requests and the items
// listed in reply to them.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*Request, error)
	ListOthers(ctx context.Context, requesterID int64, page pagination.PageRequest) ([]*Request, error)
	RepliesFor(ctx context.Context, requestIDs []int64) (map[int64][]Reply, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	const query = `
		INSERT INTO public.item_requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, req.Description, req.RequesterID, req.Created).Scan(&req.ID); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Request, error) {
	const query = `
		SELECT id, description, requester_id, created
		FROM public.item_requests
		WHERE id = $1
	`

	var req Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*Request, error) {
	const query = `
		SELECT id, description, requester_id, created
		FROM public.item_requests
		WHERE requester_id = $1
		ORDER BY created DESC
	`

	rows, err := r.pool.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requesterID int64, page pagination.PageRequest) ([]*Request, error) {
	query := `
		SELECT id, description, requester_id, created
		FROM public.item_requests
		WHERE requester_id <> $1
		ORDER BY created DESC
	`
	args := []any{requesterID}

	if page.Paged {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, page.Limit, page.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *pgxRepository) RepliesFor(ctx context.Context, requestIDs []int64) (map[int64][]Reply, error) {
	const query = `
		SELECT request_id, id, name, description, available, owner_id
		FROM public.items
		WHERE request_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("list request replies failed: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]Reply)
	for rows.Next() {
		var requestID int64
		var reply Reply
		if err := rows.Scan(&requestID, &reply.ItemID, &reply.Name, &reply.Description, &reply.Available, &reply.OwnerID); err != nil {
			return nil, fmt.Errorf("scan request reply failed: %w", err)
		}
		out[requestID] = append(out[requestID], reply)
	}
	return out, rows.Err()
}

func scanRequests(rows pgx.Rows) ([]*Request, error) {
	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
