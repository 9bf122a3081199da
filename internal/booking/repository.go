package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/pkg/pagination"
)

// Repository holds the pre-defined query shapes the lifecycle engine,
// the temporal classifier and the item enrichment run against the store.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// UpdateStatus is a conditional write: it flips the status only while
	// the current status is still WAITING and reports whether a row was
	// updated. Two concurrent decisions on one booking therefore resolve
	// to exactly one success.
	UpdateStatus(ctx context.Context, id int64, status Status) (bool, error)

	// List runs a classifier filter, ordered by start descending
	// (id descending as the stable tie-break).
	List(ctx context.Context, filter Filter, page pagination.PageRequest) ([]*Booking, error)

	// FindNextForItem returns the APPROVED booking with the earliest
	// start at or after the given instant, or nil when there is none.
	FindNextForItem(ctx context.Context, itemID int64, at time.Time) (*Booking, error)
	// FindLastForItem returns the APPROVED booking with the latest start
	// at or before the given instant, or nil when there is none.
	FindLastForItem(ctx context.Context, itemID int64, at time.Time) (*Booking, error)

	// ListNextForItems and ListLastForItems are the batch counterparts:
	// one query per direction across an owner's whole item set, ordered
	// so the first hit per item is the nearest one.
	ListNextForItems(ctx context.Context, itemIDs []int64, at time.Time) ([]*Booking, error)
	ListLastForItems(ctx context.Context, itemIDs []int64, at time.Time) ([]*Booking, error)

	// FindEndedForItemByBooker returns any booking by the given booker on
	// the given item that ended before the instant, or nil. It gates
	// comment creation.
	FindEndedForItemByBooker(ctx context.Context, bookerID, itemID int64, before time.Time) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectBookings() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id",
		"b.start_time", "b.end_time", "b.status",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID,
		&b.Start, &b.End, &b.Status,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) (bool, error) {
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": StatusWaiting}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter, page pagination.PageRequest) ([]*Booking, error) {
	query := selectBookings()

	if filter.BookerID != 0 {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.ItemIDs != nil {
		query = query.Where(squirrel.Eq{"b.item_id": filter.ItemIDs})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.StartAfter != nil {
		query = query.Where(squirrel.Gt{"b.start_time": *filter.StartAfter})
	}
	if filter.EndBefore != nil {
		query = query.Where(squirrel.Lt{"b.end_time": *filter.EndBefore})
	}
	if filter.CurrentAt != nil {
		query = query.
			Where(squirrel.LtOrEq{"b.start_time": *filter.CurrentAt}).
			Where(squirrel.GtOrEq{"b.end_time": *filter.CurrentAt})
	}

	query = query.OrderBy("b.start_time DESC", "b.id DESC")

	if page.Paged {
		query = query.Limit(uint64(page.Limit)).Offset(uint64(page.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) FindNextForItem(ctx context.Context, itemID int64, at time.Time) (*Booking, error) {
	return r.findFirst(ctx, selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		Where(squirrel.GtOrEq{"b.start_time": at}).
		OrderBy("b.start_time ASC").
		Limit(1))
}

func (r *pgxRepository) FindLastForItem(ctx context.Context, itemID int64, at time.Time) (*Booking, error) {
	return r.findFirst(ctx, selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		Where(squirrel.LtOrEq{"b.start_time": at}).
		OrderBy("b.start_time DESC").
		Limit(1))
}

func (r *pgxRepository) ListNextForItems(ctx context.Context, itemIDs []int64, at time.Time) ([]*Booking, error) {
	sql, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs, "b.status": StatusApproved}).
		Where(squirrel.GtOrEq{"b.start_time": at}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build next bookings query failed: %w", err)
	}
	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) ListLastForItems(ctx context.Context, itemIDs []int64, at time.Time) ([]*Booking, error) {
	sql, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs, "b.status": StatusApproved}).
		Where(squirrel.LtOrEq{"b.start_time": at}).
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last bookings query failed: %w", err)
	}
	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) FindEndedForItemByBooker(ctx context.Context, bookerID, itemID int64, before time.Time) (*Booking, error) {
	return r.findFirst(ctx, selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID, "b.item_id": itemID}).
		Where(squirrel.Lt{"b.end_time": before}).
		OrderBy("b.start_time DESC").
		Limit(1))
}

// findFirst runs a single-row lookup where absence is a normal outcome.
func (r *pgxRepository) findFirst(ctx context.Context, query squirrel.SelectBuilder) (*Booking, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking lookup failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) queryMany(ctx context.Context, sql string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
