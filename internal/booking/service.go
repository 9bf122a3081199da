package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/pkg/apperror"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/pagination"
)

// CreateRequest carries a booker's request for an interval on an item.
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	// Create registers a WAITING booking after validating, in order:
	// the requester exists, the item exists, the requester is not the
	// item's owner, the item is available, and start < end.
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)

	// GetByID returns the booking to its booker or the item's owner.
	GetByID(ctx context.Context, requesterID, bookingID int64) (*Booking, error)

	// Decide moves a WAITING booking to APPROVED or REJECTED. Only the
	// item's owner may decide, and only once.
	Decide(ctx context.Context, requesterID, bookingID int64, approved bool) (*Booking, error)

	// ListByBooker returns the requester's own bookings in the given
	// temporal state, ordered by start descending.
	ListByBooker(ctx context.Context, requesterID int64, state State, page pagination.Params) ([]*Booking, error)

	// ListByOwner returns bookings of all items owned by the requester.
	// An owner with no items gets an empty list.
	ListByOwner(ctx context.Context, requesterID int64, state State, page pagination.Params) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemDirectory
	clock clock.Clock
	log   zerolog.Logger
}

func NewService(repo Repository, users UserDirectory, items ItemDirectory, clk clock.Clock, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
		log:   log.With().Str("component", "booking-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	if err := s.users.Check(ctx, bookerID); err != nil {
		return nil, err
	}

	item, err := s.items.Find(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, apperror.Wrap(ErrOwnerCreate, http.StatusForbidden,
			fmt.Sprintf("user id = %d cannot book own item id = %d", bookerID, item.ID))
	}
	if !item.Available {
		return nil, apperror.Wrap(ErrItemUnavailable, http.StatusBadRequest,
			fmt.Sprintf("item id = %d is not available for booking", item.ID))
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidInterval
	}

	b := &Booking{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    bookerID,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info().Int64("booking_id", b.ID).Int64("item_id", b.ItemID).Int64("booker_id", bookerID).
		Msg("booking created")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, bookingID int64) (*Booking, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if requesterID != b.BookerID && requesterID != b.ItemOwnerID {
		return nil, apperror.Wrap(ErrReadAccessDenied, http.StatusForbidden,
			fmt.Sprintf("user id = %d has no access to read booking id = %d", requesterID, bookingID))
	}
	return b, nil
}

func (s *service) Decide(ctx context.Context, requesterID, bookingID int64, approved bool) (*Booking, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if requesterID != b.ItemOwnerID {
		return nil, apperror.Wrap(ErrEditAccessDenied, http.StatusForbidden,
			fmt.Sprintf("user id = %d has no access to edit booking id = %d", requesterID, bookingID))
	}
	if b.Status != StatusWaiting {
		return nil, statusFinal(bookingID)
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}

	// Conditional write: a concurrent decision that got there first makes
	// this one lose, never producing two divergent transitions.
	updated, err := s.repo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, statusFinal(bookingID)
	}

	b.Status = status
	s.log.Info().Int64("booking_id", bookingID).Str("status", string(status)).
		Msg("booking status changed")
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, requesterID int64, state State, page pagination.Params) ([]*Booking, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	pageReq, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	filter := s.stateFilter(state)
	filter.BookerID = requesterID
	return s.repo.List(ctx, filter, pageReq)
}

func (s *service) ListByOwner(ctx context.Context, requesterID int64, state State, page pagination.Params) ([]*Booking, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	pageReq, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	itemIDs, err := s.items.OwnedBy(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		// A user with no items querying their bookings is a normal state.
		return []*Booking{}, nil
	}

	filter := s.stateFilter(state)
	filter.ItemIDs = itemIDs
	return s.repo.List(ctx, filter, pageReq)
}

// stateFilter maps a temporal state to a store filter. "Now" is read
// once here so every comparison in one listing sees the same instant.
func (s *service) stateFilter(state State) Filter {
	var f Filter
	now := s.clock.Now()
	switch state {
	case StateAll:
	case StateCurrent:
		f.CurrentAt = &now
	case StatePast:
		f.EndBefore = &now
	case StateFuture:
		f.StartAfter = &now
	case StateWaiting:
		f.Status = StatusWaiting
	case StateRejected:
		f.Status = StatusRejected
	}
	return f
}

func (s *service) getBooking(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.Wrap(ErrNotFound, http.StatusNotFound,
				fmt.Sprintf("booking id = %d is not found", id))
		}
		return nil, err
	}
	return b, nil
}

func statusFinal(id int64) error {
	return apperror.Wrap(ErrStatusFinal, http.StatusConflict,
		fmt.Sprintf("booking id = %d status has already been changed", id))
}
