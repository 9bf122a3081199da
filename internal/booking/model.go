package booking

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrOwnerCreate      = apperror.New(http.StatusForbidden, "owner cannot book own item")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrInvalidInterval  = apperror.New(http.StatusBadRequest, "booking start must be strictly before end")
	ErrReadAccessDenied = apperror.New(http.StatusForbidden, "no access to read booking")
	ErrEditAccessDenied = apperror.New(http.StatusForbidden, "no access to edit booking")
	ErrStatusFinal      = apperror.New(http.StatusConflict, "booking status has already been changed")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "unknown state")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is the central record of the core: a time-bounded request by a
// booker for another user's item. Status starts at WAITING and moves at
// most once, to APPROVED or REJECTED.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	Start       time.Time
	End         time.Time
	Status      Status
}

// Filter is the store query shape used by the temporal classifier.
// Zero-valued fields are not applied.
type Filter struct {
	BookerID int64
	ItemIDs  []int64
	Status   Status

	// StartAfter keeps bookings with start > t (FUTURE).
	StartAfter *time.Time
	// EndBefore keeps bookings with end < t (PAST).
	EndBefore *time.Time
	// CurrentAt keeps bookings with start <= t <= end (CURRENT).
	CurrentAt *time.Time
}

// ItemRef is the directory's view of an item, carrying just the facts
// the lifecycle engine needs.
type ItemRef struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

// UserDirectory resolves caller ids to existing users.
type UserDirectory interface {
	Check(ctx context.Context, id int64) error
}

// ItemDirectory resolves items and ownership facts.
type ItemDirectory interface {
	Find(ctx context.Context, id int64) (*ItemRef, error)
	OwnedBy(ctx context.Context, ownerID int64) ([]int64, error)
}
