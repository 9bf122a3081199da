package item

import (
	"net/http"
	"time"

	"shareit/internal/booking"
	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrEditAccessDenied    = apperror.New(http.StatusForbidden, "no access to edit item")
	ErrCommentAccessDenied = apperror.New(http.StatusForbidden, "no access to comment item")
)

// Item is a thing its owner offers for sharing. Available is advisory
// for booking eligibility; it does not flip when the item is booked.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Patch carries a partial update. A nil field leaves the stored value as is.
type Patch struct {
	Name        *string
	Description *string
	Available   *bool
	RequestID   *int64
}

// Comment is feedback left after a completed rental.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingView is the booking summary attached to an item for its owner.
type BookingView struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

func newBookingView(b *booking.Booking) *BookingView {
	if b == nil {
		return nil
	}
	return &BookingView{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}

// Details is the read-path view of an item: the item itself, its
// comments, and (for the owner only) the last and next approved
// bookings relative to the moment of the read.
type Details struct {
	Item
	LastBooking *BookingView
	NextBooking *BookingView
	Comments    []*Comment
}
