package app

import (
	"context"

	"shareit/internal/booking"
	"shareit/internal/item"
)

// itemDirectory adapts the item service to the booking engine's view of
// the directory.
type itemDirectory struct {
	items item.Service
}

func (d itemDirectory) Find(ctx context.Context, id int64) (*booking.ItemRef, error) {
	it, err := d.items.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &booking.ItemRef{
		ID:        it.ID,
		Name:      it.Name,
		OwnerID:   it.OwnerID,
		Available: it.Available,
	}, nil
}

func (d itemDirectory) OwnedBy(ctx context.Context, ownerID int64) ([]int64, error) {
	return d.items.OwnedIDs(ctx, ownerID)
}
