package item

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/booking"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/pagination"
	"shareit/internal/user"
)

type fakeUsers struct{}

func (fakeUsers) Check(context.Context, int64) error { return nil }

func (fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	return &user.User{ID: id, Name: fmt.Sprintf("user-%d", id)}, nil
}

type fakeItemRepo struct {
	items  map[int64]*Item
	nextID int64

	searchCalls int
	lastSearch  string
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*Item)}
}

func (f *fakeItemRepo) Create(_ context.Context, it *Item) error {
	f.nextID++
	it.ID = f.nextID
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (f *fakeItemRepo) Update(_ context.Context, it *Item) error {
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeItemRepo) ListByOwner(_ context.Context, ownerID int64, _ pagination.PageRequest) ([]*Item, error) {
	var out []*Item
	for id := int64(1); id <= f.nextID; id++ {
		if it, ok := f.items[id]; ok && it.OwnerID == ownerID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) OwnedIDs(_ context.Context, ownerID int64) ([]int64, error) {
	var ids []int64
	for id := int64(1); id <= f.nextID; id++ {
		if it, ok := f.items[id]; ok && it.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeItemRepo) Search(_ context.Context, text string, _ pagination.PageRequest) ([]*Item, error) {
	f.searchCalls++
	f.lastSearch = text
	return []*Item{}, nil
}

type fakeCommentRepo struct {
	comments []*Comment
	nextID   int64
}

func (f *fakeCommentRepo) Create(_ context.Context, c *Comment) error {
	f.nextID++
	c.ID = f.nextID
	stored := *c
	f.comments = append(f.comments, &stored)
	return nil
}

func (f *fakeCommentRepo) ListByItem(_ context.Context, itemID int64) ([]*Comment, error) {
	var out []*Comment
	for _, c := range f.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) ListByItems(_ context.Context, itemIDs []int64) ([]*Comment, error) {
	var out []*Comment
	for _, c := range f.comments {
		for _, id := range itemIDs {
			if c.ItemID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

// fakeBookingStore serves the enrichment queries from pre-canned answers
// and records which lookups were made.
type fakeBookingStore struct {
	next  map[int64]*booking.Booking
	last  map[int64]*booking.Booking
	ended *booking.Booking

	// batch answers, already in nearest-first order
	batchNext []*booking.Booking
	batchLast []*booking.Booking

	singleLookups int
}

func (f *fakeBookingStore) Create(context.Context, *booking.Booking) error { return nil }

func (f *fakeBookingStore) GetByID(context.Context, int64) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}

func (f *fakeBookingStore) UpdateStatus(context.Context, int64, booking.Status) (bool, error) {
	return false, nil
}

func (f *fakeBookingStore) List(context.Context, booking.Filter, pagination.PageRequest) ([]*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) FindNextForItem(_ context.Context, itemID int64, _ time.Time) (*booking.Booking, error) {
	f.singleLookups++
	return f.next[itemID], nil
}

func (f *fakeBookingStore) FindLastForItem(_ context.Context, itemID int64, _ time.Time) (*booking.Booking, error) {
	f.singleLookups++
	return f.last[itemID], nil
}

func (f *fakeBookingStore) ListNextForItems(context.Context, []int64, time.Time) ([]*booking.Booking, error) {
	return f.batchNext, nil
}

func (f *fakeBookingStore) ListLastForItems(context.Context, []int64, time.Time) ([]*booking.Booking, error) {
	return f.batchLast, nil
}

func (f *fakeBookingStore) FindEndedForItemByBooker(context.Context, int64, int64, time.Time) (*booking.Booking, error) {
	return f.ended, nil
}

var itemTestNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newItemService(repo *fakeItemRepo, comments *fakeCommentRepo, bookings *fakeBookingStore) Service {
	return NewService(repo, comments, bookings, fakeUsers{}, clock.Fixed(itemTestNow), zerolog.Nop())
}

func seedItem(t *testing.T, svc Service, ownerID int64, name string) *Item {
	t.Helper()
	it, err := svc.Create(context.Background(), ownerID, &Item{
		Name:        name,
		Description: name + " description",
		Available:   true,
	})
	require.NoError(t, err)
	return it
}

func TestGetByIDEnrichment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	bookings := &fakeBookingStore{
		next: map[int64]*booking.Booking{},
		last: map[int64]*booking.Booking{},
	}
	svc := newItemService(repo, &fakeCommentRepo{}, bookings)

	it := seedItem(t, svc, 1, "drill")
	bookings.last[it.ID] = &booking.Booking{ID: 100, ItemID: it.ID, BookerID: 2, Start: itemTestNow.Add(-2 * time.Hour), End: itemTestNow.Add(-time.Hour)}
	bookings.next[it.ID] = &booking.Booking{ID: 101, ItemID: it.ID, BookerID: 3, Start: itemTestNow.Add(time.Hour), End: itemTestNow.Add(2 * time.Hour)}

	t.Run("owner sees booking summaries", func(t *testing.T) {
		d, err := svc.GetByID(ctx, 1, it.ID)
		require.NoError(t, err)
		require.NotNil(t, d.LastBooking)
		require.NotNil(t, d.NextBooking)
		assert.Equal(t, int64(100), d.LastBooking.ID)
		assert.Equal(t, int64(2), d.LastBooking.BookerID)
		assert.Equal(t, int64(101), d.NextBooking.ID)
	})

	t.Run("other requester sees none and store is not queried", func(t *testing.T) {
		lookups := bookings.singleLookups
		d, err := svc.GetByID(ctx, 2, it.ID)
		require.NoError(t, err)
		assert.Nil(t, d.LastBooking)
		assert.Nil(t, d.NextBooking)
		assert.Equal(t, lookups, bookings.singleLookups)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, 999)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "999")
	})
}

func TestListByOwnerBatchEnrichment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	bookings := &fakeBookingStore{}
	comments := &fakeCommentRepo{}
	svc := newItemService(repo, comments, bookings)

	a := seedItem(t, svc, 1, "drill")
	b := seedItem(t, svc, 1, "ladder")
	seedItem(t, svc, 2, "saw")

	// Candidates are nearest-first per direction; the second row for item
	// a must lose to the first.
	bookings.batchLast = []*booking.Booking{
		{ID: 200, ItemID: a.ID, Start: itemTestNow.Add(-time.Hour)},
		{ID: 201, ItemID: a.ID, Start: itemTestNow.Add(-3 * time.Hour)},
		{ID: 202, ItemID: b.ID, Start: itemTestNow.Add(-2 * time.Hour)},
	}
	bookings.batchNext = []*booking.Booking{
		{ID: 300, ItemID: b.ID, Start: itemTestNow.Add(time.Hour)},
		{ID: 301, ItemID: b.ID, Start: itemTestNow.Add(5 * time.Hour)},
	}
	require.NoError(t, comments.Create(ctx, &Comment{ItemID: a.ID, AuthorID: 2, Text: "works great"}))

	got, err := svc.ListByOwner(ctx, 1, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	first, second := got[0], got[1]
	assert.Equal(t, a.ID, first.ID)
	require.NotNil(t, first.LastBooking)
	assert.Equal(t, int64(200), first.LastBooking.ID)
	assert.Nil(t, first.NextBooking)
	require.Len(t, first.Comments, 1)
	assert.Equal(t, "works great", first.Comments[0].Text)

	assert.Equal(t, b.ID, second.ID)
	require.NotNil(t, second.LastBooking)
	assert.Equal(t, int64(202), second.LastBooking.ID)
	require.NotNil(t, second.NextBooking)
	assert.Equal(t, int64(300), second.NextBooking.ID)
	assert.Empty(t, second.Comments)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	svc := newItemService(repo, &fakeCommentRepo{}, &fakeBookingStore{})

	it := seedItem(t, svc, 1, "drill")

	t.Run("merges only supplied fields", func(t *testing.T) {
		name := "power drill"
		available := false
		updated, err := svc.Update(ctx, 1, it.ID, Patch{Name: &name, Available: &available})
		require.NoError(t, err)
		assert.Equal(t, "power drill", updated.Name)
		assert.Equal(t, "drill description", updated.Description)
		assert.False(t, updated.Available)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		name := "stolen drill"
		_, err := svc.Update(ctx, 2, it.ID, Patch{Name: &name})
		assert.True(t, errors.Is(err, ErrEditAccessDenied))
	})
}

func TestSearchEmptyText(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	svc := newItemService(repo, &fakeCommentRepo{}, &fakeBookingStore{})

	for _, text := range []string{"", "   "} {
		got, err := svc.Search(ctx, text, pagination.Params{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, repo.searchCalls)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepo()
	bookings := &fakeBookingStore{}
	svc := newItemService(repo, &fakeCommentRepo{}, bookings)

	it := seedItem(t, svc, 1, "drill")

	t.Run("without ended booking", func(t *testing.T) {
		_, err := svc.AddComment(ctx, 2, it.ID, "never used it")
		assert.True(t, errors.Is(err, ErrCommentAccessDenied))
	})

	t.Run("with ended booking", func(t *testing.T) {
		bookings.ended = &booking.Booking{ID: 400, ItemID: it.ID, BookerID: 2}
		c, err := svc.AddComment(ctx, 2, it.ID, "works great")
		require.NoError(t, err)
		assert.Equal(t, "works great", c.Text)
		assert.Equal(t, "user-2", c.AuthorName)
		assert.Equal(t, itemTestNow, c.Created)
		assert.NotZero(t, c.ID)
	})
}
