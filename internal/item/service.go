package item

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/booking"
	"shareit/internal/pkg/apperror"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/pagination"
	"shareit/internal/user"
)

// UserDirectory resolves caller ids to registered users.
type UserDirectory interface {
	Check(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, it *Item) (*Item, error)

	// Update merges a patch into the stored item. Only the owner may edit.
	Update(ctx context.Context, requesterID, itemID int64, patch Patch) (*Item, error)

	// GetByID returns the item with comments; last/next approved booking
	// summaries are attached only when the requester is the owner.
	GetByID(ctx context.Context, requesterID, itemID int64) (*Details, error)

	// ListByOwner returns the owner's items with last/next bookings and
	// comments resolved in one batch pass per direction.
	ListByOwner(ctx context.Context, ownerID int64, page pagination.Params) ([]*Details, error)

	// Search finds available items whose name or description contains the
	// text, case-insensitively. Empty text yields an empty list.
	Search(ctx context.Context, text string, page pagination.Params) ([]*Item, error)

	// AddComment lets a user who had a booking on the item that already
	// ended leave text feedback.
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)

	// Find and OwnedIDs serve the booking engine's item directory.
	Find(ctx context.Context, id int64) (*Item, error)
	OwnedIDs(ctx context.Context, ownerID int64) ([]int64, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	bookings booking.Repository
	users    UserDirectory
	clock    clock.Clock
	log      zerolog.Logger
}

func NewService(
	repo Repository,
	comments CommentRepository,
	bookings booking.Repository,
	users UserDirectory,
	clk clock.Clock,
	log zerolog.Logger,
) Service {
	return &service{
		repo:     repo,
		comments: comments,
		bookings: bookings,
		users:    users,
		clock:    clk,
		log:      log.With().Str("component", "item-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, it *Item) (*Item, error) {
	if err := s.users.Check(ctx, ownerID); err != nil {
		return nil, err
	}

	it.OwnerID = ownerID
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", it.ID).Int64("owner_id", ownerID).Msg("item created")
	return it, nil
}

func (s *service) Update(ctx context.Context, requesterID, itemID int64, patch Patch) (*Item, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	existing, err := s.Find(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != requesterID {
		return nil, apperror.Wrap(ErrEditAccessDenied, http.StatusForbidden,
			fmt.Sprintf("user id = %d has no access to edit item id = %d", requesterID, itemID))
	}

	updated := merge(existing, patch)
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", itemID).Msg("item updated")
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, itemID int64) (*Details, error) {
	now := s.clock.Now()

	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	it, err := s.Find(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &Details{Item: *it}

	// Booking summaries are for the owner only: for anyone else they are
	// simply not queried.
	if it.OwnerID == requesterID {
		next, err := s.bookings.FindNextForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		details.NextBooking = newBookingView(next)

		last, err := s.bookings.FindLastForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		details.LastBooking = newBookingView(last)
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	details.Comments = comments

	return details, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, page pagination.Params) ([]*Details, error) {
	now := s.clock.Now()

	if err := s.users.Check(ctx, ownerID); err != nil {
		return nil, err
	}

	pageReq, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, pageReq)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*Details{}, nil
	}

	ids := make([]int64, len(items))
	details := make([]*Details, len(items))
	for i, it := range items {
		ids[i] = it.ID
		details[i] = &Details{Item: *it, Comments: []*Comment{}}
	}

	// One query per direction across the whole item set; candidates come
	// ordered so the first hit per item is the nearest booking, later
	// hits for the same item are ignored.
	lasts, err := s.bookings.ListLastForItems(ctx, ids, now)
	if err != nil {
		return nil, err
	}
	nexts, err := s.bookings.ListNextForItems(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	lastByItem := firstPerItem(lasts)
	nextByItem := firstPerItem(nexts)
	for _, d := range details {
		d.LastBooking = newBookingView(lastByItem[d.ID])
		d.NextBooking = newBookingView(nextByItem[d.ID])
	}

	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]*Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}
	for _, d := range details {
		if cs, ok := commentsByItem[d.ID]; ok {
			d.Comments = cs
		}
	}

	return details, nil
}

func (s *service) Search(ctx context.Context, text string, page pagination.Params) ([]*Item, error) {
	pageReq, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		s.log.Warn().Msg("search request was empty")
		return []*Item{}, nil
	}

	return s.repo.Search(ctx, text, pageReq)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	now := s.clock.Now()

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Find(ctx, itemID); err != nil {
		return nil, err
	}

	// Only someone whose rental of this item already ended may comment.
	ended, err := s.bookings.FindEndedForItemByBooker(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if ended == nil {
		return nil, apperror.Wrap(ErrCommentAccessDenied, http.StatusForbidden,
			fmt.Sprintf("user id = %d has no access to comment item id = %d", authorID, itemID))
	}

	c := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
		Created:    now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Int64("comment_id", c.ID).Int64("item_id", itemID).Msg("comment created")
	return c, nil
}

func (s *service) Find(ctx context.Context, id int64) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.Wrap(ErrNotFound, http.StatusNotFound,
				fmt.Sprintf("item id = %d is not found", id))
		}
		return nil, err
	}
	return it, nil
}

func (s *service) OwnedIDs(ctx context.Context, ownerID int64) ([]int64, error) {
	return s.repo.OwnedIDs(ctx, ownerID)
}

// firstPerItem keeps the first candidate seen for each item, relying on
// the repository's nearest-first ordering.
func firstPerItem(bookings []*booking.Booking) map[int64]*booking.Booking {
	out := make(map[int64]*booking.Booking, len(bookings))
	for _, b := range bookings {
		if _, ok := out[b.ItemID]; !ok {
			out[b.ItemID] = b
		}
	}
	return out
}

// merge applies a patch on top of an existing record. Each field is
// replaced only when the patch supplies a value.
func merge(existing *Item, patch Patch) *Item {
	out := *existing
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Available != nil {
		out.Available = *patch.Available
	}
	if patch.RequestID != nil {
		out.RequestID = patch.RequestID
	}
	return &out
}
