package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"shareit/internal/pkg/apperror"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/pagination"
)

// UserChecker validates that a caller id resolves to an existing user.
type UserChecker interface {
	Check(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*Request, error)

	// ListOwn returns the requester's requests, newest first, each with
	// the items listed in reply.
	ListOwn(ctx context.Context, requesterID int64) ([]*Details, error)

	// ListOthers returns other users' requests, newest first, paginated.
	ListOthers(ctx context.Context, requesterID int64, page pagination.Params) ([]*Details, error)

	GetByID(ctx context.Context, requesterID, requestID int64) (*Details, error)
}

type service struct {
	repo  Repository
	users UserChecker
	clock clock.Clock
	log   zerolog.Logger
}

func NewService(repo Repository, users UserChecker, clk clock.Clock, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		clock: clk,
		log:   log.With().Str("component", "request-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*Request, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &Request{
		Description: description,
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().Int64("request_id", req.ID).Int64("requester_id", requesterID).Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*Details, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requesterID int64, page pagination.Params) ([]*Details, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	pageReq, err := page.Resolve()
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, requesterID, pageReq)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requesterID, requestID int64) (*Details, error) {
	if err := s.users.Check(ctx, requesterID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.Wrap(ErrNotFound, http.StatusNotFound,
				fmt.Sprintf("item request id = %d is not found", requestID))
		}
		return nil, err
	}

	details, err := s.withReplies(ctx, []*Request{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *service) withReplies(ctx context.Context, requests []*Request) ([]*Details, error) {
	details := make([]*Details, len(requests))
	if len(requests) == 0 {
		return details, nil
	}

	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
		details[i] = &Details{Request: *req, Items: []Reply{}}
	}

	replies, err := s.repo.RepliesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range details {
		if items, ok := replies[d.ID]; ok {
			d.Items = items
		}
	}
	return details, nil
}
