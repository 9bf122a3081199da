package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"shareit/internal/pkg/apperror"
)

type Service interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
	Delete(ctx context.Context, id int64) error

	// Check resolves id to an existing user, or fails with ErrNotFound.
	// Other modules use it to validate caller identity.
	Check(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "user-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, u *User) (*User, error) {
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", u.ID).Msg("user created")
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := merge(existing, patch)
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(id)
		}
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *service) Check(ctx context.Context, id int64) error {
	_, err := s.GetByID(ctx, id)
	return err
}

// merge applies a patch on top of an existing record. Each field is
// replaced only when the patch supplies a value.
func merge(existing *User, patch Patch) *User {
	out := *existing
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	return &out
}

func notFound(id int64) error {
	return apperror.Wrap(ErrNotFound, http.StatusNotFound, fmt.Sprintf("user id = %d is not found", id))
}
