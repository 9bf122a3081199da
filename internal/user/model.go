package user

import (
	"net/http"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "email already used")
)

// User represents a registered user of the sharing service.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Patch carries a partial update. A nil field leaves the stored value as is.
type Patch struct {
	Name  *string
	Email *string
}
