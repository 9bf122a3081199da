package request

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "item request not found")

// Request is a user's ask for an item nobody has listed yet.
type Request struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// Reply is an item that was listed in answer to a request.
type Reply struct {
	ItemID      int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
}

// Details is a request together with the items answering it.
type Details struct {
	Request
	Items []Reply
}
