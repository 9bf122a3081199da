package http

import (
	"time"

	"shareit/internal/request"
)

type ReplyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(r *request.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
	}
}

type RequestDetailsResponse struct {
	RequestResponse
	Items []ReplyResponse `json:"items"`
}

func NewRequestDetailsResponse(d *request.Details) RequestDetailsResponse {
	items := make([]ReplyResponse, len(d.Items))
	for i, reply := range d.Items {
		items[i] = ReplyResponse{
			ID:          reply.ItemID,
			Name:        reply.Name,
			Description: reply.Description,
			Available:   reply.Available,
			OwnerID:     reply.OwnerID,
		}
	}
	return RequestDetailsResponse{
		RequestResponse: NewRequestResponse(&d.Request),
		Items:           items,
	}
}

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}
