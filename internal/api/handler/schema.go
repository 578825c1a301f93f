package handler

import (
	"encoding/json"
	"time"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Session ---

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// --- Jobs ---

type listingRequest struct {
	Filter string `query:"filter"`
	Sort   string `query:"sort"`
	Page   int    `query:"page" validate:"required,min=1"`
	Size   int    `query:"size" validate:"required,min=1,max=100"`
}

type countResponse struct {
	Result int64 `json:"result"`
}

// --- Bids ---

type buyerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type placeBidRequest struct {
	JobID    string        `json:"job_id"`
	Title    string        `json:"title"    validate:"required"`
	Email    string        `json:"email"    validate:"required,email"`
	Price    float64       `json:"price"    validate:"gte=0"`
	Comment  string        `json:"comment"`
	Deadline time.Time     `json:"deadline"`
	Category string        `json:"category"`
	Status   string        `json:"status"   validate:"omitempty,oneof=Pending 'In Progress' Complete Rejected"`
	Buyer    *buyerRequest `json:"buyer"    validate:"omitempty"`

	// Extra holds the attributes the typed fields do not cover. They are
	// stored with the bid unchanged.
	Extra map[string]any `json:"-"`
}

func (r *placeBidRequest) UnmarshalJSON(data []byte) error {
	type plain placeBidRequest
	var req plain
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}

	var bid domain.Bid
	if err := json.Unmarshal(data, &bid); err != nil {
		return err
	}
	req.Extra = bid.Extra

	*r = placeBidRequest(req)
	return nil
}

type bidStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Complete Rejected"`
}

// --- Write results ---

// The write responses keep the field names of the document store's own
// result objects, which existing clients read.

type insertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type deleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type updateResponse struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}
