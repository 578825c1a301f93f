package ports

import (
	"context"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

// BidPlacer places a single bid. Implemented by the bid service and by the
// dispatcher that serializes placements per (email, title).
type BidPlacer interface {
	Place(ctx context.Context, bid domain.Bid) (string, error)
}

// BidService defines use-case operations for bids.
type BidService interface {
	BidPlacer
	List(ctx context.Context) ([]domain.Bid, error)
	ListByBidder(ctx context.Context, email string) ([]domain.Bid, error)
	ListRequests(ctx context.Context, buyerEmail string) ([]domain.Bid, error)
	UpdateStatus(ctx context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error)
}
