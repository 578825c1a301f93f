package ports

import (
	"context"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	FindAll(ctx context.Context) ([]domain.Bid, error)
	FindByBidder(ctx context.Context, email string) ([]domain.Bid, error)
	FindByBuyer(ctx context.Context, email string) ([]domain.Bid, error)
	// Exists reports whether email has already bid on a job with this title.
	Exists(ctx context.Context, email, title string) (bool, error)
	// Create inserts the bid. Implementations backed by a unique (email, title)
	// index return domain.ErrDuplicateBid on conflict.
	Create(ctx context.Context, bid *domain.Bid) (string, error)
	UpdateStatus(ctx context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error)
}
