package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

// BidService owns bid placement and the bid read paths.
type BidService struct {
	repo   ports.BidRepository
	logger zerolog.Logger
}

func NewBidService(repo ports.BidRepository, logger zerolog.Logger) *BidService {
	return &BidService{repo: repo, logger: logger}
}

func (s *BidService) List(ctx context.Context) ([]domain.Bid, error) {
	return s.repo.FindAll(ctx)
}

func (s *BidService) ListByBidder(ctx context.Context, email string) ([]domain.Bid, error) {
	return s.repo.FindByBidder(ctx, email)
}

func (s *BidService) ListRequests(ctx context.Context, buyerEmail string) ([]domain.Bid, error) {
	return s.repo.FindByBuyer(ctx, buyerEmail)
}

// Place inserts a bid unless the bidder already bid on a job with the same
// title.
func (s *BidService) Place(ctx context.Context, bid domain.Bid) (string, error) {
	// 1. Duplicate check on (email, title).
	exists, err := s.repo.Exists(ctx, bid.Email, bid.Title)
	if err != nil {
		return "", fmt.Errorf("place bid: %w", err)
	}
	if exists {
		s.logger.Debug().Str("email", bid.Email).Str("title", bid.Title).Msg("duplicate bid rejected")
		return "", domain.ErrDuplicateBid
	}

	// 2. Insert. The unique index still guards against a concurrent insert
	// from another process.
	bid.ID = ""
	if bid.Status == "" {
		bid.Status = domain.BidPending
	}
	id, err := s.repo.Create(ctx, &bid)
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Str("bid_id", id).
		Str("email", bid.Email).
		Str("title", bid.Title).
		Msg("bid placed")

	return id, nil
}

func (s *BidService) UpdateStatus(ctx context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error) {
	res, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBidNotFound
	}
	s.logger.Info().Str("bid_id", id).Str("status", string(status)).Msg("bid status updated")
	return res, nil
}
