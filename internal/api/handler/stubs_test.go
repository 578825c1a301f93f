package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// ----

type stubTokenService struct {
	issueFn  func(ctx context.Context, email string) (string, error)
	revoked  []string
	revokeFn func(ctx context.Context, token string) error
}

func (s *stubTokenService) Issue(ctx context.Context, email string) (string, error) {
	return s.issueFn(ctx, email)
}

func (s *stubTokenService) Verify(context.Context, string) (string, error) {
	return "", domain.ErrUnauthorized
}

func (s *stubTokenService) Revoke(ctx context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	if s.revokeFn != nil {
		return s.revokeFn(ctx, token)
	}
	return nil
}

func (s *stubTokenService) TTL() time.Duration { return 365 * 24 * time.Hour }

// ----

type stubJobService struct {
	listFn        func(ctx context.Context) ([]domain.Job, error)
	pageFn        func(ctx context.Context, input ports.ListJobsInput) ([]domain.Job, error)
	countFn       func(ctx context.Context, filter string) (int64, error)
	getFn         func(ctx context.Context, id string) (*domain.Job, error)
	listByBuyerFn func(ctx context.Context, email string) ([]domain.Job, error)
	createFn      func(ctx context.Context, job *domain.Job) (string, error)
	deleteFn      func(ctx context.Context, id string) (int64, error)
	upsertFn      func(ctx context.Context, id string, job *domain.Job) (*domain.UpsertResult, error)
}

func (s *stubJobService) List(ctx context.Context) ([]domain.Job, error) { return s.listFn(ctx) }

func (s *stubJobService) Page(ctx context.Context, input ports.ListJobsInput) ([]domain.Job, error) {
	return s.pageFn(ctx, input)
}

func (s *stubJobService) Count(ctx context.Context, filter string) (int64, error) {
	return s.countFn(ctx, filter)
}

func (s *stubJobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.getFn(ctx, id)
}

func (s *stubJobService) ListByBuyer(ctx context.Context, email string) ([]domain.Job, error) {
	return s.listByBuyerFn(ctx, email)
}

func (s *stubJobService) Create(ctx context.Context, job *domain.Job) (string, error) {
	return s.createFn(ctx, job)
}

func (s *stubJobService) Delete(ctx context.Context, id string) (int64, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubJobService) Upsert(ctx context.Context, id string, job *domain.Job) (*domain.UpsertResult, error) {
	return s.upsertFn(ctx, id, job)
}

// ----

type stubBidService struct {
	listFn         func(ctx context.Context) ([]domain.Bid, error)
	listByBidderFn func(ctx context.Context, email string) ([]domain.Bid, error)
	listRequestsFn func(ctx context.Context, email string) ([]domain.Bid, error)
	placeFn        func(ctx context.Context, bid domain.Bid) (string, error)
	updateStatusFn func(ctx context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error)
}

func (s *stubBidService) List(ctx context.Context) ([]domain.Bid, error) { return s.listFn(ctx) }

func (s *stubBidService) ListByBidder(ctx context.Context, email string) ([]domain.Bid, error) {
	return s.listByBidderFn(ctx, email)
}

func (s *stubBidService) ListRequests(ctx context.Context, email string) ([]domain.Bid, error) {
	return s.listRequestsFn(ctx, email)
}

func (s *stubBidService) Place(ctx context.Context, bid domain.Bid) (string, error) {
	return s.placeFn(ctx, bid)
}

func (s *stubBidService) UpdateStatus(ctx context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error) {
	return s.updateStatusFn(ctx, id, status)
}
