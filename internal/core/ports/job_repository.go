package ports

import (
	"context"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	FindAll(ctx context.Context) ([]domain.Job, error)
	// FindPage runs a composed listing query (predicate, sort, skip, limit).
	FindPage(ctx context.Context, q domain.ListingQuery) ([]domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindByBuyer(ctx context.Context, email string) ([]domain.Job, error)
	Create(ctx context.Context, job *domain.Job) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
	// Upsert sets the supplied fields on the job with the given id, inserting
	// it when no such job exists.
	Upsert(ctx context.Context, id string, job *domain.Job) (*domain.UpsertResult, error)
	Count(ctx context.Context, predicate map[string]any) (int64, error)
}
