package ports

import (
	"context"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

// ListJobsInput carries the raw listing parameters; Page is 1-based.
type ListJobsInput struct {
	Filter string
	Sort   string
	Page   int
	Size   int
}

// JobService defines use-case operations for jobs.
type JobService interface {
	List(ctx context.Context) ([]domain.Job, error)
	Page(ctx context.Context, input ListJobsInput) ([]domain.Job, error)
	Count(ctx context.Context, filter string) (int64, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListByBuyer(ctx context.Context, email string) ([]domain.Job, error)
	Create(ctx context.Context, job *domain.Job) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
	Upsert(ctx context.Context, id string, job *domain.Job) (*domain.UpsertResult, error)
}
