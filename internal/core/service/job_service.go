package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

type JobService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	return s.repo.FindAll(ctx)
}

// Page returns one page of jobs. Page is 1-based; the caller is expected to
// have validated Page and Size.
func (s *JobService) Page(ctx context.Context, input ports.ListJobsInput) ([]domain.Job, error) {
	q := domain.BuildListingQuery(input.Filter, input.Sort, input.Page, input.Size)

	s.logger.Debug().
		Str("filter", input.Filter).
		Str("sort", input.Sort).
		Int64("skip", q.Skip).
		Int64("limit", q.Limit).
		Msg("listing jobs")

	return s.repo.FindPage(ctx, q)
}

// Count returns the number of jobs matching the same category restriction
// Page applies.
func (s *JobService) Count(ctx context.Context, filter string) (int64, error) {
	return s.repo.Count(ctx, domain.CategoryPredicate(filter))
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *JobService) ListByBuyer(ctx context.Context, email string) ([]domain.Job, error) {
	return s.repo.FindByBuyer(ctx, email)
}

func (s *JobService) Create(ctx context.Context, job *domain.Job) (string, error) {
	job.ID = ""
	id, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return "", err
	}

	s.logger.Info().Str("job_id", id).Str("category", job.Category).Msg("job created")
	return id, nil
}

func (s *JobService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Str("job_id", id).Int64("deleted", n).Msg("job deleted")
	return n, nil
}

func (s *JobService) Upsert(ctx context.Context, id string, job *domain.Job) (*domain.UpsertResult, error) {
	job.ID = ""
	res, err := s.repo.Upsert(ctx, id, job)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("job_id", id).Int64("modified", res.ModifiedCount).Bool("inserted", res.UpsertedID != "").Msg("job upserted")
	return res, nil
}
