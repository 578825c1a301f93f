package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	jobs      []domain.Job
	lastQuery domain.ListingQuery
	lastCount map[string]any
	nextID    int
	err       error
}

func (r *stubJobRepo) FindAll(context.Context) ([]domain.Job, error) {
	return r.jobs, r.err
}

func (r *stubJobRepo) FindPage(_ context.Context, q domain.ListingQuery) ([]domain.Job, error) {
	r.lastQuery = q
	if r.err != nil {
		return nil, r.err
	}
	var matched []domain.Job
	for _, j := range r.jobs {
		if c, ok := q.Predicate["category"]; ok && j.Category != c {
			continue
		}
		matched = append(matched, j)
	}
	if q.Skip >= int64(len(matched)) {
		return []domain.Job{}, nil
	}
	end := q.Skip + q.Limit
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[q.Skip:end], nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id {
			clone := j
			return &clone, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *stubJobRepo) FindByBuyer(_ context.Context, email string) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.jobs {
		if j.Buyer != nil && j.Buyer.Email == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	clone := *job
	clone.ID = fmt.Sprintf("job-%d", r.nextID)
	r.jobs = append(r.jobs, clone)
	return clone.ID, nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) (int64, error) {
	for i, j := range r.jobs {
		if j.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubJobRepo) Upsert(_ context.Context, id string, job *domain.Job) (*domain.UpsertResult, error) {
	for i, j := range r.jobs {
		if j.ID == id {
			clone := *job
			clone.ID = id
			r.jobs[i] = clone
			return &domain.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	clone := *job
	clone.ID = id
	r.jobs = append(r.jobs, clone)
	return &domain.UpsertResult{UpsertedID: id}, nil
}

func (r *stubJobRepo) Count(_ context.Context, predicate map[string]any) (int64, error) {
	r.lastCount = predicate
	var n int64
	for _, j := range r.jobs {
		if c, ok := predicate["category"]; ok && j.Category != c {
			continue
		}
		n++
	}
	return n, nil
}

type stubBidRepo struct {
	mu     sync.Mutex
	bids   []domain.Bid
	nextID int
	err    error
}

func (r *stubBidRepo) FindAll(context.Context) ([]domain.Bid, error) {
	return r.bids, r.err
}

func (r *stubBidRepo) FindByBidder(_ context.Context, email string) ([]domain.Bid, error) {
	var out []domain.Bid
	for _, b := range r.bids {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBidRepo) FindByBuyer(_ context.Context, email string) ([]domain.Bid, error) {
	var out []domain.Bid
	for _, b := range r.bids {
		if b.Buyer != nil && b.Buyer.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBidRepo) Exists(_ context.Context, email, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for _, b := range r.bids {
		if b.Email == email && b.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBidRepo) Create(_ context.Context, bid *domain.Bid) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *bid
	clone.ID = fmt.Sprintf("bid-%d", r.nextID)
	r.bids = append(r.bids, clone)
	return clone.ID, nil
}

func (r *stubBidRepo) UpdateStatus(_ context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error) {
	for i, b := range r.bids {
		if b.ID == id {
			modified := int64(0)
			if b.Status != status {
				modified = 1
			}
			r.bids[i].Status = status
			return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
		}
	}
	return &domain.UpdateResult{}, nil
}

type stubDenylist struct {
	revoked map[string]time.Time
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[id] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}
