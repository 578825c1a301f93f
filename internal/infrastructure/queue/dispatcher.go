package queue

import (
	"context"
	"errors"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Place once the dispatcher's workers have exited.
var ErrStopped = errors.New("bid dispatcher stopped")

type placeResult struct {
	id  string
	err error
}

type placeRequest struct {
	ctx   context.Context
	bid   domain.Bid
	reply chan placeResult
}

// Dispatcher routes bid placements to a fixed set of workers using consistent
// hashing on (bidder email, job title). All placements for one pair run on
// the same worker, one at a time, so the duplicate check and the insert cannot
// interleave within this process.
type Dispatcher struct {
	workers []chan placeRequest
	placer  ports.BidPlacer
	log     zerolog.Logger
	done    chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, placer ports.BidPlacer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan placeRequest, numWorkers),
		placer:  placer,
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan placeRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.done)
	}()
}

// Place hands the bid to the worker that owns its key and waits for the
// outcome. It returns early if ctx is cancelled or the dispatcher stops.
func (d *Dispatcher) Place(ctx context.Context, bid domain.Bid) (string, error) {
	req := placeRequest{ctx: ctx, bid: bid, reply: make(chan placeResult, 1)}

	select {
	case d.workers[d.shardIndex(bid.Key())] <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-d.done:
		return "", ErrStopped
	}

	select {
	case res := <-req.reply:
		return res.id, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-d.done:
		return "", ErrStopped
	}
}

// shardIndex maps a bid key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan placeRequest) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-ch:
			if req.ctx.Err() != nil {
				req.reply <- placeResult{err: req.ctx.Err()}
				continue
			}
			bidID, err := d.placer.Place(req.ctx, req.bid)
			if err != nil && !errors.Is(err, domain.ErrDuplicateBid) {
				d.log.Error().Err(err).
					Str("email", req.bid.Email).
					Str("title", req.bid.Title).
					Int("worker_id", id).
					Msg("bid placement failed")
			}
			req.reply <- placeResult{id: bidID, err: err}
		}
	}
}
