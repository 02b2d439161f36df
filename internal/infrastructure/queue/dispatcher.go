package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clientlens/clientlens-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ScopeWarmer preloads one user's client scope into the cache.
type ScopeWarmer interface {
	Warm(ctx context.Context, userID int64) error
}

// Dispatcher routes warm-up requests to a fixed set of workers using
// consistent hashing on the user id, so one user is never warmed by two
// workers at once.
type Dispatcher struct {
	workers []chan int64
	warmer  ScopeWarmer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, warmer ScopeWarmer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan int64, numWorkers),
		warmer:  warmer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan int64, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close drains their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a user to the worker responsible for it. The call blocks
// once that worker's buffer is full. It must not be called after Close.
func (d *Dispatcher) Enqueue(userID int64) {
	idx := d.shardIndex(userID)
	d.workers[idx] <- userID
	metrics.WarmQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
}

// EnqueueBatch enqueues every user in order.
func (d *Dispatcher) EnqueueBatch(userIDs []int64) {
	for _, id := range userIDs {
		d.Enqueue(id)
	}
}

// Close stops accepting work and waits for queued users to be processed.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan int64) {
	defer d.wg.Done()
	depth := metrics.WarmQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.warmer.Warm(ctx, userID); err != nil {
				d.log.Error().Err(err).
					Int64("user_id", userID).
					Int("worker_id", id).
					Msg("scope warm-up failed")
				continue
			}
			d.log.Debug().Int64("user_id", userID).Int("worker_id", id).Msg("scope warmed")
		}
	}
}
