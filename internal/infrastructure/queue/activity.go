package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/smallerp/erp-gateway/internal/api/metrics"
	"github.com/smallerp/erp-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActivityRecorder applies last-active timestamp updates off the request
// path. Updates are sharded by user id so each user's writes stay ordered,
// and a full channel drops the update rather than blocking a request — the
// timestamp is advisory, not authoritative.
type ActivityRecorder struct {
	workers []chan string
	users   ports.UserRepository
	log     zerolog.Logger
}

// NewActivityRecorder creates an ActivityRecorder with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewActivityRecorder(numWorkers int, users ports.UserRepository, log zerolog.Logger) *ActivityRecorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &ActivityRecorder{
		workers: make([]chan string, numWorkers),
		users:   users,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan string, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *ActivityRecorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues a "user was seen" notification. Never blocks the caller.
func (r *ActivityRecorder) Record(userID string) {
	if userID == "" {
		return
	}
	idx := r.shardIndex(userID)
	select {
	case r.workers[idx] <- userID:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
	default:
		// Channel full; drop.
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (r *ActivityRecorder) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *ActivityRecorder) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := r.users.UpdateLastActive(ctx, userID, time.Now().UTC()); err != nil {
				r.log.Error().Err(err).
					Str("user_id", userID).
					Int("worker_id", id).
					Msg("last-active update failed")
			}
		}
	}
}
