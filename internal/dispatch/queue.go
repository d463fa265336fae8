package dispatch

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/platform/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrQueueClosed is returned by Start on a queue that was already closed.
var ErrQueueClosed = errors.New("aggregate queue closed")

// Queue fans tasks out to a fixed set of lanes. All tasks of one (user, month)
// key hash to the same lane, so they are applied in dispatch order.
type Queue struct {
	applier portssvc.AggregateApplier
	logger  *slog.Logger
	lanes   []chan domain.AggregateTask

	mu      sync.RWMutex
	closed  bool
	started bool
	group   *errgroup.Group
}

var _ portssvc.AggregateDispatcher = (*Queue)(nil)

// QueueOption configures a Queue.
type QueueOption func(*queueConfig)

type queueConfig struct {
	workers  int
	capacity int
	logger   *slog.Logger
}

// WithWorkers sets the number of lanes.
func WithWorkers(n int) QueueOption {
	return func(c *queueConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithCapacity sets the buffer size of each lane.
func WithCapacity(n int) QueueOption {
	return func(c *queueConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

func WithLogger(logger *slog.Logger) QueueOption {
	return func(c *queueConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewQueue builds a queue; call Start before dispatching.
func NewQueue(applier portssvc.AggregateApplier, opts ...QueueOption) *Queue {
	cfg := queueConfig{workers: 4, capacity: 256, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	lanes := make([]chan domain.AggregateTask, cfg.workers)
	for i := range lanes {
		lanes[i] = make(chan domain.AggregateTask, cfg.capacity)
	}
	return &Queue{applier: applier, logger: cfg.logger, lanes: lanes}
}

// Start launches one goroutine per lane. ctx is the parent of every apply call.
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	if q.started {
		return nil
	}
	q.started = true

	g := &errgroup.Group{}
	base := context.WithoutCancel(ctx)
	for i, lane := range q.lanes {
		laneLogger := q.logger.With(slog.Int("lane", i))
		g.Go(func() error {
			for task := range lane {
				metrics.AggregateQueueDepth.Dec()
				applyTask(base, q.applier, laneLogger, task)
			}
			return nil
		})
	}
	q.group = g
	return nil
}

// Dispatch enqueues without blocking. A full lane or a closed queue drops the
// task with a log line; Reconcile repairs the resulting drift.
func (q *Queue) Dispatch(_ context.Context, task domain.AggregateTask) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.drop(task, "queue closed")
		return
	}
	select {
	case q.lanes[q.laneFor(task)] <- task:
		metrics.AggregateQueueDepth.Inc()
	default:
		q.drop(task, "lane full")
	}
}

func (q *Queue) drop(task domain.AggregateTask, reason string) {
	metrics.AggregateTasks.WithLabelValues("dropped").Inc()
	q.logger.Warn("Dropped monthly aggregate task",
		slog.String("reason", reason),
		slog.String("user_id", task.UserID),
		slog.String("month", task.Month),
		slog.String("operation", string(task.Operation)))
}

func (q *Queue) laneFor(task domain.AggregateTask) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(task.Key()))
	return int(h.Sum32() % uint32(len(q.lanes)))
}

// Close stops intake and waits for queued tasks to drain or ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	for _, lane := range q.lanes {
		close(lane)
	}
	g := q.group
	q.mu.Unlock()

	if g == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
