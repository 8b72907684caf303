package worker

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/infra/metrics"
	"nest/internal/pkg/backoff"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/commands"
	"nest/internal/usecase/queries"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrQueueFull   = errs.New("delivery queue is full")
	ErrPoolStopped = errs.New("worker pool is not running")
)

const (
	recoveryPageSize = 100
	// Requeue delays grow with the attempt count up to this multiple of
	// RequeueDelay.
	maxDelayFactor = 30
)

type Processor interface {
	Process(ctx context.Context, deliveryID uuid.UUID) (*commands.ProcessResult, error)
}

type PendingLister interface {
	ListByStatus(ctx context.Context, status delivery.Status, cursor *queries.Cursor, limit int) ([]*delivery.Delivery, *queries.Cursor, error)
}

// Pool drains a bounded queue of delivery ids with a fixed number of workers.
// An id is held at most once in the queue or in the retry schedule.
type Pool struct {
	processor Processor
	pending   PendingLister
	cfg       config.WorkerConfig
	metrics   *metrics.Pipeline
	logger    *slog.Logger

	queue chan uuid.UUID

	mu      sync.Mutex
	running bool
	waiting map[uuid.UUID]struct{}
	timers  map[uuid.UUID]*time.Timer
	cancel  context.CancelFunc
	group   *errgroup.Group
}

func NewPool(processor Processor, pending PendingLister, cfg config.WorkerConfig, m *metrics.Pipeline, logger *slog.Logger) *Pool {
	size := cfg.QueueSize
	if size <= 0 {
		size = 256
	}
	if cfg.Count <= 0 {
		cfg.Count = 1
	}
	return &Pool{
		processor: processor,
		pending:   pending,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
		queue:     make(chan uuid.UUID, size),
		waiting:   make(map[uuid.UUID]struct{}),
		timers:    make(map[uuid.UUID]*time.Timer),
	}
}

// Start launches the workers and re-enqueues deliveries left pending by a
// previous run. The pool stops when ctx is cancelled or Stop is called.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return errs.New("worker pool already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	p.running = true
	p.cancel = cancel
	p.group = g
	p.mu.Unlock()

	for i := range p.cfg.Count {
		g.Go(func() error {
			p.work(gctx, i)
			return nil
		})
	}
	if p.pending != nil {
		g.Go(func() error {
			p.recoverPending(gctx)
			return nil
		})
	}
	p.logger.Info("worker pool started", "workers", p.cfg.Count, "queue_size", cap(p.queue))
	return nil
}

// Stop cancels in-flight work and waits for the workers, or until ctx ends.
// Deliveries still queued stay pending in the store and are recovered on the
// next Start.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	cancel, g := p.cancel, p.group
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
	p.mu.Unlock()

	cancel()
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		p.drain()
		p.logger.Info("worker pool stopped")
		return err
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "waiting for workers")
	}
}

// Enqueue schedules a delivery for processing. It never blocks: a full queue
// returns ErrQueueFull and the delivery stays pending in the store.
func (p *Pool) Enqueue(id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return ErrPoolStopped
	}
	if _, ok := p.waiting[id]; ok {
		return nil
	}
	if _, ok := p.timers[id]; ok {
		return nil
	}
	select {
	case p.queue <- id:
		p.waiting[id] = struct{}{}
		p.metrics.QueueDepth(len(p.queue))
		return nil
	default:
		return errs.Wrapf(ErrQueueFull, "delivery %s", id)
	}
}

func (p *Pool) work(ctx context.Context, n int) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-p.queue:
			p.mu.Lock()
			delete(p.waiting, id)
			p.metrics.QueueDepth(len(p.queue))
			p.mu.Unlock()
			p.handle(ctx, n, id)
		}
	}
}

func (p *Pool) handle(ctx context.Context, n int, id uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.ProcessError()
			p.logger.Error("panic while processing delivery",
				"delivery_id", id,
				"worker", n,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	start := time.Now()
	res, err := p.processor.Process(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			// shutting down; the delivery stays pending for the next run
			return
		}
		p.metrics.ProcessError()
		p.logger.Error("delivery processing failed", "delivery_id", id, "worker", n, "error", err)
		p.scheduleRetry(id, 0)
		return
	}

	p.metrics.Processed(res.Kind.String(), res.Status.String(), time.Since(start))
	p.logger.Debug("delivery processed",
		"delivery_id", id,
		"kind", res.Kind,
		"status", res.Status,
		"attempts", res.Attempts,
		"requeue", res.Requeue)
	if res.Requeue {
		p.scheduleRetry(id, res.Attempts)
	}
}

func (p *Pool) scheduleRetry(id uuid.UUID, attempts int) {
	delay := backoff.Delay(attempts-1, p.cfg.RequeueDelay, p.cfg.RequeueDelay*maxDelayFactor)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	if _, ok := p.timers[id]; ok {
		return
	}
	p.timers[id] = time.AfterFunc(delay, func() {
		p.mu.Lock()
		delete(p.timers, id)
		p.mu.Unlock()
		if err := p.Enqueue(id); err != nil && !errs.Is(err, ErrPoolStopped) {
			p.logger.Warn("requeue dropped; delivery stays pending", "delivery_id", id, "error", err)
		}
	})
	p.metrics.Requeued()
}

// recoverPending pages through pending deliveries once at startup, waiting
// for queue space instead of dropping.
func (p *Pool) recoverPending(ctx context.Context) {
	var (
		cursor    *queries.Cursor
		recovered int
	)
	for {
		rows, next, err := p.pending.ListByStatus(ctx, delivery.StatusPending, cursor, recoveryPageSize)
		if err != nil {
			if ctx.Err() == nil {
				p.logger.Error("pending delivery recovery failed", "error", err)
			}
			return
		}
		for _, d := range rows {
			if !p.enqueueWait(ctx, d.ID()) {
				p.logger.Warn("pending delivery recovery interrupted", "recovered", recovered)
				return
			}
			recovered++
		}
		if next == nil {
			break
		}
		cursor = next
	}
	if recovered > 0 {
		p.logger.Info("recovered pending deliveries", "count", recovered)
	}
}

func (p *Pool) enqueueWait(ctx context.Context, id uuid.UUID) bool {
	policy := backoff.NewExponential(p.cfg.RequeueDelay, p.cfg.RequeueDelay*maxDelayFactor)
	for {
		err := p.Enqueue(id)
		if err == nil {
			return true
		}
		if !errs.Is(err, ErrQueueFull) {
			return false
		}
		if !backoff.Sleep(ctx.Done(), policy.NextBackOff()) {
			return false
		}
	}
}

func (p *Pool) drain() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		select {
		case id := <-p.queue:
			delete(p.waiting, id)
		default:
			p.metrics.QueueDepth(0)
			return
		}
	}
}

// Len reports how many deliveries are waiting for a worker.
func (p *Pool) Len() int {
	return len(p.queue)
}
