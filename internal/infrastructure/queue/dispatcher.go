package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers sharded on the
// account id, so the events of one account are persisted in order.
// Record never blocks: an event for a full shard is dropped and counted.
type Dispatcher struct {
	workers []chan ports.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers shards of buffer slots
// each. Non-positive values fall back to the defaults.
func NewDispatcher(numWorkers, buffer int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers write with a context detached
// from ctx's cancellation so Close can drain what is already queued.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Record enqueues event on the shard owning its account. Safe for concurrent
// use; events recorded after Close are dropped.
func (d *Dispatcher) Record(event ports.AuditEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(event, "dispatcher closed")
		return
	}

	idx := d.shardIndex(event.AccountID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(event, "queue full")
	}
}

// Close stops accepting events and waits until every queued event is written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID int64) int {
	n := int64(len(d.workers))
	idx := accountID % n
	if idx < 0 {
		idx += n
	}
	return int(idx)
}

func (d *Dispatcher) drop(event ports.AuditEvent, reason string) {
	metrics.AuditDroppedTotal.Inc()
	d.log.Warn().
		Int64("account_id", event.AccountID).
		Int64("actor_id", event.ActorID).
		Str("action", event.Action).
		Str("reason", reason).
		Msg("audit event dropped")
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for event := range ch {
		depth.Set(float64(len(ch)))

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := d.repo.Insert(wctx, event)
		cancel()
		if err != nil {
			metrics.AuditWriteErrorsTotal.Inc()
			d.log.Error().Err(err).
				Int64("account_id", event.AccountID).
				Str("action", event.Action).
				Int("worker_id", id).
				Msg("audit write failed")
		}
	}
}
