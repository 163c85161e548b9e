package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/adspro/autopilot/internal/observability"
	"github.com/google/uuid"
)

// Queue is the FIFO buffer of rule ids awaiting execution.
type Queue interface {
	// Enqueue appends a rule id.
	Enqueue(ctx context.Context, ruleID uuid.UUID) error
	// Dequeue blocks until an id is available or the context ends.
	Dequeue(ctx context.Context) (uuid.UUID, error)
	// Len reports the number of queued ids.
	Len(ctx context.Context) (int, error)
	Close() error
}

// QueueWorker drains the execution queue with a single consumer
// goroutine: at most one execution is in flight at any instant, and
// queued ids run strictly FIFO. A failing rule never blocks the
// drain; its error is logged and the worker moves on.
type QueueWorker struct {
	queue    Queue
	executor *Executor
	logger   *slog.Logger
	metrics  *observability.EngineMetrics

	// backoff after queue errors so a broken backend does not spin.
	errBackoff time.Duration
}

// NewQueueWorker creates a queue worker. Metrics may be nil.
func NewQueueWorker(queue Queue, executor *Executor, logger *slog.Logger, metrics *observability.EngineMetrics) *QueueWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueWorker{
		queue:      queue,
		executor:   executor,
		logger:     logger,
		metrics:    metrics,
		errBackoff: time.Second,
	}
}

// Run drains the queue until the context is cancelled. It is the
// engine's only concurrency-control mechanism: callers start exactly
// one Run goroutine per queue.
func (w *QueueWorker) Run(ctx context.Context) error {
	w.logger.Info("queue worker started")
	for {
		ruleID, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				w.logger.Info("queue worker stopped")
				return nil
			}
			w.logger.Error("queue dequeue failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.errBackoff):
			}
			continue
		}

		w.observeDepth(ctx)

		execution, err := w.executor.Execute(ctx, ruleID, domain.TriggerData{})
		if err != nil {
			w.logger.Error("queued rule execution failed",
				"rule_id", ruleID,
				"error", err,
			)
			continue
		}
		w.logger.Debug("queued rule executed",
			"rule_id", ruleID,
			"execution_id", execution.ID,
			"status", execution.Status,
		)
	}
}

func (w *QueueWorker) observeDepth(ctx context.Context) {
	if w.metrics == nil {
		return
	}
	if depth, err := w.queue.Len(ctx); err == nil {
		w.metrics.QueueDepth.Set(float64(depth))
	}
}
