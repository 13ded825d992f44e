package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/provider"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/ratelimiter"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
)

// Worker is a single goroutine that continuously pulls items from the
// importance queue, applies per-category rate limiting, delivers via the push
// gateway, and handles retry scheduling on failure.
type Worker struct {
	id      int
	q       *queue.ImportanceQueue
	repo    repository.ReminderRepository
	prov    provider.Provider
	limiter *ratelimiter.CategoryLimiters
	backoff []time.Duration
	logger  *zap.Logger

	// Hooks for metrics — injected by the pool so the worker stays metrics-agnostic.
	onSent   func(category domain.Category, latency time.Duration)
	onFailed func(category domain.Category)
}

// NewWorker constructs a worker. onSent and onFailed are optional (nil = no-op).
func NewWorker(
	id int,
	q *queue.ImportanceQueue,
	repo repository.ReminderRepository,
	prov provider.Provider,
	limiter *ratelimiter.CategoryLimiters,
	backoff []time.Duration,
	logger *zap.Logger,
	onSent func(domain.Category, time.Duration),
	onFailed func(domain.Category),
) *Worker {
	if onSent == nil {
		onSent = func(domain.Category, time.Duration) {}
	}
	if onFailed == nil {
		onFailed = func(domain.Category) {}
	}
	return &Worker{
		id: id, q: q, repo: repo, prov: prov,
		limiter: limiter, backoff: backoff, logger: logger,
		onSent: onSent, onFailed: onFailed,
	}
}

// Run blocks until ctx is cancelled, processing one queue item per iteration.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("worker started", zap.Int("id", w.id))
	for {
		item, ok := w.q.Dequeue(ctx)
		if !ok {
			w.logger.Info("worker stopping", zap.Int("id", w.id))
			return
		}
		w.process(ctx, item)
	}
}

func (w *Worker) process(ctx context.Context, item queue.Item) {
	start := time.Now()
	log := w.logger.With(
		zap.String("reminder_id", item.ReminderID),
		zap.String("category", string(item.Category)),
	)

	r, err := w.repo.GetByID(ctx, item.ReminderID)
	if err != nil {
		log.Error("failed to fetch reminder", zap.Error(err))
		return
	}

	// A cancellation between enqueue and processing time is valid; skip silently.
	if r.Status == domain.StatusCancelled {
		log.Debug("reminder was cancelled before processing")
		return
	}

	if err := w.repo.UpdateStatus(ctx, r.ID, domain.StatusProcessing); err != nil {
		log.Error("failed to mark as processing", zap.Error(err))
		return
	}

	// Block here until the per-category rate limiter grants a token.
	if err := w.limiter.Wait(ctx, r.Category); err != nil {
		// ctx cancelled while waiting — worker is shutting down.
		return
	}

	resp, err := w.prov.Send(ctx, r)
	elapsed := time.Since(start)

	if err != nil {
		log.Warn("gateway send failed",
			zap.Error(err),
			zap.Int("retry_count", r.RetryCount),
		)
		w.handleFailure(ctx, r, err)
		w.onFailed(r.Category)
		return
	}

	now := time.Now().UTC()
	if err := w.repo.MarkSent(ctx, r.ID, resp.MessageID, now); err != nil {
		log.Error("failed to mark as sent", zap.Error(err))
		return
	}

	// Update broadcast counters asynchronously if this reminder belongs to one.
	if r.BroadcastID != nil {
		go func() {
			if err := w.repo.UpdateBroadcastCounts(context.Background(), *r.BroadcastID); err != nil {
				log.Warn("failed to update broadcast counts", zap.Error(err))
			}
		}()
	}

	w.onSent(r.Category, elapsed)
	log.Info("reminder sent", zap.String("provider_msg_id", resp.MessageID), zap.Duration("latency", elapsed))
}

// handleFailure either schedules a retry (if retries remain) or marks the
// reminder as permanently failed.
//
// Retry schedule uses exponential backoff:
//
//	attempt 0 → backoff[0]  (default 5 s)
//	attempt 1 → backoff[1]  (default 30 s)
//	attempt 2 → backoff[2]  (default 120 s)
//	attempt N ≥ len(backoff) → last backoff entry (clamped)
func (w *Worker) handleFailure(ctx context.Context, r *domain.Reminder, sendErr error) {
	if r.RetryCount >= r.MaxRetries {
		if err := w.repo.MarkFailed(ctx, r.ID, sendErr.Error()); err != nil {
			w.logger.Error("failed to mark reminder as failed",
				zap.String("id", r.ID), zap.Error(err))
		}
		return
	}

	idx := r.RetryCount
	if idx >= len(w.backoff) {
		idx = len(w.backoff) - 1
	}
	nextRetry := time.Now().UTC().Add(w.backoff[idx])

	if err := w.repo.ScheduleRetry(ctx, r.ID, r.RetryCount+1, nextRetry, sendErr.Error()); err != nil {
		w.logger.Error("failed to schedule retry",
			zap.String("id", r.ID), zap.Error(err))
	}
}
