package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/config"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/provider"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/ratelimiter"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
)

// MetricHooks carries the metric callback functions injected by main.
// Using a struct keeps the pool constructor signature clean.
type MetricHooks struct {
	OnSent   func(category domain.Category, latency time.Duration)
	OnFailed func(category domain.Category)
}

// Pool manages the lifecycle of all delivery workers.
// All workers share the same importance queue — the queue's double-select
// pattern handles ordering internally.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
}

// NewPool creates cfg.DeliveryWorkers identical workers. The category
// distinction is handled by the rate limiter and the reminder's Category field.
func NewPool(
	cfg *config.Config,
	q *queue.ImportanceQueue,
	repo repository.ReminderRepository,
	prov provider.Provider,
	limiter *ratelimiter.CategoryLimiters,
	logger *zap.Logger,
	hooks MetricHooks,
) *Pool {
	workers := make([]*Worker, cfg.DeliveryWorkers)

	for i := range workers {
		workers[i] = NewWorker(
			i, q, repo, prov, limiter,
			cfg.RetryBackoff,
			logger.With(zap.Int("worker_id", i)),
			hooks.OnSent,
			hooks.OnFailed,
		)
	}

	return &Pool{workers: workers}
}

// Start launches all workers as goroutines.
// The provided ctx is forwarded to every worker; cancelling it
// triggers a graceful shutdown of the entire pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Wait blocks until every worker has returned after ctx is cancelled.
// Call this after cancelling the context to ensure in-flight reminders finish.
func (p *Pool) Wait() {
	p.wg.Wait()
}
