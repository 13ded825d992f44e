package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
)

// SchedulerWorker polls the database for reminders whose scheduled_at has
// passed and enqueues them for immediate delivery.
//
// Reminders created with a future fire time (a due date minus its lead, or
// the next occurrence of a wall-clock time) are stored with status=scheduled
// and bypass the queue until their time arrives.
type SchedulerWorker struct {
	repo     repository.ReminderRepository
	q        *queue.ImportanceQueue
	interval time.Duration
	logger   *zap.Logger
}

func NewSchedulerWorker(
	repo repository.ReminderRepository,
	q *queue.ImportanceQueue,
	interval time.Duration,
	logger *zap.Logger,
) *SchedulerWorker {
	return &SchedulerWorker{repo: repo, q: q, interval: interval, logger: logger}
}

// Run ticks every interval and enqueues any reminders that are now due.
// Stops cleanly when ctx is cancelled.
func (sw *SchedulerWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	sw.logger.Info("scheduler worker started", zap.Duration("interval", sw.interval))

	for {
		select {
		case <-ctx.Done():
			sw.logger.Info("scheduler worker stopping")
			return
		case <-ticker.C:
			sw.poll(ctx)
		}
	}
}

func (sw *SchedulerWorker) poll(ctx context.Context) {
	reminders, err := sw.repo.FindDueScheduled(ctx)
	if err != nil {
		sw.logger.Error("scheduler poll error", zap.Error(err))
		return
	}

	for _, r := range reminders {
		if err := sw.q.Enqueue(queue.Item{
			ReminderID: r.ID,
			Category:   r.Category,
			Importance: r.Importance,
		}); err != nil {
			sw.logger.Warn("could not enqueue scheduled reminder",
				zap.String("id", r.ID), zap.Error(err))
			continue
		}

		if err := sw.repo.UpdateStatus(ctx, r.ID, domain.StatusQueued); err != nil {
			sw.logger.Error("failed to update status after scheduling",
				zap.String("id", r.ID), zap.Error(err))
		}
	}

	if len(reminders) > 0 {
		sw.logger.Info("enqueued due scheduled reminders", zap.Int("count", len(reminders)))
	}
}
