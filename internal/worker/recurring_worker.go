package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// fireTimeout bounds a single recurring firing so a stuck insert cannot pile
// up goroutines behind the cron runner.
const fireTimeout = 30 * time.Second

// RecurringWorker owns a cron runner and keeps its entries in sync with the
// recurring_reminders table. Definitions are reloaded on an interval and
// diffed against the registered entries, so standing reminders created before
// a restart — or on another instance — are picked up without coordination.
type RecurringWorker struct {
	repo     repository.ReminderRepository
	svc      *service.ReminderService
	cron     *cron.Cron
	interval time.Duration
	logger   *zap.Logger

	// onFired is optional (nil = no-op); wired to the recurring metrics counter.
	onFired func(domain.Category)

	entries map[string]cron.EntryID // recurring id -> registered entry
	exprs   map[string]string       // recurring id -> cron expr at registration
}

func NewRecurringWorker(
	repo repository.ReminderRepository,
	svc *service.ReminderService,
	interval time.Duration,
	logger *zap.Logger,
	onFired func(domain.Category),
) *RecurringWorker {
	if onFired == nil {
		onFired = func(domain.Category) {}
	}
	return &RecurringWorker{
		repo:     repo,
		svc:      svc,
		cron:     cron.New(),
		interval: interval,
		logger:   logger,
		onFired:  onFired,
		entries:  make(map[string]cron.EntryID),
		exprs:    make(map[string]string),
	}
}

// Run starts the cron runner, syncs immediately, then re-syncs every interval
// until ctx is cancelled. On shutdown it waits for in-flight firings.
func (rw *RecurringWorker) Run(ctx context.Context) {
	rw.logger.Info("recurring worker started", zap.Duration("reload_interval", rw.interval))
	rw.cron.Start()
	rw.sync(ctx)

	ticker := time.NewTicker(rw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.logger.Info("recurring worker stopping")
			<-rw.cron.Stop().Done()
			return
		case <-ticker.C:
			rw.sync(ctx)
		}
	}
}

// sync reconciles the cron entries with the current table contents:
// new definitions are registered, changed specs re-registered, and deleted
// definitions removed.
func (rw *RecurringWorker) sync(ctx context.Context) {
	defs, err := rw.repo.ListRecurring(ctx)
	if err != nil {
		rw.logger.Error("recurring reload error", zap.Error(err))
		return
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		seen[def.ID] = true

		if expr, ok := rw.exprs[def.ID]; ok {
			if expr == def.CronExpr {
				continue
			}
			rw.cron.Remove(rw.entries[def.ID])
		}

		rw.register(def)
	}

	for id, entryID := range rw.entries {
		if !seen[id] {
			rw.cron.Remove(entryID)
			delete(rw.entries, id)
			delete(rw.exprs, id)
			rw.logger.Info("recurring reminder unregistered", zap.String("id", id))
		}
	}
}

func (rw *RecurringWorker) register(def *domain.RecurringReminder) {
	d := *def // capture a copy; the slice entry is reused across reloads
	entryID, err := rw.cron.AddFunc(d.CronExpr, func() {
		rw.fire(&d)
	})
	if err != nil {
		rw.logger.Error("could not register recurring reminder",
			zap.String("id", d.ID), zap.String("cron", d.CronExpr), zap.Error(err))
		return
	}

	rw.entries[def.ID] = entryID
	rw.exprs[def.ID] = def.CronExpr
	rw.logger.Info("recurring reminder registered",
		zap.String("id", def.ID), zap.String("cron", def.CronExpr))
}

func (rw *RecurringWorker) fire(def *domain.RecurringReminder) {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	r, err := rw.svc.CreateFromRecurring(ctx, def)
	if err != nil {
		rw.logger.Error("recurring firing failed",
			zap.String("recurring_id", def.ID), zap.Error(err))
		return
	}

	rw.onFired(def.Category)
	rw.logger.Info("recurring reminder fired",
		zap.String("recurring_id", def.ID), zap.String("reminder_id", r.ID))
}
