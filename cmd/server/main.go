package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/api"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/config"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/db"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/metrics"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/provider"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/ratelimiter"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/store"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- unread source (optional) ----
	// Without a Firestore project the unread endpoint reports zero rather
	// than failing; chat badges are a courtesy, not a dependency.
	var unread store.UnreadSource = store.Disabled{}
	if cfg.FirestoreProjectID != "" {
		fsClient, err := firestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			logger.Fatal("failed to create firestore client", zap.Error(err))
		}
		defer fsClient.Close()
		unread = store.NewFirestoreUnread(fsClient, cfg.UnreadCollection)
		logger.Info("firestore unread source enabled",
			zap.String("project", cfg.FirestoreProjectID),
			zap.String("collection", cfg.UnreadCollection))
	}

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	q := queue.New()
	repo := repository.NewPgReminderRepository(pool)
	prov := provider.NewGatewayProvider(cfg.PushGatewayURL, cfg.PushTimeout)
	limiter := ratelimiter.New(cfg.RateLimit)
	svc := service.NewReminderService(repo, q, unread, cfg.DefaultLead, logger)

	// ---- background workers ----
	// Context for all background goroutines; cancelled on shutdown signal.
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	onSent, onFailed := m.WorkerHooks()
	deliveryPool := worker.NewPool(cfg, q, repo, prov, limiter, logger, worker.MetricHooks{
		OnSent:   onSent,
		OnFailed: onFailed,
	})
	deliveryPool.Start(workerCtx)

	retryW := worker.NewRetryWorker(repo, q, cfg.RetryInterval, logger)
	go retryW.Run(workerCtx)

	schedulerW := worker.NewSchedulerWorker(repo, q, cfg.SchedulerInterval, logger)
	go schedulerW.Run(workerCtx)

	recurringW := worker.NewRecurringWorker(repo, svc, cfg.RecurringReload, logger, m.OnRecurringFired)
	go recurringW.Run(workerCtx)

	// Sample queue depths into the Prometheus gauges.
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				high, def, low := q.Depths()
				m.QueueDepthHigh.Set(float64(high))
				m.QueueDepthDefault.Set(float64(def))
				m.QueueDepthLow.Set(float64(low))
			}
		}
	}()

	// ---- HTTP server ----
	router := api.NewRouter(svc, q, reg, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Signal all workers to stop processing new queue items.
	cancelWorkers()

	// 3. Wait for in-flight workers to finish their current reminder.
	deliveryPool.Wait()

	logger.Info("server stopped cleanly")
}
