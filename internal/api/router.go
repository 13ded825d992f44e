package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/api/handler"
	apimw "github.com/Samuel-J-Mathew/chorewarsOfficial/internal/api/middleware"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	svc *service.ReminderService,
	q *queue.ImportanceQueue,
	reg prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)          // recover panics, return 500
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body
	r.Use(apimw.CorrelationID)      // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))

	// --- handler instances ---
	rh := handler.NewReminderHandler(svc, logger)
	bh := handler.NewBroadcastHandler(svc, logger)
	rch := handler.NewRecurringHandler(svc, logger)
	th := handler.NewTapHandler(svc)
	uh := handler.NewUnreadHandler(svc, logger)
	ch := handler.NewCategoryHandler()
	mh := handler.NewMetricsHandler(q)
	hh := handler.NewHealthHandler()

	// --- routes ---
	r.Get("/health", hh.Health)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// Reminders — note: /broadcast must be registered before /{id}
		// so chi does not treat the literal string "broadcast" as an ID.
		r.Post("/reminders/broadcast", bh.CreateBroadcast)
		r.Post("/reminders", rh.Create)
		r.Get("/reminders", rh.List)
		r.Get("/reminders/{id}", rh.GetByID)
		r.Delete("/reminders/{id}", rh.Cancel)

		// Bulk cancel: the plugin's cancel-all analogue.
		r.Delete("/members/{memberID}/reminders", rh.CancelAll)

		// Broadcasts
		r.Get("/broadcasts/{id}", bh.GetBroadcast)

		// Recurring definitions
		r.Post("/recurring", rch.Create)
		r.Get("/recurring", rch.List)
		r.Delete("/recurring/{id}", rch.Delete)
		r.Post("/reports/weekly", rch.ScheduleWeeklyReport)

		// Tap payload routing and unread badge count
		r.Post("/taps", th.Resolve)
		r.Get("/unread/{memberID}", uh.UnreadCount)

		// Channel registry the app mirrors on first launch
		r.Get("/categories", ch.List)

		// JSON metrics snapshot
		r.Get("/metrics", mh.GetMetrics)
	})

	return r
}
