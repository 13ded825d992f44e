package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	RemindersSent     *prometheus.CounterVec
	RemindersFailed   *prometheus.CounterVec
	ReminderLatency   *prometheus.HistogramVec
	QueueDepthHigh    prometheus.Gauge
	QueueDepthDefault prometheus.Gauge
	QueueDepthLow     prometheus.Gauge
	RecurringFirings  *prometheus.CounterVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RemindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminders delivered to the push gateway.",
		}, []string{"category"}),

		RemindersFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminders_failed_total",
			Help: "Total number of permanently failed reminders (retries exhausted).",
		}, []string{"category"}),

		ReminderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reminder_processing_seconds",
			Help:    "End-to-end processing latency from dequeue to gateway ack.",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),

		QueueDepthHigh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "queue_depth_high",
			Help: "Current number of items in the high-importance queue.",
		}),
		QueueDepthDefault: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "queue_depth_default",
			Help: "Current number of items in the default-importance queue.",
		}),
		QueueDepthLow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "queue_depth_low",
			Help: "Current number of items in the low-importance queue.",
		}),

		RecurringFirings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recurring_firings_total",
			Help: "Total number of reminders created by the recurring runner.",
		}, []string{"category"}),
	}

	reg.MustRegister(
		m.RemindersSent,
		m.RemindersFailed,
		m.ReminderLatency,
		m.QueueDepthHigh,
		m.QueueDepthDefault,
		m.QueueDepthLow,
		m.RecurringFirings,
	)

	return m
}

// WorkerHooks returns the metric callback functions expected by worker.MetricHooks.
// Centralises the prometheus observation calls so worker.go stays import-free.
func (m *Metrics) WorkerHooks() (
	onSent func(domain.Category, time.Duration),
	onFailed func(domain.Category),
) {
	onSent = func(c domain.Category, latency time.Duration) {
		m.RemindersSent.WithLabelValues(string(c)).Inc()
		m.ReminderLatency.WithLabelValues(string(c)).Observe(latency.Seconds())
	}
	onFailed = func(c domain.Category) {
		m.RemindersFailed.WithLabelValues(string(c)).Inc()
	}
	return
}

// OnRecurringFired records one firing of a recurring definition.
func (m *Metrics) OnRecurringFired(c domain.Category) {
	m.RecurringFirings.WithLabelValues(string(c)).Inc()
}
