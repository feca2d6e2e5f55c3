package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	httpErrors      *prometheus.CounterVec
	ticketsCreated  prometheus.Counter
	statusChanges   *prometheus.CounterVec
	remindersQueued prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_request_errors_total",
			Help: "Total HTTP errors by path, method and error code.",
		}, []string{"path", "method", "code"}),
		ticketsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Tickets created through intake.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_status_transitions_total",
			Help: "Ticket status transitions by target status.",
		}, []string{"to"}),
		remindersQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticket_reminders_queued_total",
			Help: "Stale-ticket reminders emitted by the sweep job.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.httpErrors,
		m.ticketsCreated,
		m.statusChanges,
		m.remindersQueued,
	)
	return m
}

// RecordRequest observes a completed HTTP request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.httpErrors.WithLabelValues(path, method, code).Inc()
}

// TicketCreated counts an intake-created ticket.
func (m *Metrics) TicketCreated() {
	if m == nil {
		return
	}
	m.ticketsCreated.Inc()
}

// StatusChanged counts a lifecycle transition.
func (m *Metrics) StatusChanged(to string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(to).Inc()
}

// ReminderQueued counts a stale-ticket reminder.
func (m *Metrics) ReminderQueued() {
	if m == nil {
		return
	}
	m.remindersQueued.Inc()
}
