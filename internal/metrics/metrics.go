// Package metrics holds the prometheus collectors of the ticketing core.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "event_gate"

type Metrics struct {
	holds           *prometheus.CounterVec
	holdsClosed     *prometheus.CounterVec
	ticketsIssued   prometheus.Counter
	checkins        *prometheus.CounterVec
	sweepDuration   prometheus.Histogram
	journalFailures *prometheus.CounterVec
	journalBacklog  prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		holds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hold_requests_total",
				Help:      "Hold requests by outcome",
			},
			[]string{"outcome"},
		),
		holdsClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "holds_closed_total",
				Help:      "Holds that left the pending state, by final status",
			},
			[]string{"status"},
		),
		ticketsIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tickets_issued_total",
				Help:      "Tickets created from committed holds",
			},
		),
		checkins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkins_total",
				Help:      "Gate redemption attempts by outcome",
			},
			[]string{"outcome"},
		),
		sweepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "expire_sweep_duration_seconds",
				Help:      "Duration of hold expiry sweeps",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		journalFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journal_write_failures_total",
				Help:      "Failed persistence attempts by record kind",
			},
			[]string{"kind"},
		),
		journalBacklog: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "journal_backlog",
				Help:      "Records waiting to be persisted",
			},
		),
	}
}

func (m *Metrics) HoldRequest(outcome string) {
	if m == nil {
		return
	}
	m.holds.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HoldClosed(status string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.holdsClosed.WithLabelValues(status).Add(float64(n))
}

func (m *Metrics) TicketsIssued(n int) {
	if m == nil {
		return
	}
	m.ticketsIssued.Add(float64(n))
}

func (m *Metrics) Checkin(outcome string) {
	if m == nil {
		return
	}
	m.checkins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSweep(d time.Duration) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(d.Seconds())
}

func (m *Metrics) JournalFailure(kind string) {
	if m == nil {
		return
	}
	m.journalFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) JournalBacklog(n int) {
	if m == nil {
		return
	}
	m.journalBacklog.Set(float64(n))
}
