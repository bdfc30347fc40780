package consultqueue

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors a ConsultQueue reports to.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Waiting         prometheus.Gauge
	Registered      prometheus.Counter
	Rejected        prometheus.Counter
	Consulted       prometheus.Counter
	SnapshotSeconds prometheus.Histogram
}

// NewMetrics builds the queue collectors and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "consultq",
			Subsystem: "queue",
			Name:      "waiting_patients",
			Help:      "The number of patients currently waiting for consultation",
		}),
		Registered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "consultq",
			Subsystem: "queue",
			Name:      "registered_total",
			Help:      "The total number of patients registered",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "consultq",
			Subsystem: "queue",
			Name:      "rejected_total",
			Help:      "The total number of registrations rejected by validation",
		}),
		Consulted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "consultq",
			Subsystem: "queue",
			Name:      "consulted_total",
			Help:      "The total number of patients sent to consultation",
		}),
		SnapshotSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "consultq",
			Subsystem: "queue",
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent producing a sorted listing of the queue",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Waiting, m.Registered, m.Rejected, m.Consulted, m.SnapshotSeconds)
	}
	return m
}

func (m *Metrics) observeRegistered(waiting int) {
	if m == nil {
		return
	}
	m.Registered.Inc()
	m.Waiting.Set(float64(waiting))
}

func (m *Metrics) observeRejected() {
	if m == nil {
		return
	}
	m.Rejected.Inc()
}

func (m *Metrics) observeConsulted(waiting int) {
	if m == nil {
		return
	}
	m.Consulted.Inc()
	m.Waiting.Set(float64(waiting))
}

func (m *Metrics) observeSnapshot(d time.Duration) {
	if m == nil {
		return
	}
	m.SnapshotSeconds.Observe(d.Seconds())
}
