package sortbench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Job status label values of the jobs counter
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics exports the progress of benchmark runs as Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	jobs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	active   prometheus.Gauge
	queued   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sortbench",
				Name:      "jobs_total",
				Help:      "Jobs finished, by algorithm and status",
			},
			[]string{"algorithm", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sortbench",
				Name:      "job_duration_seconds",
				Help:      "Time taken by an algorithm to sort one sample",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
			[]string{"algorithm"},
		),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sortbench",
			Name:      "active_jobs",
			Help:      "Jobs currently executing",
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sortbench",
			Name:      "queued_jobs",
			Help:      "Jobs waiting for a worker",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.jobs, m.duration, m.active, m.queued} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) enqueued(n int) {
	if m == nil {
		return
	}
	m.queued.Add(float64(n))
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.queued.Dec()
	m.active.Inc()
}

func (m *Metrics) finished(algorithm string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.active.Dec()
	if err != nil {
		m.jobs.WithLabelValues(algorithm, StatusFailed).Inc()
		return
	}
	m.jobs.WithLabelValues(algorithm, StatusOK).Inc()
	m.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// reset zeroes the gauges after an aborted run
func (m *Metrics) reset() {
	if m == nil {
		return
	}
	m.active.Set(0)
	m.queued.Set(0)
}
