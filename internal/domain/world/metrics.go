package world

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics del job. Con registerer nil no se registra nada (tests).
type Metrics struct {
	ticks    *prometheus.CounterVec
	pets     *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "monkey",
				Subsystem: "world",
				Name:      "ticks_total",
				Help:      "World ticks by result.",
			},
			[]string{"result"},
		),
		pets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "monkey",
				Subsystem: "world",
				Name:      "pets_total",
				Help:      "Per-pet outcomes applied by world ticks.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "monkey",
				Subsystem: "world",
				Name:      "tick_duration_seconds",
				Help:      "World tick duration.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.ticks, m.pets, m.duration)
	}
	return m
}

func (m *Metrics) observe(rep Report, err error, took time.Duration) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.ticks.WithLabelValues(result).Inc()
	m.duration.Observe(took.Seconds())

	m.pets.WithLabelValues("processed").Add(float64(rep.Processed))
	m.pets.WithLabelValues("hibernated").Add(float64(rep.Hibernated))
	m.pets.WithLabelValues("daily").Add(float64(rep.Daily))
	m.pets.WithLabelValues("status").Add(float64(rep.Status))
	m.pets.WithLabelValues("paired").Add(float64(len(rep.Paired)))
	m.pets.WithLabelValues("notifications_pruned").Add(float64(rep.Pruned))
}
