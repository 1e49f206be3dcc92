package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the notification cycle.
// A nil *Metrics records nothing.
type Metrics struct {
	cycles        *prometheus.CounterVec
	candidates    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	cycleDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_notifier_cycles_total",
				Help: "Notification cycles by outcome.",
			},
			[]string{"outcome"},
		),
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_notifier_candidates_total",
				Help: "Candidate (document, recipient) pairs by result.",
			},
			[]string{"result"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_notifications_created_total",
				Help: "Notifications inserted by category.",
			},
			[]string{"category"},
		),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "compliance_notifier_cycle_duration_seconds",
			Help:    "Duration of notification cycles.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	for _, c := range []prometheus.Collector{m.cycles, m.candidates, m.notifications, m.cycleDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeCycle(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(outcome).Inc()
	m.cycleDuration.Observe(seconds)
}

// skipped counts a cycle that never ran. No duration is recorded for it.
func (m *Metrics) skipped(outcome string) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(outcome).Inc()
}

func (m *Metrics) candidate(result string) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(result).Inc()
}

func (m *Metrics) created(category string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(category).Inc()
}
