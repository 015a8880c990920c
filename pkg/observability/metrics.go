package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records match and compile activity.
type Metrics struct {
	matches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	states   prometheus.Histogram
	compiles *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regula_matches_total",
				Help: "Number of match evaluations by pattern and result.",
			},
			[]string{"pattern", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regula_match_duration_seconds",
				Help:    "Time spent simulating one automaton over one input.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"pattern"},
		),
		states: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "regula_compiled_states",
				Help:    "State count of compiled automata.",
				Buckets: prometheus.ExponentialBuckets(2, 4, 9),
			},
		),
		compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regula_compiles_total",
				Help: "Number of pattern compilations by result.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.matches, m.duration, m.states, m.compiles)
	return m
}

// ObserveMatch records one evaluation. Ad-hoc expressions should pass an empty
// pattern name so label cardinality stays bounded by the store.
func (m *Metrics) ObserveMatch(pattern string, matched bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	if pattern == "" {
		pattern = "adhoc"
	}
	result := "rejected"
	if matched {
		result = "matched"
	}
	m.matches.WithLabelValues(pattern, result).Inc()
	m.duration.WithLabelValues(pattern).Observe(elapsed.Seconds())
}

// ObserveCompile records a compilation and, on success, the automaton size.
func (m *Metrics) ObserveCompile(states int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.compiles.WithLabelValues("error").Inc()
		return
	}
	m.compiles.WithLabelValues("ok").Inc()
	m.states.Observe(float64(states))
}
