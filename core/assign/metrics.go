package assign

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	plansTotal     *prometheus.CounterVec
	commitsTotal   prometheus.Counter
	partialCommits prometheus.Counter
	commitLatency  prometheus.Histogram
	fleetAvailable *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Counter, prometheus.Histogram, *prometheus.GaugeVec) {
	plans := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignment_plans_total",
			Help: "Number of assignment plans computed",
		},
		[]string{"mode"},
	)
	commits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_commits_total",
			Help: "Number of successfully committed assignments",
		},
	)
	partial := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_partial_commits_total",
			Help: "Number of commit sequences left partially applied",
		},
	)
	latency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assignment_commit_duration_seconds",
			Help:    "Duration of the three-record commit sequence",
			Buckets: prometheus.DefBuckets,
		},
	)
	fleet := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleet_available_total",
			Help: "Available subjects observed during planning",
		},
		[]string{"kind"},
	)
	return plans, commits, partial, latency, fleet
}

func init() {
	plansTotal, commitsTotal, partialCommits, commitLatency, fleetAvailable = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers assignment metrics on the provided
// registry. If reg is nil, prometheus.DefaultRegisterer is used. Metrics
// already registered are reused.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{plansTotal, commitsTotal, partialCommits, commitLatency, fleetAvailable}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
