// Package metrics provides the MetricsSink implementations: Prometheus,
// InfluxDB and a fan-out over several sinks.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skylark/droneops/core/metrics"
)

// PromSink records assignment events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	pilots      prometheus.Gauge
	drones      prometheus.Gauge
}

// NewPromSink registers assignment metrics on the default Prometheus
// registerer. The Prometheus server is started separately on
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_total",
		Help: "Total number of assignment attempts",
	}, []string{"urgent", "committed", "partial"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_event_latency_seconds",
		Help:    "Time spent in the three-record commit sequence",
		Buckets: prometheus.DefBuckets,
	}, []string{"urgent"})
	pilots := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "available_pilots",
		Help: "Available pilots observed at planning time",
	})
	drones := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "available_drones",
		Help: "Available drones observed at planning time",
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(pilots); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pilots = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(drones); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			drones = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, latency: latency, pilots: pilots, drones: drones}, nil
}

// RecordAssignment increments the counter and observes the commit latency.
func (s *PromSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	urgent := strconv.FormatBool(ev.Urgent)
	s.assignments.WithLabelValues(urgent, strconv.FormatBool(ev.Committed), strconv.FormatBool(ev.Partial)).Inc()
	s.latency.WithLabelValues(urgent).Observe(ev.Latency.Seconds())
	return nil
}

// RecordFleetSnapshot sets the availability gauges.
func (s *PromSink) RecordFleetSnapshot(snap coremetrics.FleetSnapshot) error {
	s.pilots.Set(float64(snap.AvailablePilots))
	s.drones.Set(float64(snap.AvailableDrones))
	return nil
}
