package metrics

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/skylark/droneops/core/logger"
	coremetrics "github.com/skylark/droneops/core/metrics"
)

// InfluxSink pushes assignment events to an InfluxDB bucket using the
// blocking write API.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	org      string
	bucket   string
}

// NewInfluxSink builds a sink connected to the given InfluxDB instance.
func NewInfluxSink(url, token, org, bucket string) (*InfluxSink, error) {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(10))
	writeAPI := client.WriteAPIBlocking(org, bucket)
	return &InfluxSink{client: client, writeAPI: writeAPI, org: org, bucket: bucket}, nil
}

// NewInfluxSinkWithFallback health-checks the InfluxDB instance and
// returns a NopSink when it is unreachable, so a dead metrics backend
// never blocks assignment processing.
func NewInfluxSinkWithFallback(url, token, org, bucket string, log logger.Logger) coremetrics.MetricsSink {
	sink, err := NewInfluxSink(url, token, org, bucket)
	if err != nil {
		if log != nil {
			log.Warnf("influx sink unavailable, metrics disabled: %v", err)
		}
		return coremetrics.NopSink{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ok, err := sink.client.Ping(ctx)
	if err != nil || !ok {
		sink.Close()
		if log != nil {
			log.Warnf("influx ping failed, metrics disabled: %v", err)
		}
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAssignment writes one point per assignment attempt.
func (s *InfluxSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	p := influxdb2.NewPoint("assignment",
		map[string]string{
			"mission": ev.MissionID,
			"urgent":  fmt.Sprintf("%t", ev.Urgent),
		},
		map[string]interface{}{
			"pilot":      ev.PilotName,
			"drone":      ev.DroneID,
			"score":      ev.Score,
			"committed":  ev.Committed,
			"partial":    ev.Partial,
			"candidates": ev.Candidates,
			"latency_ms": float64(ev.Latency.Microseconds()) / 1000.0,
		},
		ev.Time,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("influx write assignment: %w", err)
	}
	return nil
}

// RecordFleetSnapshot writes the availability counts observed at
// planning time.
func (s *InfluxSink) RecordFleetSnapshot(snap coremetrics.FleetSnapshot) error {
	p := influxdb2.NewPoint("fleet",
		map[string]string{},
		map[string]interface{}{
			"available_pilots": snap.AvailablePilots,
			"available_drones": snap.AvailableDrones,
		},
		snap.Time,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("influx write fleet: %w", err)
	}
	return nil
}

// Close releases the underlying InfluxDB client.
func (s *InfluxSink) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
