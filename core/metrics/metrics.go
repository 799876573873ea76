// Package metrics defines the observability contracts for assignment
// activity. Sink implementations live under infra/metrics.
package metrics

import "time"

// AssignmentEvent records the outcome of one assignment attempt.
type AssignmentEvent struct {
	MissionID  string
	PilotName  string
	DroneID    string
	Score      int
	Urgent     bool
	Committed  bool
	Partial    bool
	Candidates int
	Latency    time.Duration
	Time       time.Time
}

// FleetSnapshot captures availability counts observed during planning.
type FleetSnapshot struct {
	AvailablePilots int
	AvailableDrones int
	Time            time.Time
}

// MetricsSink records assignment activity for observability purposes.
type MetricsSink interface {
	RecordAssignment(ev AssignmentEvent) error
	RecordFleetSnapshot(s FleetSnapshot) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordAssignment(AssignmentEvent) error  { return nil }
func (NopSink) RecordFleetSnapshot(FleetSnapshot) error { return nil }
