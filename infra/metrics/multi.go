package metrics

import (
	"errors"

	coremetrics "github.com/skylark/droneops/core/metrics"
)

// MultiSink fans every event out to all configured sinks. Errors are
// collected and joined so one failing backend does not hide the others.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink wraps the given sinks. Nil entries are skipped.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	kept := make([]coremetrics.MetricsSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &MultiSink{sinks: kept}
}

func (m *MultiSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordAssignment(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordFleetSnapshot(snap coremetrics.FleetSnapshot) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordFleetSnapshot(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink exposing a Close method.
func (m *MultiSink) Close() {
	for _, s := range m.sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
