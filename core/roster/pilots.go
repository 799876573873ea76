// Package roster answers availability queries over the pilot roster, the
// drone fleet and the mission table. Filters are case-insensitive substring
// matches on the free-text fields; rows that fail to decode are logged and
// skipped rather than failing the whole query.
package roster

import (
	"context"

	"github.com/skylark/droneops/core/logger"
	"github.com/skylark/droneops/core/model"
	"github.com/skylark/droneops/core/store"
)

// PilotManager reads the pilot roster.
type PilotManager struct {
	store store.Store
	log   logger.Logger
}

// NewPilotManager creates a PilotManager backed by the given store.
func NewPilotManager(s store.Store, log logger.Logger) *PilotManager {
	return &PilotManager{store: s, log: log}
}

// All returns every pilot record.
func (m *PilotManager) All(ctx context.Context) ([]model.Pilot, error) {
	rows, err := m.store.ReadAll(ctx, store.KindPilots)
	if err != nil {
		return nil, err
	}
	pilots := make([]model.Pilot, 0, len(rows))
	for i, row := range rows {
		p, err := store.DecodePilot(row)
		if err != nil {
			m.log.Warnf("skipping pilot row %d: %v", i, err)
			continue
		}
		pilots = append(pilots, p)
	}
	return pilots, nil
}

// Available returns pilots with status Available, optionally narrowed by a
// skill and a location substring filter.
func (m *PilotManager) Available(ctx context.Context, skill, location string) ([]model.Pilot, error) {
	pilots, err := m.All(ctx)
	if err != nil {
		return nil, err
	}
	out := pilots[:0]
	for _, p := range pilots {
		if !p.Available() {
			continue
		}
		if skill != "" && !model.ContainsFold(p.Skills, skill) {
			continue
		}
		if location != "" && !model.ContainsFold(p.Location, location) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
