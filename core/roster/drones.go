package roster

import (
	"context"

	"github.com/skylark/droneops/core/logger"
	"github.com/skylark/droneops/core/model"
	"github.com/skylark/droneops/core/store"
)

// DroneManager reads the drone fleet.
type DroneManager struct {
	store store.Store
	log   logger.Logger
}

// NewDroneManager creates a DroneManager backed by the given store.
func NewDroneManager(s store.Store, log logger.Logger) *DroneManager {
	return &DroneManager{store: s, log: log}
}

// All returns every drone record.
func (m *DroneManager) All(ctx context.Context) ([]model.Drone, error) {
	rows, err := m.store.ReadAll(ctx, store.KindDrones)
	if err != nil {
		return nil, err
	}
	drones := make([]model.Drone, 0, len(rows))
	for i, row := range rows {
		d, err := store.DecodeDrone(row)
		if err != nil {
			m.log.Warnf("skipping drone row %d: %v", i, err)
			continue
		}
		drones = append(drones, d)
	}
	return drones, nil
}

// Available returns drones with status Available, optionally narrowed by a
// capability and a location substring filter.
func (m *DroneManager) Available(ctx context.Context, capability, location string) ([]model.Drone, error) {
	drones, err := m.All(ctx)
	if err != nil {
		return nil, err
	}
	out := drones[:0]
	for _, d := range drones {
		if !d.Available() {
			continue
		}
		if capability != "" && !model.ContainsFold(d.Capabilities, capability) {
			continue
		}
		if location != "" && !model.ContainsFold(d.Location, location) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// InMaintenance returns drones whose status carries the maintenance token.
func (m *DroneManager) InMaintenance(ctx context.Context) ([]model.Drone, error) {
	drones, err := m.All(ctx)
	if err != nil {
		return nil, err
	}
	out := drones[:0]
	for _, d := range drones {
		if d.InMaintenance() {
			out = append(out, d)
		}
	}
	return out, nil
}
