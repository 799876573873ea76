package roster

import (
	"context"

	"github.com/skylark/droneops/core/logger"
	"github.com/skylark/droneops/core/model"
	"github.com/skylark/droneops/core/store"
)

// MissionManager reads the mission table.
type MissionManager struct {
	store store.Store
	log   logger.Logger
}

// NewMissionManager creates a MissionManager backed by the given store.
func NewMissionManager(s store.Store, log logger.Logger) *MissionManager {
	return &MissionManager{store: s, log: log}
}

// Get returns the mission with the given id. A missing id yields
// store.ErrNotFound.
func (m *MissionManager) Get(ctx context.Context, id string) (model.Mission, error) {
	_, row, err := m.store.FindByKey(ctx, store.KindMissions, id)
	if err != nil {
		return model.Mission{}, err
	}
	return store.DecodeMission(row)
}

// All returns every mission record.
func (m *MissionManager) All(ctx context.Context) ([]model.Mission, error) {
	rows, err := m.store.ReadAll(ctx, store.KindMissions)
	if err != nil {
		return nil, err
	}
	missions := make([]model.Mission, 0, len(rows))
	for i, row := range rows {
		ms, err := store.DecodeMission(row)
		if err != nil {
			m.log.Warnf("skipping mission row %d: %v", i, err)
			continue
		}
		missions = append(missions, ms)
	}
	return missions, nil
}

// Assignments returns missions that currently hold an assignment. The
// temporal-overlap check consumes this list.
func (m *MissionManager) Assignments(ctx context.Context) ([]model.Mission, error) {
	missions, err := m.All(ctx)
	if err != nil {
		return nil, err
	}
	out := missions[:0]
	for _, ms := range missions {
		if ms.Assigned() {
			out = append(out, ms)
		}
	}
	return out, nil
}
