package assign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skylark/droneops/core/logger"
	"github.com/skylark/droneops/core/model"
	"github.com/skylark/droneops/core/store"
)

// externalFlag is the sentinel the pilot's auxiliary override is forced to
// on every commit.
const externalFlag = "No"

// Committer finalizes an assignment by making the mission, pilot and drone
// records mutually consistent. The store offers no cross-record
// transactions, so the three writes run as a saga: mission first, then
// pilot, then drone, with the progress recorded so a later failure is
// surfaced as a PartialCommitError rather than swallowed.
type Committer struct {
	store store.Store
	log   logger.Logger
	locks *keyedLocks
}

// NewCommitter creates a Committer on top of the given store.
func NewCommitter(s store.Store, log logger.Logger) *Committer {
	return &Committer{store: s, log: log, locks: newKeyedLocks()}
}

// Commit looks up the three records, verifies the pilot and drone are
// still assignable, and issues the three writes. Any failed lookup aborts
// before the first write with a NotFoundError. Each write is idempotent
// per key, so retrying a partially committed triple converges on the same
// final field values.
func (c *Committer) Commit(ctx context.Context, missionID, pilotName, droneID string) error {
	release := c.locks.acquire("pilot/"+pilotName, "drone/"+droneID)
	defer release()

	start := time.Now()

	missionLoc, missionRow, err := c.store.FindByKey(ctx, store.KindMissions, missionID)
	if err != nil {
		return lookupErr(store.KindMissions, missionID, err)
	}
	pilotLoc, pilotRow, err := c.store.FindByKey(ctx, store.KindPilots, pilotName)
	if err != nil {
		return lookupErr(store.KindPilots, pilotName, err)
	}
	droneLoc, droneRow, err := c.store.FindByKey(ctx, store.KindDrones, droneID)
	if err != nil {
		return lookupErr(store.KindDrones, droneID, err)
	}

	mission, err := store.DecodeMission(missionRow)
	if err != nil {
		return err
	}
	pilot, err := store.DecodePilot(pilotRow)
	if err != nil {
		return err
	}
	drone, err := store.DecodeDrone(droneRow)
	if err != nil {
		return err
	}

	// Conditional check inside the subject locks: the records were read
	// as Available by the planner, but a concurrent commit may have won.
	// A retry of this same triple still passes.
	if !pilot.Available() && !model.EqualFold(pilot.CurrentMission, mission.ID) {
		return fmt.Errorf("pilot %s: %w", pilot.Name, ErrSubjectUnavailable)
	}
	if !drone.Available() && !model.EqualFold(drone.CurrentMission, mission.ID) {
		return fmt.Errorf("drone %s: %w", drone.DroneID, ErrSubjectUnavailable)
	}

	// All other fields are preserved verbatim.
	mission.Status = model.MissionAssigned
	mission.CurrentPilot = pilot.Name
	mission.CurrentDrone = drone.DroneID

	pilot.Status = model.StatusUnavailable
	pilot.CurrentMission = mission.ID
	pilot.ExternalFlag = externalFlag

	drone.Status = model.StatusUnavailable
	drone.CurrentMission = mission.ID

	var completed []Step
	writes := []struct {
		step Step
		kind store.Kind
		loc  int64
		row  store.Row
	}{
		{StepMission, store.KindMissions, missionLoc, store.EncodeMission(mission)},
		{StepPilot, store.KindPilots, pilotLoc, store.EncodePilot(pilot)},
		{StepDrone, store.KindDrones, droneLoc, store.EncodeDrone(drone)},
	}
	for _, w := range writes {
		if err := c.store.WriteRow(ctx, w.kind, w.loc, w.row); err != nil {
			if len(completed) == 0 {
				return fmt.Errorf("write %s: %w", w.step, err)
			}
			partialCommits.Inc()
			c.log.Errorf("commit of mission %s stopped at %s step, completed: %v", mission.ID, w.step, completed)
			return &PartialCommitError{MissionID: mission.ID, Completed: completed, Err: err}
		}
		completed = append(completed, w.step)
	}

	commitsTotal.Inc()
	commitLatency.Observe(time.Since(start).Seconds())
	c.log.Infof("mission %s assigned to %s / %s", mission.ID, pilot.Name, drone.DroneID)
	return nil
}

func lookupErr(kind store.Kind, key string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Kind: kind, Key: key}
	}
	return fmt.Errorf("lookup %s %q: %w", kind, key, err)
}
