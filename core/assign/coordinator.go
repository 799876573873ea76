// Package assign orchestrates the assignment pipeline: read availability,
// rank candidates, check conflicts and commit the chosen pair. All state is
// request-scoped; the coordinator holds no mutable per-session stage.
package assign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skylark/droneops/core/command"
	"github.com/skylark/droneops/core/conflict"
	"github.com/skylark/droneops/core/logger"
	"github.com/skylark/droneops/core/match"
	"github.com/skylark/droneops/core/metrics"
	"github.com/skylark/droneops/core/model"
	"github.com/skylark/droneops/core/roster"
	"github.com/skylark/droneops/core/store"
	"github.com/skylark/droneops/internal/eventbus"
)

// Plan is the ranked outcome of one matching pass. An empty candidate list
// is a normal result meaning no suitable assignment was found.
type Plan struct {
	Mission    model.Mission     `json:"mission"`
	Urgent     bool              `json:"urgent"`
	Candidates []model.Candidate `json:"candidates"`
	// Reports holds the conflict report for each candidate, index-aligned
	// with Candidates.
	Reports []conflict.Report `json:"reports"`
}

// Coordinator wires the rosters, the matching engines and the committer
// into the operations the callers consume.
type Coordinator struct {
	pilots    *roster.PilotManager
	drones    *roster.DroneManager
	missions  *roster.MissionManager
	matcher   match.Matcher
	urgent    match.UrgentReassigner
	committer *Committer
	notifier  Notifier
	sink      metrics.MetricsSink
	bus       *eventbus.TypedBus[Event]
	log       logger.Logger
	browse    int
}

// NewCoordinator creates a Coordinator. A nil bus, sink or notifier is
// replaced by a no-op implementation.
func NewCoordinator(cfg Config, pilots *roster.PilotManager, drones *roster.DroneManager, missions *roster.MissionManager, committer *Committer, sink metrics.MetricsSink, bus *eventbus.TypedBus[Event], notifier Notifier, log logger.Logger) (*Coordinator, error) {
	if pilots == nil || drones == nil || missions == nil || committer == nil || log == nil {
		return nil, fmt.Errorf("assign: nil parameter provided to NewCoordinator")
	}
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Coordinator{
		pilots:    pilots,
		drones:    drones,
		missions:  missions,
		matcher:   match.NewMatcher(),
		urgent:    match.UrgentReassigner{TopK: cfg.TopK},
		committer: committer,
		notifier:  notifier,
		sink:      sink,
		bus:       bus,
		log:       log,
		browse:    cfg.BrowseLimit,
	}, nil
}

// Plan computes the ranked candidate list for a mission. Normal mode
// refuses missions that already hold an assignment; urgent mode may
// overwrite one and relaxes location entirely.
func (c *Coordinator) Plan(ctx context.Context, missionID string, urgent bool) (*Plan, error) {
	mission, err := c.missions.Get(ctx, missionID)
	if err != nil {
		return nil, lookupErr(store.KindMissions, missionID, err)
	}
	if mission.Assigned() && !urgent {
		return nil, &AlreadyAssignedError{
			MissionID:    mission.ID,
			CurrentPilot: mission.CurrentPilot,
			CurrentDrone: mission.CurrentDrone,
		}
	}

	pilots, err := c.pilots.Available(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("read pilot roster: %w", err)
	}
	drones, err := c.drones.Available(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("read drone fleet: %w", err)
	}
	assigned, err := c.missions.Assignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("read assignments: %w", err)
	}

	var candidates []model.Candidate
	if urgent {
		candidates = c.urgent.SuggestAlternatives(pilots, drones, mission)
	} else {
		candidates = c.matcher.Match(pilots, drones, mission)
		if len(candidates) > c.browse {
			candidates = candidates[:c.browse]
		}
	}

	plan := &Plan{Mission: mission, Urgent: urgent, Candidates: candidates}
	pilotsByName := make(map[string]model.Pilot, len(pilots))
	for _, p := range pilots {
		pilotsByName[keyOf(p.Name)] = p
	}
	dronesByID := make(map[string]model.Drone, len(drones))
	for _, d := range drones {
		dronesByID[keyOf(d.DroneID)] = d
	}
	for _, cand := range candidates {
		plan.Reports = append(plan.Reports, conflict.Check(
			pilotsByName[keyOf(cand.PilotName)],
			dronesByID[keyOf(cand.DroneID)],
			mission, assigned,
		))
	}

	c.publish(PlannedEvent{MissionID: mission.ID, Urgent: urgent, Candidates: len(candidates)})
	plansTotal.WithLabelValues(mode(urgent)).Inc()
	fleetAvailable.WithLabelValues("pilots").Set(float64(len(pilots)))
	fleetAvailable.WithLabelValues("drones").Set(float64(len(drones)))
	if err := c.sink.RecordFleetSnapshot(metrics.FleetSnapshot{
		AvailablePilots: len(pilots),
		AvailableDrones: len(drones),
		Time:            time.Now(),
	}); err != nil {
		c.log.Warnf("record fleet snapshot: %v", err)
	}
	if len(candidates) == 0 {
		c.log.Warnf("no suitable assignment found for mission %s", mission.ID)
	}
	return plan, nil
}

// Commit finalizes the selected pair for the mission and reports the
// outcome to the sinks, the bus and the field notifier.
func (c *Coordinator) Commit(ctx context.Context, missionID, pilotName, droneID string, urgent bool) error {
	mission, err := c.missions.Get(ctx, missionID)
	if err != nil {
		return lookupErr(store.KindMissions, missionID, err)
	}
	if mission.Assigned() && !urgent {
		return &AlreadyAssignedError{
			MissionID:    mission.ID,
			CurrentPilot: mission.CurrentPilot,
			CurrentDrone: mission.CurrentDrone,
		}
	}

	start := time.Now()
	err = c.committer.Commit(ctx, missionID, pilotName, droneID)
	ev := metrics.AssignmentEvent{
		MissionID: missionID,
		PilotName: pilotName,
		DroneID:   droneID,
		Urgent:    urgent,
		Committed: err == nil,
		Latency:   time.Since(start),
		Time:      time.Now(),
	}
	var pce *PartialCommitError
	if errors.As(err, &pce) {
		ev.Partial = true
		c.publish(PartialCommitEvent{MissionID: missionID, Completed: pce.Completed, Reason: pce.Err.Error()})
	}
	if serr := c.sink.RecordAssignment(ev); serr != nil {
		c.log.Warnf("record assignment: %v", serr)
	}
	if err != nil {
		return err
	}

	c.publish(CommittedEvent{MissionID: missionID, PilotName: pilotName, DroneID: droneID, Urgent: urgent})
	note := ""
	if urgent {
		note = match.UrgentNote
	}
	if nerr := c.notifier.NotifyAssignment(ctx, Notice{
		MissionID: missionID,
		PilotName: pilotName,
		DroneID:   droneID,
		Urgent:    urgent,
		Note:      note,
		Time:      time.Now(),
	}); nerr != nil {
		c.log.Warnf("notify assignment: %v", nerr)
	}
	return nil
}

// HandleCommand routes a structured command from the external parser. The
// coordinator acts on assign and reassign; the query intents map to the
// read-only availability queries.
func (c *Coordinator) HandleCommand(ctx context.Context, cmd command.Command) (*Outcome, error) {
	switch cmd.Intent {
	case command.IntentAssign, command.IntentReassign:
		if cmd.MissionID == "" {
			return nil, fmt.Errorf("%s command without a mission id", cmd.Intent)
		}
		urgent := cmd.Intent == command.IntentReassign || cmd.Priority == command.PriorityUrgent
		plan, err := c.Plan(ctx, cmd.MissionID, urgent)
		if err != nil {
			return nil, err
		}
		return &Outcome{Plan: plan}, nil
	case command.IntentQueryPilots:
		pilots, err := c.pilots.Available(ctx, "", cmd.Location)
		if err != nil {
			return nil, err
		}
		return &Outcome{Pilots: pilots}, nil
	case command.IntentQueryDrones:
		drones, err := c.drones.Available(ctx, "", cmd.Location)
		if err != nil {
			return nil, err
		}
		return &Outcome{Drones: drones}, nil
	default:
		pilots, err := c.pilots.Available(ctx, "", cmd.Location)
		if err != nil {
			return nil, err
		}
		drones, err := c.drones.Available(ctx, "", cmd.Location)
		if err != nil {
			return nil, err
		}
		return &Outcome{Pilots: pilots, Drones: drones}, nil
	}
}

// Outcome is the response to one routed command.
type Outcome struct {
	Plan   *Plan         `json:"plan,omitempty"`
	Pilots []model.Pilot `json:"pilots,omitempty"`
	Drones []model.Drone `json:"drones,omitempty"`
}

func (c *Coordinator) publish(ev Event) {
	if c.bus != nil {
		c.bus.Publish(ev)
	}
}

func mode(urgent bool) string {
	if urgent {
		return "urgent"
	}
	return "normal"
}

func keyOf(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
