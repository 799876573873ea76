// Package conflict implements the pure constraint checks evaluated against a
// proposed (pilot, drone, mission) pairing. Checks never mutate state and do
// not depend on each other; callers aggregate their outputs.
package conflict

import (
	"fmt"

	"github.com/skylark/droneops/core/model"
)

// Report aggregates check outcomes for one proposed pairing.
type Report struct {
	// Conflicts are hard violations. A non-empty list blocks the pairing.
	Conflicts []string `json:"conflicts,omitempty"`
	// Warnings are advisory and never block, e.g. location mismatches.
	Warnings []string `json:"warnings,omitempty"`
	// DataIssues name records whose dates failed to parse and were
	// skipped during overlap evaluation.
	DataIssues []string `json:"data_issues,omitempty"`
}

// Blocked reports whether the pairing violates a hard constraint.
func (r Report) Blocked() bool { return len(r.Conflicts) > 0 }

// PilotConflicts checks the pilot for double-booking against assigned
// missions. Overlap is inclusive on both bounds: touching intervals count
// as conflicting. Records with unparseable dates are reported as data
// issues and skipped rather than failing the whole pass.
func PilotConflicts(pilotName, missionStart, missionEnd string, assigned []model.Mission) (conflicts, issues []string) {
	return overlaps("Pilot", pilotName, missionStart, missionEnd, assigned, func(m model.Mission) string {
		return m.CurrentPilot
	})
}

// DroneConflicts checks the drone for double-booking, with the same
// inclusive-bounds semantics as PilotConflicts.
func DroneConflicts(droneID, missionStart, missionEnd string, assigned []model.Mission) (conflicts, issues []string) {
	return overlaps("Drone", droneID, missionStart, missionEnd, assigned, func(m model.Mission) string {
		return m.CurrentDrone
	})
}

func overlaps(label, subject, missionStart, missionEnd string, assigned []model.Mission, ref func(model.Mission) string) (conflicts, issues []string) {
	start, err := parseWhen(missionStart)
	if err != nil {
		return nil, []string{fmt.Sprintf("mission start date %q is not a valid timestamp", missionStart)}
	}
	end, err := parseWhen(missionEnd)
	if err != nil {
		return nil, []string{fmt.Sprintf("mission end date %q is not a valid timestamp", missionEnd)}
	}

	for _, m := range assigned {
		if !model.EqualFold(ref(m), subject) {
			continue
		}
		aStart, err := parseWhen(m.StartDate)
		if err != nil {
			issues = append(issues, fmt.Sprintf("mission %s start date %q is not a valid timestamp", m.ID, m.StartDate))
			continue
		}
		aEnd, err := parseWhen(m.EndDate)
		if err != nil {
			issues = append(issues, fmt.Sprintf("mission %s end date %q is not a valid timestamp", m.ID, m.EndDate))
			continue
		}
		if !start.After(aEnd) && !end.Before(aStart) {
			conflicts = append(conflicts, fmt.Sprintf("%s %s already assigned to mission %s", label, subject, m.ID))
		}
	}
	return conflicts, issues
}

// SkillMismatch reports a violation when the pilot's skills do not contain
// the required skill. An empty requirement always passes.
func SkillMismatch(pilotSkills, requiredSkill string) []string {
	if requiredSkill == "" {
		return nil
	}
	if !model.ContainsFold(pilotSkills, requiredSkill) {
		return []string{fmt.Sprintf("Pilot lacks required skill: %s", requiredSkill)}
	}
	return nil
}

// Maintenance reports a violation when the drone status carries the
// maintenance token.
func Maintenance(droneStatus string) []string {
	if model.ContainsFold(droneStatus, "maintenance") {
		return []string{"Drone is currently under maintenance"}
	}
	return nil
}

// LocationMismatch performs two independent advisory checks: the mission
// location must appear in the pilot's location and, separately, in the
// drone's. Each absence is a warning, never a hard block.
func LocationMismatch(pilotLocation, droneLocation, missionLocation string) []string {
	var warnings []string
	if !model.ContainsFold(pilotLocation, missionLocation) {
		warnings = append(warnings, "Pilot location does not match mission location")
	}
	if !model.ContainsFold(droneLocation, missionLocation) {
		warnings = append(warnings, "Drone location does not match mission location")
	}
	return warnings
}

// Check composes all conflict checks for one proposed pairing.
func Check(pilot model.Pilot, drone model.Drone, mission model.Mission, assigned []model.Mission) Report {
	var r Report

	c, issues := PilotConflicts(pilot.Name, mission.StartDate, mission.EndDate, assigned)
	r.Conflicts = append(r.Conflicts, c...)
	r.DataIssues = append(r.DataIssues, issues...)

	c, issues = DroneConflicts(drone.DroneID, mission.StartDate, mission.EndDate, assigned)
	r.Conflicts = append(r.Conflicts, c...)
	r.DataIssues = append(r.DataIssues, issues...)

	r.Conflicts = append(r.Conflicts, SkillMismatch(pilot.Skills, mission.RequiredSkills)...)
	r.Conflicts = append(r.Conflicts, Maintenance(string(drone.Status))...)
	r.Warnings = append(r.Warnings, LocationMismatch(pilot.Location, drone.Location, mission.Location)...)
	return r
}
