package model

import "fmt"

// Priority defines how aggressively an assignment may relax constraints.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

// MissionStatus tracks the assignment lifecycle of a mission.
// The only transition performed by this service is Open -> Assigned.
type MissionStatus string

const (
	MissionOpen     MissionStatus = "Open"
	MissionAssigned MissionStatus = "Assigned"
)

// Mission represents a time-bounded work order requiring one pilot and one drone.
type Mission struct {
	ID             string
	Client         string
	Location       string
	RequiredSkills string // one skill token or a comma-delimited set
	StartDate      string // calendar timestamp, kept verbatim from the record store
	EndDate        string
	Priority       Priority
	Status         MissionStatus
	CurrentPilot   string // nullable reference to a pilot name
	CurrentDrone   string // nullable reference to a drone id
}

// Validate checks that the mission record is usable as an assignment target.
func (m Mission) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("mission id is required")
	}
	return nil
}

// Assigned reports whether the mission already holds an assignment.
func (m Mission) Assigned() bool {
	return EqualFold(string(m.Status), string(MissionAssigned))
}

// Urgent reports whether the mission is flagged for the relaxed path.
func (m Mission) Urgent() bool {
	return EqualFold(string(m.Priority), string(PriorityUrgent))
}
