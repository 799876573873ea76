package model

// SubjectStatus tracks whether a pilot or drone can take new work.
type SubjectStatus string

const (
	StatusAvailable   SubjectStatus = "Available"
	StatusUnavailable SubjectStatus = "Unavailable"
	StatusMaintenance SubjectStatus = "Maintenance"
)

// Pilot represents a member of the pilot roster, keyed by name.
type Pilot struct {
	Name            string
	Skills          string // free-text set of capability tokens
	Certifications  string
	DroneExperience string
	Location        string
	CurrentMission  string // nullable reference to a mission id
	Status          SubjectStatus
	ExternalFlag    string // auxiliary availability override, "Yes" or "No"
}

// Available reports whether the pilot can be considered for assignment.
func (p Pilot) Available() bool {
	return EqualFold(string(p.Status), string(StatusAvailable))
}

// HasSkill reports whether the pilot's skills contain the required skill.
// Matching is case-insensitive substring containment over the free-text
// field, and an empty requirement always passes.
func (p Pilot) HasSkill(required string) bool {
	if required == "" {
		return true
	}
	return ContainsFold(p.Skills, required)
}
