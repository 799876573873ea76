package model

// Drone represents a unit of the drone fleet, keyed by drone id.
type Drone struct {
	DroneID        string
	Model          string
	Capabilities   string // free-text set of capability tokens
	Status         SubjectStatus
	Location       string
	MaintenanceDue string // date, preserved verbatim on writes
	CurrentMission string // nullable reference to a mission id
}

// Available reports whether the drone can be considered for assignment.
func (d Drone) Available() bool {
	return EqualFold(string(d.Status), string(StatusAvailable))
}

// InMaintenance reports whether the drone status carries the maintenance
// token. The check is a substring so values like "In Maintenance" count.
func (d Drone) InMaintenance() bool {
	return ContainsFold(string(d.Status), "maintenance")
}

// HasCapability reports whether the drone's capabilities contain the
// required skill token. An empty requirement always passes.
func (d Drone) HasCapability(required string) bool {
	if required == "" {
		return true
	}
	return ContainsFold(d.Capabilities, required)
}
