package model

// Candidate is a scored, unpersisted pairing of one pilot and one drone
// proposed for a mission. It exists only within a matching call.
type Candidate struct {
	PilotName string `json:"pilot_name"`
	DroneID   string `json:"drone_id"`
	Score     int    `json:"score"`
	Note      string `json:"note,omitempty"`
}
