package store

import (
	"fmt"

	"github.com/skylark/droneops/core/model"
)

// The codec is the single place rows are converted to and from typed
// records. The core never re-validates field presence per call; a row of
// the wrong width is rejected here, at the storage boundary.

func checkWidth(kind Kind, row Row) error {
	if want := len(schemas[kind]); len(row) != want {
		return fmt.Errorf("%s row has %d fields, schema has %d", kind, len(row), want)
	}
	return nil
}

// DecodeMission converts a missions row into a Mission.
func DecodeMission(row Row) (model.Mission, error) {
	if err := checkWidth(KindMissions, row); err != nil {
		return model.Mission{}, err
	}
	return model.Mission{
		ID:             row[0],
		Client:         row[1],
		Location:       row[2],
		RequiredSkills: row[3],
		StartDate:      row[4],
		EndDate:        row[5],
		Priority:       model.Priority(row[6]),
		Status:         model.MissionStatus(row[7]),
		CurrentPilot:   row[8],
		CurrentDrone:   row[9],
	}, nil
}

// EncodeMission converts a Mission into a positional missions row.
func EncodeMission(m model.Mission) Row {
	return Row{
		m.ID, m.Client, m.Location, m.RequiredSkills,
		m.StartDate, m.EndDate, string(m.Priority), string(m.Status),
		m.CurrentPilot, m.CurrentDrone,
	}
}

// DecodePilot converts a pilot_roster row into a Pilot.
func DecodePilot(row Row) (model.Pilot, error) {
	if err := checkWidth(KindPilots, row); err != nil {
		return model.Pilot{}, err
	}
	return model.Pilot{
		Name:            row[0],
		Skills:          row[1],
		Certifications:  row[2],
		DroneExperience: row[3],
		Location:        row[4],
		CurrentMission:  row[5],
		Status:          model.SubjectStatus(row[6]),
		ExternalFlag:    row[7],
	}, nil
}

// EncodePilot converts a Pilot into a positional pilot_roster row.
func EncodePilot(p model.Pilot) Row {
	return Row{
		p.Name, p.Skills, p.Certifications, p.DroneExperience,
		p.Location, p.CurrentMission, string(p.Status), p.ExternalFlag,
	}
}

// DecodeDrone converts a drone_fleet row into a Drone.
func DecodeDrone(row Row) (model.Drone, error) {
	if err := checkWidth(KindDrones, row); err != nil {
		return model.Drone{}, err
	}
	return model.Drone{
		DroneID:        row[0],
		Model:          row[1],
		Capabilities:   row[2],
		Status:         model.SubjectStatus(row[3]),
		Location:       row[4],
		MaintenanceDue: row[5],
		CurrentMission: row[6],
	}, nil
}

// EncodeDrone converts a Drone into a positional drone_fleet row.
func EncodeDrone(d model.Drone) Row {
	return Row{
		d.DroneID, d.Model, d.Capabilities, string(d.Status),
		d.Location, d.MaintenanceDue, d.CurrentMission,
	}
}
