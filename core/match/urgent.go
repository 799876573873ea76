package match

import (
	"sort"

	"github.com/skylark/droneops/core/model"
)

// UrgentNote marks candidates produced by the relaxed path.
const UrgentNote = "Urgent reassignment (location constraint relaxed)"

// DefaultTopK bounds the relaxed suggestion list. Under time pressure the
// operator gets a short "do something now" list rather than the fuller
// browsing list of the normal matcher.
const DefaultTopK = 2

// UrgentReassigner ranks pilot-drone pairs with location constraints
// relaxed. The skill hard filter is retained: geographic proximity is a
// preference the operator can override, operating without the required
// skill is not.
type UrgentReassigner struct {
	TopK int
}

// NewUrgentReassigner returns a reassigner with the default list size.
func NewUrgentReassigner() UrgentReassigner {
	return UrgentReassigner{TopK: DefaultTopK}
}

// SuggestAlternatives returns up to TopK candidates. Location never affects
// score or inclusion; the only scored signal is a drone capability match
// (+1), so scores are 0 or 1. Every candidate carries the relaxed-constraint
// note.
func (u UrgentReassigner) SuggestAlternatives(pilots []model.Pilot, drones []model.Drone, mission model.Mission) []model.Candidate {
	required := mission.RequiredSkills

	var suggestions []model.Candidate
	for _, pilot := range pilots {
		if !pilot.HasSkill(required) {
			continue
		}
		for _, drone := range drones {
			score := 0
			if required != "" && model.ContainsFold(drone.Capabilities, required) {
				score++
			}
			suggestions = append(suggestions, model.Candidate{
				PilotName: pilot.Name,
				DroneID:   drone.DroneID,
				Score:     score,
				Note:      UrgentNote,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	topK := u.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(suggestions) > topK {
		suggestions = suggestions[:topK]
	}
	return suggestions
}
