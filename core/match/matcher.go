// Package match ranks candidate pilot-drone pairs against a mission's
// requirements. The required skill is a hard filter on pilots; location is
// a soft preference that contributes to the score but never excludes a
// pair.
package match

import (
	"sort"

	"github.com/skylark/droneops/core/model"
)

// Matcher produces ranked pilot-drone pairs under the normal, strict rules.
type Matcher struct{}

// NewMatcher returns a Matcher.
func NewMatcher() Matcher { return Matcher{} }

// Match scores every surviving pilot against every available drone and
// returns the full ranked list, best first. Pilots lacking the required
// skill are excluded; there is no drone-side hard filter. Each pair scores
// +1 for a pilot location match, +1 for a drone location match and +1 for
// a drone capability match, for a maximum of 3.
//
// An empty result is a normal outcome, not an error: it means no suitable
// assignment exists. Ties keep the pilot-major, drone-minor enumeration
// order.
func (Matcher) Match(pilots []model.Pilot, drones []model.Drone, mission model.Mission) []model.Candidate {
	required := mission.RequiredSkills
	location := mission.Location

	var candidates []model.Candidate
	for _, pilot := range pilots {
		if !pilot.HasSkill(required) {
			continue
		}
		for _, drone := range drones {
			score := 0
			if location != "" {
				if model.ContainsFold(pilot.Location, location) {
					score++
				}
				if model.ContainsFold(drone.Location, location) {
					score++
				}
			}
			if required != "" && model.ContainsFold(drone.Capabilities, required) {
				score++
			}
			candidates = append(candidates, model.Candidate{
				PilotName: pilot.Name,
				DroneID:   drone.DroneID,
				Score:     score,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
