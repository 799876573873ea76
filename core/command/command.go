// Package command defines the structured intent consumed by the
// coordinator. Free text is normally turned into a Command by an external
// language parser; Fallback provides the deterministic keyword parser used
// when that collaborator is unavailable.
package command

import (
	"context"
	"regexp"
	"strings"
)

// Intent classifies what the operator asked for. The coordinator acts on
// assign and reassign; the query intents map to read-only lookups.
type Intent string

const (
	IntentQuery       Intent = "query"
	IntentQueryPilots Intent = "query_pilots"
	IntentQueryDrones Intent = "query_drones"
	IntentAssign      Intent = "assign"
	IntentReassign    Intent = "reassign"
)

// Priority mirrors the urgency extracted from the operator's text.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

// Command is a parsed operator instruction.
type Command struct {
	Intent    Intent   `json:"intent"`
	Priority  Priority `json:"priority"`
	Location  string   `json:"location,omitempty"`
	MissionID string   `json:"mission_id,omitempty"`
}

// Parser turns free text into a Command. The production implementation is
// an external collaborator; Fallback satisfies the interface without one.
type Parser interface {
	Parse(ctx context.Context, input string) (Command, error)
}

var missionIDPattern = regexp.MustCompile(`(?i)M\d+`)

// ExtractMissionID returns the first mission id token in text, uppercased,
// or the empty string when none is present.
func ExtractMissionID(text string) string {
	m := missionIDPattern.FindString(text)
	return strings.ToUpper(m)
}

// Fallback is the deterministic keyword parser. Reassign wins over assign,
// any other text is a query; urgency is keyword based.
type Fallback struct{}

// Parse never fails; unknown text degrades to a plain query.
func (Fallback) Parse(_ context.Context, input string) (Command, error) {
	lower := strings.ToLower(input)

	intent := IntentQuery
	switch {
	case strings.Contains(lower, "reassign"):
		intent = IntentReassign
	case strings.Contains(lower, "assign"):
		intent = IntentAssign
	case strings.Contains(lower, "pilot"):
		intent = IntentQueryPilots
	case strings.Contains(lower, "drone"):
		intent = IntentQueryDrones
	}

	priority := PriorityNormal
	if strings.Contains(lower, "urgent") {
		priority = PriorityUrgent
	}

	return Command{
		Intent:    intent,
		Priority:  priority,
		MissionID: ExtractMissionID(input),
	}, nil
}
