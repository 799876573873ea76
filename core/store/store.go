// Package store defines the record store surface the coordinator consumes:
// key-addressable tabular storage for missions, the pilot roster and the
// drone fleet. Implementations live under infra/store.
package store

import (
	"context"
	"errors"
)

// Kind identifies one of the three record tables.
type Kind string

const (
	KindMissions Kind = "missions"
	KindPilots   Kind = "pilot_roster"
	KindDrones   Kind = "drone_fleet"
)

// Row is a flat record in fixed column order. Field order is significant
// for positional writes and must match the schema for its kind.
type Row []string

// ErrNotFound is returned by FindByKey when no record matches the key.
var ErrNotFound = errors.New("record not found")

// Store provides synchronous access to the backing tables. There is no
// cross-record transaction guarantee; callers are expected to apply a
// context timeout and treat a timeout as a retriable failure of that one
// step.
type Store interface {
	// ReadAll returns every row of the kind in stable storage order.
	ReadAll(ctx context.Context, kind Kind) ([]Row, error)
	// FindByKey locates the row whose key column matches key, ignoring
	// case and surrounding whitespace. Returns ErrNotFound when absent.
	FindByKey(ctx context.Context, kind Kind, key string) (int64, Row, error)
	// WriteRow replaces the row at the given location. Writes are
	// idempotent per location and safely retriable.
	WriteRow(ctx context.Context, kind Kind, loc int64, row Row) error
}

// Column schemas, declared once per kind. The key column is always first.
var schemas = map[Kind][]string{
	KindMissions: {
		"project_id", "client", "location", "required_skills",
		"start_date", "end_date", "priority", "status",
		"current_pilot", "current_drone",
	},
	KindPilots: {
		"name", "skills", "certifications", "drone_experience",
		"location", "current_mission", "status", "external_flag",
	},
	KindDrones: {
		"drone_id", "model", "capabilities", "status",
		"location", "maintenance_due", "current_mission",
	},
}

// Columns returns the fixed column schema for the kind.
func Columns(kind Kind) []string {
	cols := schemas[kind]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Kinds lists every known record kind.
func Kinds() []Kind {
	return []Kind{KindMissions, KindPilots, KindDrones}
}
