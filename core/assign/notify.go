package assign

import (
	"context"
	"time"
)

// Notice describes a finalized assignment for field crews.
type Notice struct {
	MissionID string    `json:"mission_id"`
	PilotName string    `json:"pilot_name"`
	DroneID   string    `json:"drone_id"`
	Urgent    bool      `json:"urgent"`
	Note      string    `json:"note,omitempty"`
	Time      time.Time `json:"time"`
}

// Notifier delivers assignment notices to field crews. Delivery failures
// are logged, not surfaced: the committed records are the source of truth.
type Notifier interface {
	NotifyAssignment(ctx context.Context, n Notice) error
}

// NopNotifier discards notices.
type NopNotifier struct{}

func (NopNotifier) NotifyAssignment(context.Context, Notice) error { return nil }
