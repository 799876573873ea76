package assign

// Event is the interface implemented by assignment lifecycle events
// published on the event bus.
type Event interface{ event() }

// PlannedEvent is published after a candidate plan is computed.
type PlannedEvent struct {
	MissionID  string
	Urgent     bool
	Candidates int
}

// CommittedEvent is published after all three records were written.
type CommittedEvent struct {
	MissionID string
	PilotName string
	DroneID   string
	Urgent    bool
}

// PartialCommitEvent is published when a commit sequence was left
// partially applied. It carries the completed steps for a repair routine.
type PartialCommitEvent struct {
	MissionID string
	Completed []Step
	Reason    string
}

func (PlannedEvent) event()       {}
func (CommittedEvent) event()     {}
func (PartialCommitEvent) event() {}
