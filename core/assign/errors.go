package assign

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skylark/droneops/core/store"
)

// ErrSubjectUnavailable is returned when the conditional status check at
// commit time finds the pilot or drone no longer available.
var ErrSubjectUnavailable = errors.New("subject is no longer available")

// NotFoundError reports a missing record at lookup time. Lookups precede
// all writes, so this error guarantees nothing was mutated.
type NotFoundError struct {
	Kind store.Kind
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %q not found", e.Kind, e.Key)
}

// AlreadyAssignedError reports a normal-mode assignment attempt against a
// mission that already holds one. Urgent mode may overwrite instead.
type AlreadyAssignedError struct {
	MissionID    string
	CurrentPilot string
	CurrentDrone string
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("mission %s already assigned to %s / %s", e.MissionID, e.CurrentPilot, e.CurrentDrone)
}

// Step identifies one write of the three-step commit saga.
type Step string

const (
	StepMission Step = "mission"
	StepPilot   Step = "pilot"
	StepDrone   Step = "drone"
)

// PartialCommitError reports that one or two of the three writes succeeded
// before a later one failed. The store has no cross-record transactions and
// there is no automatic rollback; the completed steps are carried so an
// operator or a repair routine can finish the job instead of blindly
// retrying the whole sequence.
type PartialCommitError struct {
	MissionID string
	Completed []Step
	Err       error
}

func (e *PartialCommitError) Error() string {
	done := make([]string, len(e.Completed))
	for i, s := range e.Completed {
		done[i] = string(s)
	}
	return fmt.Sprintf("partial commit for mission %s (completed: %s): %v",
		e.MissionID, strings.Join(done, ", "), e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }
