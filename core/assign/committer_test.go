package assign

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skylark/droneops/core/store"
	infrastore "github.com/skylark/droneops/infra/store"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func seededStore() *infrastore.MemoryStore {
	s := infrastore.NewMemoryStore()
	s.Seed(store.KindMissions, []store.Row{
		{"M101", "Acme", "Austin", "thermal", "2024-01-01", "2024-01-05", "normal", "Open", "", ""},
		{"M090", "Globex", "Dallas", "4k", "2024-01-02", "2024-01-06", "normal", "Assigned", "Bob", "D5"},
	})
	s.Seed(store.KindPilots, []store.Row{
		{"Ana", "thermal,lidar", "Part107", "5y", "Austin Texas", "", "Available", "Yes"},
		{"Bob", "4k", "Part107", "2y", "Dallas", "M090", "Unavailable", "No"},
	})
	s.Seed(store.KindDrones, []store.Row{
		{"D7", "M350", "thermal,4k", "Available", "Austin", "2024-06-01", ""},
		{"D5", "M30", "4k", "Unavailable", "Dallas", "2024-03-01", "M090"},
	})
	return s
}

// flakyStore fails every write against one kind.
type flakyStore struct {
	*infrastore.MemoryStore
	failKind store.Kind
}

func (f *flakyStore) WriteRow(ctx context.Context, kind store.Kind, loc int64, row store.Row) error {
	if kind == f.failKind {
		return fmt.Errorf("simulated %s write failure", kind)
	}
	return f.MemoryStore.WriteRow(ctx, kind, loc, row)
}

func TestCommit_UpdatesAllThreeRecords(t *testing.T) {
	s := seededStore()
	c := NewCommitter(s, nopLogger{})
	ctx := context.Background()

	if err := c.Commit(ctx, "M101", "Ana", "D7"); err != nil {
		t.Fatalf("commit: %v", err)
	}

	_, mission, _ := s.FindByKey(ctx, store.KindMissions, "M101")
	if mission[7] != "Assigned" || mission[8] != "Ana" || mission[9] != "D7" {
		t.Fatalf("mission row not updated: %v", mission)
	}
	if mission[1] != "Acme" || mission[4] != "2024-01-01" {
		t.Fatalf("mission fields not preserved: %v", mission)
	}

	_, pilot, _ := s.FindByKey(ctx, store.KindPilots, "Ana")
	if pilot[6] != "Unavailable" || pilot[5] != "M101" {
		t.Fatalf("pilot row not updated: %v", pilot)
	}
	if pilot[7] != "No" {
		t.Fatalf("external flag must be forced to the sentinel, got %q", pilot[7])
	}

	_, drone, _ := s.FindByKey(ctx, store.KindDrones, "D7")
	if drone[3] != "Unavailable" || drone[6] != "M101" {
		t.Fatalf("drone row not updated: %v", drone)
	}
	if drone[5] != "2024-06-01" {
		t.Fatalf("maintenance_due must be untouched, got %q", drone[5])
	}
}

func TestCommit_Idempotent(t *testing.T) {
	s := seededStore()
	c := NewCommitter(s, nopLogger{})
	ctx := context.Background()

	if err := c.Commit(ctx, "M101", "Ana", "D7"); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	_, pilotBefore, _ := s.FindByKey(ctx, store.KindPilots, "Ana")
	_, droneBefore, _ := s.FindByKey(ctx, store.KindDrones, "D7")
	_, missionBefore, _ := s.FindByKey(ctx, store.KindMissions, "M101")

	if err := c.Commit(ctx, "M101", "Ana", "D7"); err != nil {
		t.Fatalf("repeat commit: %v", err)
	}
	_, pilotAfter, _ := s.FindByKey(ctx, store.KindPilots, "Ana")
	_, droneAfter, _ := s.FindByKey(ctx, store.KindDrones, "D7")
	_, missionAfter, _ := s.FindByKey(ctx, store.KindMissions, "M101")

	for i := range pilotBefore {
		if pilotBefore[i] != pilotAfter[i] {
			t.Fatalf("pilot field %d drifted: %q vs %q", i, pilotBefore[i], pilotAfter[i])
		}
	}
	for i := range droneBefore {
		if droneBefore[i] != droneAfter[i] {
			t.Fatalf("drone field %d drifted: %q vs %q", i, droneBefore[i], droneAfter[i])
		}
	}
	for i := range missionBefore {
		if missionBefore[i] != missionAfter[i] {
			t.Fatalf("mission field %d drifted: %q vs %q", i, missionBefore[i], missionAfter[i])
		}
	}
}

func TestCommit_PilotLookupFailureLeavesMissionUntouched(t *testing.T) {
	s := seededStore()
	c := NewCommitter(s, nopLogger{})
	ctx := context.Background()

	err := c.Commit(ctx, "M101", "Renamed", "D7")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != store.KindPilots || nf.Key != "Renamed" {
		t.Fatalf("unexpected error detail: %+v", nf)
	}

	_, mission, _ := s.FindByKey(ctx, store.KindMissions, "M101")
	if mission[7] != "Open" || mission[8] != "" {
		t.Fatalf("mission must be untouched, got %v", mission)
	}
}

func TestCommit_MissionNotFound(t *testing.T) {
	c := NewCommitter(seededStore(), nopLogger{})
	err := c.Commit(context.Background(), "M999", "Ana", "D7")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != store.KindMissions {
		t.Fatalf("expected mission NotFoundError, got %v", err)
	}
}

func TestCommit_PartialFailureSurfaced(t *testing.T) {
	s := &flakyStore{MemoryStore: seededStore(), failKind: store.KindPilots}
	c := NewCommitter(s, nopLogger{})
	ctx := context.Background()

	err := c.Commit(ctx, "M101", "Ana", "D7")
	var pce *PartialCommitError
	if !errors.As(err, &pce) {
		t.Fatalf("expected PartialCommitError, got %v", err)
	}
	if len(pce.Completed) != 1 || pce.Completed[0] != StepMission {
		t.Fatalf("expected only the mission step completed, got %v", pce.Completed)
	}

	// The mission write went through; the pilot write did not.
	_, mission, _ := s.FindByKey(ctx, store.KindMissions, "M101")
	if mission[7] != "Assigned" {
		t.Fatalf("mission write should have succeeded: %v", mission)
	}
	_, pilot, _ := s.FindByKey(ctx, store.KindPilots, "Ana")
	if pilot[6] != "Available" {
		t.Fatalf("pilot must remain untouched: %v", pilot)
	}
}

func TestCommit_DroneWriteFailure(t *testing.T) {
	s := &flakyStore{MemoryStore: seededStore(), failKind: store.KindDrones}
	c := NewCommitter(s, nopLogger{})

	err := c.Commit(context.Background(), "M101", "Ana", "D7")
	var pce *PartialCommitError
	if !errors.As(err, &pce) {
		t.Fatalf("expected PartialCommitError, got %v", err)
	}
	if len(pce.Completed) != 2 || pce.Completed[0] != StepMission || pce.Completed[1] != StepPilot {
		t.Fatalf("expected mission and pilot steps completed, got %v", pce.Completed)
	}
}

func TestCommit_SubjectNoLongerAvailable(t *testing.T) {
	s := seededStore()
	c := NewCommitter(s, nopLogger{})

	// Bob is already committed to M090; assigning him to M101 must fail
	// the conditional status check.
	err := c.Commit(context.Background(), "M101", "Bob", "D7")
	if !errors.Is(err, ErrSubjectUnavailable) {
		t.Fatalf("expected ErrSubjectUnavailable, got %v", err)
	}
}

func TestCommit_FirstWriteFailureIsNotPartial(t *testing.T) {
	s := &flakyStore{MemoryStore: seededStore(), failKind: store.KindMissions}
	c := NewCommitter(s, nopLogger{})

	err := c.Commit(context.Background(), "M101", "Ana", "D7")
	if err == nil {
		t.Fatalf("expected error")
	}
	var pce *PartialCommitError
	if errors.As(err, &pce) {
		t.Fatalf("a failure before any write completed is a clean failure, got %v", err)
	}
}
