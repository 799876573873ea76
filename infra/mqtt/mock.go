package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/skylark/droneops/core/assign"
)

// MockNotifier records notices in memory, used in tests and dry runs.
type MockNotifier struct {
	mu      sync.Mutex
	Notices []assign.Notice
	FailIDs map[string]bool
}

// NewMockNotifier creates a MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailIDs: make(map[string]bool)}
}

// NotifyAssignment records the notice or fails when the mission is
// configured to fail.
func (m *MockNotifier) NotifyAssignment(_ context.Context, n assign.Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[n.MissionID] {
		return fmt.Errorf("publish failed")
	}
	m.Notices = append(m.Notices, n)
	return nil
}

// Sent returns a copy of the recorded notices.
func (m *MockNotifier) Sent() []assign.Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]assign.Notice, len(m.Notices))
	copy(out, m.Notices)
	return out
}
