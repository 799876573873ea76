package missions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylark/droneops/core/assign"
	"github.com/skylark/droneops/core/logger"
	"github.com/skylark/droneops/core/roster"
	"github.com/skylark/droneops/core/store"
	infrastore "github.com/skylark/droneops/infra/store"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func newCoordinator(t *testing.T) *assign.Coordinator {
	t.Helper()
	s := infrastore.NewMemoryStore()
	s.Seed(store.KindMissions, []store.Row{
		{"M101", "Acme", "Austin", "thermal", "2024-01-01", "2024-01-05", "normal", "Open", "", ""},
		{"M090", "Globex", "Dallas", "4k", "2024-01-02", "2024-01-06", "normal", "Assigned", "Bob", "D5"},
	})
	s.Seed(store.KindPilots, []store.Row{
		{"Ana", "thermal,lidar", "Part107", "5y", "Austin Texas", "", "Available", "Yes"},
	})
	s.Seed(store.KindDrones, []store.Row{
		{"D7", "M350", "thermal,4k", "Available", "Austin", "2024-06-01", ""},
	})
	var log logger.Logger = nopLogger{}
	c, err := assign.NewCoordinator(
		assign.Config{},
		roster.NewPilotManager(s, log),
		roster.NewDroneManager(s, log),
		roster.NewMissionManager(s, log),
		assign.NewCommitter(s, log),
		nil, nil, nil, log,
	)
	require.NoError(t, err)
	return c
}

func TestPlanHandler(t *testing.T) {
	h := NewPlanHandler(newCoordinator(t))

	req := httptest.NewRequest(http.MethodGet, "/api/missions/plan?mission_id=M101", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var plan assign.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	require.Len(t, plan.Candidates, 1)
	assert.Equal(t, "Ana", plan.Candidates[0].PilotName)
	assert.Equal(t, "D7", plan.Candidates[0].DroneID)
	assert.Equal(t, 3, plan.Candidates[0].Score)
}

func TestPlanHandlerMissingMission(t *testing.T) {
	h := NewPlanHandler(newCoordinator(t))

	req := httptest.NewRequest(http.MethodGet, "/api/missions/plan?mission_id=M999", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanHandlerAssignedConflict(t *testing.T) {
	h := NewPlanHandler(newCoordinator(t))

	req := httptest.NewRequest(http.MethodGet, "/api/missions/plan?mission_id=M090", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlanHandlerRequiresMissionID(t *testing.T) {
	h := NewPlanHandler(newCoordinator(t))

	req := httptest.NewRequest(http.MethodGet, "/api/missions/plan", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommitHandler(t *testing.T) {
	h := NewCommitHandler(newCoordinator(t))

	body := `{"mission_id":"M101","pilot_name":"Ana","drone_id":"D7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/missions/commit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CommitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Committed)
}

func TestCommitHandlerValidatesBody(t *testing.T) {
	h := NewCommitHandler(newCoordinator(t))

	req := httptest.NewRequest(http.MethodPost, "/api/missions/commit", strings.NewReader(`{"mission_id":"M101"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommitHandlerNotFound(t *testing.T) {
	h := NewCommitHandler(newCoordinator(t))

	body := `{"mission_id":"M101","pilot_name":"Nobody","drone_id":"D7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/missions/commit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
