// Package missions exposes planning and commit over HTTP.
package missions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylark/droneops/core/assign"
)

// NewPlanHandler returns an HTTP handler computing candidate plans via
// GET /api/missions/plan?mission_id=M101&urgent=true.
func NewPlanHandler(coord *assign.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		missionID := r.URL.Query().Get("mission_id")
		if missionID == "" {
			http.Error(w, "mission_id is required", http.StatusBadRequest)
			return
		}
		urgent := r.URL.Query().Get("urgent") == "true"

		plan, err := coord.Plan(r.Context(), missionID, urgent)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(plan); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// CommitRequest is the body of POST /api/missions/commit.
type CommitRequest struct {
	MissionID string `json:"mission_id"`
	PilotName string `json:"pilot_name"`
	DroneID   string `json:"drone_id"`
	Urgent    bool   `json:"urgent"`
}

// CommitResponse reports the outcome, including the steps that landed
// when the sequence stopped partway.
type CommitResponse struct {
	Committed bool          `json:"committed"`
	Completed []assign.Step `json:"completed,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// NewCommitHandler returns an HTTP handler finalizing assignments via
// POST /api/missions/commit.
func NewCommitHandler(coord *assign.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req CommitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.MissionID == "" || req.PilotName == "" || req.DroneID == "" {
			http.Error(w, "mission_id, pilot_name and drone_id are required", http.StatusBadRequest)
			return
		}

		err := coord.Commit(r.Context(), req.MissionID, req.PilotName, req.DroneID, req.Urgent)
		w.Header().Set("Content-Type", "application/json")
		var pce *assign.PartialCommitError
		switch {
		case err == nil:
			_ = json.NewEncoder(w).Encode(CommitResponse{Committed: true})
		case errors.As(err, &pce):
			// The records written so far stay written; the caller must
			// see exactly how far the sequence got.
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(CommitResponse{Completed: pce.Completed, Error: pce.Error()})
		default:
			writeError(w, err)
		}
	})
}

func writeError(w http.ResponseWriter, err error) {
	var nfe *assign.NotFoundError
	var aae *assign.AlreadyAssignedError
	switch {
	case errors.As(err, &nfe):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &aae):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, assign.ErrSubjectUnavailable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
