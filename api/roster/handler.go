// Package roster exposes the availability queries over HTTP.
package roster

import (
	"encoding/json"
	"net/http"

	"github.com/skylark/droneops/core/roster"
)

// NewPilotsHandler returns an HTTP handler exposing available pilots via
// GET /api/pilots. Optional skill and location query parameters apply
// substring filters.
func NewPilotsHandler(pilots *roster.PilotManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		list, err := pilots.Available(r.Context(), r.URL.Query().Get("skill"), r.URL.Query().Get("location"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(list); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewDronesHandler returns an HTTP handler exposing available drones via
// GET /api/drones. Optional capability and location query parameters
// apply substring filters.
func NewDronesHandler(drones *roster.DroneManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		list, err := drones.Available(r.Context(), r.URL.Query().Get("capability"), r.URL.Query().Get("location"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(list); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
