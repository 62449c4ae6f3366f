package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ecocore/internal/telemetry"
)

func (api *Server) handleInitialData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.State.Snapshot())
}

func (api *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sensorType := r.URL.Query().Get("type")

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	readings, err := api.Store.ListReadings(sensorType, limit)
	if err != nil {
		api.Logger.Error("failed to list readings", "error", err)
		writeError(w, http.StatusInternalServerError, "Error reading history")
		return
	}

	writeJSON(w, http.StatusOK, readings)
}

func (api *Server) handleSetControls(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Heater    *bool `json:"heater"`
		Greywater *bool `json:"greywater"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Heater == nil && req.Greywater == nil {
		writeError(w, http.StatusBadRequest, "No controls to update")
		return
	}

	controls := api.State.SetControls(req.Heater, req.Greywater)
	writeJSON(w, http.StatusOK, controls)
}

// handleDashboardFeed upgrades to a websocket and queues the current snapshot
// as the initial-data event; the broadcaster supplies update-data from there.
func (api *Server) handleDashboardFeed(w http.ResponseWriter, r *http.Request) {
	initial, err := json.Marshal(telemetry.Envelope{
		Event: telemetry.EventInitialData,
		Data:  api.State.Snapshot(),
	})
	if err != nil {
		api.Logger.Error("failed to marshal initial snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "Error preparing feed")
		return
	}

	api.Hub.ServeWs(w, r, initial)
}
