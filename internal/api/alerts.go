package api

import (
	"net/http"
	"strconv"

	"ecocore/internal/domain"
)

func (api *Server) handleCriticalAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := api.State.CriticalAlerts()
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Alert{"alerts": alerts})
}

func (api *Server) handleAckAlert(w http.ResponseWriter, r *http.Request) {
	api.setAlertFlag(w, r, "ack")
}

func (api *Server) handleMuteAlert(w http.ResponseWriter, r *http.Request) {
	api.setAlertFlag(w, r, "mute")
}

// setAlertFlag flips the flag in the broadcast state first, then persists it
// so a daemon restart keeps the acknowledgement.
func (api *Server) setAlertFlag(w http.ResponseWriter, r *http.Request, action string) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	var (
		alert domain.Alert
		ok    bool
	)
	switch action {
	case "ack":
		alert, ok = api.State.SetAlertAcknowledged(id, true)
	case "mute":
		alert, ok = api.State.SetAlertMuted(id, true)
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Alert not found")
		return
	}

	var persistErr error
	switch action {
	case "ack":
		persistErr = api.Store.SetAlertAcknowledged(id, true)
	case "mute":
		persistErr = api.Store.SetAlertMuted(id, true)
	}
	if persistErr != nil {
		api.Logger.Warn("failed to persist alert flag", "id", id, "action", action, "error", persistErr)
	}

	writeJSON(w, http.StatusOK, alert)
}
