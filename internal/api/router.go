package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"ecocore/internal/app"
	"ecocore/internal/config"
	"ecocore/internal/storage"
	"ecocore/internal/telemetry"
	"ecocore/internal/ws"
)

type Server struct {
	Store  *storage.GormStore
	State  *telemetry.State
	Hub    *ws.Hub
	Config *config.Config
	Logger *slog.Logger
}

func NewAPIServer(container *app.Container) *Server {
	return &Server{
		Store:  container.Store,
		State:  container.State,
		Hub:    container.Hub,
		Config: container.Config,
		Logger: container.Logger,
	}
}

func (api *Server) Start(listenAddr string) error {
	handler := api.Handler()

	api.Logger.Info("api listening", "addr", listenAddr)
	return http.ListenAndServe(listenAddr, handler)
}

// Handler builds the full route table; split out from Start for tests.
func (api *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", api.handleRoot)

	mux.HandleFunc("POST /api/auth/register", api.handleRegister)
	mux.HandleFunc("POST /api/auth/login", api.handleLogin)

	mux.Handle("GET /api/dashboard/initial", api.AuthMiddleware(http.HandlerFunc(api.handleInitialData)))
	mux.Handle("GET /api/dashboard/history", api.AuthMiddleware(http.HandlerFunc(api.handleHistory)))
	mux.Handle("PUT /api/dashboard/controls", api.AuthMiddleware(http.HandlerFunc(api.handleSetControls)))

	mux.Handle("GET /api/alerts/critical", api.AuthMiddleware(http.HandlerFunc(api.handleCriticalAlerts)))
	mux.Handle("POST /api/alerts/{id}/ack", api.AuthMiddleware(http.HandlerFunc(api.handleAckAlert)))
	mux.Handle("POST /api/alerts/{id}/mute", api.AuthMiddleware(http.HandlerFunc(api.handleMuteAlert)))

	mux.Handle("GET /api/system/stats", api.AuthMiddleware(http.HandlerFunc(api.handleSystemStats)))

	mux.Handle("GET /ws/dashboard", api.AuthMiddleware(http.HandlerFunc(api.handleDashboardFeed)))

	return api.corsMiddleware(mux)
}

func (api *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, "ECO-CORE daemon is running")
}

func (api *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
