package app

import (
	"log/slog"

	"ecocore/internal/config"
	"ecocore/internal/storage"
	"ecocore/internal/telemetry"
	"ecocore/internal/ws"
)

type Container struct {
	Config      *config.Config
	Store       *storage.GormStore
	State       *telemetry.State
	Hub         *ws.Hub
	Broadcaster *telemetry.Broadcaster
	Logger      *slog.Logger
}
