package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecocore/internal/api"
	"ecocore/internal/app"
	"ecocore/internal/config"
	"ecocore/internal/storage"
	"ecocore/internal/telemetry"
	"ecocore/internal/ws"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	configDir, err := config.Dir()
	if err != nil {
		logger.Error("could not resolve config directory", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		logger.Error("could not load configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting ecocore daemon",
		"database", cfg.DatabasePath,
		"port", cfg.Port,
		"tick_interval", cfg.TickSeconds,
	)

	store, err := storage.NewGormStore(cfg.DatabasePath)
	if err != nil {
		logger.Error("could not open database", "error", err)
		os.Exit(1)
	}

	state := telemetry.NewState()

	// Seed the alerts table on first run, then install the persisted
	// acknowledged/muted flags into the broadcast state.
	baseline := telemetry.Baseline()
	if err := store.SeedAlerts(baseline.Alerts); err != nil {
		logger.Error("could not seed alerts", "error", err)
		os.Exit(1)
	}
	if alerts, err := store.ListAlerts(); err != nil {
		logger.Warn("could not load persisted alerts", "error", err)
	} else if len(alerts) > 0 {
		state.LoadAlerts(alerts)
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	broadcaster := telemetry.NewBroadcaster(
		state,
		store,
		hub,
		time.Duration(cfg.TickSeconds)*time.Second,
		logger,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go broadcaster.Run(ctx)

	container := &app.Container{
		Config:      cfg,
		Store:       store,
		State:       state,
		Hub:         hub,
		Broadcaster: broadcaster,
		Logger:      logger,
	}

	apiServer := api.NewAPIServer(container)

	listenAddr := fmt.Sprintf(":%d", cfg.Port)
	if err := apiServer.Start(listenAddr); err != nil {
		logger.Error("api server failed", "error", err)
		os.Exit(1)
	}
}
