package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ecocore/internal/domain"
	"ecocore/internal/ws"
)

// Event names on the websocket feed.
const (
	EventInitialData = "initial-data"
	EventUpdateData  = "update-data"
)

// Envelope wraps a snapshot with its event name for the websocket feed.
type Envelope struct {
	Event string          `json:"event"`
	Data  domain.Snapshot `json:"data"`
}

// Broadcaster drives the tick cycle: mutate the state, persist the bounded
// metrics, push the full snapshot to every connected client.
type Broadcaster struct {
	state    *State
	store    domain.ReadingRepository
	hub      *ws.Hub
	interval time.Duration
	logger   *slog.Logger
}

func NewBroadcaster(state *State, store domain.ReadingRepository, hub *ws.Hub, interval time.Duration, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		state:    state,
		store:    store,
		hub:      hub,
		interval: interval,
		logger:   logger,
	}
}

// Run ticks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Tick()
		}
	}
}

// Tick runs one mutate-persist-broadcast cycle.
func (b *Broadcaster) Tick() {
	snap := b.state.ApplyTick()

	if err := b.store.SaveReadings(ReadingsFromSnapshot(snap, time.Now())); err != nil {
		b.logger.Warn("failed to persist sensor readings", "error", err)
	}

	payload, err := json.Marshal(Envelope{Event: EventUpdateData, Data: snap})
	if err != nil {
		b.logger.Error("failed to marshal snapshot", "error", err)
		return
	}

	b.hub.Broadcast(payload)
}

// ReadingsFromSnapshot extracts the bounded metrics as persistable rows.
func ReadingsFromSnapshot(snap domain.Snapshot, at time.Time) []domain.Reading {
	return []domain.Reading{
		{SensorType: "battery", Value: snap.Energy.Battery, Unit: "%", Timestamp: at},
		{SensorType: "solar", Value: snap.Energy.Solar, Unit: "W", Timestamp: at},
		{SensorType: "wind", Value: snap.Energy.Wind, Unit: "W", Timestamp: at},
		{SensorType: "tank_level", Value: snap.Water.TankLevel, Unit: "%", Timestamp: at},
		{SensorType: "daily_usage", Value: snap.Water.DailyUsage, Unit: "L", Timestamp: at},
		{SensorType: "compost_temperature", Value: snap.Waste.Temperature, Unit: "°C", Timestamp: at},
		{SensorType: "compost_progress", Value: snap.Waste.CompostProgress, Unit: "%", Timestamp: at},
	}
}
