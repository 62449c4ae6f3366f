package domain

import "time"

// Snapshot is the full telemetry state pushed to every client. Exactly one
// instance exists per running daemon; a restart resets it to the baseline.
type Snapshot struct {
	Energy   Energy   `json:"energy"`
	Water    Water    `json:"water"`
	Waste    Waste    `json:"waste"`
	Alerts   []Alert  `json:"alerts"`
	Controls Controls `json:"controls"`
	EcoScore EcoScore `json:"ecoScore"`
}

type Energy struct {
	Battery          float64 `json:"battery"`
	Solar            float64 `json:"solar"`
	Wind             float64 `json:"wind"`
	DailyProduction  float64 `json:"dailyProduction"`
	WeeklyProduction float64 `json:"weeklyProduction"`
}

type Water struct {
	TankLevel    float64 `json:"tankLevel"`
	FilterStatus string  `json:"filterStatus"`
	DailyUsage   float64 `json:"dailyUsage"`
	WeeklyUsage  float64 `json:"weeklyUsage"`
}

type Waste struct {
	Temperature     float64 `json:"temperature"`
	Status          string  `json:"status"`
	LastEmptied     string  `json:"lastEmptied"`
	CompostProgress float64 `json:"compostProgress"`
}

type Controls struct {
	Heater    bool `json:"heater"`
	Greywater bool `json:"greywater"`
}

type EcoScore struct {
	WeeklyEnergySaved float64  `json:"weeklyEnergySaved"`
	CarbonOffset      float64  `json:"carbonOffset"`
	EcoRating         string   `json:"ecoRating"`
	Achievements      []string `json:"achievements"`
}

type Alert struct {
	ID           int    `json:"id"`
	Level        string `json:"level"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
	Acknowledged bool   `json:"acknowledged"`
	Muted        bool   `json:"muted"`
}

// Alert levels.
const (
	AlertInfo     = "info"
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Reading is one persisted sample of a bounded metric.
type Reading struct {
	ID         uint      `json:"id"`
	SensorType string    `json:"sensor_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Timestamp  time.Time `json:"timestamp"`
}

// HostStats describes the machine the daemon runs on.
type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryUsed    uint64  `json:"memory_used"`
	MemoryTotal   uint64  `json:"memory_total"`
	MemoryPercent float64 `json:"memory_percent"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
}
