// Package telemetry owns the daemon's single snapshot of simulated sensor
// data and the loop that mutates and publishes it.
package telemetry

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"ecocore/internal/domain"
)

// State is the process-wide telemetry snapshot. All access goes through its
// methods; ApplyTick and the mutators take the write lock, Snapshot returns a
// deep copy under the read lock so HTTP reads never observe a half-applied
// tick.
type State struct {
	mu   sync.RWMutex
	snap domain.Snapshot
	rng  *rand.Rand
}

func NewState() *State {
	return &State{
		snap: Baseline(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Baseline returns the snapshot every daemon starts from.
func Baseline() domain.Snapshot {
	return domain.Snapshot{
		Energy: domain.Energy{
			Battery:          84,
			Solar:            850,
			Wind:             310,
			DailyProduction:  18.5,
			WeeklyProduction: 125.8,
		},
		Water: domain.Water{
			TankLevel:    60,
			FilterStatus: "OK",
			DailyUsage:   145,
			WeeklyUsage:  987,
		},
		Waste: domain.Waste{
			Temperature:     38,
			Status:          "Active Composting",
			LastEmptied:     "2025-06-20",
			CompostProgress: 75,
		},
		Alerts: []domain.Alert{
			{ID: 1, Level: domain.AlertWarning, Message: "Greywater tank low – check filter system", Timestamp: "2025-06-26T21:30:00"},
			{ID: 2, Level: domain.AlertCritical, Message: "Compost fan needs restart – temperature rising", Timestamp: "2025-06-26T20:15:00"},
			{ID: 3, Level: domain.AlertInfo, Message: "Solar panel cleaning recommended for optimal efficiency", Timestamp: "2025-06-26T18:45:00", Acknowledged: true},
		},
		Controls: domain.Controls{Heater: false, Greywater: false},
		EcoScore: domain.EcoScore{
			WeeklyEnergySaved: 42.5,
			CarbonOffset:      28.3,
			EcoRating:         "Excellent",
			Achievements:      []string{"Solar Warrior", "Water Saver", "Green Guardian"},
		},
	}
}

// ApplyTick advances every simulated metric one step and returns the
// resulting snapshot. Bounded metrics take a uniform step in [-δ/2, +δ/2],
// are clamped into their band and rounded; eco-score fields only ever grow.
func (s *State) ApplyTick() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &s.snap.Energy
	e.Battery = s.walk(e.Battery, 2, 80, 90)
	e.Solar = s.walk(e.Solar, 100, 800, 900)
	e.Wind = s.walk(e.Wind, 50, 300, 350)

	w := &s.snap.Water
	w.TankLevel = s.walk(w.TankLevel, 1, 55, 65)
	w.DailyUsage = s.walk(w.DailyUsage, 2, 140, 150)

	waste := &s.snap.Waste
	waste.Temperature = s.walk(waste.Temperature, 1, 35, 40)
	if waste.CompostProgress < 100 {
		waste.CompostProgress = math.Round(math.Min(100, waste.CompostProgress+s.rng.Float64()*0.5))
	}

	score := &s.snap.EcoScore
	score.WeeklyEnergySaved = round1(score.WeeklyEnergySaved + s.rng.Float64()*0.1)
	score.CarbonOffset = round1(score.CarbonOffset + s.rng.Float64()*0.05)

	return copySnapshot(s.snap)
}

// Snapshot returns a consistent copy of the current state.
func (s *State) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap)
}

// SetControls applies the non-nil toggles and returns the resulting controls.
func (s *State) SetControls(heater, greywater *bool) domain.Controls {
	s.mu.Lock()
	defer s.mu.Unlock()

	if heater != nil {
		s.snap.Controls.Heater = *heater
	}
	if greywater != nil {
		s.snap.Controls.Greywater = *greywater
	}
	return s.snap.Controls
}

// LoadAlerts replaces the alert list, used at startup to install the
// persisted acknowledged/muted flags.
func (s *State) LoadAlerts(alerts []domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Alerts = append([]domain.Alert(nil), alerts...)
}

// SetAlertAcknowledged marks an alert; ok is false for an unknown id.
func (s *State) SetAlertAcknowledged(id int, acknowledged bool) (domain.Alert, bool) {
	return s.setAlertFlag(id, func(a *domain.Alert) { a.Acknowledged = acknowledged })
}

// SetAlertMuted mutes or unmutes an alert; ok is false for an unknown id.
func (s *State) SetAlertMuted(id int, muted bool) (domain.Alert, bool) {
	return s.setAlertFlag(id, func(a *domain.Alert) { a.Muted = muted })
}

func (s *State) setAlertFlag(id int, apply func(*domain.Alert)) (domain.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Alerts {
		if s.snap.Alerts[i].ID == id {
			apply(&s.snap.Alerts[i])
			return s.snap.Alerts[i], true
		}
	}
	return domain.Alert{}, false
}

// CriticalAlerts returns unacknowledged warning and critical alerts.
func (s *State) CriticalAlerts() []domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Alert
	for _, a := range s.snap.Alerts {
		if a.Acknowledged {
			continue
		}
		if a.Level == domain.AlertWarning || a.Level == domain.AlertCritical {
			out = append(out, a)
		}
	}
	return out
}

func (s *State) walk(value, delta, min, max float64) float64 {
	value += (s.rng.Float64() - 0.5) * delta
	return math.Round(math.Max(min, math.Min(max, value)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func copySnapshot(snap domain.Snapshot) domain.Snapshot {
	out := snap
	out.Alerts = append([]domain.Alert(nil), snap.Alerts...)
	out.EcoScore.Achievements = append([]string(nil), snap.EcoScore.Achievements...)
	return out
}
