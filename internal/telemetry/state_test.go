package telemetry

import (
	"testing"

	"ecocore/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestApplyTickKeepsMetricsInBand(t *testing.T) {
	state := NewState()

	bands := []struct {
		name     string
		min, max float64
		value    func(domain.Snapshot) float64
	}{
		{"battery", 80, 90, func(s domain.Snapshot) float64 { return s.Energy.Battery }},
		{"solar", 800, 900, func(s domain.Snapshot) float64 { return s.Energy.Solar }},
		{"wind", 300, 350, func(s domain.Snapshot) float64 { return s.Energy.Wind }},
		{"tankLevel", 55, 65, func(s domain.Snapshot) float64 { return s.Water.TankLevel }},
		{"dailyUsage", 140, 150, func(s domain.Snapshot) float64 { return s.Water.DailyUsage }},
		{"temperature", 35, 40, func(s domain.Snapshot) float64 { return s.Waste.Temperature }},
	}

	for i := 0; i < 1000; i++ {
		snap := state.ApplyTick()
		for _, band := range bands {
			v := band.value(snap)
			if v < band.min || v > band.max {
				t.Fatalf("tick %d: %s = %v outside [%v, %v]", i, band.name, v, band.min, band.max)
			}
		}
	}
}

func TestApplyTickCompostProgressMonotonic(t *testing.T) {
	state := NewState()

	prev := state.Snapshot().Waste.CompostProgress
	for i := 0; i < 1000; i++ {
		snap := state.ApplyTick()
		progress := snap.Waste.CompostProgress
		if progress < prev {
			t.Fatalf("tick %d: compost progress decreased from %v to %v", i, prev, progress)
		}
		if progress > 100 {
			t.Fatalf("tick %d: compost progress %v exceeds 100", i, progress)
		}
		prev = progress
	}
}

func TestApplyTickEcoScoreMonotonic(t *testing.T) {
	state := NewState()

	prev := state.Snapshot().EcoScore
	for i := 0; i < 1000; i++ {
		score := state.ApplyTick().EcoScore
		require.GreaterOrEqual(t, score.WeeklyEnergySaved, prev.WeeklyEnergySaved, "tick %d", i)
		require.GreaterOrEqual(t, score.CarbonOffset, prev.CarbonOffset, "tick %d", i)
		prev = score
	}
}

func TestApplyTickLeavesStaticFieldsAlone(t *testing.T) {
	state := NewState()

	for i := 0; i < 10; i++ {
		state.ApplyTick()
	}

	snap := state.Snapshot()
	require.Equal(t, 18.5, snap.Energy.DailyProduction)
	require.Equal(t, 125.8, snap.Energy.WeeklyProduction)
	require.Equal(t, float64(987), snap.Water.WeeklyUsage)
	require.Equal(t, "OK", snap.Water.FilterStatus)
	require.Equal(t, "Active Composting", snap.Waste.Status)
	require.Equal(t, "2025-06-20", snap.Waste.LastEmptied)
	require.Equal(t, "Excellent", snap.EcoScore.EcoRating)
}

func TestSnapshotIsACopy(t *testing.T) {
	state := NewState()

	snap := state.Snapshot()
	snap.Energy.Battery = -1
	snap.Alerts[0].Acknowledged = true
	snap.EcoScore.Achievements[0] = "changed"

	fresh := state.Snapshot()
	require.Equal(t, float64(84), fresh.Energy.Battery)
	require.False(t, fresh.Alerts[0].Acknowledged)
	require.Equal(t, "Solar Warrior", fresh.EcoScore.Achievements[0])
}

func TestSetControls(t *testing.T) {
	state := NewState()

	on := true
	controls := state.SetControls(&on, nil)
	require.True(t, controls.Heater)
	require.False(t, controls.Greywater)

	off := false
	controls = state.SetControls(&off, &on)
	require.False(t, controls.Heater)
	require.True(t, controls.Greywater)

	// Tick does not disturb controls.
	snap := state.ApplyTick()
	require.True(t, snap.Controls.Greywater)
}

func TestAlertFlags(t *testing.T) {
	state := NewState()

	alert, ok := state.SetAlertAcknowledged(2, true)
	require.True(t, ok)
	require.True(t, alert.Acknowledged)

	_, ok = state.SetAlertMuted(99, true)
	require.False(t, ok)

	// Acknowledgement survives the next tick.
	snap := state.ApplyTick()
	var found domain.Alert
	for _, a := range snap.Alerts {
		if a.ID == 2 {
			found = a
		}
	}
	require.True(t, found.Acknowledged)
}

func TestCriticalAlerts(t *testing.T) {
	state := NewState()

	critical := state.CriticalAlerts()
	// Baseline: alert 1 warning, alert 2 critical, alert 3 info (acked).
	require.Len(t, critical, 2)

	state.SetAlertAcknowledged(2, true)
	critical = state.CriticalAlerts()
	require.Len(t, critical, 1)
	require.Equal(t, 1, critical[0].ID)
}
