package storage

import (
	"testing"
	"time"

	"ecocore/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	store, err := NewGormStore(":memory:")
	require.NoError(t, err)
	return store
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := newTestStore(t)

	user := &domain.User{ID: uuid.NewString(), Username: "alice", Password: "hash"}
	require.NoError(t, store.CreateUser(user))

	dup := &domain.User{ID: uuid.NewString(), Username: "alice", Password: "otherhash"}
	err := store.CreateUser(dup)
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestGetUserByUsername(t *testing.T) {
	store := newTestStore(t)

	user := &domain.User{ID: uuid.NewString(), Username: "bob", Password: "hash"}
	require.NoError(t, store.CreateUser(user))

	got, err := store.GetUserByUsername("bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "hash", got.Password)

	missing, err := store.GetUserByUsername("nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestReadingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	now := time.Now()
	readings := []domain.Reading{
		{SensorType: "battery", Value: 84, Unit: "%", Timestamp: now},
		{SensorType: "solar", Value: 850, Unit: "W", Timestamp: now},
		{SensorType: "battery", Value: 85, Unit: "%", Timestamp: now.Add(5 * time.Second)},
	}
	require.NoError(t, store.SaveReadings(readings))

	battery, err := store.ListReadings("battery", 10)
	require.NoError(t, err)
	require.Len(t, battery, 2)
	// Newest first.
	require.Equal(t, float64(85), battery[0].Value)

	all, err := store.ListReadings("", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)

	limited, err := store.ListReadings("", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestAlertSeedAndFlags(t *testing.T) {
	store := newTestStore(t)

	seed := []domain.Alert{
		{ID: 1, Level: domain.AlertWarning, Message: "tank low", Timestamp: "2025-06-26T21:30:00"},
		{ID: 2, Level: domain.AlertCritical, Message: "fan restart", Timestamp: "2025-06-26T20:15:00"},
	}
	require.NoError(t, store.SeedAlerts(seed))

	require.NoError(t, store.SetAlertAcknowledged(1, true))

	// Re-seeding must not reset flags.
	require.NoError(t, store.SeedAlerts(seed))

	alerts, err := store.ListAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	require.True(t, alerts[0].Acknowledged)
	require.False(t, alerts[1].Acknowledged)

	err = store.SetAlertMuted(99, true)
	require.Error(t, err)
}
