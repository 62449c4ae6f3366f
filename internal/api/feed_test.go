package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecocore/internal/telemetry"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialFeed(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/dashboard?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) telemetry.Envelope {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var env telemetry.Envelope
	require.NoError(t, json.Unmarshal(payload, &env))
	return env
}

func TestDashboardFeed(t *testing.T) {
	api := newTestAPI(t)
	ts := httptest.NewServer(api.Handler())
	defer ts.Close()

	token := registerAndLogin(t, ts, "heidi", "pw")

	conn := dialFeed(t, ts, token)
	defer conn.Close()

	// The first message is the full current snapshot.
	initial := readEnvelope(t, conn)
	require.Equal(t, telemetry.EventInitialData, initial.Event)
	require.Equal(t, float64(84), initial.Data.Energy.Battery)
	require.Len(t, initial.Data.Alerts, 3)

	// Each tick pushes the mutated snapshot to the connected client.
	b := telemetry.NewBroadcaster(api.State, api.Store, api.Hub, time.Second, api.Logger)
	b.Tick()

	update := readEnvelope(t, conn)
	require.Equal(t, telemetry.EventUpdateData, update.Event)
	require.GreaterOrEqual(t, update.Data.Energy.Battery, float64(80))
	require.LessOrEqual(t, update.Data.Energy.Battery, float64(90))
}

func TestDashboardFeedRejectsMissingToken(t *testing.T) {
	api := newTestAPI(t)
	ts := httptest.NewServer(api.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/dashboard"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, 401, resp.StatusCode)
}
