package sdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetWebSocketURL(t *testing.T) {
	c := NewClient("http://localhost:3000")
	c.SetToken("abc")

	u, err := c.GetWebSocketURL("/ws/dashboard")
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:3000/ws/dashboard?token=abc", u)
}

func TestGetWebSocketURLSecure(t *testing.T) {
	c := NewClient("https://eco.example.com")

	u, err := c.GetWebSocketURL("/ws/dashboard")
	require.NoError(t, err)
	require.Equal(t, "wss://eco.example.com/ws/dashboard", u)
}
