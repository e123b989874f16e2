package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(NewWebSocketHandler(hub, nil))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
	return conn
}

func TestWebSocketHandler_SendsReload(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dialWS(t, hub)

	hub.Publish()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, ReloadMessage, string(msg))
}

func TestWebSocketHandler_HubCloseSendsCloseFrame(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dialWS(t, hub)

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestWebSocketHandler_ClientCloseUnsubscribes(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dialWS(t, hub)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_RejectsPlainHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewWebSocketHandler(NewHub(), nil))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}
