package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(testSecret, zap.NewNop())
	r := gin.New()
	r.GET("/ws", hub.HandleWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := strings.Replace(srv.URL, "http", "ws", 1) + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func authenticate(t *testing.T, ws *websocket.Conn, userID string) {
	t.Helper()
	token, err := middlewares.SignToken(testSecret, userID)
	require.NoError(t, err)

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "auth", "token": token}))

	var resp map[string]any
	require.NoError(t, ws.ReadJSON(&resp))
	require.Equal(t, "auth", resp["type"])
	require.Equal(t, "success", resp["status"])
}

func TestHub_AuthHandshakeSuccess(t *testing.T) {
	hub, srv := newTestServer(t)

	ws := dial(t, srv)
	authenticate(t, ws, "user-1")

	assert.True(t, hub.ConnectedUser("user-1"))
}

func TestHub_AuthRejectedAndClosed(t *testing.T) {
	hub, srv := newTestServer(t)

	ws := dial(t, srv)
	require.NoError(t, ws.WriteJSON(map[string]string{"type": "auth", "token": "garbage"}))

	var resp map[string]any
	require.NoError(t, ws.ReadJSON(&resp))
	assert.Equal(t, "auth", resp["type"])
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Invalid token", resp["message"])

	// Server closes after flushing the rejection.
	ws.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := ws.ReadMessage()
	require.Error(t, err)

	assert.False(t, hub.ConnectedUser("user-1"))
}

func TestHub_MalformedMessagesIgnored(t *testing.T) {
	hub, srv := newTestServer(t)

	ws := dial(t, srv)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json at all")))
	require.NoError(t, ws.WriteJSON(map[string]string{"type": "subscribe"}))

	// Connection survives garbage; auth still works afterwards.
	authenticate(t, ws, "user-2")
	assert.True(t, hub.ConnectedUser("user-2"))
}

func TestHub_SendToUserDeliversOnlyToTarget(t *testing.T) {
	hub, srv := newTestServer(t)

	wsA := dial(t, srv)
	authenticate(t, wsA, "user-a")
	wsB := dial(t, srv)
	authenticate(t, wsB, "user-b")

	hub.SendToUser("user-a", map[string]string{"type": "monitoring_data", "hello": "a"})

	var got map[string]any
	wsA.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, wsA.ReadJSON(&got))
	assert.Equal(t, "monitoring_data", got["type"])

	wsB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := wsB.ReadMessage()
	assert.Error(t, err, "other users must not receive the push")
}

func TestHub_SendToUnknownUserIsNoop(t *testing.T) {
	hub, _ := newTestServer(t)
	hub.SendToUser("nobody", map[string]string{"type": "new_alert"})
}

func TestHub_LastWriteWinsOnReauth(t *testing.T) {
	hub, srv := newTestServer(t)

	wsOld := dial(t, srv)
	authenticate(t, wsOld, "user-x")
	wsNew := dial(t, srv)
	authenticate(t, wsNew, "user-x")

	hub.SendToUser("user-x", map[string]string{"type": "new_alert", "n": "1"})

	var got map[string]any
	wsNew.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, wsNew.ReadJSON(&got))
	assert.Equal(t, "new_alert", got["type"])

	wsOld.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := wsOld.ReadMessage()
	assert.Error(t, err, "superseded connection must not receive pushes")

	// Closing the superseded connection must not evict the new one.
	wsOld.Close()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, hub.ConnectedUser("user-x"))
}

func TestHub_CloseClearsRegistration(t *testing.T) {
	hub, srv := newTestServer(t)

	ws := dial(t, srv)
	authenticate(t, ws, "user-y")
	require.True(t, hub.ConnectedUser("user-y"))

	ws.Close()
	require.Eventually(t, func() bool {
		return !hub.ConnectedUser("user-y")
	}, time.Second, 10*time.Millisecond)
}

func TestHub_CloseWithoutRegistrationIsNoop(t *testing.T) {
	_, srv := newTestServer(t)

	// Never authenticates; closing must not panic or error server-side.
	ws := dial(t, srv)
	ws.Close()
	time.Sleep(50 * time.Millisecond)
}

func TestHub_Broadcast(t *testing.T) {
	hub, srv := newTestServer(t)

	ws1 := dial(t, srv)
	authenticate(t, ws1, "u1")
	ws2 := dial(t, srv)
	authenticate(t, ws2, "u2")

	hub.Broadcast(map[string]string{"type": "announcement"})

	for _, ws := range []*websocket.Conn{ws1, ws2} {
		var got map[string]any
		ws.SetReadDeadline(time.Now().Add(time.Second))
		require.NoError(t, ws.ReadJSON(&got))
		assert.Equal(t, "announcement", got["type"])
	}
}

func TestHub_PayloadRoundTrip(t *testing.T) {
	hub, srv := newTestServer(t)

	ws := dial(t, srv)
	authenticate(t, ws, "u1")

	type alertPayload struct {
		Type  string `json:"type"`
		Title string `json:"title"`
	}
	hub.SendToUser("u1", alertPayload{Type: "new_alert", Title: "Geada"})

	ws.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := ws.ReadMessage()
	require.NoError(t, err)

	var got alertPayload
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Geada", got.Title)
}
