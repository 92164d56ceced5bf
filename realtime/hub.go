package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
)

const pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// authMessage is the only in-band message the server recognizes. Anything
// else is ignored.
type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// conn is one live duplex channel. Unauthenticated until the in-band
// handshake succeeds. gorilla allows a single concurrent writer, so every
// write goes through writeMu.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
	done    chan struct{}
}

func (c *conn) writeJSON(payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, msg)
}

func (c *conn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

// Hub owns the identity→connection registry. At most one connection is
// registered per user; a later successful auth for the same user supersedes
// the earlier one. The reverse index makes unregistration on close O(1) and
// keeps a superseded connection's close from erasing the newer entry.
type Hub struct {
	secret string
	logger *zap.Logger

	mu     sync.Mutex
	byUser map[string]*conn
	byConn map[*conn]string
}

func NewHub(secret string, logger *zap.Logger) *Hub {
	return &Hub{
		secret: secret,
		logger: logger,
		byUser: make(map[string]*conn),
		byConn: make(map[*conn]string),
	}
}

// HandleWS upgrades the request and runs the connection until the transport
// closes. Auth happens in-band; the endpoint itself is public.
func (h *Hub) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cn := &conn{ws: ws, done: make(chan struct{})}
	go h.keepAlive(cn)

	defer func() {
		close(cn.done)
		h.unregister(cn)
		ws.Close()
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var msg authMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Debug("ignoring malformed websocket payload", zap.Error(err))
			continue
		}
		if msg.Type != "auth" || msg.Token == "" {
			continue
		}

		userID, err := middlewares.ParseToken(h.secret, msg.Token)
		if err != nil {
			// Flush the rejection before closing; a failed handshake is
			// terminal for the connection.
			_ = cn.writeJSON(gin.H{"type": "auth", "status": "error", "message": "Invalid token"})
			return
		}

		h.register(userID, cn)
		if err := cn.writeJSON(gin.H{"type": "auth", "status": "success"}); err != nil {
			return
		}
		h.logger.Info("websocket authenticated", zap.String("user_id", userID))
	}
}

// keepAlive probes the transport at a fixed interval. The first failed probe
// or connection teardown cancels it permanently.
func (h *Hub) keepAlive(cn *conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-cn.done:
			return
		case <-ticker.C:
			if err := cn.ping(); err != nil {
				return
			}
		}
	}
}

func (h *Hub) register(userID string, cn *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Last-write-wins: detach any previous connection for this user, and
	// any previous identity of this connection.
	if old, ok := h.byUser[userID]; ok && old != cn {
		delete(h.byConn, old)
	}
	if prevUser, ok := h.byConn[cn]; ok && prevUser != userID {
		if h.byUser[prevUser] == cn {
			delete(h.byUser, prevUser)
		}
	}

	h.byUser[userID] = cn
	h.byConn[cn] = userID
}

// unregister removes a closing connection. Closing a connection that was
// never registered, or was superseded, is a no-op.
func (h *Hub) unregister(cn *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID, ok := h.byConn[cn]
	if !ok {
		return
	}
	delete(h.byConn, cn)
	if h.byUser[userID] == cn {
		delete(h.byUser, userID)
	}
	h.logger.Info("websocket disconnected", zap.String("user_id", userID))
}

// SendToUser delivers a payload to the single registered connection for a
// user. No connection, or a dead one, is a silent no-op.
func (h *Hub) SendToUser(userID string, payload any) {
	h.mu.Lock()
	cn, ok := h.byUser[userID]
	h.mu.Unlock()
	if !ok {
		return
	}
	if err := cn.writeJSON(payload); err != nil {
		h.logger.Debug("push delivery failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Broadcast delivers a payload to every registered connection, skipping
// dead ones.
func (h *Hub) Broadcast(payload any) {
	h.mu.Lock()
	conns := make([]*conn, 0, len(h.byConn))
	for cn := range h.byConn {
		conns = append(conns, cn)
	}
	h.mu.Unlock()

	for _, cn := range conns {
		if err := cn.writeJSON(payload); err != nil {
			h.logger.Debug("broadcast delivery failed", zap.Error(err))
		}
	}
}

// ConnectedUser reports whether a user currently has a registered
// connection.
func (h *Hub) ConnectedUser(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.byUser[userID]
	return ok
}
