package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alnah/go-mdlive/internal/logging"
)

const wsWriteTimeout = 5 * time.Second

// WebSocketHandler sends reload messages over a WebSocket connection.
type WebSocketHandler struct {
	hub      *Hub
	logger   logging.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a WebSocketHandler. The upgrader keeps
// gorilla's default same-origin check. A nil logger discards output.
func NewWebSocketHandler(hub *Hub, logger logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe()
	defer sub.Unsubscribe()

	h.logger.Debug("websocket client connected", "id", sub.ID, "remote", r.RemoteAddr)
	defer h.logger.Debug("websocket client disconnected", "id", sub.ID)

	// The browser never sends; reading only detects a closed peer.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case _, ok := <-sub.C():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(wsWriteTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(ReloadMessage)); err != nil {
				h.logger.Debug("websocket write failed", "id", sub.ID, "error", err)
				return
			}
		}
	}
}

// Compile-time interface check.
var _ http.Handler = (*WebSocketHandler)(nil)
