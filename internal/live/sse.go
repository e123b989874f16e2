package live

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alnah/go-mdlive/internal/logging"
)

// DefaultKeepAlive is the interval between SSE keepalive comments.
const DefaultKeepAlive = 15 * time.Second

// SSEHandler streams reload events to EventSource clients.
type SSEHandler struct {
	hub       *Hub
	logger    logging.Logger
	keepAlive time.Duration
}

// NewSSEHandler creates an SSEHandler. A non-positive keepAlive uses
// DefaultKeepAlive; a nil logger discards output.
func NewSSEHandler(hub *Hub, logger logging.Logger, keepAlive time.Duration) *SSEHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &SSEHandler{hub: hub, logger: logger, keepAlive: keepAlive}
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe()
	defer sub.Unsubscribe()

	h.logger.Debug("sse client connected", "id", sub.ID, "remote", r.RemoteAddr)
	defer h.logger.Debug("sse client disconnected", "id", sub.ID)

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-sub.C():
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", ReloadMessage); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Compile-time interface check.
var _ http.Handler = (*SSEHandler)(nil)
