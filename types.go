package mdlive

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdlive/internal/logging"
)

// Logger receives operational messages. Args are alternating key/value pairs.
type Logger = logging.Logger

// ReloadMode selects the transport of the live-reload script.
type ReloadMode string

// Reload modes.
const (
	ReloadNone      ReloadMode = ""
	ReloadSSE       ReloadMode = "sse"
	ReloadWebSocket ReloadMode = "websocket"
)

// ParseReloadMode maps a config or flag value to a ReloadMode.
// The empty string selects ReloadSSE.
func ParseReloadMode(s string) (ReloadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sse":
		return ReloadSSE, nil
	case "websocket", "ws":
		return ReloadWebSocket, nil
	default:
		return ReloadNone, fmt.Errorf("unknown reload mode %q (want sse or websocket)", s)
	}
}

// Input is one Markdown document to render.
type Input struct {
	// Name is the document name shown as page title when the source has no
	// front-matter title. Empty means stdin.
	Name string

	// Markdown is the raw source. It must be UTF-8; a leading BOM is ignored.
	Markdown []byte

	// BaseDir, when set, turns relative image and link targets into
	// absolute file:// URLs resolved against it.
	BaseDir string

	// Reload selects the live-reload script added to the page.
	Reload ReloadMode
}

// Result holds the output of a render.
type Result struct {
	Title string
	Body  string // HTML fragment without the page shell
	HTML  []byte // complete document
}

// defaultTitle is the page title of a document read from stdin.
const defaultTitle = "New file"
