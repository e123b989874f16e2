// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/alnah/go-mdlive/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the platform used to pick platform-specific hints.
var GOOS = runtime.GOOS

// ForNoBrowser returns hints for a missing browser.
// Detects headless sessions (SSH, containers, no display) and suggests
// the flags that avoid opening a browser.
func ForNoBrowser() string {
	var hints []string

	headless := os.Getenv("SSH_CONNECTION") != "" || IsInContainer()
	if GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		headless = true
	}

	if os.Getenv("BROWSER") == "" {
		hints = append(hints, "set BROWSER to your browser command")
	}
	if headless {
		hints = append(hints, "no display detected, use --no-open or --output")
	}

	return formatHints(hints)
}

// ForPortInUse returns a hint for a bind failure on port.
func ForPortInUse(port int) string {
	next := "another port"
	if port > 0 && port < 65535 {
		next = strconv.Itoa(port + 1)
	}
	return format("use --port " + next + " or stop the process using port " + strconv.Itoa(port))
}

// ForWatchLimit returns hints for file watch initialization errors.
func ForWatchLimit() string {
	if GOOS == "linux" {
		return format("raise fs.inotify.max_user_watches or max_user_instances with sysctl")
	}
	return format("check that the file's directory is readable")
}

// ForStdinInServerMode returns a hint for server mode without a file.
func ForStdinInServerMode() string {
	return format("pass a FILE to watch, or use --static-mode to preview stdin")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/mdlive/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), ".config/mdlive") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
