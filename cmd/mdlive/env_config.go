package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdlive/internal/config"
	"github.com/alnah/go-mdlive/internal/fileutil"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // MDLIVE_CONFIG: config file name or path
	Host       string // MDLIVE_HOST: bind address
	Port       int    // MDLIVE_PORT: HTTP port, -1 when unset
	Reload     string // MDLIVE_RELOAD: sse or websocket
	Style      string // MDLIVE_STYLE: CSS style name or path
}

// knownEnvVars lists valid MDLIVE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDLIVE_CONFIG": true,
	"MDLIVE_HOST":   true,
	"MDLIVE_PORT":   true,
	"MDLIVE_RELOAD": true,
	"MDLIVE_STYLE":  true,
}

// loadEnvConfig reads the MDLIVE_* variables through getenv.
// An unparsable MDLIVE_PORT is reported on w and ignored.
func loadEnvConfig(getenv func(string) string, w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDLIVE_CONFIG"),
		Host:       getenv("MDLIVE_HOST"),
		Port:       -1,
		Reload:     getenv("MDLIVE_RELOAD"),
		Style:      getenv("MDLIVE_STYLE"),
	}

	if port := getenv("MDLIVE_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p < 0 || p > config.MaxPort {
			fmt.Fprintf(w, "warning: ignoring MDLIVE_PORT=%q (want 0-%d)\n", port, config.MaxPort)
		} else {
			cfg.Port = p
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDLIVE_* variables.
// Helps catch typos like MDLIVE_PROT instead of MDLIVE_PORT.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, env := range environ {
		if strings.HasPrefix(env, "MDLIVE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Host != "" {
		cfg.Server.Host = env.Host
	}
	if env.Port >= 0 {
		cfg.Server.Port = env.Port
	}
	if env.Reload != "" {
		cfg.Server.Reload = env.Reload
	}
	if env.Style != "" {
		applyStyle(cfg, env.Style)
	}
}

// applyStyle sets a style given as a name or a CSS file path.
// The later source wins, so setting one clears the other.
func applyStyle(cfg *config.Config, style string) {
	if fileutil.IsFilePath(style) {
		cfg.Style.File = style
		return
	}
	cfg.Style.Name = style
	cfg.Style.File = ""
}
