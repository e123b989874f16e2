package config

// Notes:
// - LoadDefault and resolveConfigPath read os.UserConfigDir; tests that need
//   a deterministic location set XDG_CONFIG_HOME/HOME (Linux/macOS) or
//   AppData (Windows) with t.Setenv and therefore cannot run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// setUserConfigDir points os.UserConfigDir at a fresh temp directory.
func setUserConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	switch runtime.GOOS {
	case "windows":
		t.Setenv("AppData", dir)
	case "darwin", "ios":
		t.Setenv("HOME", dir)
		dir = filepath.Join(dir, "Library", "Application Support")
	default:
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 3030 {
		t.Errorf("Server = %s:%d, want 127.0.0.1:3030", cfg.Server.Host, cfg.Server.Port)
	}
	if !cfg.Server.Open {
		t.Error("Server.Open = false, want true")
	}
	if cfg.Server.Reload != ReloadSSE {
		t.Errorf("Server.Reload = %q, want %q", cfg.Server.Reload, ReloadSSE)
	}
	if cfg.Style.Name != "default" || cfg.Style.Highlight != "github" {
		t.Errorf("Style = %+v", cfg.Style)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		wantMsg string
	}{
		{name: "defaults valid", mutate: func(*Config) {}},
		{name: "port zero valid", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "max port valid", mutate: func(c *Config) { c.Server.Port = 65535 }},
		{name: "websocket reload valid", mutate: func(c *Config) { c.Server.Reload = "websocket" }},
		{name: "empty reload valid", mutate: func(c *Config) { c.Server.Reload = "" }},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
			wantMsg: "port",
		},
		{
			name:    "negative port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: true,
			wantMsg: "port",
		},
		{
			name:    "unknown reload mode",
			mutate:  func(c *Config) { c.Server.Reload = "polling" },
			wantErr: true,
			wantMsg: "reload",
		},
		{
			name:    "host too long",
			mutate:  func(c *Config) { c.Server.Host = strings.Repeat("h", MaxHostLength+1) },
			wantErr: true,
			wantMsg: "host",
		},
		{
			name:    "style name with path",
			mutate:  func(c *Config) { c.Style.Name = "../evil" },
			wantErr: true,
			wantMsg: "name",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			wantMsg: "level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			wantMsg: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "mdlive.yaml", `
server:
  host: 0.0.0.0
  port: 8080
  open: false
  reload: websocket
style:
  name: dark
  highlight: monokai
log:
  level: debug
  format: json
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 || cfg.Server.Open {
			t.Errorf("Server = %+v", cfg.Server)
		}
		if cfg.Server.Reload != ReloadWebSocket {
			t.Errorf("Reload = %q", cfg.Server.Reload)
		}
		if cfg.Style.Name != "dark" || cfg.Style.Highlight != "monokai" {
			t.Errorf("Style = %+v", cfg.Style)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v", cfg.Log)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "server:\n  port: 4000\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 4000 {
			t.Errorf("Port = %d, want 4000", cfg.Server.Port)
		}
		if cfg.Server.Host != DefaultHost || !cfg.Server.Open {
			t.Errorf("defaults lost: %+v", cfg.Server)
		}
		if cfg.Style.Highlight != DefaultHighlight {
			t.Errorf("Highlight = %q, want default", cfg.Style.Highlight)
		}
	})

	t.Run("empty file is defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "empty.yaml", "\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != DefaultPort {
			t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
		}
	})

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown field", "server:\n  prot: 1\n", ErrConfigParse},
		{"malformed yaml", "server: [\n", ErrConfigParse},
		{"wrong type", "server:\n  port: high\n", ErrConfigParse},
		{"invalid port", "server:\n  port: 99999\n", ErrInvalidConfig},
		{"invalid reload", "server:\n  reload: poll\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), "bad.yaml", tt.content)
			_, err := LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	userDir := setUserConfigDir(t)
	writeConfig(t, userDir, filepath.Join("mdlive", "work.yml"), "server:\n  port: 5000\n")

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig(\"work\") error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Server.Port)
	}

	_, err = LoadConfig("absent")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("LoadConfig(\"absent\") error = %v, want *NotFoundError", err)
	}
	if !errors.Is(err, ErrConfigNotFound) {
		t.Error("NotFoundError should match ErrConfigNotFound")
	}
	if len(nf.Tried) != 4 {
		t.Errorf("Tried = %v, want 4 paths", nf.Tried)
	}
}

func TestLoadDefault(t *testing.T) {
	t.Run("absent file yields defaults", func(t *testing.T) {
		setUserConfigDir(t)

		cfg, path, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if path != "" {
			t.Errorf("path = %q, want empty", path)
		}
		if cfg.Server.Port != DefaultPort {
			t.Errorf("Port = %d, want default", cfg.Server.Port)
		}
	})

	t.Run("present file is read", func(t *testing.T) {
		userDir := setUserConfigDir(t)
		want := writeConfig(t, userDir, filepath.Join("mdlive", DefaultFileName), "style:\n  highlight: dracula\n")

		cfg, path, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
		if cfg.Style.Highlight != "dracula" {
			t.Errorf("Highlight = %q, want dracula", cfg.Style.Highlight)
		}
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		userDir := setUserConfigDir(t)
		writeConfig(t, userDir, filepath.Join("mdlive", DefaultFileName), "log:\n  level: loud\n")

		if _, _, err := LoadDefault(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("LoadDefault() error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"work.yaml", true},
		{"work.YML", true},
		{"./work", true},
		{`dir\work`, true},
	}

	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
