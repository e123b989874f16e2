package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-mdlive/internal/config"
)

func fakeGetenv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("all variables", func(t *testing.T) {
		t.Parallel()

		var w bytes.Buffer
		env := loadEnvConfig(fakeGetenv(map[string]string{
			"MDLIVE_CONFIG": "work",
			"MDLIVE_HOST":   "0.0.0.0",
			"MDLIVE_PORT":   "4000",
			"MDLIVE_RELOAD": "websocket",
			"MDLIVE_STYLE":  "dark",
		}), &w)

		if env.ConfigPath != "work" || env.Host != "0.0.0.0" || env.Port != 4000 || env.Reload != "websocket" || env.Style != "dark" {
			t.Errorf("envConfig = %+v", env)
		}
		if w.Len() != 0 {
			t.Errorf("unexpected warning: %s", w.String())
		}
	})

	t.Run("unset port", func(t *testing.T) {
		t.Parallel()

		env := loadEnvConfig(fakeGetenv(nil), &bytes.Buffer{})
		if env.Port != -1 {
			t.Errorf("Port = %d, want -1", env.Port)
		}
	})

	t.Run("zero port is kept", func(t *testing.T) {
		t.Parallel()

		env := loadEnvConfig(fakeGetenv(map[string]string{"MDLIVE_PORT": "0"}), &bytes.Buffer{})
		if env.Port != 0 {
			t.Errorf("Port = %d, want 0", env.Port)
		}
	})

	for _, bad := range []string{"abc", "-1", "70000"} {
		t.Run("invalid port "+bad, func(t *testing.T) {
			t.Parallel()

			var w bytes.Buffer
			env := loadEnvConfig(fakeGetenv(map[string]string{"MDLIVE_PORT": bad}), &w)
			if env.Port != -1 {
				t.Errorf("Port = %d, want -1", env.Port)
			}
			if !strings.Contains(w.String(), "ignoring MDLIVE_PORT") {
				t.Errorf("warning = %q", w.String())
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var w bytes.Buffer
	warnUnknownEnvVars([]string{
		"MDLIVE_PORT=1",
		"MDLIVE_PROT=2",
		"HOME=/home/u",
		"MDLIVE_THEME=dark",
	}, &w)

	out := w.String()
	if !strings.Contains(out, "MDLIVE_PROT") || !strings.Contains(out, "MDLIVE_THEME") {
		t.Errorf("missing warnings: %q", out)
	}
	if strings.Contains(out, "MDLIVE_PORT") || strings.Contains(out, "HOME") {
		t.Errorf("unexpected warnings: %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment overrides the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		env   envConfig
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "empty env keeps config",
			env:  envConfig{Port: -1},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Server.Port != 5000 || cfg.Server.Host != "10.0.0.1" {
					t.Errorf("server = %+v", cfg.Server)
				}
			},
		},
		{
			name: "env wins over file",
			env:  envConfig{Host: "0.0.0.0", Port: 0, Reload: "websocket"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 0 || cfg.Server.Reload != "websocket" {
					t.Errorf("server = %+v", cfg.Server)
				}
			},
		},
		{
			name: "style name clears style file",
			env:  envConfig{Port: -1, Style: "dark"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Style.Name != "dark" || cfg.Style.File != "" {
					t.Errorf("style = %+v", cfg.Style)
				}
			},
		},
		{
			name: "style path sets file",
			env:  envConfig{Port: -1, Style: "./my.css"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Style.File != "./my.css" {
					t.Errorf("style = %+v", cfg.Style)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Server.Host = "10.0.0.1"
			cfg.Server.Port = 5000
			cfg.Style.File = "file.css"

			env := tt.env
			applyEnvConfig(&env, cfg)
			tt.check(t, cfg)
		})
	}
}
