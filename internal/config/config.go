// Package config loads and validates the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-mdlive/internal/assets"
	"github.com/alnah/go-mdlive/internal/fileutil"
	"github.com/alnah/go-mdlive/internal/logging"
	"github.com/alnah/go-mdlive/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Defaults applied before the file is read.
const (
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 3030
	DefaultReload    = ReloadSSE
	DefaultHighlight = "github"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	// DefaultFileName is the config file looked up in the user config
	// directory when no --config is given.
	DefaultFileName = "config.yaml"
)

// Field limits.
const (
	MaxHostLength = 253  // DNS name limit
	MaxNameLength = 100  // style and highlight names
	MaxPathLength = 4096 // PATH_MAX on Linux
	MaxPort       = 65535
)

// Reload transports accepted by server.reload.
const (
	ReloadSSE       = "sse"
	ReloadWebSocket = "websocket"
)

// ReloadModes lists the accepted server.reload values.
var ReloadModes = []string{ReloadSSE, ReloadWebSocket}

// Config holds the complete configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Style  StyleConfig  `yaml:"style"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig defines the live server options.
type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`   // 0 lets the OS pick a free port
	Open   bool   `yaml:"open"`   // open a browser on start
	Reload string `yaml:"reload"` // "sse" or "websocket"
}

// StyleConfig defines the page appearance.
type StyleConfig struct {
	Name      string `yaml:"name"`      // style name resolved by the asset chain
	File      string `yaml:"file"`      // explicit CSS file, wins over Name
	AssetPath string `yaml:"assetPath"` // directory with styles/ templates/ favicon.svg
	Highlight string `yaml:"highlight"` // chroma style for code blocks
}

// LogConfig defines logger options.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:   DefaultHost,
			Port:   DefaultPort,
			Open:   true,
			Reload: DefaultReload,
		},
		Style: StyleConfig{
			Name:      assets.DefaultStyleName,
			Highlight: DefaultHighlight,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks ranges, enumerations and field lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Host, validation.Length(0, MaxHostLength)),
		validation.Field(&c.Server.Port, validation.Min(0), validation.Max(MaxPort)),
		validation.Field(&c.Server.Reload, validation.In(anySlice(ReloadModes)...)),
	); err != nil {
		return fmt.Errorf("%w: server: %v", ErrInvalidConfig, err)
	}

	if err := validation.ValidateStruct(&c.Style,
		validation.Field(&c.Style.Name, validation.Length(0, MaxNameLength), validation.By(assetName)),
		validation.Field(&c.Style.File, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Style.AssetPath, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Style.Highlight, validation.Length(0, MaxNameLength)),
	); err != nil {
		return fmt.Errorf("%w: style: %v", ErrInvalidConfig, err)
	}

	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In(anySlice(logging.Levels)...)),
		validation.Field(&c.Log.Format, validation.In(anySlice(logging.Formats)...)),
	); err != nil {
		return fmt.Errorf("%w: log: %v", ErrInvalidConfig, err)
	}

	return nil
}

// assetName rejects style names the asset loaders would refuse.
func assetName(value any) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if err := assets.ValidateAssetName(name); err != nil {
		return errors.New("must be a bare style name")
	}
	return nil
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or a YAML extension, it's treated
// as a file path. Otherwise, it's treated as a config name and searched in
// standard locations. Returns error if the file is not found.
// Values absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	return loadFile(configPath)
}

// LoadDefault loads {user config dir}/mdlive/config.yaml when it exists and
// returns DefaultConfig otherwise. The returned path is empty when no file
// was read.
func LoadDefault() (*Config, string, error) {
	path := DefaultPath()
	if path == "" || !fileutil.FileExists(path) {
		return DefaultConfig(), "", nil
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// DefaultPath returns {user config dir}/mdlive/config.yaml, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, assets.AppDirName, DefaultFileName)
}

func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, {user config dir}/mdlive/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, assets.AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: triedPaths}
}

// NotFoundError reports the paths searched for a named config.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}
