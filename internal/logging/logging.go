// Package logging provides the leveled logger used by the preview server.
//
// The default implementation is backed by github.com/goliatone/go-logger.
// Callers that do not want output use NoOp.
package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger is the logging contract used across the module.
// Args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Named loggers support child loggers scoped to a component.
type Named interface {
	Named(name string) Logger
}

// Config selects the level and output format.
type Config struct {
	Level     string // debug | info | warn | error
	Format    string // console | json | pretty
	AddSource bool
}

// Levels and formats accepted by New.
var (
	Levels  = []string{"debug", "info", "warn", "error"}
	Formats = []string{"console", "json", "pretty"}
)

// New builds a go-logger backed Logger from cfg.
func New(cfg Config) (Logger, error) {
	options := []glog.Option{}

	level, err := normalizeLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &adapter{inner: glog.NewLogger(options...)}, nil
}

// For returns a child logger named name when l supports it, l otherwise.
// A nil logger yields NoOp.
func For(l Logger, name string) Logger {
	if l == nil {
		return NoOp()
	}
	if n, ok := l.(Named); ok {
		return n.Named(name)
	}
	return l
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func (l *adapter) Named(name string) Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return l
	}
	if base, ok := l.inner.(*glog.BaseLogger); ok {
		return &adapter{inner: base.GetLogger(name)}
	}
	return l
}

func normalizeLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return "", nil
	case "debug":
		return glog.Debug, nil
	case "info":
		return glog.Info, nil
	case "warn", "warning":
		return glog.Warn, nil
	case "error":
		return glog.Error, nil
	default:
		return "", fmt.Errorf("logging: unsupported level %q", level)
	}
}

// NoOp returns a Logger that discards everything.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Compile-time interface checks.
var (
	_ Logger = (*adapter)(nil)
	_ Named  = (*adapter)(nil)
	_ Logger = noopLogger{}
)
