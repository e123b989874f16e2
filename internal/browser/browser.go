// Package browser opens files and URLs in the user's web browser.
package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

// ErrNoBrowser indicates no browser could be started.
var ErrNoBrowser = errors.New("no browser available")

// Opener starts a browser on a target without waiting for it.
type Opener struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
	chrome   func() (string, bool)
	start    func(name string, args ...string) error
}

// Option configures an Opener.
type Option func(*Opener)

// WithGOOS overrides the platform used to pick the opener command.
func WithGOOS(goos string) Option {
	return func(o *Opener) { o.goos = goos }
}

// WithGetenv overrides environment lookup.
func WithGetenv(fn func(string) string) Option {
	return func(o *Opener) { o.getenv = fn }
}

// WithLookPath overrides executable lookup.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(o *Opener) { o.lookPath = fn }
}

// WithChromeLookup overrides the Chrome/Chromium fallback lookup.
func WithChromeLookup(fn func() (string, bool)) Option {
	return func(o *Opener) { o.chrome = fn }
}

// WithStarter overrides process start.
func WithStarter(fn func(name string, args ...string) error) Option {
	return func(o *Opener) { o.start = fn }
}

// New creates an Opener for the current platform.
func New(opts ...Option) *Opener {
	o := &Opener{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		chrome:   launcher.LookPath,
		start:    startDetached,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// command is one way of opening a target.
type command struct {
	name string
	args []string
}

// Open starts the first available browser on target: $BROWSER, then the
// platform opener, then a Chrome or Chromium binary.
func (o *Opener) Open(target string) error {
	var lastErr error
	for _, c := range o.candidates(target) {
		path, err := o.lookPath(c.name)
		if err != nil {
			lastErr = err
			continue
		}
		if err := o.start(path, c.args...); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrNoBrowser, lastErr)
	}
	return ErrNoBrowser
}

func (o *Opener) candidates(target string) []command {
	var cmds []command

	// $BROWSER may list several commands separated by the path list
	// separator; %s marks where the target goes.
	for _, entry := range strings.Split(o.getenv("BROWSER"), string(os.PathListSeparator)) {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		cmds = append(cmds, command{name: fields[0], args: substituteTarget(fields[1:], target)})
	}

	switch o.goos {
	case "darwin":
		cmds = append(cmds, command{name: "open", args: []string{target}})
	case "windows":
		cmds = append(cmds, command{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", target}})
	default:
		cmds = append(cmds, command{name: "xdg-open", args: []string{target}})
	}

	if chrome, ok := o.chrome(); ok {
		cmds = append(cmds, command{name: chrome, args: []string{target}})
	}

	return cmds
}

// substituteTarget replaces %s in args with target, or appends target when
// no placeholder is present.
func substituteTarget(args []string, target string) []string {
	out := make([]string, 0, len(args)+1)
	replaced := false
	for _, a := range args {
		if strings.Contains(a, "%s") {
			a = strings.ReplaceAll(a, "%s", target)
			replaced = true
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, target)
	}
	return out
}

// startDetached starts name and reaps it in the background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 -- browser command chosen by the user or platform
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
