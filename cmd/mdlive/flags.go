package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command-line mistakes.
var ErrUsage = errors.New("usage error")

// commonFlags holds flags that control config loading and verbosity.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serverFlags holds live server flags.
type serverFlags struct {
	host   string
	port   int
	reload string
	noOpen bool
}

// assetFlags holds page appearance flags.
type assetFlags struct {
	style     string // name or CSS file path
	assetPath string
	highlight string
}

// cliFlags holds every flag of the mdlive command.
type cliFlags struct {
	common      commonFlags
	server      serverFlags
	assets      assetFlags
	static      bool
	output      string
	version     bool
	printConfig bool

	// set records the flags given on the command line, which override
	// the environment and the config file.
	set map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug messages")
}

// addServerFlags adds live server flags to a FlagSet.
func addServerFlags(fs *flag.FlagSet, f *serverFlags) {
	fs.StringVar(&f.host, "host", "", "bind address (default 127.0.0.1)")
	fs.IntVar(&f.port, "port", 0, "HTTP port (default 3030)")
	fs.StringVar(&f.reload, "reload", "", "reload transport: sse, websocket")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open a browser")
}

// addAssetFlags adds page appearance flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code blocks")
}

// parseFlags parses the command line and returns the positional args.
// A parse error wraps ErrUsage; -h returns flag.ErrHelp after printing help.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdlive", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{set: make(map[string]bool)}

	fs.BoolVarP(&f.static, "static-mode", "s", false, "render once, open in browser, exit")
	fs.StringVarP(&f.output, "output", "o", "", "static mode: write HTML here instead of a temp file")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")

	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	if f.output != "" && !f.static {
		return nil, nil, fmt.Errorf("%w: --output requires --static-mode", ErrUsage)
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: expected at most one FILE, got %d", ErrUsage, fs.NArg())
	}

	return f, fs.Args(), nil
}
