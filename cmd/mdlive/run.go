package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"pkt.systems/version"

	mdlive "github.com/alnah/go-mdlive"
	"github.com/alnah/go-mdlive/internal/config"
	"github.com/alnah/go-mdlive/internal/hints"
	"github.com/alnah/go-mdlive/internal/logging"
	"github.com/alnah/go-mdlive/internal/yamlutil"
)

// run executes one mdlive invocation. args excludes the program name.
func run(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.version {
		fmt.Fprintln(env.Stdout, version.Module(), version.Current())
		return nil
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		if flags.common.verbose {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}))
	defer undo()

	warnUnknownEnvVars(env.Environ(), env.Stderr)

	cfg, cfgPath, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	if flags.printConfig {
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath)
	}

	renderer, err := mdlive.NewRenderer(
		mdlive.WithStyle(cfg.Style.Name),
		mdlive.WithStyleFile(cfg.Style.File),
		mdlive.WithAssetPath(cfg.Style.AssetPath),
		mdlive.WithHighlightStyle(cfg.Style.Highlight),
		mdlive.WithLogger(logging.For(logger, "render")),
	)
	if err != nil {
		return err
	}
	logger.Debug("style resolved", "source", renderer.StyleSource())

	var file string
	if len(positional) == 1 {
		file = positional[0]
	}

	ctx, stop := notifyContext(ctx)
	defer stop()

	if flags.static {
		return runStatic(ctx, renderer, file, flags, cfg, env)
	}
	return runServer(ctx, renderer, file, cfg, logger, env)
}

// resolveConfig loads the config file (from --config, MDLIVE_CONFIG or the
// default location), then applies the environment and the command line.
// Returns the path of the file read, empty when defaults were used.
func resolveConfig(flags *cliFlags, env *Environment) (*config.Config, string, error) {
	envCfg := loadEnvConfig(env.Getenv, env.Stderr)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if name != "" {
		cfg, err = config.LoadConfig(name)
		path = name
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return nil, "", err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// mergeFlags applies the flags given on the command line to cfg.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.set["host"] {
		cfg.Server.Host = flags.server.host
	}
	if flags.set["port"] {
		cfg.Server.Port = flags.server.port
	}
	if flags.set["reload"] {
		cfg.Server.Reload = flags.server.reload
	}
	if flags.server.noOpen {
		cfg.Server.Open = false
	}
	if flags.set["style"] {
		applyStyle(cfg, flags.assets.style)
	}
	if flags.set["asset-path"] {
		cfg.Style.AssetPath = flags.assets.assetPath
	}
	if flags.set["highlight"] {
		cfg.Style.Highlight = flags.assets.highlight
	}
	switch {
	case flags.common.quiet:
		cfg.Log.Level = "error"
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	}
}

// runStatic renders file (stdin when empty) once and opens the result.
func runStatic(ctx context.Context, r *mdlive.Renderer, file string, flags *cliFlags, cfg *config.Config, env *Environment) error {
	if file == "" && env.IsTerminal(env.Stdin) {
		fmt.Fprintln(env.Stderr, "reading Markdown from stdin (Ctrl-D to finish)")
	}

	in, err := mdlive.ReadInput(file, env.Stdin)
	if err != nil {
		return err
	}

	previewer := mdlive.NewStaticPreviewer(r, env.Opener,
		mdlive.WithOutputPath(flags.output),
		mdlive.WithOpen(cfg.Server.Open),
	)
	path, err := previewer.Preview(ctx, in)
	if path != "" && !flags.common.quiet {
		fmt.Fprintln(env.Stdout, path)
	}
	return err
}

// runServer serves file until ctx is cancelled by a signal.
func runServer(ctx context.Context, r *mdlive.Renderer, file string, cfg *config.Config, logger logging.Logger, env *Environment) error {
	reload, err := mdlive.ParseReloadMode(cfg.Server.Reload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	srv, err := mdlive.NewServer(r, mdlive.ServerConfig{
		Path:   file,
		Host:   cfg.Server.Host,
		Port:   cfg.Server.Port,
		Reload: reload,
		Open:   cfg.Server.Open,
	},
		mdlive.WithServerLogger(logging.For(logger, "server")),
		mdlive.WithOpener(env.Opener),
	)
	if err != nil {
		return err
	}

	if err := srv.Listen(); err != nil {
		if errors.Is(err, mdlive.ErrPortInUse) {
			return withHint(err, hints.ForPortInUse(cfg.Server.Port))
		}
		return err
	}
	fmt.Fprintf(env.Stderr, "Serving %s at %s (Ctrl-C to stop)\n", file, srv.URL())

	return srv.Serve(ctx)
}
