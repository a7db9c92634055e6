package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/winloop/internal/config"
	"github.com/1broseidon/winloop/internal/event"
	"github.com/1broseidon/winloop/internal/manager"
	"github.com/1broseidon/winloop/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winloop <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the configured windows and run the event loop")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Run the event loop with an MCP control server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winloop <command> --help' for command-specific options.")
}

// runFlags are shared by run and mcp serve.
type runFlags struct {
	path     *string
	headless *bool
	display  *string
	logLevel *string
}

func addRunFlags(fs *flag.FlagSet) runFlags {
	return runFlags{
		path:     fs.String("path", "", "Config file path (default: ~/.config/winloop/config.yaml)"),
		headless: fs.Bool("headless", false, "Use the in-memory backend instead of X11"),
		display:  fs.String("display", "", "X display to connect to (default: $DISPLAY)"),
		logLevel: fs.String("log-level", "", "Log level: debug, info, warning, error"),
	}
}

// load resolves the config file and applies flag overrides on top of it.
func (f runFlags) load() (*config.Config, string, error) {
	path := *f.path
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, "", err
		}
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, "", err
	}

	cfg := res.Config
	if *f.headless {
		cfg.Headless = true
	}
	if *f.display != "" {
		cfg.Display = *f.display
	}
	if *f.logLevel != "" {
		cfg.LogLevel = *f.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, "", err
		}
	}
	return cfg, path, nil
}

func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func newBackend(cfg *config.Config, logger *slog.Logger) platform.Backend {
	if cfg.Headless {
		return platform.NewHeadless()
	}
	return platform.Default(cfg.Display, logger)
}

// newManager opens the primary window and every configured secondary window.
func newManager(cfg *config.Config, logger *slog.Logger) (*manager.Manager, error) {
	m, err := manager.New(cfg.Primary.Builder(),
		manager.WithBackend(newBackend(cfg, logger)),
		manager.WithLogger(logger),
		manager.WithShutdownTimeout(cfg.ShutdownTimeout),
		manager.WithExitFunc(func(int) {}),
	)
	if err != nil {
		return nil, err
	}
	for _, spec := range cfg.Windows {
		if _, err := m.AddWindow(spec.Tag, spec.Builder()); err != nil {
			m.Close()
			_ = m.Run(context.Background(), func(event.Event, *manager.ControlFlow, *manager.Manager) {})
			return nil, fmt.Errorf("failed to open window %q: %w", spec.Tag, err)
		}
	}
	return m, nil
}

// eventLogger logs every event and exits when the configured exit key is
// pressed in any window.
func eventLogger(cfg *config.Config, logger *slog.Logger) manager.Callback {
	exitKey, hasExitKey := cfg.ExitKeyCode()
	return func(ev event.Event, cf *manager.ControlFlow, m *manager.Manager) {
		logger.Debug("event", "event", event.Describe(ev))

		switch e := ev.(type) {
		case event.KeyboardEvent:
			if hasExitKey && e.Kind == event.KeyDown && e.Key == exitKey && e.Action == event.Press {
				logger.Info("exit key pressed", "key", exitKey.String(), "window", uint64(e.ID))
				cf.SetExit()
			}
		case event.WindowEvent:
			if e.Kind == event.Create || e.Kind == event.Close {
				logger.Info("window "+e.Kind.String(), "window", uint64(e.ID), "open", m.Len())
			}
		}
	}
}

// runLoop drives m until the callback exits, every window closes or ctx is
// cancelled. The returned code is the process exit status.
func runLoop(ctx context.Context, m *manager.Manager, cb manager.Callback, logger *slog.Logger) int {
	err := m.Run(ctx, cb)
	var exitErr *manager.ExitCodeError
	switch {
	case errors.As(err, &exitErr):
		logger.Info("exiting", "code", exitErr.Code)
		return exitErr.Code
	case err != nil:
		logger.Error("event loop failed", "error", err)
		return 1
	}
	return 0
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := addRunFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winloop run [--path PATH] [--headless] [--display DISPLAY] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the configured windows and log their events until the exit key is")
		fmt.Fprintln(os.Stderr, "pressed, every window is closed, or the process is interrupted.")
		fmt.Fprintln(os.Stderr, "Title, theme, size and position edits in the config file are applied live.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, path, err := flags.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := newManager(cfg, logger)
	if err != nil {
		logger.Error("failed to open windows", "error", err)
		return 1
	}
	logger.Info("winloop started", "windows", m.Len(), "headless", cfg.Headless)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	startReloader(watchCtx, m, cfg, path, logger)

	code := runLoop(ctx, m, eventLogger(cfg, logger), logger)
	logger.Info("winloop stopped")
	return code
}
