package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/winloop/internal/mcp"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winloop mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Open the configured windows and serve MCP on stdio")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winloop mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := addRunFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winloop mcp serve [--path PATH] [--headless] [--display DISPLAY] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the configured windows and expose them to an MCP client on stdio.")
		fmt.Fprintln(os.Stderr, "The server stops when the client disconnects or every window is closed.")
		fmt.Fprintln(os.Stderr, "Logs go to stderr; stdout carries the protocol.")
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
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := newManager(cfg, logger)
	if err != nil {
		logger.Error("failed to open windows", "error", err)
		return 1
	}
	startReloader(ctx, m, cfg, path, logger)

	server := mcp.NewServer(m, logger)
	go func() {
		if err := server.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("mcp server error", "error", err)
		}
		// Client gone; stop the loop.
		cancel()
	}()

	logger.Info("mcp server started", "windows", m.Len())
	return runLoop(ctx, m, eventLogger(cfg, logger), logger)
}
