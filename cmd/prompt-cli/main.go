// Package main provides an interactive completion prompt.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	configpkg "github.com/minhyannv/prompt-cli/pkg/config"
	loggerpkg "github.com/minhyannv/prompt-cli/pkg/logger"
	"github.com/minhyannv/prompt-cli/pkg/session"
	"github.com/minhyannv/prompt-cli/pkg/telemetry"
	"github.com/minhyannv/prompt-cli/pkg/terminal"
)

// main is the program entry point.
func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr))
}

// run wires the program and returns its exit code. The token is validated
// before the terminal is touched.
func run(args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) int {
	config, err := parseCLIConfig(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	appLogger, closeLog, err := newAppLogger(config, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdinFile, isFile := stdin.(*os.File)
	interactive := isFile && terminal.IsTerminal(stdinFile)
	opts := []session.Option{session.WithLogger(appLogger)}
	if interactive {
		opts = append(opts, session.WithIndicator(terminal.NewSpinner(stdout)))
	}

	if config.TelemetryDir != "" {
		tracer, meter, shutdown, err := telemetry.Init(ctx, telemetry.Options{Dir: config.TelemetryDir})
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		appLogger.Info("telemetry enabled", map[string]any{"dir": config.TelemetryDir})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				loggerpkg.Error(appLogger, "telemetry shutdown failed", map[string]any{"error": err.Error()})
			}
		}()
		opts = append(opts, session.WithTracer(tracer), session.WithMeter(meter))
	}

	app, err := session.New(config, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if config.ClearScreen {
		terminal.Clear(stdout)
	}

	var reader lineReader
	if interactive {
		lr := terminal.NewLinerReader()
		defer lr.Close()
		reader = lr
	} else {
		reader = terminal.NewStreamReader(stdin, stdout)
	}

	if err := runREPL(ctx, app, reader, replOptions{
		Verbose: config.Verbose,
		Logger:  appLogger,
	}, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newAppLogger logs to stderr, or to a rotated file when -log_file is set.
func newAppLogger(cfg configpkg.Config, stderr io.Writer) (loggerpkg.Logger, func(), error) {
	if cfg.LogFile == "" {
		return loggerpkg.NewWriterLogger(stderr), func() {}, nil
	}
	w, err := loggerpkg.NewRotatingWriter(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return loggerpkg.NewWriterLogger(w), func() { closeQuietly(w) }, nil
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
