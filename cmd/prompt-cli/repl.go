package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/prompt-cli/pkg/logger"
	"github.com/minhyannv/prompt-cli/pkg/terminal"
)

const promptMarker = ">"

type asker interface {
	Ask(ctx context.Context, line string) (string, error)
}

type lineReader interface {
	ReadLine(prompt string) (string, error)
}

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  loggerpkg.Logger
}

// runREPL reads, asks and prints until ctx is cancelled or input ends.
// A failed turn is reported and the loop prompts again.
func runREPL(ctx context.Context, app asker, in lineReader, opts replOptions, out io.Writer) error {
	if app == nil {
		return fmt.Errorf("session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", nil)

	turns := 0
	for {
		line, err := readLine(ctx, in)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, terminal.ErrAborted), ctx.Err() != nil:
				loggerpkg.Debug(opts.Verbose, opts.Logger, "repl stop", map[string]any{
					"turns":  turns,
					"reason": err.Error(),
				})
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		_, _ = fmt.Fprintln(out)
		text, err := app.Ask(ctx, line)
		turns++
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}

		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, text)
	}
}

// readLine returns early when ctx is cancelled. A blocked reader is abandoned
// since the process is about to exit.
func readLine(ctx context.Context, in lineReader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := in.ReadLine(promptMarker)
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}
