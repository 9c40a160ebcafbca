package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterLoggerFormatsObject(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	l.Info("turn done", map[string]any{"bytes": 12})

	line := buf.String()
	if !strings.Contains(line, "INFO  turn done") {
		t.Fatalf("missing level and message: %q", line)
	}
	if !strings.Contains(line, `obj={"bytes":12}`) {
		t.Fatalf("missing json object: %q", line)
	}
}

func TestDebugRespectsEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	Debug(false, l, "hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when disabled, got %q", buf.String())
	}

	Debug(true, l, "shown", map[string]any{"n": 1})
	if !strings.Contains(buf.String(), `DEBUG shown obj={"n":1}`) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Warn(nil, "x", nil)
	Error(nil, "x", nil)
	Debug(true, nil, "x", nil)
}

func TestRotatingWriterCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "prompt-cli.log")
	w, err := NewRotatingWriter(path)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	NewWriterLogger(w).Warn("rotated", nil)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "WARN  rotated") {
		t.Fatalf("unexpected log content: %q", string(data))
	}
}
