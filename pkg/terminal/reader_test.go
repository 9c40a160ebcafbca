package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minhyannv/prompt-cli/pkg/session"
)

func TestStreamReaderKeepsNewline(t *testing.T) {
	var out bytes.Buffer
	r := NewStreamReader(strings.NewReader("first line\nlast"), &out)

	line, err := r.ReadLine(">")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "first line\n" {
		t.Fatalf("expected newline kept, got %q", line)
	}

	line, err = r.ReadLine(">")
	if err != nil {
		t.Fatalf("ReadLine unterminated: %v", err)
	}
	if line != "last" {
		t.Fatalf("expected unterminated tail, got %q", line)
	}

	if _, err := r.ReadLine(">"); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != ">>>" {
		t.Fatalf("expected a prompt per read, got %q", out.String())
	}
}

func TestClearWritesReset(t *testing.T) {
	var out bytes.Buffer
	Clear(&out)
	if out.String() != "\x1bc" {
		t.Fatalf("unexpected clear sequence: %q", out.String())
	}
}

func TestSpinnerStartStop(t *testing.T) {
	var out bytes.Buffer
	s := NewSpinner(&out)
	var indicator session.Indicator = s
	indicator.Start()
	indicator.Stop()
	if s.Active() {
		t.Fatal("expected spinner inactive after Stop")
	}
	if s.Suffix != ThinkingSuffix {
		t.Fatalf("unexpected suffix: %q", s.Suffix)
	}
	// Stop on a stopped spinner is a no-op.
	indicator.Stop()
}
