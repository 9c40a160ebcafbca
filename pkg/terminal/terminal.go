package terminal

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// ThinkingSuffix is printed next to the spinner while a request is in flight.
const ThinkingSuffix = "\t\tOpenAI is Thinking..."

// clearSequence resets the terminal (ESC c).
const clearSequence = "\x1bc"

// NewSpinner returns a waiting indicator that erases itself on Stop.
// It stays silent when w is not a terminal.
func NewSpinner(w io.Writer) *spinner.Spinner {
	return spinner.New(spinner.CharSets[11], 100*time.Millisecond,
		spinner.WithWriter(w),
		spinner.WithSuffix(ThinkingSuffix),
	)
}

// Clear resets the terminal once at startup.
func Clear(w io.Writer) {
	_, _ = io.WriteString(w, clearSequence)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
