package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user aborts the prompt with Ctrl-C.
var ErrAborted = errors.New("prompt aborted")

// StreamReader reads newline-terminated lines from any reader.
type StreamReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStreamReader builds a reader that prints prompts to out.
func NewStreamReader(in io.Reader, out io.Writer) *StreamReader {
	if out == nil {
		out = io.Discard
	}
	return &StreamReader{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line including its newline.
// A final unterminated line is returned without error; io.EOF follows.
func (r *StreamReader) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// LinerReader reads lines with editing and in-memory history.
type LinerReader struct {
	state *liner.State
}

// NewLinerReader puts the terminal into line-editing mode. Call Close to restore it.
func NewLinerReader() *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerReader{state: state}
}

// ReadLine prompts and returns the line with a trailing newline, matching StreamReader.
func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line + "\n", nil
}

// Close restores the terminal mode.
func (r *LinerReader) Close() error {
	return r.state.Close()
}
