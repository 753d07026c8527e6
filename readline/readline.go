// Package readline is the line editor behind the REPL: prompt, history and
// Ctrl-C handling, on top of liner.
package readline

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user hits Ctrl-C at the prompt.
var ErrAborted = liner.ErrPromptAborted

type Reader struct {
	state       *liner.State
	historyPath string
}

// Open starts line editing on the terminal and loads history from
// historyPath, if it is set and exists.
func Open(historyPath string) *Reader {
	r := &Reader{state: liner.NewLiner(), historyPath: historyPath}
	r.state.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = r.state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return r
}

// Readline prompts for one line. It returns io.EOF at end of input and
// ErrAborted on Ctrl-C.
func (r *Reader) Readline(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close writes history back out and restores the terminal.
func (r *Reader) Close() error {
	var err error
	if r.historyPath != "" {
		var f *os.File
		if f, err = os.Create(r.historyPath); err == nil {
			_, err = r.state.WriteHistory(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	}
	if cerr := r.state.Close(); err == nil {
		err = cerr
	}
	return err
}
