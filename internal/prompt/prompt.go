// Package prompt reads operator answers from the terminal. Reads are
// cancellable through the context so an interrupt unwinds immediately.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the context is canceled during a prompt
// or the input stream is closed before an answer arrives.
var ErrInterrupted = errors.New("prompt interrupted")

// Prompter asks the operator for input.
type Prompter interface {
	// Line shows question and returns the trimmed answer.
	Line(ctx context.Context, question string) (string, error)
	// Password shows question and returns the answer without echoing it.
	Password(ctx context.Context, question string) (string, error)
}

// Terminal is a Prompter over an input stream and an output writer.
// When the input is not a terminal, passwords are read as plain lines so
// answers can be piped in.
type Terminal struct {
	in           *bufio.Reader
	out          io.Writer
	fd           int
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
	getState     func(fd int) (*term.State, error)
	restore      func(fd int, state *term.State) error
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithPasswordReader replaces term.ReadPassword.
func WithPasswordReader(f func(fd int) ([]byte, error)) Option {
	return func(t *Terminal) {
		t.readPassword = f
	}
}

// WithTerminalCheck replaces term.IsTerminal.
func WithTerminalCheck(f func(fd int) bool) Option {
	return func(t *Terminal) {
		t.isTerminal = f
	}
}

// NewTerminal creates a Terminal reading from in and writing prompts to out.
func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:           bufio.NewReader(in),
		out:          out,
		fd:           -1,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
		getState:     term.GetState,
		restore:      term.Restore,
	}
	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd()) //nolint:gosec // file descriptors fit in int
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Line implements Prompter.
func (t *Terminal) Line(ctx context.Context, question string) (string, error) {
	if _, err := fmt.Fprint(t.out, question); err != nil {
		return "", err
	}
	return t.readLine(ctx)
}

// Password implements Prompter.
func (t *Terminal) Password(ctx context.Context, question string) (string, error) {
	if _, err := fmt.Fprint(t.out, question); err != nil {
		return "", err
	}
	// Lines already buffered by an earlier Line call (a paste, for
	// instance) are no longer on the fd, so consume them first.
	if t.fd < 0 || !t.isTerminal(t.fd) || t.in.Buffered() > 0 {
		return t.readLine(ctx)
	}

	// ReadPassword restores echo itself when it returns; if we bail out on
	// an interrupt first, put the terminal back ourselves.
	state, stateErr := t.getState(t.fd)

	type result struct {
		pw  []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		pw, err := t.readPassword(t.fd)
		done <- result{pw: pw, err: err}
	}()

	select {
	case <-ctx.Done():
		if stateErr == nil {
			_ = t.restore(t.fd, state)
		}
		_, _ = fmt.Fprintln(t.out)
		return "", fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	case r := <-done:
		_, _ = fmt.Fprintln(t.out)
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return "", fmt.Errorf("%w: input closed", ErrInterrupted)
			}
			return "", fmt.Errorf("reading password: %w", r.err)
		}
		pw := string(r.pw)
		clear(r.pw)
		return pw, nil
	}
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := t.in.ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && len(r.line) > 0 {
				return strings.TrimSpace(r.line), nil
			}
			if errors.Is(r.err, io.EOF) {
				return "", fmt.Errorf("%w: input closed", ErrInterrupted)
			}
			return "", fmt.Errorf("reading input: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}
