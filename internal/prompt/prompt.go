// Package prompt reads line-oriented answers from a console, re-asking until
// an answer passes its check.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooManyAttempts is returned by AskValid when a non-zero attempt limit is reached.
var ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")

// Prompter asks questions on out and reads trimmed answers from in.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
	warn        func(string) string
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithMaxAttempts limits AskValid retries. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) { p.maxAttempts = n }
}

// WithWarnStyle sets the decoration applied to re-prompt hints.
func WithWarnStyle(fn func(string) string) Option {
	return func(p *Prompter) { p.warn = fn }
}

// New creates a Prompter over in and out.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:   bufio.NewReader(in),
		out:  out,
		warn: func(s string) string { return "! " + s },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Ask prints label and returns the next input line with surrounding space
// trimmed. At end of input with nothing read it returns io.EOF.
func (p *Prompter) Ask(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("prompt: reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskValid asks until check accepts the answer. Each rejection prints the
// check's hint (or error text) and asks again.
func (p *Prompter) AskValid(label string, check func(string) error) (string, error) {
	for attempt := 1; ; attempt++ {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		cerr := check(answer)
		if cerr == nil {
			return answer, nil
		}
		_, _ = fmt.Fprintln(p.out, p.warn(hint(cerr)))
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return "", fmt.Errorf("%w (%d)", ErrTooManyAttempts, attempt)
		}
	}
}

// Confirm asks a yes/no question. Only "yes" (any case) is affirmative.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// Pause waits for the user to press Enter. End of input is not an error.
func (p *Prompter) Pause(label string) error {
	if _, err := p.Ask(label); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// hint returns the user-facing text for a check failure.
func hint(err error) string {
	var h interface{ Hint() string }
	if errors.As(err, &h) {
		return h.Hint()
	}
	return err.Error()
}

// rejection is a check failure carrying only a user-facing message.
type rejection struct{ msg string }

func (r *rejection) Error() string { return "prompt: rejected: " + r.msg }

func (r *rejection) Hint() string { return r.msg }

// Reject returns a check failure whose hint is msg.
func Reject(msg string) error {
	return &rejection{msg: msg}
}
