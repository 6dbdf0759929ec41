package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTest(input string, opts ...Option) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, opts...), &out
}

func TestAsk(t *testing.T) {
	p, out := newTest("  Asha  \nnext\n")

	got, err := p.Ask("Enter your name: ")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "Asha" {
		t.Errorf("Ask() = %q, want %q", got, "Asha")
	}
	if out.String() != "Enter your name: " {
		t.Errorf("output = %q, want label", out.String())
	}
}

func TestAsk_LastLineWithoutNewline(t *testing.T) {
	p, _ := newTest("final")

	got, err := p.Ask("> ")
	if err != nil || got != "final" {
		t.Errorf("Ask() = %q, %v; want %q, nil", got, err, "final")
	}

	if _, err := p.Ask("> "); !errors.Is(err, io.EOF) {
		t.Errorf("Ask() at end error = %v, want io.EOF", err)
	}
}

func TestAskValid_RepromptsUntilValid(t *testing.T) {
	// Given two bad answers followed by a good one
	p, out := newTest("abc\n12\n1234567890\n")
	check := func(s string) error {
		if len(s) != 10 {
			return Reject("Enter exactly 10 digits.")
		}
		return nil
	}

	// When AskValid runs with no attempt limit
	got, err := p.AskValid("Phone: ", check)

	// Then the valid answer is returned after two hints
	if err != nil {
		t.Fatalf("AskValid() error = %v", err)
	}
	if got != "1234567890" {
		t.Errorf("AskValid() = %q, want %q", got, "1234567890")
	}
	if n := strings.Count(out.String(), "! Enter exactly 10 digits."); n != 2 {
		t.Errorf("hint printed %d times, want 2\n%s", n, out.String())
	}
	if n := strings.Count(out.String(), "Phone: "); n != 3 {
		t.Errorf("label printed %d times, want 3", n)
	}
}

func TestAskValid_MaxAttempts(t *testing.T) {
	p, _ := newTest("x\ny\nz\ngood\n", WithMaxAttempts(3))

	_, err := p.AskValid("> ", func(s string) error {
		if s != "good" {
			return Reject("nope")
		}
		return nil
	})

	if !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("AskValid() error = %v, want ErrTooManyAttempts", err)
	}
}

func TestAskValid_EOF(t *testing.T) {
	p, _ := newTest("bad\n")

	_, err := p.AskValid("> ", func(string) error { return Reject("nope") })

	if !errors.Is(err, io.EOF) {
		t.Errorf("AskValid() error = %v, want io.EOF", err)
	}
}

func TestAskValid_PlainErrorText(t *testing.T) {
	p, out := newTest("bad\nok\n", WithWarnStyle(func(s string) string { return "[" + s + "]" }))

	_, err := p.AskValid("> ", func(s string) error {
		if s == "bad" {
			return errors.New("plain failure")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("AskValid() error = %v", err)
	}
	if !strings.Contains(out.String(), "[plain failure]") {
		t.Errorf("output = %q, want styled error text", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"YES\n", true},
		{" Yes \n", true},
		{"y\n", false},
		{"no\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, _ := newTest(tt.input)
			got, err := p.Confirm("Sure? ")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPause_EOFIsNotError(t *testing.T) {
	p, _ := newTest("")
	if err := p.Pause("Press Enter..."); err != nil {
		t.Errorf("Pause() error = %v, want nil", err)
	}
}
