// Package session runs the interactive console flows: the contact manager
// menu and the billing checkout.
package session

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// titleWidth is the width of boxed section titles.
const titleWidth = 60

// Theme decorates console text. A plain Theme emits no escape sequences.
type Theme struct {
	plain bool
	title lipgloss.Style
	warn  lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	rule  lipgloss.Style
}

// NewTheme returns a styled theme when w is a terminal, or a plain one
// otherwise. forcePlain overrides TTY detection.
func NewTheme(w io.Writer, forcePlain bool) Theme {
	if forcePlain || !isTTY(w) {
		return PlainTheme()
	}
	return Theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Width(titleWidth).
			Align(lipgloss.Center).
			Border(lipgloss.DoubleBorder(), true, false).
			BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		warn: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}),
		ok:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		bad:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		rule: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
	}
}

// PlainTheme returns a theme that renders text without styling.
func PlainTheme() Theme {
	return Theme{plain: true}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Title renders a section heading framed by rules.
func (t Theme) Title(s string) string {
	if t.plain {
		rule := strings.Repeat("=", titleWidth)
		return "\n" + rule + "\n" + center(s, titleWidth) + "\n" + rule
	}
	return "\n" + t.title.Render(s)
}

// Rule renders a full-width closing line under a menu.
func (t Theme) Rule() string {
	return t.render(t.rule, strings.Repeat("=", titleWidth))
}

// Warn renders a recoverable problem.
func (t Theme) Warn(s string) string {
	return t.render(t.warn, "⚠️ "+s)
}

// OK renders a success message.
func (t Theme) OK(s string) string {
	return t.render(t.ok, s)
}

// Bad renders a failure or cancellation.
func (t Theme) Bad(s string) string {
	return t.render(t.bad, s)
}

func (t Theme) render(st lipgloss.Style, s string) string {
	if t.plain {
		return s
	}
	return st.Render(s)
}

// center pads s on both sides to width, extra space going right.
func center(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	left := n / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-left)
}
