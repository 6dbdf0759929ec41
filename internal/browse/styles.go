package browse

import "github.com/charmbracelet/lipgloss"

// CursorMarker is the prefix shown on the selected row.
const CursorMarker = "▸ "

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(dim)
)

// detailBorder returns the style framing the selected contact's details.
func detailBorder(width int) lipgloss.Style {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if width > borderChrome {
		st = st.Width(width - borderChrome)
	}
	return st
}
