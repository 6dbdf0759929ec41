// Package browse is a read-only terminal browser over the contact store
// with a live search filter.
package browse

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/tillbook/internal/contact"
)

// borderChrome is the number of columns consumed by left + right borders.
const borderChrome = 2

// Lister is the read side of the contact store.
type Lister interface {
	ListAll() []contact.Contact
	Find(term string) []contact.Contact
}

// Model is the Bubble Tea model for the contact browser.
type Model struct {
	lister    Lister
	contacts  []contact.Contact
	cursor    int
	filter    textinput.Model
	filtering bool
	keys      keyMap
	help      help.Model
	width     int
	height    int
}

// NewModel creates a browser showing every contact sorted by name.
func NewModel(lister Lister) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name, phone or email"

	return Model{
		lister:   lister,
		contacts: lister.ListAll(),
		filter:   ti,
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

// Run starts the browser on in/out and blocks until the user quits.
func Run(lister Lister, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(lister), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if len(m.contacts) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.contacts) - 1
			}
		}

	case key.Matches(msg, m.keys.Down):
		if len(m.contacts) > 0 {
			m.cursor++
			if m.cursor >= len(m.contacts) {
				m.cursor = 0
			}
		}

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.filter.SetValue("")
		m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleFilterKey routes keys to the filter input while it has focus.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh reloads the visible rows for the current filter text.
func (m *Model) refresh() {
	term := strings.TrimSpace(m.filter.Value())
	if term == "" {
		m.contacts = m.lister.ListAll()
	} else {
		m.contacts = m.lister.Find(term)
	}
	if m.cursor >= len(m.contacts) {
		m.cursor = max(len(m.contacts)-1, 0)
	}
}

// Selected returns the contact under the cursor.
func (m Model) Selected() (contact.Contact, bool) {
	if len(m.contacts) == 0 {
		return contact.Contact{}, false
	}
	return m.contacts[m.cursor], true
}

// View renders the filter line, contact rows, details and help bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("ContactMaster (%d)", len(m.contacts))))
	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.contacts) == 0 {
		b.WriteString(mutedStyle.Render("No contacts found."))
		b.WriteString("\n")
	}
	for i, c := range m.contacts[m.firstVisible():] {
		idx := i + m.firstVisible()
		if m.height > 0 && i >= m.rowsVisible() {
			break
		}
		row := fmt.Sprintf("%s  %s", c.Name, mutedStyle.Render(c.Phone))
		if idx == m.cursor {
			b.WriteString(CursorMarker + selectedStyle.Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if sel, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(detailBorder(m.width).Render(fmt.Sprintf(
			"📞 %s\n📧 %s\n🕒 Added: %s", sel.Phone, sel.Email, sel.Added)))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// detailHeight is the detail box (3 lines plus borders) and its spacer.
const detailHeight = 6

// rowsVisible returns how many contact rows fit the window.
func (m Model) rowsVisible() int {
	chrome := 3 + detailHeight + 1
	if m.filtering || m.filter.Value() != "" {
		chrome++
	}
	return max(m.height-chrome, 1)
}

// firstVisible returns the index of the first row so the cursor stays on screen.
func (m Model) firstVisible() int {
	if m.height == 0 || m.cursor < m.rowsVisible() {
		return 0
	}
	return m.cursor - m.rowsVisible() + 1
}
