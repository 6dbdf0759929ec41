package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/smileynet/tillbook/internal/contact"
	"github.com/smileynet/tillbook/internal/prompt"
)

// memRepo is an in-memory contact.Repository.
type memRepo struct {
	loaded  []contact.Contact
	saveErr error
	saves   int
}

func (r *memRepo) LoadAll() ([]contact.Contact, error) {
	return append([]contact.Contact(nil), r.loaded...), nil
}

func (r *memRepo) SaveAll([]contact.Contact) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	return nil
}

// script builds a prompter fed by the given input lines.
func script(lines ...string) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	in := strings.Join(lines, "\n") + "\n"
	return prompt.New(strings.NewReader(in), &out, prompt.WithWarnStyle(PlainTheme().Warn)), &out
}

func seededStore(t *testing.T, repo *memRepo) *contact.Store {
	t.Helper()
	repo.loaded = []contact.Contact{
		{ID: "p", Name: "Priya Sharma", Phone: "9876543210", Email: "priya@example.com", Added: "2024-01-01 10:00:00"},
		{ID: "r", Name: "Rahul Verma", Phone: "9123456780", Email: "rahul@example.com", Added: "2024-01-02 10:00:00"},
	}
	return contact.Open(repo)
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n--- output ---\n%s", w, out)
		}
	}
}

func countOf(s, sub string) int {
	return strings.Count(s, sub)
}
