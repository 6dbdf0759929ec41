package contact

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the in-memory contact collection backed by a Repository.
// Every mutation rewrites the whole collection through the repository.
type Store struct {
	repo     Repository
	contacts []Contact
	now      func() time.Time
	newID    func() string
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for Added timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the generator for record IDs.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger for load downgrades and persisted mutations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open loads the collection from repo. An absent or unparseable store
// yields an empty collection; Open itself never fails.
func Open(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	contacts, err := repo.LoadAll()
	if err != nil {
		s.log.Warn("starting with empty contact store", zap.Error(err))
		contacts = nil
	}
	for i := range contacts {
		if contacts[i].ID == "" {
			contacts[i].ID = s.newID()
		}
	}
	s.contacts = contacts
	s.log.Debug("contact store loaded", zap.Int("count", len(contacts)))
	return s
}

// Len returns the number of stored contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}

// All returns a copy of the collection in stored order.
func (s *Store) All() []Contact {
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Add validates and appends a new contact, then persists the collection.
// Returns ErrDuplicate if the phone or email (case-insensitive) is taken.
func (s *Store) Add(name, phone, email string) (Contact, error) {
	if err := Validate(name, phone, email); err != nil {
		return Contact{}, err
	}
	if s.conflicts("", phone, email) {
		return Contact{}, ErrDuplicate
	}

	c := Contact{
		ID:    s.newID(),
		Name:  name,
		Phone: phone,
		Email: email,
		Added: s.timestamp(),
	}
	next := append(s.All(), c)
	if err := s.commit(next, "add"); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Find returns every contact whose name or email contains term
// (case-insensitive) or whose phone contains term.
func (s *Store) Find(term string) []Contact {
	lower := strings.ToLower(term)
	var out []Contact
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			strings.Contains(c.Phone, term) ||
			strings.Contains(strings.ToLower(c.Email), lower) {
			out = append(out, c)
		}
	}
	return out
}

// Select resolves a 1-based choice against results. A non-numeric or
// out-of-range choice reports false.
func Select(results []Contact, choice string) (Contact, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > len(results) {
		return Contact{}, false
	}
	return results[n-1], true
}

// Edit overwrites all fields of the contact with id and refreshes Added.
// The new phone and email must not belong to any other contact.
func (s *Store) Edit(id, name, phone, email string) (Contact, error) {
	idx := s.index(id)
	if idx < 0 {
		return Contact{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := Validate(name, phone, email); err != nil {
		return Contact{}, err
	}
	if s.conflicts(id, phone, email) {
		return Contact{}, ErrDuplicate
	}

	next := s.All()
	next[idx].Name = name
	next[idx].Phone = phone
	next[idx].Email = email
	next[idx].Added = s.timestamp()
	if err := s.commit(next, "edit"); err != nil {
		return Contact{}, err
	}
	return next[idx], nil
}

// Delete removes exactly the contact with id.
func (s *Store) Delete(id string) error {
	idx := s.index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]Contact, 0, len(s.contacts)-1)
	next = append(next, s.contacts[:idx]...)
	next = append(next, s.contacts[idx+1:]...)
	return s.commit(next, "delete")
}

// ClearAll removes every contact.
func (s *Store) ClearAll() error {
	return s.commit([]Contact{}, "clear")
}

// ListAll returns the contacts sorted by case-insensitive name.
// Stored order is not changed.
func (s *Store) ListAll() []Contact {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// commit persists next and adopts it only when the write succeeds.
func (s *Store) commit(next []Contact, op string) error {
	if err := s.repo.SaveAll(next); err != nil {
		return fmt.Errorf("contact: %s: %w", op, err)
	}
	s.contacts = next
	s.log.Debug("contact store saved", zap.String("op", op), zap.Int("count", len(next)))
	return nil
}

// conflicts reports whether a contact other than skipID holds phone or email.
func (s *Store) conflicts(skipID, phone, email string) bool {
	for _, c := range s.contacts {
		if c.ID == skipID && skipID != "" {
			continue
		}
		if c.Phone == phone || strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (s *Store) index(id string) int {
	for i, c := range s.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) timestamp() string {
	return s.now().Format(TimeLayout)
}
