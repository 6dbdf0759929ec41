package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/smileynet/tillbook/internal/contact"
	"github.com/smileynet/tillbook/internal/prompt"
)

// ContactStore is the subset of *contact.Store the contact menu uses.
type ContactStore interface {
	Add(name, phone, email string) (contact.Contact, error)
	Find(term string) []contact.Contact
	Edit(id, name, phone, email string) (contact.Contact, error)
	Delete(id string) error
	ClearAll() error
	ListAll() []contact.Contact
	Len() int
}

var _ ContactStore = (*contact.Store)(nil)

// Contacts is the contact manager menu loop.
type Contacts struct {
	store ContactStore
	p     *prompt.Prompter
	theme Theme
	w     io.Writer
}

// NewContacts creates the contact manager session.
func NewContacts(store ContactStore, p *prompt.Prompter, theme Theme) *Contacts {
	return &Contacts{store: store, p: p, theme: theme, w: p.Out()}
}

// Run shows the menu until the user exits or input ends. Only a
// persistence failure is returned as an error.
func (c *Contacts) Run() error {
	for {
		c.menu()
		choice, err := c.p.Ask("Select an option (1-7): ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case "1":
			err = c.add()
		case "2":
			err = c.edit()
		case "3":
			err = c.delete()
		case "4":
			err = c.search()
		case "5":
			c.viewAll()
		case "6":
			err = c.clearAll()
		case "7":
			c.println("\n👋 Exiting ContactMaster. Have a great day!")
			return nil
		default:
			c.println(c.theme.Bad("❌ Invalid option. Please choose from 1 to 7."))
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, prompt.ErrTooManyAttempts):
			c.println(c.theme.Bad("❌ Too many invalid attempts. Returning to menu."))
		case err != nil:
			return err
		}

		if err := c.p.Pause("\nPress Enter to return to the main menu..."); err != nil {
			return err
		}
	}
}

func (c *Contacts) menu() {
	c.println(c.theme.Title("ContactMaster - Main Menu"))
	c.println("1. ➕ Add New Contact")
	c.println("2. ✏️ Edit Contact")
	c.println("3. ❌ Delete Contact")
	c.println("4. 🔍 Search Contact")
	c.println("5. 📒 View All Contacts")
	c.println("6. 🗑️ Clear All Contacts")
	c.println("7. 🚪 Exit")
	c.println(c.theme.Rule())
}

// askFields prompts for name, phone and email, re-asking each until valid.
func (c *Contacts) askFields() (name, phone, email string, err error) {
	if name, err = c.p.AskValid("Enter contact name (letters & spaces only): ", contact.ValidateName); err != nil {
		return
	}
	if phone, err = c.p.AskValid("Enter 10-digit phone number: ", contact.ValidatePhone); err != nil {
		return
	}
	email, err = c.p.AskValid("Enter email address (e.g., name@example.com): ", contact.ValidateEmail)
	return
}

func (c *Contacts) add() error {
	c.println(c.theme.Title("Add New Contact"))
	name, phone, email, err := c.askFields()
	if err != nil {
		return err
	}

	if _, err := c.store.Add(name, phone, email); err != nil {
		if errors.Is(err, contact.ErrDuplicate) {
			c.println(c.theme.Warn("Contact with this phone/email already exists!"))
			return nil
		}
		return err
	}
	c.println(c.theme.OK(fmt.Sprintf("\n✅ Contact for '%s' added successfully!", name)))
	return nil
}

// pick searches with a prompted term and lets the user choose one match.
// ok is false when nothing matched or the choice was invalid.
func (c *Contacts) pick(label string) (contact.Contact, bool, error) {
	term, err := c.p.Ask(label)
	if err != nil {
		return contact.Contact{}, false, err
	}
	results := c.store.Find(term)
	if len(results) == 0 {
		c.println(c.theme.Bad("🚫 No matching contacts found."))
		return contact.Contact{}, false, nil
	}

	for i, r := range results {
		c.printf("%d. %s | 📞 %s | 📧 %s\n", i+1, r.Name, r.Phone, r.Email)
	}
	choice, err := c.p.Ask("Select contact number: ")
	if err != nil {
		return contact.Contact{}, false, err
	}
	sel, ok := contact.Select(results, choice)
	if !ok {
		c.println(c.theme.Warn("Invalid selection."))
	}
	return sel, ok, nil
}

func (c *Contacts) edit() error {
	c.println(c.theme.Title("Edit Contact"))
	sel, ok, err := c.pick("Enter name/phone/email to edit: ")
	if err != nil || !ok {
		return err
	}

	c.printf("\nEditing contact: %s\n", sel.Name)
	name, phone, email, err := c.askFields()
	if err != nil {
		return err
	}
	if _, err := c.store.Edit(sel.ID, name, phone, email); err != nil {
		switch {
		case errors.Is(err, contact.ErrDuplicate):
			c.println(c.theme.Warn("Another contact already uses this phone/email!"))
			return nil
		case errors.Is(err, contact.ErrNotFound):
			c.println(c.theme.Bad("🚫 Contact no longer exists."))
			return nil
		}
		return err
	}
	c.println(c.theme.OK("✅ Contact updated successfully!"))
	return nil
}

func (c *Contacts) delete() error {
	c.println(c.theme.Title("Delete Contact"))
	sel, ok, err := c.pick("Enter name/phone/email to delete: ")
	if err != nil || !ok {
		return err
	}

	yes, err := c.p.Confirm(fmt.Sprintf("Are you sure you want to delete '%s'? (yes/no): ", sel.Name))
	if err != nil {
		return err
	}
	if !yes {
		c.println(c.theme.Bad("❌ Deletion canceled."))
		return nil
	}
	if err := c.store.Delete(sel.ID); err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			c.println(c.theme.Bad("🚫 Contact no longer exists."))
			return nil
		}
		return err
	}
	c.println(c.theme.OK("🗑️ Contact deleted successfully."))
	return nil
}

func (c *Contacts) search() error {
	c.println(c.theme.Title("Search Contact"))
	term, err := c.p.Ask("Enter name/phone/email to search: ")
	if err != nil {
		return err
	}
	results := c.store.Find(term)
	if len(results) == 0 {
		c.println(c.theme.Bad("🚫 No matching contacts found."))
		return nil
	}
	c.println("\n🔎 Matching Contacts:")
	c.list(results)
	return nil
}

func (c *Contacts) viewAll() {
	c.println(c.theme.Title("All Contacts"))
	all := c.store.ListAll()
	if len(all) == 0 {
		c.println("📭 No contacts found.")
		return
	}
	c.list(all)
	c.printf("\n📇 Total contacts: %d\n", len(all))
}

func (c *Contacts) clearAll() error {
	c.println(c.theme.Title("Clear All Contacts"))
	yes, err := c.p.Confirm(c.theme.Warn("Are you sure you want to delete ALL contacts? (yes/no): "))
	if err != nil {
		return err
	}
	if !yes {
		c.println(c.theme.Bad("❌ Clear operation canceled."))
		return nil
	}
	if err := c.store.ClearAll(); err != nil {
		return err
	}
	c.println(c.theme.OK("🗑️ All contacts deleted successfully."))
	return nil
}

func (c *Contacts) list(cs []contact.Contact) {
	for i, r := range cs {
		c.printf("%d. %s | 📞 %s | 📧 %s | 🕒 Added: %s\n", i+1, r.Name, r.Phone, r.Email, r.Added)
	}
}

func (c *Contacts) println(s string) {
	_, _ = fmt.Fprintln(c.w, s)
}

func (c *Contacts) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
