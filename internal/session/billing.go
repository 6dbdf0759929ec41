package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/smileynet/tillbook/internal/contact"
	"github.com/smileynet/tillbook/internal/pricing"
	"github.com/smileynet/tillbook/internal/prompt"
	"github.com/smileynet/tillbook/internal/receipt"
)

// Document saves a rendered receipt to path.
type Document interface {
	Save(path string, r receipt.Receipt) error
}

// BillingOptions holds store details and output settings for a checkout.
type BillingOptions struct {
	StoreName   string
	Location    string
	TaxRate     float64
	ReceiptPath string // empty skips the document
}

// Billing is the checkout flow: collect items, then print and save a receipt.
type Billing struct {
	catalog *pricing.Catalog
	p       *prompt.Prompter
	theme   Theme
	text    *receipt.Text
	doc     Document
	opts    BillingOptions
	now     func() time.Time
	w       io.Writer
}

// NewBilling creates a billing session. doc may be nil to skip the document.
func NewBilling(catalog *pricing.Catalog, p *prompt.Prompter, theme Theme, text *receipt.Text, doc Document, opts BillingOptions) *Billing {
	return &Billing{
		catalog: catalog,
		p:       p,
		theme:   theme,
		text:    text,
		doc:     doc,
		opts:    opts,
		now:     time.Now,
		w:       p.Out(),
	}
}

// Run performs one checkout. It returns an error only when the receipt
// cannot be written or input fails for reasons other than ending.
func (b *Billing) Run() error {
	err := b.run()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, prompt.ErrTooManyAttempts):
		b.println(b.theme.Bad("❌ Too many invalid attempts. Billing aborted."))
		return nil
	}
	return err
}

func (b *Billing) run() error {
	name, err := b.p.Ask("Enter your name: ")
	if err != nil {
		return err
	}
	if name == "" {
		b.println(b.theme.Bad("❌ Name cannot be empty."))
		return nil
	}

	show, err := b.p.Ask("To view the item list, press 1: ")
	if err != nil {
		return err
	}
	if show == "1" {
		b.println("\n" + b.catalog.Listing())
	}

	var cart pricing.Cart
	for {
		line, err := b.askLine()
		if err != nil {
			return err
		}
		cart.Add(line)

		more, err := b.p.Confirm("Add more items? (yes/no): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	phone, err := b.askPhone()
	if err != nil {
		return err
	}

	ok, err := b.p.Confirm("Can I bill the items now? (yes/no): ")
	if err != nil || !ok {
		return err
	}
	return b.bill(name, phone, cart)
}

// askLine reads one item and its quantity, re-asking each until valid.
func (b *Billing) askLine() (pricing.Line, error) {
	item, err := b.p.AskValid("Enter your item: ", func(s string) error {
		if _, err := b.catalog.Lookup(s); err != nil {
			return prompt.Reject("Invalid item. Please check the spelling or list.")
		}
		return nil
	})
	if err != nil {
		return pricing.Line{}, err
	}

	raw, err := b.p.AskValid("Enter the quantity (e.g., 2 kg, 500 ml): ", func(s string) error {
		if _, err := b.catalog.ParseQuantity(s); err != nil {
			return prompt.Reject("Invalid quantity or unit. Please try again.")
		}
		return nil
	})
	if err != nil {
		return pricing.Line{}, err
	}

	q, err := b.catalog.ParseQuantity(raw)
	if err != nil {
		return pricing.Line{}, err
	}
	return b.catalog.PriceLine(item, q)
}

// askPhone optionally reads a phone number. An invalid number is skipped.
func (b *Billing) askPhone() (string, error) {
	want, err := b.p.Confirm("Do you want to enter your phone number? (yes/no): ")
	if err != nil || !want {
		return receipt.NoPhone, err
	}
	phone, err := b.p.Ask("Enter your phone number (10 digits): ")
	if err != nil {
		return "", err
	}
	if contact.ValidatePhone(phone) != nil {
		b.println(b.theme.Warn("Invalid phone number. Skipping."))
		return receipt.NoPhone, nil
	}
	return phone, nil
}

func (b *Billing) bill(name, phone string, cart pricing.Cart) error {
	lines := cart.Lines()
	r := receipt.Receipt{
		StoreName: b.opts.StoreName,
		Location:  b.opts.Location,
		Customer:  name,
		Phone:     phone,
		Time:      b.now(),
		Lines:     lines,
		Summary:   pricing.Totals(lines, b.opts.TaxRate),
	}

	b.println("")
	if err := b.text.Render(b.w, r); err != nil {
		return err
	}

	if b.doc == nil || b.opts.ReceiptPath == "" {
		return nil
	}
	if err := b.doc.Save(b.opts.ReceiptPath, r); err != nil {
		return fmt.Errorf("session: saving receipt: %w", err)
	}
	b.println(b.theme.OK(fmt.Sprintf("📄 Receipt generated as '%s'!", b.opts.ReceiptPath)))
	return nil
}

func (b *Billing) println(s string) {
	_, _ = fmt.Fprintln(b.w, s)
}
