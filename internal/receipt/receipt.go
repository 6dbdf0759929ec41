// Package receipt renders a completed bill as console text and as a PDF document.
package receipt

import (
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/smileynet/tillbook/internal/pricing"
)

// TimeLayout is the date-and-time layout printed on receipts.
const TimeLayout = "02-01-2006 15:04:05"

// NoPhone is printed when the customer did not give a phone number.
const NoPhone = "Not Provided"

// TemplateName is the console receipt template file name.
const TemplateName = "receipt.txt.tmpl"

// Receipt is a finished bill ready for rendering.
type Receipt struct {
	StoreName string
	Location  string
	Customer  string
	Phone     string
	Time      time.Time
	Lines     []pricing.Line
	Summary   pricing.Summary
}

// Stamp returns the receipt time formatted for printing.
func (r Receipt) Stamp() string {
	return r.Time.Format(TimeLayout)
}

// TaxLabel returns the tax row label, e.g. "GST (18%)". The percentage is
// rounded to two decimals.
func (r Receipt) TaxLabel() string {
	pct := strconv.FormatFloat(math.Round(r.Summary.TaxRate*1e4)/1e2, 'f', -1, 64)
	return "GST (" + pct + "%)"
}

// Text renders receipts to a writer through a text/template.
type Text struct {
	tmpl *template.Template
}

var textFuncs = template.FuncMap{
	"rule":   strings.Repeat,
	"indent": func(n int) string { return strings.Repeat(" ", n) },
	"pad":    func(s string, n int) string { return fmt.Sprintf("%-*s", n, s) },
	"seq":    func(i int) string { return strconv.Itoa(i + 1) },
	"money":  pricing.Money,
}

// NewText parses the receipt template from fsys.
func NewText(fsys fs.FS) (*Text, error) {
	data, err := fs.ReadFile(fsys, TemplateName)
	if err != nil {
		return nil, fmt.Errorf("receipt: loading %s: %w", TemplateName, err)
	}
	tmpl, err := template.New(TemplateName).Funcs(textFuncs).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("receipt: parsing %s: %w", TemplateName, err)
	}
	return &Text{tmpl: tmpl}, nil
}

// Render writes the console rendition of r to w.
func (t *Text) Render(w io.Writer, r Receipt) error {
	if r.Phone == "" {
		r.Phone = NoPhone
	}
	if err := t.tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("receipt: rendering text: %w", err)
	}
	return nil
}
