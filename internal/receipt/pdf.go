package receipt

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/smileynet/tillbook/internal/pricing"
)

// PDF renders receipts as a single-page A4 document with a bordered item table.
type PDF struct{}

// Save renders r and writes it to path.
func (PDF) Save(path string, r Receipt) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("receipt: creating %s: %w", path, err)
	}
	if err := (PDF{}).Write(f, r); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("receipt: closing %s: %w", path, err)
	}
	return nil
}

// Write renders r as PDF to w.
func (PDF) Write(w io.Writer, r Receipt) error {
	if r.Phone == "" {
		r.Phone = NoPhone
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(r.Time)
	pdf.SetTitle(r.StoreName+" receipt", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	rule := strings.Repeat("-", 60)

	line := func(h float64, text, align string) {
		pdf.CellFormat(0, h, tr(text), "", 1, align, false, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	line(10, r.StoreName, "C")
	pdf.SetFont("Arial", "", 12)
	line(8, r.Location, "C")
	line(8, rule, "")
	line(8, "Customer Name : "+r.Customer, "")
	line(8, "Phone Number  : "+r.Phone, "")
	line(8, "Date & Time   : "+r.Stamp(), "")
	line(8, rule, "")

	widths := []float64{10, 50, 40, 40, 40}
	pdf.SetFont("Arial", "B", 12)
	for i, h := range []string{"No", "Item", "Quantity", "Rate", "Total"} {
		ln := 0
		if i == len(widths)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 10, h, "1", ln, "", false, 0, "")
	}

	pdf.SetFont("Arial", "", 12)
	for i, l := range r.Lines {
		cells := lineCells(i, l)
		for j, c := range cells {
			ln := 0
			if j == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[j], 10, tr(c), "1", ln, "", false, 0, "")
		}
	}

	line(8, rule, "")
	pdf.SetFont("Arial", "B", 12)
	total := func(label string, v float64) {
		pdf.CellFormat(140, 10, tr(label), "", 0, "", false, 0, "")
		pdf.CellFormat(0, 10, pricing.Money(v), "", 1, "", false, 0, "")
	}
	total("Subtotal", r.Summary.Subtotal)
	total(r.TaxLabel(), r.Summary.Tax)
	total("Total Amount", r.Summary.Total)
	line(10, rule, "")
	pdf.SetFont("Arial", "I", 12)
	line(10, "Thank you for shopping with us!", "C")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("receipt: rendering pdf: %w", err)
	}
	return nil
}

// lineCells returns the table cells for the i-th (zero-based) line.
func lineCells(i int, l pricing.Line) []string {
	return []string{
		strconv.Itoa(i + 1),
		l.Item,
		l.Quantity.String(),
		"Rs " + pricing.FormatRate(l.Rate),
		pricing.Money(l.Price),
	}
}
