package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTaxRate is the GST rate applied to the subtotal.
const DefaultTaxRate = 0.18

var quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)`)

// Quantity is a parsed amount with its unit and the amount normalized into
// the item's base unit.
type Quantity struct {
	Value      float64
	Unit       string
	Normalized float64
}

// String renders the quantity as entered, e.g. "500 ml".
func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + " " + q.Unit
}

// ParseQuantity extracts a leading number and a unit token from raw, e.g.
// "2 kg" or "500ml". The unit must be known to the catalog and the value
// must be positive. No partial result is returned on failure.
func (c *Catalog) ParseQuantity(raw string) (Quantity, error) {
	m := quantityPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if m == nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrBadQuantity, raw)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return Quantity{}, fmt.Errorf("%w: %q", ErrBadQuantity, raw)
	}
	mult, ok := c.Multiplier(m[2])
	if !ok {
		return Quantity{}, fmt.Errorf("%w: unknown unit %q", ErrBadQuantity, m[2])
	}
	return Quantity{Value: v, Unit: m[2], Normalized: v * mult}, nil
}

// Line is a single priced cart entry.
type Line struct {
	Item     string
	Quantity Quantity
	Rate     float64
	Price    float64
}

// PriceLine prices q of the named item: normalized quantity times rate.
func (c *Catalog) PriceLine(name string, q Quantity) (Line, error) {
	it, err := c.Lookup(name)
	if err != nil {
		return Line{}, err
	}
	return Line{
		Item:     it.Name,
		Quantity: q,
		Rate:     it.Rate,
		Price:    q.Normalized * it.Rate,
	}, nil
}

// Cart accumulates lines for one billing session. Totals computes the sums.
type Cart struct {
	lines []Line
}

// Add appends a line to the cart.
func (c *Cart) Add(l Line) {
	c.lines = append(c.lines, l)
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Summary holds the computed bill totals. Values are unrounded.
type Summary struct {
	Subtotal float64
	TaxRate  float64
	Tax      float64
	Total    float64
}

// Totals sums line prices and applies taxRate to the subtotal.
func Totals(lines []Line, taxRate float64) Summary {
	var sub float64
	for _, l := range lines {
		sub += l.Price
	}
	tax := sub * taxRate
	return Summary{
		Subtotal: sub,
		TaxRate:  taxRate,
		Tax:      tax,
		Total:    sub + tax,
	}
}

// Money formats an amount for display with two decimals.
func Money(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}
