// Package pricing converts item and quantity input into priced cart lines
// and computes bill totals.
package pricing

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrUnknownItem = errors.New("pricing: unknown item")
	ErrBadQuantity = errors.New("pricing: invalid quantity or unit")
	ErrBadCatalog  = errors.New("pricing: invalid catalog")
)

// Item is a sellable product with its rate per base unit.
type Item struct {
	Name string  `yaml:"name"`
	Rate float64 `yaml:"rate"`
	Unit string  `yaml:"unit"` // base unit shown in the item list
}

// Catalog holds the price table and the unit multiplier table.
// A Catalog is immutable after construction.
type Catalog struct {
	items []Item
	index map[string]int
	units map[string]float64
}

// NewCatalog builds a Catalog from items and unit multipliers.
// Unit keys are matched lower-case; item names are matched in title case.
func NewCatalog(items []Item, units map[string]float64) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrBadCatalog)
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: no units", ErrBadCatalog)
	}

	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
		units: make(map[string]float64, len(units)),
	}
	for _, it := range items {
		name := titleCase(it.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item with empty name", ErrBadCatalog)
		}
		if it.Rate <= 0 {
			return nil, fmt.Errorf("%w: item %q rate must be positive, got %v", ErrBadCatalog, name, it.Rate)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrBadCatalog, name)
		}
		it.Name = name
		c.index[name] = len(c.items)
		c.items = append(c.items, it)
	}
	for u, m := range units {
		if m <= 0 {
			return nil, fmt.Errorf("%w: unit %q multiplier must be positive, got %v", ErrBadCatalog, u, m)
		}
		c.units[strings.ToLower(u)] = m
	}
	return c, nil
}

// Lookup returns the item for name after folding it to title case.
func (c *Catalog) Lookup(name string) (Item, error) {
	key := titleCase(name)
	i, ok := c.index[key]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, key)
	}
	return c.items[i], nil
}

// Multiplier returns the normalization factor for unit.
func (c *Catalog) Multiplier(unit string) (float64, bool) {
	m, ok := c.units[strings.ToLower(unit)]
	return m, ok
}

// Items returns the catalog items in listing order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Listing renders the numbered item list shown to customers.
func (c *Catalog) Listing() string {
	var b strings.Builder
	for i, it := range c.items {
		fmt.Fprintf(&b, "%d. %s = %s Rs/%s\n", i+1, it.Name, FormatRate(it.Rate), it.Unit)
	}
	return b.String()
}

// catalogFile is the on-disk shape of a catalog override.
type catalogFile struct {
	Items []Item             `yaml:"items"`
	Units map[string]float64 `yaml:"units"`
}

// LoadCatalog reads a YAML catalog file. Unknown fields are rejected.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: reading %s: %w", path, err)
	}

	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("pricing: parsing %s: %w", path, err)
	}
	return NewCatalog(f.Items, f.Units)
}

// titleCase folds s the way item names are keyed ("tea powder" -> "Tea Powder").
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// FormatRate renders a rate without trailing zeros ("50", "0.5").
func FormatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
