package pricing

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseQuantity(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		raw        string
		wantValue  float64
		wantUnit   string
		wantNorm   float64
		wantString string
	}{
		{raw: "2 kg", wantValue: 2, wantUnit: "kg", wantNorm: 2, wantString: "2 kg"},
		{raw: "500 ml", wantValue: 500, wantUnit: "ml", wantNorm: 0.5, wantString: "500 ml"},
		{raw: "250g", wantValue: 250, wantUnit: "g", wantNorm: 0.25, wantString: "250 g"},
		{raw: "1.5 LTR", wantValue: 1.5, wantUnit: "ltr", wantNorm: 1.5, wantString: "1.5 ltr"},
		{raw: "  3 pcs  ", wantValue: 3, wantUnit: "pcs", wantNorm: 3, wantString: "3 pcs"},
		{raw: "2 kg rice", wantValue: 2, wantUnit: "kg", wantNorm: 2, wantString: "2 kg"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, err := cat.ParseQuantity(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuantity(%q) error = %v", tt.raw, err)
			}
			if !approx(q.Value, tt.wantValue) || q.Unit != tt.wantUnit || !approx(q.Normalized, tt.wantNorm) {
				t.Errorf("ParseQuantity(%q) = %+v, want (%v, %q, %v)", tt.raw, q, tt.wantValue, tt.wantUnit, tt.wantNorm)
			}
			if q.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", q.String(), tt.wantString)
			}
		})
	}
}

func TestParseQuantity_Failures(t *testing.T) {
	cat := DefaultCatalog()

	for _, raw := range []string{"abc", "3 xyz", "", "kg 2", "2", "0 kg", ".5 kg", "-1 kg"} {
		t.Run(raw, func(t *testing.T) {
			q, err := cat.ParseQuantity(raw)
			if !errors.Is(err, ErrBadQuantity) {
				t.Errorf("ParseQuantity(%q) error = %v, want ErrBadQuantity", raw, err)
			}
			if q != (Quantity{}) {
				t.Errorf("ParseQuantity(%q) = %+v, want zero value", raw, q)
			}
		})
	}
}

func TestLookup_TitleCases(t *testing.T) {
	cat := DefaultCatalog()

	for _, in := range []string{"rice", "RICE", " Rice ", "tea powder", "TEA pOWDER"} {
		t.Run(in, func(t *testing.T) {
			it, err := cat.Lookup(in)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", in, err)
			}
			if it.Name != "Rice" && it.Name != "Tea Powder" {
				t.Errorf("Lookup(%q) name = %q", in, it.Name)
			}
		})
	}

	if _, err := cat.Lookup("caviar"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Lookup(caviar) error = %v, want ErrUnknownItem", err)
	}
}

func TestPriceLine(t *testing.T) {
	cat := DefaultCatalog()
	q, err := cat.ParseQuantity("500 g")
	if err != nil {
		t.Fatal(err)
	}

	line, err := cat.PriceLine("butter", q)
	if err != nil {
		t.Fatalf("PriceLine() error = %v", err)
	}
	if line.Item != "Butter" || line.Rate != 550 || !approx(line.Price, 275) {
		t.Errorf("PriceLine() = %+v, want Butter @550 = 275", line)
	}

	if _, err := cat.PriceLine("unobtainium", q); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("PriceLine(unknown) error = %v, want ErrUnknownItem", err)
	}
}

func TestTotals_SingleLine(t *testing.T) {
	// Given a single line of rate 50 and normalized quantity 2
	lines := []Line{{Item: "Rice", Rate: 50, Quantity: Quantity{Value: 2, Unit: "kg", Normalized: 2}, Price: 100}}

	// When totals are computed at the default rate
	s := Totals(lines, DefaultTaxRate)

	// Then subtotal, tax and total match and format to two decimals
	if Money(s.Subtotal) != "Rs 100.00" || Money(s.Tax) != "Rs 18.00" || Money(s.Total) != "Rs 118.00" {
		t.Errorf("Totals() = %+v, want 100.00/18.00/118.00", s)
	}
}

func TestTotals_NoIntermediateRounding(t *testing.T) {
	lines := []Line{{Price: 0.333}, {Price: 0.333}, {Price: 0.333}}

	s := Totals(lines, DefaultTaxRate)

	if !approx(s.Subtotal, 0.999) {
		t.Errorf("Subtotal = %v, want 0.999", s.Subtotal)
	}
	if !approx(s.Total, 0.999*1.18) {
		t.Errorf("Total = %v, want %v", s.Total, 0.999*1.18)
	}
}

func TestTotals_EmptyCart(t *testing.T) {
	s := Totals(nil, DefaultTaxRate)
	if s.Subtotal != 0 || s.Tax != 0 || s.Total != 0 {
		t.Errorf("Totals(nil) = %+v, want zeros", s)
	}
}

func TestCart(t *testing.T) {
	cat := DefaultCatalog()
	var cart Cart

	for _, e := range []struct{ item, qty string }{{"rice", "2 kg"}, {"milk", "500 ml"}, {"eggs", "12 pcs"}} {
		q, err := cat.ParseQuantity(e.qty)
		if err != nil {
			t.Fatal(err)
		}
		l, err := cat.PriceLine(e.item, q)
		if err != nil {
			t.Fatal(err)
		}
		cart.Add(l)
	}

	if cart.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cart.Len())
	}
	// 2*50 + 0.5*60 + 12*6
	if got := Totals(cart.Lines(), DefaultTaxRate).Subtotal; !approx(got, 202) {
		t.Errorf("Totals subtotal = %v, want 202", got)
	}
	if lines := cart.Lines(); lines[0].Item != "Rice" || lines[2].Item != "Eggs" {
		t.Errorf("Lines() order = %q..%q, want Rice..Eggs", lines[0].Item, lines[2].Item)
	}
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	if n := len(cat.Items()); n != 40 {
		t.Errorf("items = %d, want 40", n)
	}
	listing := cat.Listing()
	if !strings.HasPrefix(listing, "1. Rice = 50 Rs/kg\n") {
		t.Errorf("Listing() starts with %q", strings.SplitN(listing, "\n", 2)[0])
	}
	if !strings.Contains(listing, "40. Lemon = 5 Rs/pcs") {
		t.Error("Listing() missing Lemon entry")
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	units := map[string]float64{"kg": 1}
	tests := []struct {
		name  string
		items []Item
		units map[string]float64
	}{
		{name: "no items", items: nil, units: units},
		{name: "no units", items: []Item{{Name: "Rice", Rate: 1, Unit: "kg"}}, units: nil},
		{name: "zero rate", items: []Item{{Name: "Rice", Rate: 0, Unit: "kg"}}, units: units},
		{name: "duplicate after title case", items: []Item{{Name: "rice", Rate: 1}, {Name: "RICE", Rate: 2}}, units: units},
		{name: "bad multiplier", items: []Item{{Name: "Rice", Rate: 1}}, units: map[string]float64{"kg": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.items, tt.units); !errors.Is(err, ErrBadCatalog) {
				t.Errorf("NewCatalog() error = %v, want ErrBadCatalog", err)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(`
items:
  - name: mango
    rate: 120
    unit: kg
  - name: Coconut Water
    rate: 45
    unit: bottle
units:
  KG: 1
  g: 0.001
  bottle: 1
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	it, err := cat.Lookup("MANGO")
	if err != nil || it.Rate != 120 {
		t.Errorf("Lookup(MANGO) = %+v, %v; want rate 120", it, err)
	}
	if _, ok := cat.Multiplier("kg"); !ok {
		t.Error("unit keys should be lower-cased")
	}
	if _, err := cat.ParseQuantity("2 ml"); !errors.Is(err, ErrBadQuantity) {
		t.Errorf("ml should be unknown in override catalog, got %v", err)
	}
}

func TestLoadCatalog_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("items: []\ncurrency: INR\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Error("LoadCatalog() should reject unknown fields")
	}
}
