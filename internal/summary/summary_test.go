package summary

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"finitefield.org/hanko-blocks/internal/money"
)

func cartItems() []LineItem {
	return []LineItem{
		{ID: "headphones", UnitPrice: 12999, Quantity: 1},
		{ID: "speaker", UnitPrice: 17999, Quantity: 2},
	}
}

func invoiceItems() []LineItem {
	return []LineItem{
		{ID: "design", UnitPrice: 250000, Quantity: 1},
		{ID: "development", UnitPrice: 12500, Quantity: 40},
		{ID: "hosting", UnitPrice: 29900, Quantity: 1},
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []LineItem
		want  money.Amount
	}{
		{name: "empty", items: nil, want: 0},
		{name: "cart", items: cartItems(), want: 48997},
		{name: "invoice", items: invoiceItems(), want: 779900},
		{name: "free item", items: []LineItem{{UnitPrice: 0, Quantity: 3}}, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Subtotal(tc.items)
			if err != nil {
				t.Fatalf("Subtotal returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSubtotalRejectsInvalidItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		items     []LineItem
		wantErr   error
		wantIndex int
	}{
		{
			name:      "negative quantity",
			items:     []LineItem{{UnitPrice: 100, Quantity: 1}, {UnitPrice: 100, Quantity: -2}},
			wantErr:   ErrInvalidQuantity,
			wantIndex: 1,
		},
		{
			name:      "zero quantity",
			items:     []LineItem{{UnitPrice: 100, Quantity: 0}},
			wantErr:   ErrInvalidQuantity,
			wantIndex: 0,
		},
		{
			name:      "negative price",
			items:     []LineItem{{UnitPrice: 100, Quantity: 1}, {UnitPrice: 100, Quantity: 1}, {UnitPrice: -1, Quantity: 1}},
			wantErr:   ErrInvalidPrice,
			wantIndex: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Subtotal(tc.items)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			_, index, ok := FieldOf(err)
			if !ok {
				t.Fatalf("expected a field error, got %T", err)
			}
			if index != tc.wantIndex {
				t.Fatalf("expected index %d, got %d", tc.wantIndex, index)
			}
		})
	}
}

func TestSubtotalOverflow(t *testing.T) {
	items := []LineItem{
		{UnitPrice: math.MaxInt64 / 2, Quantity: 1},
		{UnitPrice: math.MaxInt64 / 2, Quantity: 1},
		{UnitPrice: 10, Quantity: 1},
	}
	if _, err := Subtotal(items); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if _, err := Subtotal([]LineItem{{UnitPrice: math.MaxInt64 / 2, Quantity: 3}}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for line product, got %v", err)
	}
}

func TestSubtotalIsDeterministic(t *testing.T) {
	items := invoiceItems()
	first, err := Subtotal(items)
	if err != nil {
		t.Fatalf("Subtotal returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, _ := Subtotal(items)
		if got != first {
			t.Fatalf("run %d: expected %d, got %d", i, first, got)
		}
	}
}

func TestTax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subtotal money.Amount
		rate     string
		want     money.Amount
	}{
		{name: "half rounds up", subtotal: 1000, rate: "8.25", want: 83},
		{name: "below half rounds down", subtotal: 1000, rate: "8.24", want: 82},
		{name: "zero rate", subtotal: 48997, rate: "0", want: 0},
		{name: "zero subtotal", subtotal: 0, rate: "10", want: 0},
		{name: "cart at ten percent", subtotal: 48997, rate: "10", want: 4900},
		{name: "whole yen", subtotal: 2480, rate: "10", want: 248},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Tax(tc.subtotal, decimal.RequireFromString(tc.rate))
			if err != nil {
				t.Fatalf("Tax returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestTaxRejectsNegativeInputs(t *testing.T) {
	if _, err := Tax(1000, decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := Tax(-1, decimal.NewFromInt(5)); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestTotal(t *testing.T) {
	if got := Total(48997, 4900, 999, 0); got != 54896 {
		t.Fatalf("expected 54896, got %d", got)
	}
	if got := Total(1000, 0, 0, 5000); got != 0 {
		t.Fatalf("expected total floored at 0, got %d", got)
	}
	if got := Total(math.MaxInt64, 1, 1, 0); got != math.MaxInt64 {
		t.Fatalf("expected saturation at MaxInt64, got %d", got)
	}
	if got := Total(10, 0, 0, math.MinInt64); got != math.MaxInt64 {
		t.Fatalf("expected saturation for extreme negative discount, got %d", got)
	}
}

func TestTotalIsMonotonic(t *testing.T) {
	base := Total(1000, 80, 500, 200)
	if Total(1001, 80, 500, 200) < base {
		t.Fatal("total decreased when subtotal increased")
	}
	if Total(1000, 81, 500, 200) < base {
		t.Fatal("total decreased when tax increased")
	}
	if Total(1000, 80, 501, 200) < base {
		t.Fatal("total decreased when shipping increased")
	}
	if Total(1000, 80, 500, 201) > base {
		t.Fatal("total increased when discount increased")
	}
}

func TestDiscountPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original money.Amount
		sale     money.Amount
		want     int
	}{
		{name: "half", original: 100, sale: 50, want: 50},
		{name: "rounded", original: 249, sale: 189, want: 24},
		{name: "half rounds up", original: 200, sale: 199, want: 1},
		{name: "free", original: 4999, sale: 0, want: 100},
		{name: "same price", original: 4999, sale: 4999, want: 0},
		{name: "sale above original", original: 100, sale: 150, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DiscountPercentage(tc.original, tc.sale)
			if err != nil {
				t.Fatalf("DiscountPercentage returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDiscountPercentageErrors(t *testing.T) {
	_, err := DiscountPercentage(0, 10)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	var div *DivisionByZeroError
	if !errors.As(err, &div) || div.Original != 0 {
		t.Fatalf("expected DivisionByZeroError with original 0, got %#v", err)
	}
	if _, err := DiscountPercentage(-10, 5); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero for negative original, got %v", err)
	}
	if _, err := DiscountPercentage(100, -1); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice for negative sale, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	items := []LineItem{{UnitPrice: 100, Quantity: 2}, {UnitPrice: 200, Quantity: 3}}
	if got := LineItemCount(items); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
	if got := TotalUnitCount(items); got != 5 {
		t.Fatalf("expected 5 units, got %d", got)
	}
	if got := TotalUnitCount(nil); got != 0 {
		t.Fatalf("expected 0 units for empty list, got %d", got)
	}
}

func TestLineTotal(t *testing.T) {
	got, err := LineItem{UnitPrice: 12500, Quantity: 40}.LineTotal()
	if err != nil {
		t.Fatalf("LineTotal returned error: %v", err)
	}
	if got != 500000 {
		t.Fatalf("expected 500000, got %d", got)
	}
	if _, err := (LineItem{UnitPrice: 1, Quantity: 0}).LineTotal(); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []LineItem
		opts  Options
		want  Summary
	}{
		{
			name:  "cart without adjustments",
			items: cartItems(),
			want:  Summary{Subtotal: 48997, Total: 48997, ItemCount: 3, LineCount: 2},
		},
		{
			name:  "invoice",
			items: invoiceItems(),
			want:  Summary{Subtotal: 779900, Total: 779900, ItemCount: 42, LineCount: 3},
		},
		{
			name:  "tax and shipping",
			items: cartItems(),
			opts:  Options{TaxRate: decimal.NewFromInt(10), Shipping: 999},
			want:  Summary{Subtotal: 48997, Tax: 4900, Shipping: 999, Total: 54896, ItemCount: 3, LineCount: 2},
		},
		{
			name:  "percentage and fixed discount",
			items: []LineItem{{UnitPrice: 10000, Quantity: 1}},
			opts:  Options{DiscountPercentage: decimal.NewFromInt(10), DiscountAmount: 500},
			want:  Summary{Subtotal: 10000, Discount: 1500, Total: 8500, ItemCount: 1, LineCount: 1},
		},
		{
			name:  "discount percentage clamped to 100",
			items: []LineItem{{UnitPrice: 10000, Quantity: 1}},
			opts:  Options{DiscountPercentage: decimal.NewFromInt(150)},
			want:  Summary{Subtotal: 10000, Discount: 10000, Total: 0, ItemCount: 1, LineCount: 1},
		},
		{
			name:  "negative discount percentage ignored",
			items: []LineItem{{UnitPrice: 10000, Quantity: 1}},
			opts:  Options{DiscountPercentage: decimal.NewFromInt(-20)},
			want:  Summary{Subtotal: 10000, Total: 10000, ItemCount: 1, LineCount: 1},
		},
		{
			name:  "fixed discount larger than order",
			items: []LineItem{{UnitPrice: 1000, Quantity: 1}},
			opts:  Options{Shipping: 500, DiscountAmount: 99999},
			want:  Summary{Subtotal: 1000, Shipping: 500, Discount: 1500, Total: 0, ItemCount: 1, LineCount: 1},
		},
		{
			name:  "literal tax amount wins over rate",
			items: cartItems(),
			opts:  Options{TaxRate: decimal.NewFromInt(10), TaxAmount: 1234},
			want:  Summary{Subtotal: 48997, Tax: 1234, Total: 50231, ItemCount: 3, LineCount: 2},
		},
		{
			name: "empty order",
			want: Summary{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Compute(tc.items, tc.opts)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestComputeRejectsInvalidOptions(t *testing.T) {
	items := cartItems()

	_, err := Compute(items, Options{Shipping: -1})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice for shipping, got %v", err)
	}
	if field, _, _ := FieldOf(err); field != "shipping" {
		t.Fatalf("expected shipping field, got %q", field)
	}

	_, err = Compute(items, Options{DiscountAmount: -1})
	if field, _, _ := FieldOf(err); field != "discountAmount" {
		t.Fatalf("expected discountAmount field, got %q (%v)", field, err)
	}

	_, err = Compute(items, Options{TaxRate: decimal.NewFromInt(-5)})
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if field, _, _ := FieldOf(err); field != "taxRate" {
		t.Fatalf("expected taxRate field, got %q", field)
	}

	_, err = Compute([]LineItem{{UnitPrice: 100, Quantity: -1}}, Options{})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestComputeRejectsOutOfRangeRates(t *testing.T) {
	items := []LineItem{{UnitPrice: 1000, Quantity: 1}}
	huge := decimal.RequireFromString("1e30000000")

	_, err := Compute(items, Options{TaxRate: huge})
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	_, err = Compute(items, Options{DiscountPercentage: huge})
	if field, _, _ := FieldOf(err); field != "discountPercentage" {
		t.Fatalf("expected discountPercentage field, got %q (%v)", field, err)
	}
	if _, err := Tax(1000, huge); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate from Tax, got %v", err)
	}
}

func TestComputeUnitCountOverflow(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 0, Quantity: math.MaxInt},
		{UnitPrice: 0, Quantity: 5},
	}
	_, err := Compute(items, Options{})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if got := TotalUnitCount(items); got != math.MaxInt {
		t.Fatalf("expected saturated unit count, got %d", got)
	}
}

func TestFieldOfUnknownError(t *testing.T) {
	if _, _, ok := FieldOf(errors.New("boom")); ok {
		t.Fatal("expected ok=false for foreign error")
	}
}
