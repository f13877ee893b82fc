// Package summary derives order totals (subtotal, tax, shipping, discount,
// total, counts) from literal line items. All arithmetic is done on int64
// minor units; decimals only appear at the input boundary and for rates.
package summary

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"finitefield.org/hanko-blocks/internal/money"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one priced, quantified entry in a cart, order or invoice.
type LineItem struct {
	ID          string
	Description string
	UnitPrice   money.Amount
	Quantity    int
}

// Validate rejects negative prices and non-positive quantities. index is
// recorded on the returned error.
func (li LineItem) Validate(index int) error {
	if li.Quantity <= 0 {
		return &InvalidQuantityError{Index: index, Value: strconv.Itoa(li.Quantity)}
	}
	if li.UnitPrice < 0 {
		return &InvalidPriceError{Index: index, Field: "unitPrice", Value: strconv.FormatInt(int64(li.UnitPrice), 10)}
	}
	return nil
}

// LineTotal returns UnitPrice * Quantity exactly.
func (li LineItem) LineTotal() (money.Amount, error) {
	if err := li.Validate(-1); err != nil {
		return 0, err
	}
	return mulChecked(li.UnitPrice, li.Quantity)
}

// Options carries the optional order-level adjustments. Rates are percentages
// (8.25 means 8.25%). A non-zero TaxAmount is a literal tax and replaces
// TaxRate.
type Options struct {
	TaxRate            decimal.Decimal
	TaxAmount          money.Amount
	Shipping           money.Amount
	DiscountPercentage decimal.Decimal
	DiscountAmount     money.Amount
}

// Summary is the derived aggregate of a set of line items.
type Summary struct {
	Subtotal money.Amount
	Tax      money.Amount
	Shipping money.Amount
	Discount money.Amount
	Total    money.Amount
	// ItemCount is the number of units (sum of quantities).
	ItemCount int
	// LineCount is the number of distinct line items.
	LineCount int
}

// Subtotal sums UnitPrice*Quantity over items. An empty list yields zero.
// Every item is validated before anything is summed.
func Subtotal(items []LineItem) (money.Amount, error) {
	for i, item := range items {
		if err := item.Validate(i); err != nil {
			return 0, err
		}
	}
	var subtotal money.Amount
	for _, item := range items {
		line, err := mulChecked(item.UnitPrice, item.Quantity)
		if err != nil {
			return 0, err
		}
		subtotal, err = addChecked(subtotal, line)
		if err != nil {
			return 0, err
		}
	}
	return subtotal, nil
}

// Tax applies a percentage rate to subtotal and rounds half-up to the nearest
// minor unit: 1000 cents at 8.25% is 82.5 cents, which becomes 83.
func Tax(subtotal money.Amount, ratePercent decimal.Decimal) (money.Amount, error) {
	if subtotal < 0 {
		return 0, &InvalidPriceError{Index: -1, Field: "subtotal", Value: strconv.FormatInt(int64(subtotal), 10)}
	}
	if !money.InRange(ratePercent) {
		return 0, &rateError{field: "taxRate", value: ratePercent, reason: "is out of range"}
	}
	if ratePercent.IsNegative() {
		return 0, &rateError{field: "taxRate", value: ratePercent, reason: "must not be negative"}
	}
	return percentOf(subtotal, ratePercent)
}

// Total returns subtotal + tax + shipping - discount, never below zero. Sums
// saturate at the int64 limits instead of wrapping.
func Total(subtotal, tax, shipping, discount money.Amount) money.Amount {
	gross := satAdd(satAdd(subtotal, tax), shipping)
	var total money.Amount
	if discount == math.MinInt64 {
		total = satAdd(satAdd(gross, math.MaxInt64), 1)
	} else {
		total = satAdd(gross, -discount)
	}
	if total < 0 {
		return 0
	}
	return total
}

// DiscountPercentage returns round(100 * (1 - sale/original)) half-up and
// clamped to [0, 100]. A sale price above the original yields 0.
func DiscountPercentage(original, sale money.Amount) (int, error) {
	if original <= 0 {
		return 0, &DivisionByZeroError{Original: original}
	}
	if sale < 0 {
		return 0, &InvalidPriceError{Index: -1, Field: "sale", Value: strconv.FormatInt(int64(sale), 10)}
	}
	if sale >= original {
		return 0, nil
	}
	diff := decimal.NewFromInt(int64(original - sale))
	pct := diff.Mul(hundred).Div(decimal.NewFromInt(int64(original))).Round(0)
	n := int(pct.IntPart())
	if n > 100 {
		n = 100
	}
	return n, nil
}

// LineItemCount counts distinct line items.
func LineItemCount(items []LineItem) int {
	return len(items)
}

// TotalUnitCount sums quantities across items, saturating at math.MaxInt.
func TotalUnitCount(items []LineItem) int {
	total, err := unitCount(items)
	if err != nil {
		return math.MaxInt
	}
	return total
}

func unitCount(items []LineItem) (int, error) {
	total := 0
	for _, item := range items {
		if item.Quantity > 0 && total > math.MaxInt-item.Quantity {
			return 0, ErrOverflow
		}
		total += item.Quantity
	}
	return total, nil
}

// Compute validates items and options, then derives the full Summary. The
// discount is the percentage share of the subtotal plus DiscountAmount,
// clamped so the total stays non-negative.
func Compute(items []LineItem, opts Options) (Summary, error) {
	if opts.Shipping < 0 {
		return Summary{}, &InvalidPriceError{Index: -1, Field: "shipping", Value: strconv.FormatInt(int64(opts.Shipping), 10)}
	}
	if opts.DiscountAmount < 0 {
		return Summary{}, &InvalidPriceError{Index: -1, Field: "discountAmount", Value: strconv.FormatInt(int64(opts.DiscountAmount), 10)}
	}
	if opts.TaxAmount < 0 {
		return Summary{}, &InvalidPriceError{Index: -1, Field: "taxAmount", Value: strconv.FormatInt(int64(opts.TaxAmount), 10)}
	}
	if err := checkRates(opts.TaxRate, opts.DiscountPercentage); err != nil {
		return Summary{}, err
	}

	subtotal, err := Subtotal(items)
	if err != nil {
		return Summary{}, err
	}
	tax := opts.TaxAmount
	if tax == 0 {
		tax, err = Tax(subtotal, opts.TaxRate)
		if err != nil {
			return Summary{}, err
		}
	}

	percentDiscount, err := percentOf(subtotal, clampPercent(opts.DiscountPercentage))
	if err != nil {
		return Summary{}, err
	}
	discount, err := addChecked(percentDiscount, opts.DiscountAmount)
	if err != nil {
		return Summary{}, err
	}

	gross, err := addChecked(subtotal, tax)
	if err != nil {
		return Summary{}, err
	}
	gross, err = addChecked(gross, opts.Shipping)
	if err != nil {
		return Summary{}, err
	}
	if discount > gross {
		discount = gross
	}
	units, err := unitCount(items)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  opts.Shipping,
		Discount:  discount,
		Total:     Total(subtotal, tax, opts.Shipping, discount),
		ItemCount: units,
		LineCount: LineItemCount(items),
	}, nil
}

// checkRates rejects rates whose magnitude cannot be compared or rounded
// cheaply. Sign and clamping are handled where each rate is applied.
func checkRates(taxRate, discountPercent decimal.Decimal) error {
	if !money.InRange(taxRate) {
		return &rateError{field: "taxRate", value: taxRate, reason: "is out of range"}
	}
	if !money.InRange(discountPercent) {
		return &rateError{field: "discountPercentage", value: discountPercent, reason: "is out of range"}
	}
	return nil
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

func percentOf(amount money.Amount, pct decimal.Decimal) (money.Amount, error) {
	if amount == 0 || pct.IsZero() {
		return 0, nil
	}
	v := decimal.NewFromInt(int64(amount)).Mul(pct).Shift(-2).Round(0)
	if v.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, ErrOverflow
	}
	return money.Amount(v.IntPart()), nil
}

func mulChecked(price money.Amount, qty int) (money.Amount, error) {
	if price > 0 && qty > 0 && int64(price) > math.MaxInt64/int64(qty) {
		return 0, ErrOverflow
	}
	return price * money.Amount(qty), nil
}

func addChecked(a, b money.Amount) (money.Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func satAdd(a, b money.Amount) money.Amount {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

type rateError struct {
	field  string
	value  decimal.Decimal
	reason string
}

func (e *rateError) Error() string {
	return "summary: " + e.field + " " + money.Text(e.value) + "% " + e.reason
}

func (e *rateError) Unwrap() error { return ErrInvalidRate }
