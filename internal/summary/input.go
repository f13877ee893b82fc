package summary

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"finitefield.org/hanko-blocks/internal/money"
)

var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// Input is a loosely typed line item as it arrives from YAML, JSON or flags.
// Prices are major units ("129.99"); quantity may be any number and is
// checked for integrality here.
type Input struct {
	ID          string          `json:"id,omitempty" yaml:"id"`
	Description string          `json:"description,omitempty" yaml:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`
	Quantity    decimal.Decimal `json:"quantity" yaml:"quantity"`
}

// NewLineItem converts decimal input into a validated LineItem.
func NewLineItem(unitPrice, quantity decimal.Decimal, currency string) (LineItem, error) {
	return newLineItem(-1, Input{UnitPrice: unitPrice, Quantity: quantity}, currency)
}

// LineItemFromFloat is NewLineItem for float input. NaN and infinities are
// rejected instead of leaking into totals.
func LineItemFromFloat(unitPrice, quantity float64, currency string) (LineItem, error) {
	if math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) {
		return LineItem{}, &InvalidPriceError{Index: -1, Field: "unitPrice", Value: strconv.FormatFloat(unitPrice, 'g', -1, 64), Reason: "must be finite"}
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return LineItem{}, &InvalidQuantityError{Index: -1, Value: strconv.FormatFloat(quantity, 'g', -1, 64)}
	}
	return NewLineItem(decimal.NewFromFloat(unitPrice), decimal.NewFromFloat(quantity), currency)
}

// ParseItems converts a batch of inputs, stopping at the first invalid one.
// Errors carry the position of the offending input.
func ParseItems(inputs []Input, currency string) ([]LineItem, error) {
	items := make([]LineItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := newLineItem(i, in, currency)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseAmount converts an order-level decimal (shipping, discount) to minor
// units, rejecting negative or over-precise values under the given field name.
func ParseAmount(field string, d decimal.Decimal, currency string) (money.Amount, error) {
	if d.IsNegative() {
		return 0, &InvalidPriceError{Index: -1, Field: field, Value: money.Text(d)}
	}
	amount, err := money.FromDecimal(d, currency)
	if err != nil {
		return 0, priceReason(-1, field, d, err)
	}
	return amount, nil
}

func newLineItem(index int, in Input, currency string) (LineItem, error) {
	q := in.Quantity
	if !money.InRange(q) || !q.IsInteger() || q.Sign() <= 0 || q.GreaterThan(maxQuantity) {
		return LineItem{}, &InvalidQuantityError{Index: index, Value: money.Text(q)}
	}
	if in.UnitPrice.IsNegative() {
		return LineItem{}, &InvalidPriceError{Index: index, Field: "unitPrice", Value: money.Text(in.UnitPrice)}
	}
	price, err := money.FromDecimal(in.UnitPrice, currency)
	if err != nil {
		return LineItem{}, priceReason(index, "unitPrice", in.UnitPrice, err)
	}
	return LineItem{
		ID:          in.ID,
		Description: in.Description,
		UnitPrice:   price,
		Quantity:    int(q.IntPart()),
	}, nil
}

func priceReason(index int, field string, d decimal.Decimal, err error) error {
	reason := err.Error()
	switch {
	case errors.Is(err, money.ErrPrecision):
		reason = "exceeds currency precision"
	case errors.Is(err, money.ErrOverflow):
		reason = "is too large"
	}
	return &InvalidPriceError{Index: index, Field: field, Value: money.Text(d), Reason: reason}
}

// OptionsInput is the decimal form of Options used by props, request bodies
// and files. Zero values mean "not set".
type OptionsInput struct {
	TaxRate            decimal.Decimal `json:"taxRate" yaml:"taxRate"`
	TaxAmount          decimal.Decimal `json:"taxAmount" yaml:"taxAmount"`
	Shipping           decimal.Decimal `json:"shipping" yaml:"shipping"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" yaml:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discountAmount" yaml:"discountAmount"`
}

// Options converts the decimal amounts to minor units of currency.
func (in OptionsInput) Options(currency string) (Options, error) {
	if err := checkRates(in.TaxRate, in.DiscountPercentage); err != nil {
		return Options{}, err
	}
	shipping, err := ParseAmount("shipping", in.Shipping, currency)
	if err != nil {
		return Options{}, err
	}
	taxAmount, err := ParseAmount("taxAmount", in.TaxAmount, currency)
	if err != nil {
		return Options{}, err
	}
	discount, err := ParseAmount("discountAmount", in.DiscountAmount, currency)
	if err != nil {
		return Options{}, err
	}
	return Options{
		TaxRate:            in.TaxRate,
		TaxAmount:          taxAmount,
		Shipping:           shipping,
		DiscountPercentage: in.DiscountPercentage,
		DiscountAmount:     discount,
	}, nil
}

// ComputeInputs parses items and options and computes the summary in one step.
func ComputeInputs(inputs []Input, opts OptionsInput, currency string) ([]LineItem, Summary, error) {
	items, err := ParseItems(inputs, currency)
	if err != nil {
		return nil, Summary{}, err
	}
	o, err := opts.Options(currency)
	if err != nil {
		return nil, Summary{}, err
	}
	s, err := Compute(items, o)
	if err != nil {
		return nil, Summary{}, err
	}
	return items, s, nil
}
