// Package quote turns order inputs into a presentation-ready summary carrying
// both minor-unit integers and formatted strings. The HTTP API and the CLI
// share it so their JSON output is identical.
package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/text/language"

	"finitefield.org/hanko-blocks/internal/money"
	"finitefield.org/hanko-blocks/internal/summary"
)

const (
	tracerName = "hanko-blocks/summary"
	meterName  = "hanko-blocks/summary"
)

// ErrInvalidCurrency is returned for currency codes that are not ISO 4217.
var ErrInvalidCurrency = errors.New("quote: invalid currency")

// Request is the decoded body of a summary request.
type Request struct {
	Items    []summary.Input      `json:"items" yaml:"items"`
	Options  summary.OptionsInput `json:"options" yaml:"options"`
	Currency string               `json:"currency,omitempty" yaml:"currency"`
	Lang     string               `json:"lang,omitempty" yaml:"lang"`
}

// Amount is one monetary value in every representation a client may need.
type Amount struct {
	Minor     int64  `json:"minor"`
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

// Line echoes a validated line item with its extended total.
type Line struct {
	Index       int    `json:"index"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	UnitPrice   Amount `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   Amount `json:"lineTotal"`
}

// Quote is the response body of a summary request.
type Quote struct {
	ID        string `json:"id"`
	Currency  string `json:"currency"`
	Lang      string `json:"lang"`
	Lines     []Line `json:"lines"`
	Subtotal  Amount `json:"subtotal"`
	Tax       Amount `json:"tax"`
	Shipping  Amount `json:"shipping"`
	Discount  Amount `json:"discount"`
	Total     Amount `json:"total"`
	ItemCount int    `json:"itemCount"`
	LineCount int    `json:"lineCount"`
}

// Defaults fills blank currency and language on a request.
type Defaults struct {
	Currency string
	Lang     string
}

// Option customises a Calculator.
type Option func(*Calculator)

// WithMeter injects an OpenTelemetry meter instead of the global provider's.
func WithMeter(m metric.Meter) Option {
	return func(c *Calculator) {
		if m != nil {
			c.meter = m
		}
	}
}

// WithIDFunc overrides quote id generation.
func WithIDFunc(fn func() string) Option {
	return func(c *Calculator) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Calculator computes quotes. It is safe for concurrent use.
type Calculator struct {
	defaults Defaults
	meter    metric.Meter
	newID    func() string
	computed metric.Int64Counter
}

// NewCalculator builds a Calculator filling blank request fields from defaults.
func NewCalculator(defaults Defaults, opts ...Option) (*Calculator, error) {
	c := &Calculator{
		defaults: defaults,
		meter:    otel.GetMeterProvider().Meter(meterName),
		newID:    func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	computed, err := c.meter.Int64Counter(
		"blocks.summary.computed",
		metric.WithDescription("Count of order summaries computed, by currency and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("quote: create counter: %w", err)
	}
	c.computed = computed
	return c, nil
}

// Compute validates req and derives the quote inside a tracing span.
func (c *Calculator) Compute(ctx context.Context, req Request) (Quote, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "summary.Compute")
	defer span.End()

	q, err := compute(req, c.defaults)
	outcome := "ok"
	if err != nil {
		outcome = "invalid"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		q.ID = c.newID()
	}
	attrs := []attribute.KeyValue{
		attribute.String("summary.currency", q.Currency),
		attribute.String("summary.outcome", outcome),
	}
	span.SetAttributes(append(attrs, attribute.Int("summary.lines", len(req.Items)))...)
	c.computed.Add(ctx, 1, metric.WithAttributes(attrs...))
	return q, err
}

func compute(req Request, defaults Defaults) (Quote, error) {
	code := strings.TrimSpace(req.Currency)
	if code == "" {
		code = defaults.Currency
	}
	currency, err := money.NormalizeCurrency(code)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	lang := strings.TrimSpace(req.Lang)
	if _, err := language.Parse(lang); lang == "" || err != nil {
		lang = defaults.Lang
	}
	if lang == "" {
		lang = "en"
	}

	items, s, err := summary.ComputeInputs(req.Items, req.Options, currency)
	if err != nil {
		return Quote{Currency: currency, Lang: lang}, err
	}

	amount := func(a money.Amount) Amount {
		return Amount{
			Minor:     a.Minor(),
			Value:     a.Decimal(currency).StringFixed(money.Exponent(currency)),
			Formatted: money.Format(a, currency, lang),
		}
	}

	lines := make([]Line, 0, len(items))
	for i, item := range items {
		total, err := item.LineTotal()
		if err != nil {
			return Quote{Currency: currency, Lang: lang}, err
		}
		lines = append(lines, Line{
			Index:       i,
			ID:          item.ID,
			Description: item.Description,
			UnitPrice:   amount(item.UnitPrice),
			Quantity:    item.Quantity,
			LineTotal:   amount(total),
		})
	}

	return Quote{
		Currency:  currency,
		Lang:      lang,
		Lines:     lines,
		Subtotal:  amount(s.Subtotal),
		Tax:       amount(s.Tax),
		Shipping:  amount(s.Shipping),
		Discount:  amount(s.Discount),
		Total:     amount(s.Total),
		ItemCount: s.ItemCount,
		LineCount: s.LineCount,
	}, nil
}

// ErrorCode maps a Compute error to a stable machine-readable code and
// reports the offending field and item index (-1 when not item-specific).
// ok is false for errors that are not caused by the input.
func ErrorCode(err error) (code, field string, index int, ok bool) {
	field, index, _ = summary.FieldOf(err)
	switch {
	case errors.Is(err, ErrInvalidCurrency):
		return "invalid_currency", "currency", -1, true
	case errors.Is(err, summary.ErrInvalidQuantity):
		return "invalid_quantity", field, index, true
	case errors.Is(err, summary.ErrInvalidPrice):
		return "invalid_price", field, index, true
	case errors.Is(err, summary.ErrInvalidRate):
		return "invalid_rate", field, index, true
	case errors.Is(err, summary.ErrOverflow), errors.Is(err, money.ErrOverflow):
		return "amount_overflow", field, index, true
	}
	return "", "", -1, false
}
