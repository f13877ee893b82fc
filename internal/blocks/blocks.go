// Package blocks composes ui components and sample data into page sections.
// Every block is a props struct with Validate and Render; money-bearing
// blocks delegate all arithmetic to package summary.
package blocks

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/money"
	"finitefield.org/hanko-blocks/internal/summary"
	"finitefield.org/hanko-blocks/internal/ui"
)

// ErrInvalidProps is wrapped by every Validate failure.
var ErrInvalidProps = errors.New("blocks: invalid props")

// Kind identifies a block type.
type Kind string

const (
	KindHero           Kind = "hero"
	KindPricingTable   Kind = "pricing-table"
	KindProductGrid    Kind = "product-grid"
	KindTestimonials   Kind = "testimonials"
	KindStatsDashboard Kind = "stats-dashboard"
	KindSignInForm     Kind = "sign-in"
	KindCart           Kind = "cart"
	KindInvoice        Kind = "invoice"
	KindOrderSummary   Kind = "order-summary"
	KindCheckoutSteps  Kind = "checkout-steps"
)

// Props is implemented by the pointer to every block's props struct.
type Props interface {
	Validate() error
	Render() g.Node
	SetLocale(defaults Locale)
}

var registry = map[Kind]func() Props{
	KindHero:           func() Props { return &HeroProps{} },
	KindPricingTable:   func() Props { return &PricingTableProps{} },
	KindProductGrid:    func() Props { return &ProductGridProps{} },
	KindTestimonials:   func() Props { return &TestimonialsProps{} },
	KindStatsDashboard: func() Props { return &StatsDashboardProps{} },
	KindSignInForm:     func() Props { return &SignInFormProps{} },
	KindCart:           func() Props { return &CartProps{} },
	KindInvoice:        func() Props { return &InvoiceProps{} },
	KindOrderSummary:   func() Props { return &OrderSummaryProps{} },
	KindCheckoutSteps:  func() Props { return &CheckoutStepsProps{} },
}

// New returns zero props for kind, ready to be decoded into.
func New(kind Kind) (Props, bool) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Kinds lists the registered kinds in lexical order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Locale carries display settings. Blank fields are filled from the
// server defaults.
type Locale struct {
	Currency string `yaml:"currency" json:"currency,omitempty"`
	Lang     string `yaml:"lang" json:"lang,omitempty"`
}

// SetLocale fills blank fields from defaults.
func (l *Locale) SetLocale(defaults Locale) {
	if strings.TrimSpace(l.Currency) == "" {
		l.Currency = defaults.Currency
	}
	if strings.TrimSpace(l.Lang) == "" {
		l.Lang = defaults.Lang
	}
	if l.Currency == "" {
		l.Currency = money.DefaultCurrency
	}
	if l.Lang == "" {
		l.Lang = "en"
	}
}

func (l Locale) currency() (string, error) {
	code, err := money.NormalizeCurrency(l.Currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProps, err)
	}
	return code, nil
}

func (l Locale) format(a money.Amount) string {
	return money.Format(a, l.Currency, l.Lang)
}

// Link is a labelled href, used for calls to action.
type Link struct {
	Label   string `yaml:"label" json:"label"`
	Href    string `yaml:"href" json:"href"`
	Variant string `yaml:"variant" json:"variant,omitempty"`
}

func (l Link) button(fallback ui.ButtonVariant) g.Node {
	if l.Label == "" {
		return nil
	}
	variant := fallback
	if l.Variant != "" {
		variant = ui.ParseButtonVariant(l.Variant)
	}
	return ui.Button(ui.ButtonProps{Label: l.Label, Href: l.Href, Variant: variant})
}

func invalid(kind Kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidProps, kind, fmt.Sprintf(format, args...))
}

func section(kind Kind, children ...g.Node) g.Node {
	return h.Section(
		h.Class("py-12"),
		h.Data("block", string(kind)),
		g.Group(children),
	)
}

func heading(title, subtitle string) g.Node {
	return h.Div(
		h.Class("mx-auto mb-10 max-w-2xl text-center"),
		g.If(title != "", h.H2(h.Class("text-3xl font-bold tracking-tight text-slate-900"), g.Text(title))),
		ui.Markdown(subtitle),
	)
}

// summaryErrorCallout is shown in place of totals when line items or
// adjustments fail validation.
func summaryErrorCallout(title string, err error) g.Node {
	field, index, _ := summary.FieldOf(err)
	msg := strings.TrimPrefix(err.Error(), "summary: ")
	msg = strings.TrimPrefix(msg, "money: ")
	return h.Div(
		h.Data("error-field", field),
		g.If(index >= 0, h.Data("error-index", strconv.Itoa(index))),
		ui.Callout(ui.ToneDanger, title, msg),
	)
}

func summaryRow(label, value string, extra ...g.Node) g.Node {
	return h.Div(
		h.Class("flex items-center justify-between py-1 text-sm text-slate-600"),
		g.Group(extra),
		h.Dt(g.Text(label)),
		h.Dd(h.Class("font-medium text-slate-900"), g.Text(value)),
	)
}

func totalRow(label, value string) g.Node {
	return h.Div(
		h.Class("flex items-center justify-between border-t border-slate-200 pt-3 text-base font-semibold text-slate-900"),
		h.Data("row", "total"),
		h.Dt(g.Text(label)),
		h.Dd(g.Text(value)),
	)
}

// totalsList renders the shared subtotal/tax/shipping/discount/total rows.
func totalsList(l Locale, s summary.Summary, taxLabel string, showZeroShipping bool) g.Node {
	shipping := money.Free(s.Shipping, l.Currency, l.Lang, "Free")
	return h.Dl(
		h.Class("space-y-1"),
		summaryRow("Subtotal", l.format(s.Subtotal), h.Data("row", "subtotal")),
		g.If(s.Discount > 0, summaryRow("Discount", "-"+l.format(s.Discount), h.Data("row", "discount"))),
		g.If(s.Shipping > 0 || showZeroShipping, summaryRow("Shipping", shipping, h.Data("row", "shipping"))),
		g.If(s.Tax > 0, summaryRow(taxLabel, l.format(s.Tax), h.Data("row", "tax"))),
		totalRow("Total", l.format(s.Total)),
	)
}
