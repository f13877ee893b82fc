package blocks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/money"
	"finitefield.org/hanko-blocks/internal/summary"
	"finitefield.org/hanko-blocks/internal/ui"
)

// Product is one card of a product grid. A non-zero SalePrice is shown with
// Price struck through.
type Product struct {
	Name      string          `yaml:"name"`
	Href      string          `yaml:"href"`
	ImageURL  string          `yaml:"image"`
	Price     decimal.Decimal `yaml:"price"`
	SalePrice decimal.Decimal `yaml:"salePrice"`
	Rating    int             `yaml:"rating"`
	Reviews   int             `yaml:"reviews"`
	Badge     string          `yaml:"badge"`
	BadgeTone string          `yaml:"badgeTone"`
}

func (p Product) amounts(code string) (price, sale money.Amount, err error) {
	price, err = summary.ParseAmount("price", p.Price, code)
	if err != nil {
		return 0, 0, err
	}
	sale, err = summary.ParseAmount("salePrice", p.SalePrice, code)
	if err != nil {
		return 0, 0, err
	}
	return price, sale, nil
}

// ProductGridProps configures the product listing.
type ProductGridProps struct {
	Locale   `yaml:",inline"`
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Products []Product `yaml:"products"`
}

func (p *ProductGridProps) Validate() error {
	if len(p.Products) == 0 {
		return invalid(KindProductGrid, "at least one product is required")
	}
	code, err := p.currency()
	if err != nil {
		return err
	}
	for i, prod := range p.Products {
		if strings.TrimSpace(prod.Name) == "" {
			return invalid(KindProductGrid, "product %d: name is required", i)
		}
		if _, _, err := prod.amounts(code); err != nil {
			return invalid(KindProductGrid, "product %d: %v", i, err)
		}
	}
	return nil
}

func (p *ProductGridProps) Render() g.Node {
	code, err := p.currency()
	if err != nil {
		return section(KindProductGrid, ui.Callout(ui.ToneDanger, "Products unavailable", err.Error()))
	}
	return section(KindProductGrid,
		heading(p.Title, p.Subtitle),
		h.Div(
			h.Class("grid gap-6 sm:grid-cols-2 lg:grid-cols-4"),
			g.Map(p.Products, func(prod Product) g.Node {
				return p.renderProduct(prod, code)
			}),
		),
	)
}

func (p *ProductGridProps) renderProduct(prod Product, code string) g.Node {
	price, sale, err := prod.amounts(code)
	var priceNode g.Node
	switch {
	case err != nil:
		priceNode = ui.Callout(ui.ToneDanger, "", "Price unavailable")
	case sale > 0 && sale < price:
		priceNode = ui.Price(ui.PriceProps{Amount: sale, Original: price, Currency: code, Lang: p.Lang})
	default:
		priceNode = ui.Price(ui.PriceProps{Amount: price, Currency: code, Lang: p.Lang})
	}
	title := g.Text(prod.Name)
	if prod.Href != "" {
		title = h.A(h.Href(prod.Href), h.Class("hover:underline"), g.Text(prod.Name))
	}
	return h.Article(
		h.Class("group overflow-hidden rounded-lg border border-slate-200 bg-white shadow-sm"),
		h.Data("product", prod.Name),
		h.Div(
			h.Class("relative aspect-square bg-slate-100"),
			g.If(prod.ImageURL != "", h.Img(h.Src(prod.ImageURL), h.Alt(prod.Name), h.Class("h-full w-full object-cover"))),
			g.If(prod.Badge != "", h.Div(h.Class("absolute left-3 top-3"), ui.Badge(ui.ParseTone(prod.BadgeTone), prod.Badge))),
		),
		h.Div(
			h.Class("space-y-2 p-4"),
			h.H3(h.Class("text-sm font-medium text-slate-900"), title),
			g.If(prod.Rating > 0, h.Div(
				h.Class("flex items-center gap-2"),
				ui.Rating(prod.Rating, 5),
				g.If(prod.Reviews > 0, h.Span(h.Class("text-xs text-slate-500"), g.Textf("(%d)", prod.Reviews))),
			)),
			priceNode,
		),
	)
}

// CartItem is a line item with display fields.
type CartItem struct {
	summary.Input `yaml:",inline"`
	Name          string `yaml:"name"`
	Variant       string `yaml:"variant"`
	ImageURL      string `yaml:"image"`
}

// CountMode chooses what the item-count badge counts.
type CountMode string

const (
	CountUnits CountMode = "units"
	CountLines CountMode = "lines"
)

func (m CountMode) count(s summary.Summary) int {
	if m == CountLines {
		return s.LineCount
	}
	return s.ItemCount
}

func countLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

func cartInputs(items []CartItem) []summary.Input {
	inputs := make([]summary.Input, 0, len(items))
	for _, item := range items {
		in := item.Input
		if in.Description == "" {
			in.Description = item.Name
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// CartProps configures the shopping cart.
type CartProps struct {
	Locale               `yaml:",inline"`
	summary.OptionsInput `yaml:",inline"`
	Title                string     `yaml:"title"`
	Items                []CartItem `yaml:"items"`
	CountMode            CountMode  `yaml:"countMode"`
	Checkout             Link       `yaml:"checkout"`
	Continue             Link       `yaml:"continue"`
}

func (p *CartProps) Validate() error {
	if _, err := p.currency(); err != nil {
		return err
	}
	switch p.CountMode {
	case "", CountUnits, CountLines:
	default:
		return invalid(KindCart, "countMode %q must be units or lines", p.CountMode)
	}
	for i, item := range p.Items {
		if strings.TrimSpace(item.Name) == "" {
			return invalid(KindCart, "item %d: name is required", i)
		}
	}
	return nil
}

func (p *CartProps) Render() g.Node {
	title := p.Title
	if title == "" {
		title = "Shopping cart"
	}
	code, err := p.currency()
	if err != nil {
		return section(KindCart, ui.Callout(ui.ToneDanger, title, err.Error()))
	}
	lines, s, err := summary.ComputeInputs(cartInputs(p.Items), p.OptionsInput, code)
	if err != nil {
		return section(KindCart,
			h.H2(h.Class("text-2xl font-bold text-slate-900"), g.Text(title)),
			h.Div(h.Class("mt-6"), summaryErrorCallout("We couldn't total this cart", err)),
		)
	}
	l := Locale{Currency: code, Lang: p.Lang}
	if len(lines) == 0 {
		return section(KindCart,
			h.H2(h.Class("text-2xl font-bold text-slate-900"), g.Text(title)),
			h.Div(h.Class("mt-6"), ui.Callout(ui.ToneNeutral, "Your cart is empty", "Add something you like and it will show up here.")),
			h.Div(h.Class("mt-6"), p.Continue.button(ui.ButtonSecondary)),
		)
	}
	return section(KindCart,
		h.Div(
			h.Class("flex items-center gap-3"),
			h.H2(h.Class("text-2xl font-bold text-slate-900"), g.Text(title)),
			h.Span(h.Data("count", strconv.Itoa(p.CountMode.count(s))), ui.Badge(ui.ToneNeutral, countLabel(p.CountMode.count(s)))),
		),
		h.Div(
			h.Class("mt-8 grid gap-8 lg:grid-cols-3"),
			h.Ul(
				h.Class("divide-y divide-slate-200 lg:col-span-2"),
				g.Group(cartRows(l, p.Items, lines)),
			),
			ui.Card(
				h.H3(h.Class("mb-4 text-lg font-semibold text-slate-900"), g.Text("Order summary")),
				totalsList(l, s, "Tax", true),
				h.Div(
					h.Class("mt-6 grid gap-3"),
					p.Checkout.button(ui.ButtonPrimary),
					p.Continue.button(ui.ButtonGhost),
				),
			),
		),
	)
}

func cartRows(l Locale, items []CartItem, lines []summary.LineItem) []g.Node {
	rows := make([]g.Node, 0, len(lines))
	for i, line := range lines {
		item := items[i]
		lineTotal, err := line.LineTotal()
		amount := "—"
		if err == nil {
			amount = l.format(lineTotal)
		}
		rows = append(rows, h.Li(
			h.Class("flex gap-4 py-4"),
			h.Data("line", strconv.Itoa(i)),
			g.If(item.ImageURL != "", h.Img(h.Src(item.ImageURL), h.Alt(item.Name), h.Class("h-20 w-20 rounded-md object-cover"))),
			h.Div(
				h.Class("flex flex-1 justify-between"),
				h.Div(
					h.P(h.Class("font-medium text-slate-900"), g.Text(item.Name)),
					g.If(item.Variant != "", h.P(h.Class("text-sm text-slate-500"), g.Text(item.Variant))),
					h.P(h.Class("mt-1 text-sm text-slate-500"), g.Textf("%s × %d", l.format(line.UnitPrice), line.Quantity)),
				),
				h.P(h.Class("font-medium text-slate-900"), h.Data("line-total", strconv.FormatInt(lineTotal.Minor(), 10)), g.Text(amount)),
			),
		))
	}
	return rows
}

// OrderSummaryProps configures the compact checkout totals panel.
type OrderSummaryProps struct {
	Locale               `yaml:",inline"`
	summary.OptionsInput `yaml:",inline"`
	Title                string     `yaml:"title"`
	Items                []CartItem `yaml:"items"`
	PromoCode            string     `yaml:"promoCode"`
	CountMode            CountMode  `yaml:"countMode"`
	Checkout             Link       `yaml:"checkout"`
}

func (p *OrderSummaryProps) Validate() error {
	if _, err := p.currency(); err != nil {
		return err
	}
	switch p.CountMode {
	case "", CountUnits, CountLines:
	default:
		return invalid(KindOrderSummary, "countMode %q must be units or lines", p.CountMode)
	}
	return nil
}

func (p *OrderSummaryProps) Render() g.Node {
	title := p.Title
	if title == "" {
		title = "Order summary"
	}
	code, err := p.currency()
	if err != nil {
		return section(KindOrderSummary, ui.Callout(ui.ToneDanger, title, err.Error()))
	}
	lines, s, err := summary.ComputeInputs(cartInputs(p.Items), p.OptionsInput, code)
	if err != nil {
		return section(KindOrderSummary, ui.Card(
			h.H2(h.Class("text-lg font-semibold text-slate-900"), g.Text(title)),
			h.Div(h.Class("mt-4"), summaryErrorCallout("We couldn't calculate your order", err)),
		))
	}
	l := Locale{Currency: code, Lang: p.Lang}
	return section(KindOrderSummary,
		h.Div(
			h.Class("mx-auto max-w-md"),
			ui.Card(
				h.Div(
					h.Class("flex items-center justify-between"),
					h.H2(h.Class("text-lg font-semibold text-slate-900"), g.Text(title)),
					h.Span(h.Data("count", strconv.Itoa(p.CountMode.count(s))), ui.Badge(ui.ToneNeutral, countLabel(p.CountMode.count(s)))),
				),
				h.Ul(
					h.Class("mt-4 space-y-2 text-sm"),
					g.Group(summaryLines(l, p.Items, lines)),
				),
				g.If(p.PromoCode != "", h.Div(
					h.Class("mt-4 flex items-center justify-between text-sm"),
					h.Span(h.Class("text-slate-600"), g.Text("Promo code")),
					ui.Badge(ui.ToneSuccess, p.PromoCode),
				)),
				h.Div(h.Class("mt-4 border-t border-slate-200 pt-4"), totalsList(l, s, "Estimated tax", true)),
				g.If(p.Checkout.Label != "", h.Div(
					h.Class("mt-6"),
					ui.Button(ui.ButtonProps{Label: p.Checkout.Label, Href: p.Checkout.Href, Variant: ui.ButtonPrimary, Full: true}),
				)),
			),
		),
	)
}

func summaryLines(l Locale, items []CartItem, lines []summary.LineItem) []g.Node {
	nodes := make([]g.Node, 0, len(lines))
	for i, line := range lines {
		total, _ := line.LineTotal()
		nodes = append(nodes, h.Li(
			h.Class("flex justify-between text-slate-600"),
			h.Span(g.Textf("%s × %d", items[i].Name, line.Quantity)),
			h.Span(h.Class("text-slate-900"), g.Text(l.format(total))),
		))
	}
	return nodes
}

// Party is the sender or recipient of an invoice.
type Party struct {
	Name    string   `yaml:"name"`
	Email   string   `yaml:"email"`
	Address []string `yaml:"address"`
}

// InvoiceStatus drives the status badge.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceDue     InvoiceStatus = "due"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

var invoiceStatusTones = map[InvoiceStatus]ui.Tone{
	InvoiceDraft:   ui.ToneNeutral,
	InvoiceDue:     ui.ToneWarning,
	InvoicePaid:    ui.ToneSuccess,
	InvoiceOverdue: ui.ToneDanger,
}

var invoiceStatusLabels = map[InvoiceStatus]string{
	InvoiceDraft:   "Draft",
	InvoiceDue:     "Due",
	InvoicePaid:    "Paid",
	InvoiceOverdue: "Overdue",
}

func invoiceStatusLabel(status InvoiceStatus) string {
	if label, ok := invoiceStatusLabels[status]; ok {
		return label
	}
	return string(status)
}

// InvoiceProps configures the invoice document.
type InvoiceProps struct {
	Locale               `yaml:",inline"`
	summary.OptionsInput `yaml:",inline"`
	Number               string          `yaml:"number"`
	Status               InvoiceStatus   `yaml:"status"`
	IssuedOn             string          `yaml:"issuedOn"`
	DueOn                string          `yaml:"dueOn"`
	From                 Party           `yaml:"from"`
	To                   Party           `yaml:"to"`
	Items                []summary.Input `yaml:"items"`
	Notes                string          `yaml:"notes"`
}

func (p *InvoiceProps) Validate() error {
	if strings.TrimSpace(p.Number) == "" {
		return invalid(KindInvoice, "number is required")
	}
	if _, ok := invoiceStatusTones[p.Status]; p.Status != "" && !ok {
		return invalid(KindInvoice, "unknown status %q", p.Status)
	}
	if _, err := p.currency(); err != nil {
		return err
	}
	for i, item := range p.Items {
		if strings.TrimSpace(item.Description) == "" {
			return invalid(KindInvoice, "item %d: description is required", i)
		}
	}
	return nil
}

func (p *InvoiceProps) Render() g.Node {
	code, err := p.currency()
	if err != nil {
		return section(KindInvoice, ui.Callout(ui.ToneDanger, "Invoice "+p.Number, err.Error()))
	}
	lines, s, err := summary.ComputeInputs(p.Items, p.OptionsInput, code)
	var body g.Node
	if err != nil {
		body = summaryErrorCallout("This invoice has invalid line items", err)
	} else {
		l := Locale{Currency: code, Lang: p.Lang}
		body = g.Group{
			invoiceTable(l, lines),
			h.Div(
				h.Class("mt-6 ml-auto max-w-xs"),
				totalsList(l, s, p.taxLabel(), false),
			),
		}
	}
	status := p.Status
	if status == "" {
		status = InvoiceDue
	}
	return section(KindInvoice,
		ui.Card(
			h.Header(
				h.Class("flex flex-wrap items-start justify-between gap-4"),
				h.Div(
					h.H2(h.Class("text-2xl font-bold text-slate-900"), g.Text("Invoice "+p.Number)),
					g.If(p.IssuedOn != "", h.P(h.Class("mt-1 text-sm text-slate-500"), g.Text("Issued "+p.IssuedOn))),
					g.If(p.DueOn != "", h.P(h.Class("text-sm text-slate-500"), g.Text("Due "+p.DueOn))),
				),
				h.Span(h.Data("status", string(status)), ui.Badge(invoiceStatusTones[status], invoiceStatusLabel(status))),
			),
			h.Div(
				h.Class("mt-8 grid gap-6 sm:grid-cols-2"),
				partyBlock("From", p.From),
				partyBlock("Bill to", p.To),
			),
			h.Div(h.Class("mt-8"), body),
			g.If(p.Notes != "", h.Div(h.Class("mt-8 border-t border-slate-200 pt-6 text-sm"), ui.Markdown(p.Notes))),
		),
	)
}

func (p *InvoiceProps) taxLabel() string {
	if p.TaxAmount.IsZero() && p.TaxRate.IsPositive() {
		return fmt.Sprintf("Tax (%s%%)", p.TaxRate.String())
	}
	return "Tax"
}

func invoiceTable(l Locale, lines []summary.LineItem) g.Node {
	return h.Table(
		h.Class("w-full text-left text-sm"),
		h.THead(
			h.Class("border-b border-slate-200 text-slate-500"),
			h.Tr(
				h.Th(h.Class("py-2 font-medium"), g.Text("Description")),
				h.Th(h.Class("py-2 text-right font-medium"), g.Text("Qty")),
				h.Th(h.Class("py-2 text-right font-medium"), g.Text("Rate")),
				h.Th(h.Class("py-2 text-right font-medium"), g.Text("Amount")),
			),
		),
		h.TBody(
			h.Class("divide-y divide-slate-100"),
			g.Map(lines, func(line summary.LineItem) g.Node {
				total, _ := line.LineTotal()
				return h.Tr(
					h.Td(h.Class("py-3 text-slate-900"), g.Text(line.Description)),
					h.Td(h.Class("py-3 text-right"), g.Text(strconv.Itoa(line.Quantity))),
					h.Td(h.Class("py-3 text-right"), g.Text(l.format(line.UnitPrice))),
					h.Td(h.Class("py-3 text-right font-medium text-slate-900"), g.Text(l.format(total))),
				)
			}),
		),
	)
}

func partyBlock(label string, p Party) g.Node {
	return h.Div(
		h.P(h.Class("text-xs font-semibold uppercase tracking-wide text-slate-500"), g.Text(label)),
		h.P(h.Class("mt-2 font-medium text-slate-900"), g.Text(p.Name)),
		g.Map(p.Address, func(line string) g.Node {
			return h.P(h.Class("text-sm text-slate-600"), g.Text(line))
		}),
		g.If(p.Email != "", h.P(h.Class("text-sm text-slate-600"), g.Text(p.Email))),
	)
}

// CheckoutStep is one stage of the checkout stepper.
type CheckoutStep struct {
	Label  string `yaml:"label"`
	Status string `yaml:"status"`
}

// CheckoutStepsProps configures the progress stepper.
type CheckoutStepsProps struct {
	Locale `yaml:",inline"`
	Steps  []CheckoutStep `yaml:"steps"`
}

func (p *CheckoutStepsProps) Validate() error {
	if len(p.Steps) == 0 {
		return invalid(KindCheckoutSteps, "at least one step is required")
	}
	current := 0
	for i, st := range p.Steps {
		if strings.TrimSpace(st.Label) == "" {
			return invalid(KindCheckoutSteps, "step %d: label is required", i)
		}
		if ui.ParseStepStatus(st.Status) == ui.StepCurrent {
			current++
		}
	}
	if current > 1 {
		return invalid(KindCheckoutSteps, "only one step can be current, got %d", current)
	}
	return nil
}

func (p *CheckoutStepsProps) Render() g.Node {
	steps := make([]g.Node, 0, len(p.Steps))
	for i, st := range p.Steps {
		steps = append(steps, ui.Step(ui.StepProps{Number: i + 1, Label: st.Label, Status: ui.ParseStepStatus(st.Status)}))
	}
	return section(KindCheckoutSteps,
		h.Nav(
			h.Aria("label", "Checkout progress"),
			h.Ol(h.Class("flex flex-wrap items-center gap-6"), g.Group(steps)),
		),
	)
}
