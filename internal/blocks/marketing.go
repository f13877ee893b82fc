package blocks

import (
	"strings"

	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/money"
	"finitefield.org/hanko-blocks/internal/summary"
	"finitefield.org/hanko-blocks/internal/ui"
)

// HeroProps configures the landing hero.
type HeroProps struct {
	Locale    `yaml:",inline"`
	Eyebrow   string `yaml:"eyebrow"`
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Primary   Link   `yaml:"primary"`
	Secondary Link   `yaml:"secondary"`
	ImageURL  string `yaml:"image"`
	ImageAlt  string `yaml:"imageAlt"`
}

func (p *HeroProps) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid(KindHero, "title is required")
	}
	return nil
}

func (p *HeroProps) Render() g.Node {
	return section(KindHero,
		h.Div(
			h.Class("grid items-center gap-10 lg:grid-cols-2"),
			h.Div(
				g.If(p.Eyebrow != "", ui.Badge(ui.ToneInfo, p.Eyebrow)),
				h.H1(h.Class("mt-4 text-4xl font-extrabold tracking-tight text-slate-900 sm:text-5xl"), g.Text(p.Title)),
				h.Div(h.Class("mt-6 text-lg text-slate-600"), ui.Markdown(p.Subtitle)),
				h.Div(
					h.Class("mt-8 flex flex-wrap gap-3"),
					p.Primary.button(ui.ButtonPrimary),
					p.Secondary.button(ui.ButtonGhost),
				),
			),
			g.If(p.ImageURL != "", h.Img(
				h.Src(p.ImageURL),
				h.Alt(p.ImageAlt),
				h.Class("w-full rounded-xl shadow-lg"),
			)),
		),
	)
}

// Plan is one column of a pricing table. Price is in major units.
type Plan struct {
	Name          string          `yaml:"name"`
	Description   string          `yaml:"description"`
	Price         decimal.Decimal `yaml:"price"`
	OriginalPrice decimal.Decimal `yaml:"originalPrice"`
	Period        string          `yaml:"period"`
	Features      []string        `yaml:"features"`
	Highlighted   bool            `yaml:"highlighted"`
	CTA           Link            `yaml:"cta"`
}

// PricingTableProps configures the plan comparison.
type PricingTableProps struct {
	Locale   `yaml:",inline"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Plans    []Plan `yaml:"plans"`
}

func (p *PricingTableProps) Validate() error {
	if len(p.Plans) == 0 {
		return invalid(KindPricingTable, "at least one plan is required")
	}
	code, err := p.currency()
	if err != nil {
		return err
	}
	for i, plan := range p.Plans {
		if strings.TrimSpace(plan.Name) == "" {
			return invalid(KindPricingTable, "plan %d: name is required", i)
		}
		if _, _, err := plan.amounts(code); err != nil {
			return invalid(KindPricingTable, "plan %d: %v", i, err)
		}
	}
	return nil
}

func (plan Plan) amounts(code string) (price, original money.Amount, err error) {
	price, err = summary.ParseAmount("price", plan.Price, code)
	if err != nil {
		return 0, 0, err
	}
	original, err = summary.ParseAmount("originalPrice", plan.OriginalPrice, code)
	if err != nil {
		return 0, 0, err
	}
	return price, original, nil
}

func (p *PricingTableProps) Render() g.Node {
	code, err := p.currency()
	if err != nil {
		return section(KindPricingTable, ui.Callout(ui.ToneDanger, "Pricing unavailable", err.Error()))
	}
	return section(KindPricingTable,
		heading(p.Title, p.Subtitle),
		h.Div(
			h.Class("grid gap-6 md:grid-cols-3"),
			g.Map(p.Plans, func(plan Plan) g.Node {
				return p.renderPlan(plan, code)
			}),
		),
	)
}

func (p *PricingTableProps) renderPlan(plan Plan, code string) g.Node {
	price, original, err := plan.amounts(code)
	var priceNode g.Node
	if err != nil {
		priceNode = ui.Callout(ui.ToneDanger, "", "Price unavailable")
	} else {
		period := ""
		if plan.Period != "" {
			period = "/" + plan.Period
		}
		priceNode = ui.Price(ui.PriceProps{Amount: price, Original: original, Currency: code, Lang: p.Lang, Suffix: period})
	}
	variant := ui.ButtonSecondary
	if plan.Highlighted {
		variant = ui.ButtonPrimary
	}
	return h.Div(
		c.Classes{
			"flex flex-col rounded-lg border bg-white p-6 shadow-sm": true,
			"border-slate-900 ring-2 ring-slate-900":                plan.Highlighted,
			"border-slate-200":                                      !plan.Highlighted,
		},
		h.Data("plan", plan.Name),
		h.Div(
			h.Class("flex items-center justify-between"),
			h.H3(h.Class("text-lg font-semibold text-slate-900"), g.Text(plan.Name)),
			g.If(plan.Highlighted, ui.Badge(ui.ToneInfo, "Most popular")),
		),
		g.If(plan.Description != "", h.P(h.Class("mt-2 text-sm text-slate-500"), g.Text(plan.Description))),
		h.Div(h.Class("mt-6"), priceNode),
		h.Ul(
			h.Class("mt-6 flex-1 space-y-2 text-sm text-slate-600"),
			g.Map(plan.Features, func(f string) g.Node {
				return h.Li(h.Class("flex gap-2"), h.Span(h.Class("text-emerald-600"), g.Text("✓")), g.Text(f))
			}),
		),
		g.If(plan.CTA.Label != "", h.Div(
			h.Class("mt-8"),
			ui.Button(ui.ButtonProps{Label: plan.CTA.Label, Href: plan.CTA.Href, Variant: variant, Full: true}),
		)),
	)
}

// Testimonial is a single customer quote.
type Testimonial struct {
	Quote    string `yaml:"quote"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Company  string `yaml:"company"`
	ImageURL string `yaml:"avatar"`
	Rating   int    `yaml:"rating"`
}

// TestimonialsProps configures the testimonial grid.
type TestimonialsProps struct {
	Locale   `yaml:",inline"`
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Items    []Testimonial `yaml:"items"`
}

func (p *TestimonialsProps) Validate() error {
	if len(p.Items) == 0 {
		return invalid(KindTestimonials, "at least one testimonial is required")
	}
	for i, t := range p.Items {
		if strings.TrimSpace(t.Quote) == "" || strings.TrimSpace(t.Name) == "" {
			return invalid(KindTestimonials, "item %d: quote and name are required", i)
		}
	}
	return nil
}

func (p *TestimonialsProps) Render() g.Node {
	return section(KindTestimonials,
		heading(p.Title, p.Subtitle),
		h.Div(
			h.Class("grid gap-6 md:grid-cols-2 lg:grid-cols-3"),
			g.Map(p.Items, func(t Testimonial) g.Node {
				byline := t.Role
				if t.Company != "" {
					if byline != "" {
						byline += ", "
					}
					byline += t.Company
				}
				return h.Figure(
					h.Class("rounded-lg border border-slate-200 bg-white p-6 shadow-sm"),
					g.If(t.Rating > 0, ui.Rating(t.Rating, 5)),
					h.P(h.Class("mt-4 text-slate-700"), g.Text("“"+t.Quote+"”")),
					h.FigCaption(
						h.Class("mt-6 flex items-center gap-3"),
						ui.Avatar(ui.AvatarProps{Name: t.Name, ImageURL: t.ImageURL}),
						h.Div(
							h.P(h.Class("text-sm font-semibold text-slate-900"), g.Text(t.Name)),
							g.If(byline != "", h.P(h.Class("text-sm text-slate-500"), g.Text(byline))),
						),
					),
				)
			}),
		),
	)
}

// SignInFormProps configures the authentication form. The block only renders
// markup; Action receives the POST.
type SignInFormProps struct {
	Locale     `yaml:",inline"`
	Title      string   `yaml:"title"`
	Subtitle   string   `yaml:"subtitle"`
	Action     string   `yaml:"action"`
	Providers  []string `yaml:"providers"`
	ForgotHref string   `yaml:"forgotHref"`
	SignUpHref string   `yaml:"signUpHref"`
	Remember   bool     `yaml:"remember"`
}

func (p *SignInFormProps) Validate() error {
	if strings.TrimSpace(p.Action) == "" {
		return invalid(KindSignInForm, "action is required")
	}
	return nil
}

func (p *SignInFormProps) Render() g.Node {
	title := p.Title
	if title == "" {
		title = "Sign in to your account"
	}
	return section(KindSignInForm,
		h.Div(
			h.Class("mx-auto max-w-md"),
			ui.Card(
				h.H2(h.Class("text-2xl font-bold text-slate-900"), g.Text(title)),
				h.Div(h.Class("mt-2 text-sm text-slate-500"), ui.Markdown(p.Subtitle)),
				g.If(len(p.Providers) > 0, h.Div(
					h.Class("mt-6 grid gap-3"),
					g.Map(p.Providers, func(name string) g.Node {
						return ui.Button(ui.ButtonProps{Label: "Continue with " + name, Variant: ui.ButtonSecondary, Full: true})
					}),
				)),
				h.Form(
					h.Class("mt-6 space-y-4"),
					h.Method("post"),
					h.Action(p.Action),
					field("email", "Email address", "email", "email"),
					field("password", "Password", "password", "current-password"),
					h.Div(
						h.Class("flex items-center justify-between text-sm"),
						g.If(p.Remember, h.Label(
							h.Class("flex items-center gap-2 text-slate-600"),
							h.Input(h.Type("checkbox"), h.Name("remember")),
							g.Text("Remember me"),
						)),
						g.If(p.ForgotHref != "", h.A(h.Href(p.ForgotHref), h.Class("font-medium text-slate-900 hover:underline"), g.Text("Forgot password?"))),
					),
					ui.Button(ui.ButtonProps{Label: "Sign in", Type: "submit", Variant: ui.ButtonPrimary, Full: true}),
				),
				g.If(p.SignUpHref != "", h.P(
					h.Class("mt-6 text-center text-sm text-slate-500"),
					g.Text("No account? "),
					h.A(h.Href(p.SignUpHref), h.Class("font-medium text-slate-900 hover:underline"), g.Text("Create one")),
				)),
			),
		),
	)
}

func field(name, label, typ, autocomplete string) g.Node {
	id := "signin-" + name
	return h.Div(
		h.Label(h.For(id), h.Class("block text-sm font-medium text-slate-700"), g.Text(label)),
		h.Input(
			h.ID(id),
			h.Name(name),
			h.Type(typ),
			h.AutoComplete(autocomplete),
			h.Required(),
			h.Class("mt-1 block w-full rounded-md border border-slate-300 px-3 py-2 text-sm shadow-sm"),
		),
	)
}
