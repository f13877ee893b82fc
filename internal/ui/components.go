// Package ui holds the presentational building blocks shared by every block:
// badges, buttons, cards, avatars, prices, stat cards, steps and ratings.
// Components are pure functions from props to gomponents nodes.
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/money"
	"finitefield.org/hanko-blocks/internal/summary"
)

// Badge renders a small pill label.
func Badge(tone Tone, label string) g.Node {
	return h.Span(h.Class(BadgeClass(tone)), g.Text(label))
}

// ButtonProps configures Button. A non-empty Href renders an anchor.
type ButtonProps struct {
	Label   string
	Href    string
	Variant ButtonVariant
	Type    string
	Full    bool
}

// Button renders a link-styled or form button.
func Button(p ButtonProps) g.Node {
	class := c.Classes{
		ButtonClass(p.Variant): true,
		"w-full":               p.Full,
	}
	if p.Href != "" {
		return h.A(h.Href(p.Href), class, g.Text(p.Label))
	}
	typ := p.Type
	if typ == "" {
		typ = "button"
	}
	return h.Button(h.Type(typ), class, g.Text(p.Label))
}

// Card wraps children in the standard bordered surface.
func Card(children ...g.Node) g.Node {
	return h.Div(
		h.Class("rounded-lg border border-slate-200 bg-white p-6 shadow-sm"),
		g.Group(children),
	)
}

// Callout renders an alert box, used for validation failures inside blocks.
func Callout(tone Tone, title, message string) g.Node {
	return h.Div(
		h.Class(CalloutClass(tone)),
		h.Role("alert"),
		g.If(title != "", h.P(h.Class("font-semibold"), g.Text(title))),
		h.P(g.Text(message)),
	)
}

// AvatarProps configures Avatar.
type AvatarProps struct {
	Name     string
	ImageURL string
	Size     int
}

// Avatar shows the image when present and falls back to initials.
func Avatar(p AvatarProps) g.Node {
	size := p.Size
	if size <= 0 {
		size = 40
	}
	dim := g.Attr("style", fmt.Sprintf("width:%dpx;height:%dpx", size, size))
	if p.ImageURL != "" {
		return h.Img(
			h.Src(p.ImageURL),
			h.Alt(p.Name),
			h.Class("rounded-full object-cover"),
			dim,
		)
	}
	return h.Span(
		h.Class("inline-flex items-center justify-center rounded-full bg-slate-200 text-sm font-semibold text-slate-700"),
		h.Aria("label", p.Name),
		dim,
		g.Text(Initials(p.Name)),
	)
}

// Initials returns up to two upper-cased leading letters of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		if !unicode.IsLetter(r[0]) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r[0]))
		n++
		if n == 2 {
			break
		}
	}
	if n == 0 {
		return "?"
	}
	return b.String()
}

// PriceProps configures Price. Original is shown struck through when it is
// above Amount, together with a discount badge.
type PriceProps struct {
	Amount   money.Amount
	Original money.Amount
	Currency string
	Lang     string
	Suffix   string
}

// Price renders a formatted amount with optional sale treatment.
func Price(p PriceProps) g.Node {
	onSale := p.Original > p.Amount
	var badge g.Node
	if onSale {
		if pct, err := summary.DiscountPercentage(p.Original, p.Amount); err == nil && pct > 0 {
			badge = Badge(ToneDanger, fmt.Sprintf("-%d%%", pct))
		}
	}
	return h.Div(
		h.Class("flex items-baseline gap-2"),
		h.Span(
			h.Class("text-lg font-semibold text-slate-900"),
			h.Data("price", strconv.FormatInt(p.Amount.Minor(), 10)),
			g.Text(money.Format(p.Amount, p.Currency, p.Lang)),
		),
		g.If(p.Suffix != "", h.Span(h.Class("text-sm text-slate-500"), g.Text(p.Suffix))),
		g.If(onSale, h.Del(h.Class("text-sm text-slate-400"), g.Text(money.Format(p.Original, p.Currency, p.Lang)))),
		badge,
	)
}

// StatCardProps configures StatCard.
type StatCardProps struct {
	Label  string
	Value  string
	Change string
	Trend  Trend
}

// StatCard renders one dashboard metric with its trend.
func StatCard(p StatCardProps) g.Node {
	style, ok := trendStyles[p.Trend]
	if !ok {
		style = trendStyles[TrendFlat]
	}
	return Card(
		h.P(h.Class("text-sm font-medium text-slate-500"), g.Text(p.Label)),
		h.P(h.Class("mt-2 text-3xl font-semibold text-slate-900"), g.Text(p.Value)),
		g.If(p.Change != "", h.Span(
			h.Class(BadgeClass(style.tone)+" mt-3"),
			h.Data("trend", string(p.Trend)),
			g.Text(style.arrow+" "+p.Change),
		)),
	)
}

// StepProps configures Step.
type StepProps struct {
	Number int
	Label  string
	Status StepStatus
}

// Step renders one entry of a progress stepper.
func Step(p StepProps) g.Node {
	style, ok := stepStyles[p.Status]
	if !ok {
		style = stepStyles[StepUpcoming]
	}
	marker := strconv.Itoa(p.Number)
	if p.Status == StepCompleted {
		marker = "✓"
	}
	return h.Li(
		h.Class("flex items-center gap-3"),
		h.Data("status", string(p.Status)),
		g.If(style.aria != "", h.Aria("current", style.aria)),
		h.Span(h.Class(style.marker), g.Text(marker)),
		h.Span(h.Class(style.label), g.Text(p.Label)),
	)
}

// Rating renders max stars with the first value filled. Values are clamped
// to [0, max].
func Rating(value, max int) g.Node {
	if max <= 0 {
		max = 5
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	stars := make([]g.Node, 0, max)
	for i := 0; i < max; i++ {
		class := "text-slate-300"
		if i < value {
			class = "text-amber-400"
		}
		stars = append(stars, h.Span(h.Class(class), g.Text("★")))
	}
	return h.Div(
		h.Class("flex gap-0.5"),
		h.Aria("label", fmt.Sprintf("%d out of %d stars", value, max)),
		h.Data("rating", strconv.Itoa(value)),
		g.Group(stars),
	)
}
