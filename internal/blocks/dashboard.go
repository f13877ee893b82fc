package blocks

import (
	"strings"

	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/summary"
	"finitefield.org/hanko-blocks/internal/ui"
)

// Stat is one KPI tile.
type Stat struct {
	Label  string `yaml:"label"`
	Value  string `yaml:"value"`
	Change string `yaml:"change"`
	Trend  string `yaml:"trend"`
}

// Sale is one row of the recent sales list.
type Sale struct {
	Name   string          `yaml:"name"`
	Email  string          `yaml:"email"`
	Amount decimal.Decimal `yaml:"amount"`
}

// StatsDashboardProps configures the KPI overview.
type StatsDashboardProps struct {
	Locale      `yaml:",inline"`
	Title       string `yaml:"title"`
	Stats       []Stat `yaml:"stats"`
	RecentSales []Sale `yaml:"recentSales"`
}

func (p *StatsDashboardProps) Validate() error {
	if len(p.Stats) == 0 {
		return invalid(KindStatsDashboard, "at least one stat is required")
	}
	for i, s := range p.Stats {
		if strings.TrimSpace(s.Label) == "" {
			return invalid(KindStatsDashboard, "stat %d: label is required", i)
		}
	}
	if len(p.RecentSales) == 0 {
		return nil
	}
	code, err := p.currency()
	if err != nil {
		return err
	}
	for i, sale := range p.RecentSales {
		if _, err := summary.ParseAmount("amount", sale.Amount, code); err != nil {
			return invalid(KindStatsDashboard, "sale %d: %v", i, err)
		}
	}
	return nil
}

func (p *StatsDashboardProps) Render() g.Node {
	return section(KindStatsDashboard,
		g.If(p.Title != "", h.H2(h.Class("mb-6 text-2xl font-bold text-slate-900"), g.Text(p.Title))),
		h.Div(
			h.Class("grid gap-4 sm:grid-cols-2 lg:grid-cols-4"),
			g.Map(p.Stats, func(s Stat) g.Node {
				return ui.StatCard(ui.StatCardProps{Label: s.Label, Value: s.Value, Change: s.Change, Trend: ui.ParseTrend(s.Trend)})
			}),
		),
		g.If(len(p.RecentSales) > 0, h.Div(h.Class("mt-8"), p.recentSales())),
	)
}

func (p *StatsDashboardProps) recentSales() g.Node {
	code, err := p.currency()
	if err != nil {
		return ui.Callout(ui.ToneDanger, "Recent sales", err.Error())
	}
	l := Locale{Currency: code, Lang: p.Lang}
	return ui.Card(
		h.H3(h.Class("text-lg font-semibold text-slate-900"), g.Text("Recent sales")),
		h.Ul(
			h.Class("mt-4 space-y-4"),
			g.Map(p.RecentSales, func(sale Sale) g.Node {
				amount := "—"
				if a, err := summary.ParseAmount("amount", sale.Amount, code); err == nil {
					amount = "+" + l.format(a)
				}
				return h.Li(
					h.Class("flex items-center gap-3"),
					ui.Avatar(ui.AvatarProps{Name: sale.Name, Size: 36}),
					h.Div(
						h.Class("flex-1"),
						h.P(h.Class("text-sm font-medium text-slate-900"), g.Text(sale.Name)),
						g.If(sale.Email != "", h.P(h.Class("text-sm text-slate-500"), g.Text(sale.Email))),
					),
					h.Span(h.Class("text-sm font-medium text-slate-900"), g.Text(amount)),
				)
			}),
		),
	)
}
