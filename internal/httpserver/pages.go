package httpserver

import (
	"context"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/catalog"
	"finitefield.org/hanko-blocks/internal/ui"
)

const siteTitle = "Hanko Blocks"

type indexData struct {
	Lang       string
	Categories []string
	Active     string
	Query      string
	Entries    []catalog.Entry
}

func indexPage(d indexData) g.Node {
	groups := map[string][]catalog.Entry{}
	for _, e := range d.Entries {
		groups[e.Category] = append(groups[e.Category], e)
	}

	var sections []g.Node
	for _, category := range d.Categories {
		entries := groups[category]
		if len(entries) == 0 {
			continue
		}
		sections = append(sections, h.Section(
			h.Class("space-y-4"),
			g.Attr("data-category", category),
			h.H2(h.Class("text-lg font-semibold capitalize"), g.Text(category)),
			h.Div(h.Class("grid gap-4 md:grid-cols-2"), g.Map(entries, entryCard)),
		))
	}

	return ui.Page(ui.PageProps{
		Title:       siteTitle,
		Description: "A catalog of commerce, marketing and dashboard UI blocks.",
		Lang:        d.Lang,
		Body: []g.Node{
			h.Header(
				h.Class("mb-8 space-y-2"),
				h.H1(h.Class("text-3xl font-bold tracking-tight"), g.Text(siteTitle)),
				h.P(h.Class("text-slate-600"), g.Textf("%d blocks", len(d.Entries))),
			),
			categoryNav(d.Categories, d.Active),
			g.If(len(sections) == 0, h.P(
				g.Attr("data-empty", ""),
				h.Class("text-slate-500"),
				g.Text("No blocks match this filter."),
			)),
			h.Div(h.Class("space-y-10"), g.Group(sections)),
		},
	})
}

func categoryNav(categories []string, active string) g.Node {
	link := func(label, href string, current bool) g.Node {
		return h.A(
			h.Href(href),
			c.Classes{
				"rounded-full px-3 py-1 text-sm capitalize": true,
				"bg-slate-900 text-white":                   current,
				"text-slate-600 hover:bg-slate-100":         !current,
			},
			g.If(current, g.Attr("aria-current", "page")),
			g.Text(label),
		)
	}
	items := []g.Node{link("All", "/", active == "")}
	for _, category := range categories {
		items = append(items, link(category, "/?category="+url.QueryEscape(category), strings.EqualFold(category, active)))
	}
	return h.Nav(h.Class("mb-8 flex flex-wrap gap-2"), h.Aria("label", "Categories"), g.Group(items))
}

func entryCard(e catalog.Entry) g.Node {
	previewID := "preview-" + e.ID
	href := "/blocks/" + url.PathEscape(e.ID)
	return ui.Card(
		g.Attr("data-entry", e.ID),
		h.Div(
			h.Class("flex items-start justify-between gap-4"),
			h.H3(h.Class("font-semibold"), h.A(h.Href(href), g.Text(e.Title))),
			ui.Badge(ui.ToneInfo, string(e.Kind)),
		),
		h.Div(h.Class("prose prose-sm mt-2 text-slate-600"), ui.Markdown(e.Description)),
		h.Button(
			h.Type("button"),
			h.Class(ui.ButtonClass(ui.ButtonGhost)+" mt-4"),
			g.Attr("hx-get", href+"/fragment"),
			g.Attr("hx-target", "#"+previewID),
			g.Attr("hx-swap", "innerHTML"),
			g.Text("Preview"),
		),
		h.Div(h.ID(previewID), h.Class("mt-4")),
	)
}

func blockPage(ctx context.Context, lang string, e catalog.Entry, block templ.Component) g.Node {
	return ui.Page(ui.PageProps{
		Title:       e.Title + " | " + siteTitle,
		Description: firstLine(e.Description),
		Lang:        lang,
		Body: []g.Node{
			h.Nav(h.Class("mb-6 text-sm"), h.A(h.Href("/?category="+url.QueryEscape(e.Category)), h.Class("text-slate-500 hover:text-slate-900"), g.Textf("← %s", e.Category))),
			h.Header(
				h.Class("mb-6 space-y-2"),
				h.Div(
					h.Class("flex items-center gap-3"),
					h.H1(h.Class("text-2xl font-bold"), g.Text(e.Title)),
					ui.Badge(ui.ToneInfo, string(e.Kind)),
				),
				h.Div(h.Class("prose prose-sm text-slate-600"), ui.Markdown(e.Description)),
			),
			h.Div(g.Attr("data-preview", e.ID), ui.Embed(ctx, block)),
		},
	})
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
