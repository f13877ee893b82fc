package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// Component adapts a gomponents node to templ so handlers can serve it with
// templ.Handler.
func Component(n g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		return n.Render(w)
	})
}

// Embed renders a templ component in place inside a gomponents tree.
func Embed(ctx context.Context, component templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		if component == nil {
			return nil
		}
		return component.Render(ctx, w)
	})
}

// PageProps configures Page.
type PageProps struct {
	Title       string
	Description string
	Lang        string
	Body        []g.Node
}

// Page wraps body content in a full HTML5 document with the utility CSS and
// htmx loaded from a CDN.
func Page(p PageProps) g.Node {
	lang := p.Lang
	if lang == "" {
		lang = "en"
	}
	return c.HTML5(c.HTML5Props{
		Title:       p.Title,
		Description: p.Description,
		Language:    lang,
		Head: []g.Node{
			h.Script(h.Src("https://cdn.tailwindcss.com")),
			h.Script(h.Src("https://unpkg.com/htmx.org@1.9.12"), h.Defer()),
		},
		Body: []g.Node{
			h.Class("min-h-screen bg-slate-50 text-slate-900 antialiased"),
			h.Main(h.Class("mx-auto max-w-6xl px-4 py-10"), g.Group(p.Body)),
		},
	})
}
