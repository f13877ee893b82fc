package ui

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// RenderMarkdown converts markdown copy to sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return string(policy.SanitizeBytes(buf.Bytes())), nil
}

// Markdown renders block copy. Conversion failures fall back to escaped text.
func Markdown(src string) g.Node {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	out, err := RenderMarkdown(src)
	if err != nil {
		return h.Div(h.Class("prose prose-slate max-w-none"), h.P(g.Text(src)))
	}
	return h.Div(h.Class("prose prose-slate max-w-none"), g.Raw(out))
}
