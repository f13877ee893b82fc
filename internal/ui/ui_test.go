package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"finitefield.org/hanko-blocks/internal/testutil"
)

func TestParseVariantsFallBack(t *testing.T) {
	t.Parallel()

	require.Equal(t, ToneSuccess, ParseTone(" Success "))
	require.Equal(t, ToneNeutral, ParseTone("sparkly"))
	require.Equal(t, ButtonPrimary, ParseButtonVariant("primary"))
	require.Equal(t, ButtonSecondary, ParseButtonVariant(""))
	require.Equal(t, StepCurrent, ParseStepStatus("CURRENT"))
	require.Equal(t, StepUpcoming, ParseStepStatus("skipped"))
	require.Equal(t, TrendDown, ParseTrend("down"))
	require.Equal(t, TrendFlat, ParseTrend("sideways"))
}

func TestClassLookupsUseNeutralForUnknownValues(t *testing.T) {
	t.Parallel()

	require.Contains(t, BadgeClass(ToneDanger), "bg-rose-100")
	require.Equal(t, BadgeClass(ToneNeutral), BadgeClass(Tone("mystery")))
	require.Equal(t, CalloutClass(ToneNeutral), CalloutClass(Tone("mystery")))
	require.Equal(t, ButtonClass(ButtonSecondary), ButtonClass(ButtonVariant("huge")))
}

func TestButtonRendersAnchorOrButton(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, Button(ButtonProps{Label: "Start trial", Href: "/signup", Variant: ButtonPrimary}))
	link := doc.Find(`a[href="/signup"]`)
	require.Equal(t, 1, link.Length())
	require.Equal(t, "Start trial", link.Text())
	require.Contains(t, link.AttrOr("class", ""), "bg-slate-900")

	doc = testutil.RenderNode(t, Button(ButtonProps{Label: "Sign in", Type: "submit", Full: true}))
	btn := doc.Find(`button[type="submit"]`)
	require.Equal(t, 1, btn.Length())
	require.Contains(t, btn.AttrOr("class", ""), "w-full")
}

func TestAvatarFallsBackToInitials(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, Avatar(AvatarProps{Name: "Sarah Chen"}))
	require.Equal(t, "SC", strings.TrimSpace(doc.Find("span").Text()))
	require.Equal(t, "Sarah Chen", doc.Find("span").AttrOr("aria-label", ""))

	doc = testutil.RenderNode(t, Avatar(AvatarProps{Name: "Sarah Chen", ImageURL: "/img/sarah.jpg"}))
	require.Equal(t, "/img/sarah.jpg", doc.Find("img").AttrOr("src", ""))
}

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Sarah Chen":          "SC",
		"marcus":              "M",
		"Ana María de la Paz": "AM",
		"   ":                 "?",
		"42 Labs":             "L",
	}
	for name, want := range tests {
		require.Equal(t, want, Initials(name), name)
	}
}

func TestPriceShowsDiscountBadge(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, Price(PriceProps{Amount: 18900, Original: 24900, Currency: "USD", Lang: "en"}))
	require.Equal(t, "$189.00", doc.Find(`[data-price]`).Text())
	require.Equal(t, "18900", doc.Find(`[data-price]`).AttrOr("data-price", ""))
	require.Equal(t, "$249.00", doc.Find("del").Text())
	require.Contains(t, doc.Text(), "-24%")
}

func TestPriceWithoutSale(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, Price(PriceProps{Amount: 2900, Currency: "USD", Suffix: "/month"}))
	require.Equal(t, 0, doc.Find("del").Length())
	require.NotContains(t, doc.Text(), "%")
	require.Contains(t, doc.Text(), "/month")
}

func TestStatCardTrend(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, StatCard(StatCardProps{Label: "Revenue", Value: "$45,231", Change: "20.1%", Trend: TrendUp}))
	badge := doc.Find(`[data-trend="up"]`)
	require.Equal(t, 1, badge.Length())
	require.Contains(t, badge.Text(), "↑ 20.1%")
	require.Contains(t, badge.AttrOr("class", ""), "bg-emerald-100")
}

func TestStepMarksCurrent(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, h.Ol(
		Step(StepProps{Number: 1, Label: "Cart", Status: StepCompleted}),
		Step(StepProps{Number: 2, Label: "Shipping", Status: StepCurrent}),
		Step(StepProps{Number: 3, Label: "Payment", Status: StepUpcoming}),
	))
	require.Equal(t, 3, doc.Find("li").Length())
	require.Contains(t, doc.Find(`li[data-status="completed"]`).Text(), "✓")
	require.Equal(t, "step", doc.Find(`li[data-status="current"]`).AttrOr("aria-current", ""))
	require.Equal(t, 0, doc.Find(`li[data-status="upcoming"][aria-current]`).Length())
}

func TestRatingClamps(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, Rating(7, 5))
	require.Equal(t, "5", doc.Find("[data-rating]").AttrOr("data-rating", ""))
	require.Equal(t, 5, doc.Find("span.text-amber-400").Length())

	doc = testutil.RenderNode(t, Rating(3, 0))
	require.Equal(t, 3, doc.Find("span.text-amber-400").Length())
	require.Equal(t, 2, doc.Find("span.text-slate-300").Length())
}

func TestMarkdownIsSanitized(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("**Bold** copy <script>alert(1)</script>")
	require.NoError(t, err)
	require.Contains(t, out, "<strong>Bold</strong>")
	require.NotContains(t, out, "<script>")

	require.Nil(t, Markdown("  "))
}

func TestComponentAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Component(Badge(ToneInfo, "New")).Render(context.Background(), &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), ">New</span>")

	buf.Reset()
	require.NoError(t, Component(nil).Render(context.Background(), &buf))
	require.Empty(t, buf.String())
}

func TestPageWrapsBody(t *testing.T) {
	t.Parallel()

	doc := testutil.RenderNode(t, Page(PageProps{Title: "Blocks", Body: []g.Node{Card(g.Text("hello"))}}))
	require.Equal(t, "Blocks", doc.Find("title").Text())
	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	require.Contains(t, doc.Find("main").Text(), "hello")
}

func TestEmbedRendersComponentInTree(t *testing.T) {
	t.Parallel()

	inner := Component(Badge(ToneSuccess, "Paid"))
	doc := testutil.RenderNode(t, h.Div(h.ID("host"), Embed(context.Background(), inner), Embed(context.Background(), nil)))
	require.Equal(t, "Paid", strings.TrimSpace(doc.Find("#host span").Text()))
}
