package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/catalog"
	"finitefield.org/hanko-blocks/internal/httpserver"
	"finitefield.org/hanko-blocks/internal/metrics"
	"finitefield.org/hanko-blocks/internal/testutil"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := metrics.NewRegistry()
	svc, err := catalog.NewStaticService(catalog.WithRecorder(reg))
	require.NoError(t, err)

	handler, err := httpserver.NewHandler(httpserver.Config{
		Catalog: svc,
		Metrics: reg,
		Locale:  blocks.Locale{Currency: "USD", Lang: "en"},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func postSummary(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url+"/api/summary", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestNewHandlerRequiresCatalog(t *testing.T) {
	t.Parallel()

	_, err := httpserver.NewHandler(httpserver.Config{})
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	resp, body := get(t, ts.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestIndexGroupsEntriesByCategory(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	resp, body := get(t, ts.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store, max-age=0", resp.Header.Get("Cache-Control"))

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "Hanko Blocks", doc.Find("title").Text())
	require.Equal(t, 11, doc.Find("[data-entry]").Length())

	var categories []string
	doc.Find("section[data-category]").Each(func(_ int, s *goquery.Selection) {
		categories = append(categories, s.AttrOr("data-category", ""))
	})
	if diff := cmp.Diff([]string{"commerce", "dashboard", "marketing", "auth"}, categories); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, "All", doc.Find(`nav a[aria-current="page"]`).Text())
	require.Equal(t, "$7,799.00", doc.Find(`[data-entry="invoice-agency"] strong`).Text(), "descriptions are rendered as markdown")
	require.Equal(t, "/blocks/cart-two-items/fragment", doc.Find(`[data-entry="cart-two-items"] button`).AttrOr("hx-get", ""))
}

func TestIndexFiltersByCategory(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	_, body := get(t, ts.URL+"/?category=dashboard", nil)
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find("[data-entry]").Length())
	require.Equal(t, "stats-overview", doc.Find("[data-entry]").AttrOr("data-entry", ""))
	require.Equal(t, "dashboard", doc.Find(`nav a[aria-current="page"]`).Text())

	_, body = get(t, ts.URL+"/?category=furniture", nil)
	doc = testutil.ParseHTML(t, body)
	require.Equal(t, 0, doc.Find("[data-entry]").Length())
	require.Equal(t, 1, doc.Find("[data-empty]").Length())
}

func TestBlockPageRendersBlock(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	resp, body := get(t, ts.URL+"/blocks/cart-two-items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "Shopping cart | Hanko Blocks", doc.Find("title").Text())
	preview := doc.Find(`[data-preview="cart-two-items"]`)
	require.Equal(t, 1, preview.Find(`[data-block="cart"]`).Length())
	require.Contains(t, preview.Find(`[data-row="total"]`).Text(), "$489.97")

	metricsResp, metricsBody := get(t, ts.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)
	require.Contains(t, string(metricsBody), `blocks_render_total{kind="cart"} 1`)
}

func TestBlockPageNotFound(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	resp, _ := get(t, ts.URL+"/blocks/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFragmentRequiresHTMX(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	resp, _ := get(t, ts.URL+"/blocks/invoice-agency/fragment", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := get(t, ts.URL+"/blocks/invoice-agency/fragment", map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Values("Vary"), "HX-Request")
	require.NotContains(t, string(body), "<html")

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find(`[data-block="invoice"]`).Length())
	require.Contains(t, doc.Find(`[data-row="total"]`).Text(), "$7,799.00")
}

func TestSummaryComputesTotals(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	resp, payload := postSummary(t, ts.URL, `{
		"items": [
			{"unitPrice": 129.99, "quantity": 1},
			{"unitPrice": "179.99", "quantity": 2}
		],
		"options": {"taxRate": 8.25, "shipping": 9.99, "discountPercentage": 10}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	subtotal := payload["subtotal"].(map[string]any)
	require.Equal(t, float64(48997), subtotal["minor"])
	require.Equal(t, "$489.97", subtotal["formatted"])

	tax := payload["tax"].(map[string]any)
	require.Equal(t, float64(4042), tax["minor"])

	discount := payload["discount"].(map[string]any)
	require.Equal(t, float64(4900), discount["minor"])

	total := payload["total"].(map[string]any)
	require.Equal(t, float64(48997+4042+999-4900), total["minor"])
	require.Equal(t, "$491.38", total["formatted"])
	require.Equal(t, "491.38", total["value"])

	require.Len(t, payload["id"], 26, "quotes carry a ULID")
	require.Equal(t, float64(3), payload["itemCount"])
	require.Equal(t, float64(2), payload["lineCount"])
	require.Len(t, payload["lines"], 2)
}

func TestSummaryValidationErrors(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	tests := []struct {
		name  string
		body  string
		code  string
		field string
		index any
	}{
		{
			name:  "negative quantity",
			body:  `{"items":[{"unitPrice":10,"quantity":1},{"unitPrice":5,"quantity":-2}]}`,
			code:  "invalid_quantity",
			field: "quantity",
			index: float64(1),
		},
		{
			name:  "fractional quantity",
			body:  `{"items":[{"unitPrice":10,"quantity":1.5}]}`,
			code:  "invalid_quantity",
			field: "quantity",
			index: float64(0),
		},
		{
			name:  "negative shipping",
			body:  `{"items":[],"options":{"shipping":-1}}`,
			code:  "invalid_price",
			field: "shipping",
			index: nil,
		},
		{
			name:  "unknown currency",
			body:  `{"items":[],"currency":"NOPE"}`,
			code:  "invalid_currency",
			field: "currency",
			index: nil,
		},
		{
			name:  "astronomical quantity",
			body:  `{"items":[{"unitPrice":1,"quantity":1e30000000}]}`,
			code:  "invalid_quantity",
			field: "quantity",
			index: float64(0),
		},
		{
			name:  "astronomical tax rate",
			body:  `{"items":[],"options":{"taxRate":1e30000000}}`,
			code:  "invalid_rate",
			field: "taxRate",
			index: nil,
		},
	}

	for _, tc := range tests {
		resp, payload := postSummary(t, ts.URL, tc.body)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, tc.name)
		require.Equal(t, tc.code, payload["error"], tc.name)
		require.Equal(t, tc.field, payload["field"], tc.name)
		require.Equal(t, tc.index, payload["index"], tc.name)
		require.NotEmpty(t, payload["request_id"], tc.name)
		require.Equal(t, float64(http.StatusUnprocessableEntity), payload["status"], tc.name)
		require.Less(t, len(payload["message"].(string)), 200, tc.name)
	}

	resp, payload := postSummary(t, ts.URL, `{"items": "nope"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_json", payload["error"])

	resp, payload = postSummary(t, ts.URL, `{"lines": []}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown fields are rejected")
	require.Equal(t, "invalid_json", payload["error"])

	_, metricsBody := get(t, ts.URL+"/metrics", nil)
	require.Contains(t, string(metricsBody), `blocks_summary_requests_total{outcome="invalid"} 6`)
	require.Contains(t, string(metricsBody), `blocks_summary_requests_total{outcome="rejected"} 2`)
}

func TestIndexNegotiatesLanguage(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	_, body := get(t, ts.URL+"/", map[string]string{"Accept-Language": "ja-JP,ja;q=0.9"})
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "ja", doc.Find("html").AttrOr("lang", ""))

	_, body = get(t, ts.URL+"/blocks/hero-split", map[string]string{"Accept-Language": "fr"})
	doc = testutil.ParseHTML(t, body)
	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
}
