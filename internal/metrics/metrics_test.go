package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRender(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.ObserveRender("cart", 2*time.Millisecond, nil)
	r.ObserveRender("cart", time.Millisecond, errors.New("write failed"))
	r.ObserveRender("hero", time.Millisecond, nil)

	require.Equal(t, 2.0, testutil.ToFloat64(r.Renders.WithLabelValues("cart")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.Renders.WithLabelValues("hero")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.RenderErrors.WithLabelValues("cart")))
	require.Equal(t, 0.0, testutil.ToFloat64(r.RenderErrors.WithLabelValues("hero")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.ObserveSummary(OutcomeOK)
	r.ObserveSummary(OutcomeInvalid)
	r.ObserveSummary(OutcomeInvalid)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	require.True(t, strings.Contains(text, `blocks_summary_requests_total{outcome="invalid"} 2`), text)
	require.Contains(t, text, `blocks_summary_requests_total{outcome="ok"} 1`)
	require.NotContains(t, text, "go_goroutines", "private registry should not carry default collectors")
}
