package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Summary request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
)

type Registry struct {
	reg             *prometheus.Registry
	Renders         *prometheus.CounterVec
	RenderErrors    *prometheus.CounterVec
	RenderSeconds   prometheus.Histogram
	SummaryRequests *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "blocks_render_total"}, []string{"kind"})
	renderErrors := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "blocks_render_errors_total"}, []string{"kind"})
	renderSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "blocks_render_seconds",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	})
	summaryRequests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "blocks_summary_requests_total"}, []string{"outcome"})

	r.MustRegister(renders, renderErrors, renderSeconds, summaryRequests)
	return &Registry{
		reg:             r,
		Renders:         renders,
		RenderErrors:    renderErrors,
		RenderSeconds:   renderSeconds,
		SummaryRequests: summaryRequests,
	}
}

// ObserveRender records one block render.
func (r *Registry) ObserveRender(kind string, elapsed time.Duration, err error) {
	r.Renders.WithLabelValues(kind).Inc()
	r.RenderSeconds.Observe(elapsed.Seconds())
	if err != nil {
		r.RenderErrors.WithLabelValues(kind).Inc()
	}
}

// ObserveSummary counts one POST /api/summary outcome.
func (r *Registry) ObserveSummary(outcome string) {
	r.SummaryRequests.WithLabelValues(outcome).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
