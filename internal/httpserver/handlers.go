package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/catalog"
	custommw "finitefield.org/hanko-blocks/internal/httpserver/middleware"
	"finitefield.org/hanko-blocks/internal/metrics"
	"finitefield.org/hanko-blocks/internal/platform/httpx"
	"finitefield.org/hanko-blocks/internal/platform/observability"
	"finitefield.org/hanko-blocks/internal/quote"
	"finitefield.org/hanko-blocks/internal/ui"
)

// Handlers exposes the catalog pages, fragments and the summary API.
type Handlers struct {
	catalog catalog.Service
	quotes  *quote.Calculator
	metrics *metrics.Registry
	locale  blocks.Locale
}

// Health answers liveness probes.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Index renders the catalog grouped by category.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := catalog.Filter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
	}
	entries, err := h.catalog.List(ctx, filter)
	if err != nil {
		h.serverError(w, r, "list catalog", err)
		return
	}
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.serverError(w, r, "list categories", err)
		return
	}

	page := indexPage(indexData{
		Lang:       custommw.LanguageFromContext(ctx, h.locale.Lang),
		Categories: categories,
		Active:     filter.Category,
		Query:      filter.Query,
		Entries:    entries,
	})
	h.render(w, r, ui.Component(page))
}

// Block renders one catalog entry on a full page.
func (h *Handlers) Block(w http.ResponseWriter, r *http.Request) {
	entry, component, ok := h.lookup(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	page := blockPage(ctx, custommw.LanguageFromContext(ctx, h.locale.Lang), entry, component)
	h.render(w, r, ui.Component(page))
}

// Fragment renders only the block markup for htmx swaps.
func (h *Handlers) Fragment(w http.ResponseWriter, r *http.Request) {
	_, component, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, r, component)
}

// Summary computes an order summary from a JSON body.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req quote.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSummaryBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.observeSummary(metrics.OutcomeRejected)
		logger.Warn("summary: decode request", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("invalid_json", "request body must be a JSON summary request", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(req.Lang) == "" {
		req.Lang = custommw.LanguageFromContext(ctx, h.locale.Lang)
	}
	q, err := h.quotes.Compute(ctx, req)
	if err != nil {
		code, field, index, ok := quote.ErrorCode(err)
		if !ok {
			h.observeSummary(metrics.OutcomeRejected)
			logger.Error("summary: compute", zap.Error(err))
			httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
			return
		}
		h.observeSummary(metrics.OutcomeInvalid)
		httpx.WriteError(ctx, w, httpx.NewError(code, err.Error(), http.StatusUnprocessableEntity).WithField(field, index))
		return
	}

	h.observeSummary(metrics.OutcomeOK)
	httpx.WriteJSON(w, http.StatusOK, q)
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (catalog.Entry, templ.Component, bool) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	entry, err := h.catalog.Get(ctx, id)
	if err == nil {
		var component templ.Component
		component, err = h.catalog.Render(ctx, id)
		if err == nil {
			return entry, component, true
		}
	}
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return catalog.Entry{}, nil, false
	}
	h.serverError(w, r, "load block", err)
	return catalog.Entry{}, nil, false
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component, templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.serverError(w, r, "render", err)
		})
	})).ServeHTTP(w, r)
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	observability.FromContext(r.Context()).Error("catalog: "+op, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handlers) observeSummary(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveSummary(outcome)
	}
}
