package server

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/httputil"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

const defaultTimeout = 30 * time.Second

// Handler serves form descriptions and cleans submissions for the forms of
// a registry.
type Handler struct {
	forms    *forms.Registry
	widgets  *widgets.Registry
	logger   *zap.Logger
	gatherer prometheus.Gatherer
	modified time.Time
	timeout  time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithWidgets resolves widgets in descriptions with reg.
func WithWidgets(reg *widgets.Registry) Option {
	return func(h *Handler) {
		if reg != nil {
			h.widgets = reg
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithGatherer exposes g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.gatherer = g
	}
}

// WithLastModified sets the Last-Modified time reported for descriptions.
// It defaults to the time the handler was built.
func WithLastModified(t time.Time) Option {
	return func(h *Handler) {
		if !t.IsZero() {
			h.modified = t
		}
	}
}

// WithTimeout bounds the time spent on each request.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// New creates a Handler for the forms in reg.
func New(reg *forms.Registry, opts ...Option) *Handler {
	h := &Handler{
		forms:    reg,
		widgets:  widgets.NewRegistry(),
		logger:   zap.NewNop(),
		modified: time.Now(),
		timeout:  defaultTimeout,
	}
	if h.forms == nil {
		h.forms = forms.NewRegistry()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.modified = h.modified.UTC().Truncate(time.Second)
	return h
}

// Register registers the form routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	formRouter := chi.NewRouter()
	formRouter.Use(middleware.Recoverer)
	formRouter.Use(middleware.RequestID)
	formRouter.Use(requestLogger(h.logger))
	formRouter.Use(middleware.Timeout(h.timeout))
	formRouter.Get("/forms", h.handleList)
	formRouter.Get("/forms/{name}", h.handleDescribe)
	formRouter.Post("/forms/{name}", h.handleClean)
	if h.gatherer != nil {
		formRouter.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	r.Mount("/", formRouter)
}

// Router returns a chi router with the form routes registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"forms": h.forms.List()})
}

// handleDescribe returns the field description of a form. Conditional
// requests are answered with 304 when the ETag or the modification time
// still match.
func (h *Handler) handleDescribe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	form, err := h.forms.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	body, err := json.Marshal(h.widgets.Describe(form))
	if err != nil {
		h.logger.Error("failed to encode description", zap.String("form", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to encode description")
		return
	}
	etag, err := etagFor(body)
	if err != nil {
		h.logger.Error("failed to compute etag", zap.String("form", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute etag")
		return
	}

	header := w.Header()
	header.Set("ETag", httputil.QuoteETag(etag))
	header.Set("Last-Modified", httputil.HTTPDate(h.modified))
	header.Set("Date", httputil.HTTPDate(time.Now()))

	if h.notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	header.Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) notModified(r *http.Request, etag string) bool {
	if inm := r.Header.Get("If-None-Match"); inm != "" {
		return httputil.MatchETag(inm, etag)
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		since, err := httputil.ParseHTTPDate(ims)
		if err != nil {
			return false
		}
		return !h.modified.After(since)
	}
	return false
}

// handleClean binds the submission to a form and returns the cleaned data,
// or the field errors with 422.
func (h *Handler) handleClean(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	form, err := h.forms.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	bound, err := bindRequest(form, r)
	if err != nil {
		h.logger.Warn("invalid submission",
			zap.String("form", name),
			zap.String("request_id", middleware.GetReqID(ctx)),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := bound.FullClean(ctx); err != nil {
		var formErr *forms.FormError
		if errors.As(err, &formErr) {
			writeJSON(w, http.StatusUnprocessableEntity, formErr.Mapping)
			return
		}
		h.logger.Error("failed to clean submission", zap.String("form", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clean submission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": bound.CleanedData()})
}

func bindRequest(form *forms.Form, r *http.Request) (*forms.Bound, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return form.BindRequest(r)
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	return form.BindValues(values), nil
}

// etagFor hashes body with FNV-1a and renders the hash in base 36.
func etagFor(body []byte) (string, error) {
	hash := fnv.New64a()
	_, _ = hash.Write(body)
	return httputil.IntToBase36(int64(hash.Sum64() >> 1))
}
