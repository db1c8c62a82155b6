// Package actions wires the click callbacks exposed by catalog and order
// widgets. Rendered widgets post to URLs; Handler turns those posts into calls
// on the injected callbacks.
package actions

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	DefaultAddToCartPath   = "/actions/add-to-cart"
	DefaultSelectOrderPath = "/actions/select-order"

	// IDField is the form field carrying the target id.
	IDField = "id"
)

// Handlers holds the fire-and-forget callbacks. Nil callbacks are ignored.
type Handlers struct {
	AddToCart   func(itemID string)
	SelectOrder func(orderID string)
}

// URLs are the endpoints rendered into widget forms.
type URLs struct {
	AddToCart   string `json:"add_to_cart" yaml:"add_to_cart"`
	SelectOrder string `json:"select_order" yaml:"select_order"`
}

// DefaultURLs returns the built-in action paths.
func DefaultURLs() URLs {
	return URLs{AddToCart: DefaultAddToCartPath, SelectOrder: DefaultSelectOrderPath}
}

// WithDefaults fills any empty URL with its default.
func (u URLs) WithDefaults() URLs {
	if strings.TrimSpace(u.AddToCart) == "" {
		u.AddToCart = DefaultAddToCartPath
	}
	if strings.TrimSpace(u.SelectOrder) == "" {
		u.SelectOrder = DefaultSelectOrderPath
	}
	return u
}

// Option configures the HTTP handler.
type Option func(*handler)

// WithURLs overrides the paths the handler answers on.
func WithURLs(urls URLs) Option {
	return func(h *handler) {
		h.urls = urls.WithDefaults()
	}
}

// WithLogger sets the logger used for dispatched actions.
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

type handler struct {
	callbacks Handlers
	urls      URLs
	logger    *slog.Logger
}

// NewHandler returns an http.Handler that dispatches widget form posts to the
// callbacks. Mount it so the request paths match the configured URLs.
func NewHandler(callbacks Handlers, options ...Option) http.Handler {
	h := &handler{
		callbacks: callbacks,
		urls:      DefaultURLs(),
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var dispatch func(string)
	var action string
	switch req.URL.Path {
	case h.urls.AddToCart:
		dispatch, action = h.callbacks.AddToCart, "add_to_cart"
	case h.urls.SelectOrder:
		dispatch, action = h.callbacks.SelectOrder, "select_order"
	default:
		http.NotFound(w, req)
		return
	}

	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(req.FormValue(IDField))
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	h.logger.Debug("widget action", "action", action, "id", id)
	if dispatch != nil {
		dispatch(id)
	}

	if referer := req.Referer(); referer != "" {
		http.Redirect(w, req, referer, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
