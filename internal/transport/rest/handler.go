// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"productapi/internal/service"
	"productapi/pkg/apperr"
	"productapi/pkg/web"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the product routes on a router that is already
// gated by the API-key middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/stats/category", h.CategoryStats)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.FindByID)
		r.Put("/", h.Update)
		r.Delete("/", h.DeleteByID)
	})
}

// Root serves the unauthenticated service banner.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "Product API is running")
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// List retrieves one page of products, optionally filtered by category and
// name search. Missing or malformed page/limit values fall back to the
// defaults instead of erroring.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	query := service.ListQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     parsePositiveInt(r, "page", defaultPage),
		Limit:    parsePositiveInt(r, "limit", defaultLimit),
	}
	mLogger.DebugContext(r.Context(), "Received request to list products",
		"category", query.Category, "search", query.Search, "page", query.Page, "limit", query.Limit)

	list, err := h.service.List(r.Context(), query)
	if err != nil {
		web.RespondAppError(w, mLogger, err)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "total", list.Total, "count", len(list.Data))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		web.RespondAppError(w, mLogger, err)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	payload, ok := decodePayload(w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), payload)
	if err != nil {
		web.RespondAppError(w, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update replaces all fields of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	payload, ok := decodePayload(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		web.RespondAppError(w, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID and echoes the removed value.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")

	removed, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		web.RespondAppError(w, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"message": "Product deleted",
		"product": removed,
	})
}

// CategoryStats returns the total product count and per-category counts.
func (h *Handler) CategoryStats(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	stats, err := h.service.CategoryStats(r.Context())
	if err != nil {
		web.RespondAppError(w, mLogger, err)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully computed category stats", "total", stats.Total)
	web.RespondJSON(w, mLogger, http.StatusOK, stats)
}

// decodePayload decodes the request body into a ProductPayload. A field of
// the wrong JSON type is left nil so the validator reports it alongside the
// other rule violations; only a body that cannot be parsed at all is rejected
// here.
func decodePayload(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (service.ProductPayload, bool) {
	var payload service.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
			web.RespondAppError(w, logger, apperr.Validation("invalid request body"))
			return payload, false
		}
	}
	return payload, true
}

// parsePositiveInt reads an integer query parameter, falling back to def on a
// missing, malformed, or non-positive value.
func parsePositiveInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return def
	}
	return value
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}
