package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"bikeshare-dashboard/internal/errors"
	"bikeshare-dashboard/internal/services"
)

// Tables are recomputed per request from the current snapshot.
var noCache = map[string]string{
	"Cache-Control": "no-cache",
}

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// tables resolves the query filters and builds every table. It writes the
// error response itself and reports whether the caller may continue.
func (h *APIHandlers) tables(w http.ResponseWriter, r *http.Request) (*services.View, bool) {
	c, err := paramsFromQuery(r).criteria()
	if err != nil {
		errors.WriteError(w, r, h.logger, toAppError(err))
		return nil, false
	}

	view, err := h.analytics.Tables(c)
	if err != nil {
		errors.WriteError(w, r, h.logger, toAppError(err))
		return nil, false
	}
	return view, true
}

func (h *APIHandlers) HandleSeasonal(w http.ResponseWriter, r *http.Request) {
	view, ok := h.tables(w, r)
	if !ok {
		return
	}
	errors.WriteSuccessWithHeaders(w, r, nonNil(view.Seasonal), noCache)
}

func (h *APIHandlers) HandleWeather(w http.ResponseWriter, r *http.Request) {
	view, ok := h.tables(w, r)
	if !ok {
		return
	}
	errors.WriteSuccessWithHeaders(w, r, nonNil(view.Weather), noCache)
}

func (h *APIHandlers) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	view, ok := h.tables(w, r)
	if !ok {
		return
	}
	errors.WriteSuccessWithHeaders(w, r, nonNil(view.Monthly), noCache)
}

func (h *APIHandlers) HandleRFM(w http.ResponseWriter, r *http.Request) {
	view, ok := h.tables(w, r)
	if !ok {
		return
	}

	data := map[string]any{
		"rfm":           nonNil(view.RFM),
		"top_recency":   nonNil(view.TopRecency),
		"top_frequency": nonNil(view.TopFrequency),
		"top_monetary":  nonNil(view.TopMonetary),
	}
	errors.WriteSuccessWithHeaders(w, r, data, noCache)
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	view, ok := h.tables(w, r)
	if !ok {
		return
	}
	errors.WriteSuccessWithHeaders(w, r, view.Summary, noCache)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if _, err := h.analytics.Dataset(); err != nil {
		status = "degraded"
	}

	healthData := map[string]string{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, r, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.analytics.Stats()

	errors.WriteSuccess(w, r, stats)
}

// nonNil keeps empty tables encoded as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
