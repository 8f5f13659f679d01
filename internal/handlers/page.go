package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"bikeshare-dashboard/internal/services"
	"bikeshare-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

type PageHandlers struct {
	analytics      *services.Analytics
	logger         *slog.Logger
	defaultVariant string
}

func NewPageHandlers(analytics *services.Analytics, logger *slog.Logger, defaultVariant string) *PageHandlers {
	if defaultVariant == "" {
		defaultVariant = services.DefaultVariant
	}
	return &PageHandlers{
		analytics:      analytics,
		logger:         logger,
		defaultVariant: defaultVariant,
	}
}

// HandleDashboard renders the full page. A load failure or an invalid
// selection renders the page with only the message.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "variant")
	if name == "" {
		name = h.defaultVariant
	}

	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	variant, ok := services.LookupVariant(name)
	if !ok {
		h.render(ctx, w, http.StatusNotFound, templates.ErrorPage(services.Variant{}, "Unknown dashboard variant."))
		return
	}

	c, err := paramsFromQuery(r).criteria()
	if err != nil {
		h.render(ctx, w, http.StatusBadRequest, templates.ErrorPage(variant, userMessage(err)))
		return
	}

	view, err := h.analytics.View(variant.Name, c)
	if err != nil {
		appErr := toAppError(err)
		h.logger.WarnContext(ctx, "dashboard unavailable", "error", err, "variant", variant.Name)
		h.render(ctx, w, appErr.StatusCode, templates.ErrorPage(variant, userMessage(err)))
		return
	}

	h.render(ctx, w, http.StatusOK, templates.Dashboard(view))
}

func (h *PageHandlers) render(ctx context.Context, w http.ResponseWriter, status int, c templ.Component) {
	html, err := templates.RenderString(ctx, c)
	if err != nil {
		h.logger.ErrorContext(ctx, "render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}
