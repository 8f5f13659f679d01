package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"bikeshare-dashboard/internal/services"
	"bikeshare-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleRefresh re-runs the pipeline for the signals sent by the page and
// patches the panel area. The resolved selection is sent back as signals
// so defaulted widgets show what was applied.
func (h *SSEHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")

	params, readErr := paramsFromSignals(r)
	sse := datastar.NewSSE(w, r)

	if readErr != nil {
		h.patch(sse, r, templates.Message("error", "Could not read the filter selection."))
		h.logger.WarnContext(r.Context(), "read signals", "error", readErr, "variant", variant)
		return
	}

	c, err := params.criteria()
	if err != nil {
		h.patch(sse, r, templates.Message("error", userMessage(err)))
		return
	}

	view, err := h.analytics.View(variant, c)
	if err != nil {
		h.logger.WarnContext(r.Context(), "build view", "error", err, "variant", variant)
		h.patch(sse, r, templates.Message("error", userMessage(err)))
		return
	}

	h.patch(sse, r, templates.Content(view))

	signals, err := json.Marshal(templates.SignalsFor(view))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "marshal signals", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.ErrorContext(r.Context(), "patch signals", "error", err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patch(sse *datastar.ServerSentEventGenerator, r *http.Request, c templ.Component) {
	html, err := templates.RenderString(r.Context(), c)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render content", "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.ErrorContext(r.Context(), "patch elements", "error", err)
	}
}
