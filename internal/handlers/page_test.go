package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageHandlers_HandleDashboard(t *testing.T) {
	tests := []struct {
		name       string
		failed     bool
		variant    string
		query      string
		wantStatus int
		want       []string
		notWant    []string
	}{
		{
			name:       "default variant",
			wantStatus: http.StatusOK,
			want:       []string{"<title>Bike Rental Analysis</title>", `id="seasonal-chart"`, "data-signals"},
		},
		{
			name:       "yearly variant",
			variant:    "yearly",
			wantStatus: http.StatusOK,
			want:       []string{`data-bind:year`, `id="summary-table"`, `id="monthly-chart"`},
			notWant:    []string{`data-bind:season`},
		},
		{
			name:       "empty selection",
			variant:    "compact",
			query:      "?from=2023-01-01&to=2023-12-31",
			wantStatus: http.StatusOK,
			want:       []string{"No data available for the selected filters."},
			notWant:    []string{`id="seasonal-chart"`},
		},
		{
			name:       "start date after the data",
			query:      "?from=2030-01-01",
			wantStatus: http.StatusOK,
			want:       []string{"No data available for the selected filters."},
			notWant:    []string{`class="alert error"`},
		},
		{
			name:       "unknown variant",
			variant:    "weekly",
			wantStatus: http.StatusNotFound,
			want:       []string{"Unknown dashboard variant."},
		},
		{
			name:       "invalid filter",
			query:      "?to=31.01.2024",
			wantStatus: http.StatusBadRequest,
			want:       []string{`class="alert error"`},
		},
		{
			name:       "data not found",
			failed:     true,
			wantStatus: http.StatusServiceUnavailable,
			want:       []string{"Data file not found."},
			notWant:    []string{`class="sidebar"`, `id="seasonal-chart"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analytics := createTestAnalytics(t)
			if tt.failed {
				analytics = failedAnalytics(t)
			}
			handlers := NewPageHandlers(analytics, testLogger, "")

			req := httptest.NewRequest(http.MethodGet, "/v/"+tt.variant+tt.query, nil)
			if tt.variant != "" {
				req = withURLParams(req, map[string]string{"variant": tt.variant})
			}
			w := httptest.NewRecorder()
			handlers.HandleDashboard(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
				t.Errorf("expected html content type, got %q", ct)
			}

			body := w.Body.String()
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("expected page to contain %q", s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(body, s) {
					t.Errorf("expected page not to contain %q", s)
				}
			}
		})
	}
}

func TestNewPageHandlers_DefaultVariant(t *testing.T) {
	handlers := NewPageHandlers(createTestAnalytics(t), testLogger, "compact")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, req)

	if !strings.Contains(w.Body.String(), "<title>Bike Rentals by Season and Weather</title>") {
		t.Error("expected the configured default variant to be rendered")
	}
}
