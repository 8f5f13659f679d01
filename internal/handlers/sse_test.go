package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func refreshRequest(variant, signals string) *http.Request {
	target := "/sse/v/" + variant + "/refresh"
	if signals != "" {
		target += "?datastar=" + url.QueryEscape(signals)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return withURLParams(req, map[string]string{"variant": variant})
}

func TestNewSSEHandlers(t *testing.T) {
	analytics := createTestAnalytics(t)
	handlers := NewSSEHandlers(analytics, testLogger)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewSSEHandlers() should set analytics field")
	}
	if handlers.logger != testLogger {
		t.Error("NewSSEHandlers() should set logger field")
	}
}

func TestSSEHandlers_HandleRefresh(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(t), testLogger)

	w := httptest.NewRecorder()
	handlers.HandleRefresh(w, refreshRequest("main", `{"season":"Spring"}`))

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("expected Content-Type text/event-stream, got %q", ct)
	}

	body := w.Body.String()
	expected := []string{
		"datastar-patch-elements",
		`id="dashboard-content"`,
		`id="seasonal-chart"`,
		`id="rfm-table"`,
		"datastar-patch-signals",
		`"season":"Spring"`,
		`"from":"2024-01-01"`,
	}
	for _, content := range expected {
		if !strings.Contains(body, content) {
			t.Errorf("expected stream to contain %q", content)
		}
	}
	if strings.Contains(body, "2024-01-03</td>") {
		t.Error("expected the Summer day to be filtered out of the RFM table")
	}
}

func TestSSEHandlers_HandleRefresh_EmptySelection(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(t), testLogger)

	w := httptest.NewRecorder()
	handlers.HandleRefresh(w, refreshRequest("compact", `{"from":"2024-02-01","to":"2024-02-28"}`))

	body := w.Body.String()
	if !strings.Contains(body, "No data available for the selected filters.") {
		t.Errorf("expected empty selection warning, got %s", body)
	}
	if strings.Contains(body, `id="seasonal-chart"`) {
		t.Error("expected no panels for an empty selection")
	}
}

func TestSSEHandlers_HandleRefresh_Errors(t *testing.T) {
	tests := []struct {
		name    string
		failed  bool
		variant string
		signals string
		want    string
	}{
		{"invalid date", false, "main", `{"from":"yesterday"}`, "From must satisfy datetime"},
		{"unknown variant", false, "weekly", "", "Unknown dashboard variant."},
		{"data not found", true, "main", "", "Data file not found."},
		{"malformed signals", false, "main", `{"from":`, "Could not read the filter selection."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analytics := createTestAnalytics(t)
			if tt.failed {
				analytics = failedAnalytics(t)
			}
			handlers := NewSSEHandlers(analytics, testLogger)

			w := httptest.NewRecorder()
			handlers.HandleRefresh(w, refreshRequest(tt.variant, tt.signals))

			body := w.Body.String()
			if !strings.Contains(body, `class="alert error"`) {
				t.Errorf("expected error alert, got %s", body)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("expected stream to contain %q, got %s", tt.want, body)
			}
			if strings.Contains(body, "datastar-patch-signals") {
				t.Error("expected no signal patch after an error")
			}
		})
	}
}
