package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare-dashboard/internal/config"
)

func TestNewLoggerTo_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: "json"})
	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger = NewLoggerTo(&buf, config.LoggerConfig{Level: "warn", Format: "text"})
	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewLoggerTo_RequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: "json"}).With("component", "test")

	logger.InfoContext(WithRequestID(context.Background(), "req-42"), "handled")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"component":"test"`)

	buf.Reset()
	logger.WithGroup("g").InfoContext(WithRequestID(context.Background(), "req-43"), "grouped")
	assert.Contains(t, buf.String(), "req-43")

	buf.Reset()
	logger.Info("no request")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(config.TracingConfig{Enabled: false}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := StartSpan(context.Background(), "noop")
	span.End()
}

func TestSetupTracing_Enabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := SetupTracing(config.TracingConfig{Enabled: true, SampleRatio: 1}, &buf)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "GET /health")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "GET /health")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)
	m.ObserveLoad(731, nil)
	m.ObserveLoad(0, errors.New("boom"))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `bikeshare_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, `bikeshare_dataset_loads_total{result="ok"} 1`)
	assert.Contains(t, body, `bikeshare_dataset_loads_total{result="error"} 1`)
	assert.True(t, strings.Contains(body, "bikeshare_dataset_records 0"))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveLoad(1, nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
