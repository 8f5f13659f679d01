package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func stubExecutable(t *testing.T, path string) {
	t.Helper()
	orig := executable
	executable = func() (string, error) { return path, nil }
	t.Cleanup(func() { executable = orig })
}

func TestLoad_Defaults(t *testing.T) {
	stubExecutable(t, filepath.Join("/opt", "bikes", "dashboard"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8084 {
		t.Errorf("Server.Port = %d, want 8084", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if want := filepath.Join("/opt", "bikes", "clean_day_df.csv"); cfg.Data.CSVFile != want {
		t.Errorf("Data.CSVFile = %q, want %q", cfg.Data.CSVFile, want)
	}
	if !cfg.Data.Watch {
		t.Error("Data.Watch should default to true")
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("Logger.Format = %q, want json", cfg.Logger.Format)
	}
	if len(cfg.Security.TrustedProxies) != 1 || cfg.Security.TrustedProxies[0] != "127.0.0.1" {
		t.Errorf("Security.TrustedProxies = %v", cfg.Security.TrustedProxies)
	}
	if got := cfg.Address(); got != "localhost:8084" {
		t.Errorf("Address() = %q, want localhost:8084", got)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BIKES_SERVER_PORT", "9090")
	t.Setenv("BIKES_DATA_CSV_FILE", "/data/day.csv")
	t.Setenv("BIKES_DATA_DEFAULT_VARIANT", "yearly")
	t.Setenv("BIKES_LOGGER_LEVEL", "debug")
	t.Setenv("BIKES_SECURITY_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Data.CSVFile != "/data/day.csv" {
		t.Errorf("Data.CSVFile = %q", cfg.Data.CSVFile)
	}
	if cfg.Data.DefaultVariant != "yearly" {
		t.Errorf("Data.DefaultVariant = %q", cfg.Data.DefaultVariant)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q", cfg.Logger.Level)
	}
	if len(cfg.Security.AllowedOrigins) != 2 {
		t.Errorf("Security.AllowedOrigins = %v", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_ExplicitRelativeCSVFile(t *testing.T) {
	stubExecutable(t, filepath.Join("/opt", "bikes", "dashboard"))
	t.Setenv("BIKES_DATA_CSV_FILE", "data/day.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.CSVFile != "data/day.csv" {
		t.Errorf("Data.CSVFile = %q, want data/day.csv", cfg.Data.CSVFile)
	}
}

func TestBesideExecutable(t *testing.T) {
	stubExecutable(t, filepath.Join("/srv", "dashboard"))

	if got := besideExecutable("/data/day.csv"); got != "/data/day.csv" {
		t.Errorf("absolute path rewritten to %q", got)
	}
	if got, want := besideExecutable("day.csv"), filepath.Join("/srv", "day.csv"); got != want {
		t.Errorf("besideExecutable(day.csv) = %q, want %q", got, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"port out of range", "BIKES_SERVER_PORT", "70000", "Server.Port"},
		{"bad log level", "BIKES_LOGGER_LEVEL", "verbose", "Logger.Level"},
		{"bad log format", "BIKES_LOGGER_FORMAT", "xml", "Logger.Format"},
		{"unknown variant", "BIKES_DATA_DEFAULT_VARIANT", "wide", "Data.DefaultVariant"},
		{"zero rate", "BIKES_SECURITY_RATE_LIMIT_RPS", "0", "Security.RateLimitRPS"},
		{"sample ratio", "BIKES_TRACING_SAMPLE_RATIO", "2", "Tracing.SampleRatio"},
		{"not a number", "BIKES_SERVER_PORT", "http", "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}
