package config

import (
	"testing"
	"time"

	"github.com/dominofed/federation-backend/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/federacion?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTP addr %q", cfg.HTTPAddr)
	}
	if cfg.TemplateDir != "templates" {
		t.Fatalf("unexpected template dir %q", cfg.TemplateDir)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("unexpected timeouts %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoad_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DB_URL is missing")
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/federacion")
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/federacion")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when uptrace enabled without DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/federacion")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected uptrace DSN %q", cfg.UptraceDSN)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{in: "debug", want: logging.LevelDebug},
		{in: "WARN", want: logging.LevelWarn},
		{in: "warning", want: logging.LevelWarn},
		{in: "error", want: logging.LevelError},
		{in: "unknown", want: logging.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.org , ,https://b.example.org")
	if len(got) != 2 || got[0] != "https://a.example.org" || got[1] != "https://b.example.org" {
		t.Fatalf("unexpected splitCSV result %v", got)
	}
}
