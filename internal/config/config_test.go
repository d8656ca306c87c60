package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/league-portal/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Fatalf("expected memory backend by default, got %q", cfg.StoreBackend)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL)
	}
	if cfg.BracketWorkers != 4 {
		t.Fatalf("unexpected bracket workers: %d", cfg.BracketWorkers)
	}
	if !cfg.LiveUpdatesEnabled {
		t.Fatalf("expected live updates enabled by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StoreBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_BACKEND", "mysql")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORE_BACKEND")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_BACKEND", StorePostgres)
	t.Setenv("DB_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORE_BACKEND=postgres without DB_URL")
	}
}

func TestLoad_ProdRequiresAdminToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_API_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without ADMIN_API_TOKEN")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_RejectsBadWebhookURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESULTS_WEBHOOK_URL", "ftp://results.example.com")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-http webhook url")
	}
}

func TestLoad_BracketWorkersMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BRACKET_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for BRACKET_WORKERS=0")
	}
}

func TestLoad_ReadsDotEnvWithoutOverridingProcessEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "APP_HTTP_ADDR=:9191\nAPP_LOG_LEVEL=debug\nBRACKET_WORKERS=7\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("ENV_FILE", envFile)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "error")
	// Registered with t.Setenv so the values loaded from the file are undone.
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("BRACKET_WORKERS", "")
	_ = os.Unsetenv("APP_HTTP_ADDR")
	_ = os.Unsetenv("BRACKET_WORKERS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":9191" {
		t.Fatalf("expected http addr from env file, got %q", cfg.HTTPAddr)
	}
	if cfg.BracketWorkers != 7 {
		t.Fatalf("expected workers from env file, got %d", cfg.BracketWorkers)
	}
	if cfg.LogLevel != logging.LevelError {
		t.Fatalf("process env must win over env file, got %v", cfg.LogLevel)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected split result: %#v", got)
	}
}
