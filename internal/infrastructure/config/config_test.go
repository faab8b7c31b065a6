package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_PATH", "ENABLE_REPORT_CACHE", "REPORT_CACHE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS", "REDIS_ADDRESS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.BasePath != "/api/v1" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ReportCache || cfg.ReportCacheTTL != 120*time.Second {
		t.Fatalf("unexpected cache defaults %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENABLE_REPORT_CACHE", "on")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pasarantar.id, https://admin.pasarantar.id ,")
	t.Setenv("REDIS_DB", "abc")

	cfg := Load()
	if cfg.Port != "9000" || !cfg.ReportCache || cfg.ReportCacheTTL != time.Minute {
		t.Fatalf("env not applied %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.pasarantar.id" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("invalid REDIS_DB should fall back to 0, got %d", cfg.RedisDB)
	}
}
