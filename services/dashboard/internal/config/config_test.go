package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.DataFile != "freelance_dashboard_data.xlsx" {
		t.Errorf("DataFile = %q, want default spreadsheet name", cfg.DataFile)
	}
	if cfg.DataSource != SourceFile {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourceFile)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty so the snapshot tier is off", cfg.RedisAddr)
	}
	if cfg.NATSURL != "" {
		t.Errorf("NATSURL = %q, want empty so the event handler is off", cfg.NATSURL)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATA_FILE", "jobs.csv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "90m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.DataFile != "jobs.csv" {
		t.Errorf("DataFile = %q, want jobs.csv", cfg.DataFile)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.CacheTTL != 90*time.Minute {
		t.Errorf("CacheTTL = %v, want 90m", cfg.CacheTTL)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("NATS_CONN_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.RedisDB != 0 {
		t.Errorf("RedisDB = %d, want fallback 0", cfg.RedisDB)
	}
	if cfg.NATSConnTimeout != 10*time.Second {
		t.Errorf("NATSConnTimeout = %v, want fallback 10s", cfg.NATSConnTimeout)
	}
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowOrigins) != len(want) {
		t.Fatalf("CORSAllowOrigins = %v, want %v", cfg.CORSAllowOrigins, want)
	}
	for i := range want {
		if cfg.CORSAllowOrigins[i] != want[i] {
			t.Errorf("CORSAllowOrigins[%d] = %q, want %q", i, cfg.CORSAllowOrigins[i], want[i])
		}
	}
}
