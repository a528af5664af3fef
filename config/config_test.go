package config

import (
	"testing"
	"time"

	gormLogger "gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("CATEGORY_CACHE_TTL", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected default driver postgres, got %q", cfg.DBDriver)
	}
	if cfg.CategoryCacheTTL != 5*time.Minute {
		t.Errorf("expected default cache ttl 5m, got %s", cfg.CategoryCacheTTL)
	}
	if InitRedis(cfg) != nil {
		t.Error("expected nil redis client without REDIS_HOST")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BIND_ADDRESS", "127.0.0.1")
	t.Setenv("CATEGORY_CACHE_TTL", "0")
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("QUIZ_SEED", "42")

	cfg := Load()

	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("expected addr 127.0.0.1:9000, got %q", cfg.Addr())
	}
	if cfg.CategoryCacheTTL != 0 {
		t.Errorf("expected cache disabled, got %s", cfg.CategoryCacheTTL)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("expected fallback token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.QuizSeed != 42 {
		t.Errorf("expected quiz seed 42, got %d", cfg.QuizSeed)
	}
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	if _, err := Dialector(&Config{DBDriver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]gormLogger.LogLevel{
		"silent": gormLogger.Silent,
		"ERROR":  gormLogger.Error,
		"info":   gormLogger.Info,
		"":       gormLogger.Warn,
		"bogus":  gormLogger.Warn,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
