package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "SECRET_KEY", "ALLOWED_ORIGIN", "SESSION_TTL", "STORAGE_BUCKET", "DATA_BACKEND", "ADMIN_USER", "ADMIN_PASS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	if env.AppAddr != ":5000" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.SecretKey != "fallback-secret-key" {
		t.Fatalf("SecretKey = %q", env.SecretKey)
	}
	if !env.AllowsAnyOrigin() {
		t.Fatalf("expected allow-all origin by default, got %v", env.AllowedOrigins)
	}
	if env.SessionTTL != 12*time.Hour {
		t.Fatalf("SessionTTL = %s", env.SessionTTL)
	}
	if env.StorageBucket != "worker-documents" {
		t.Fatalf("StorageBucket = %q", env.StorageBucket)
	}
	if env.DataBackend != BackendSupabase {
		t.Fatalf("DataBackend = %q", env.DataBackend)
	}
	if env.AdminUser != "" || env.AdminPass != "" {
		t.Fatalf("admin credentials should default to empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGIN", " https://a.example , https://b.example ")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DATA_BACKEND", "Postgres")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("S3_USE_SSL", "false")

	env := LoadEnv()
	if env.AllowsAnyOrigin() {
		t.Fatalf("expected explicit origins")
	}
	if len(env.AllowedOrigins) != 2 || env.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins = %v", env.AllowedOrigins)
	}
	if env.SessionTTL != 30*time.Minute {
		t.Fatalf("SessionTTL = %s", env.SessionTTL)
	}
	if env.DataBackend != BackendPostgres {
		t.Fatalf("DataBackend = %q", env.DataBackend)
	}
	if env.RedisDB != 3 || env.S3UseSSL {
		t.Fatalf("RedisDB=%d S3UseSSL=%v", env.RedisDB, env.S3UseSSL)
	}
}

func TestLoadEnvBadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if got := LoadEnv().SessionTTL; got != 12*time.Hour {
		t.Fatalf("SessionTTL = %s", got)
	}
}
