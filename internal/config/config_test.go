package config_test

import (
	"testing"
	"time"

	"gamevault/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Backend != config.BackendSQLite {
		t.Errorf("default backend = %s, want sqlite", cfg.Database.Backend)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("default session TTL = %s, want 12h", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "gv_session" {
		t.Errorf("default cookie name = %s", cfg.Session.CookieName)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("default bcrypt cost = %d, want 12", cfg.Security.BcryptCost)
	}
	if cfg.App.PageSize != 50 {
		t.Errorf("default page size = %d, want 50", cfg.App.PageSize)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DB_BACKEND", "oracle")

	if _, err := config.Load(); err == nil {
		t.Fatal("unknown backend should fail validation")
	}
}

func TestLoadPostgresRequiresPassword(t *testing.T) {
	t.Setenv("DB_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("postgres backend without password should fail validation")
	}
}

func TestLoadPostgresBackend(t *testing.T) {
	t.Setenv("DB_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db.example.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Backend != config.BackendPostgres {
		t.Errorf("backend = %s, want postgres", cfg.Database.Backend)
	}

	dsn := cfg.Database.DSN()
	want := "host=db.example.com port=5432 user=gamevault_app password=secret dbname=gamevault sslmode=disable"
	if dsn != want {
		t.Errorf("DSN = %q, want %q", dsn, want)
	}
}

func TestLoadRejectsBcryptCostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")

	if _, err := config.Load(); err == nil {
		t.Fatal("out of range bcrypt cost should fail validation")
	}
}

func TestLoadSessionTTLFormats(t *testing.T) {
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.TTL != 90*time.Minute {
		t.Errorf("session TTL = %s, want 90m", cfg.Session.TTL)
	}

	// Bare integers are read as minutes.
	t.Setenv("SESSION_TTL", "30")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("session TTL = %s, want 30m", cfg.Session.TTL)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PAGINATION_PAGE_SIZE", "lots")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.PageSize != 50 {
		t.Errorf("malformed page size should fall back to default, got %d", cfg.App.PageSize)
	}
}
