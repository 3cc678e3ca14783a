package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_MAX_OPEN_CONNS", "-3")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("SEED_PATH", "")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %q", cfg.Port)
	}
	if cfg.DBDriver != DriverMySQL {
		t.Fatalf("expected mysql driver, got %q", cfg.DBDriver)
	}
	if cfg.DBMaxOpenConns != 10 {
		t.Fatalf("expected invalid pool size to be ignored, got %d", cfg.DBMaxOpenConns)
	}
	if cfg.AutoMigrate {
		t.Fatalf("expected auto migrate disabled")
	}
	if cfg.SeedPath != "" {
		t.Fatalf("expected seeding disabled, got %q", cfg.SeedPath)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %#v", cfg.AllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	cfg := Default()
	cfg.DatabaseURL = "postgres://u:p@db/typing"
	cfg.DBHost = "ignored"
	dsn, err := cfg.DSN()
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if dsn != "postgres://u:p@db/typing" {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestDSNFromParts(t *testing.T) {
	cfg := Default()
	cfg.DBHost = "db:5432"
	cfg.DBUser = "clack"
	cfg.DBPassword = "s3cr@t"
	cfg.DBName = "maxclack"

	dsn, err := cfg.DSN()
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if dsn != "postgres://clack:s3cr%40t@db:5432/maxclack" {
		t.Fatalf("unexpected postgres dsn %q", dsn)
	}

	cfg.DBDriver = DriverMySQL
	dsn, err = cfg.DSN()
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if dsn != "clack:s3cr@t@tcp(db:5432)/maxclack?charset=utf8mb4&parseTime=True&loc=UTC" {
		t.Fatalf("unexpected mysql dsn %q", dsn)
	}
}

func TestValidateRequiresDatabase(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing database config to fail")
	}
	cfg.DatabaseURL = "postgres://localhost/maxclack"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cfg.DBDriver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported driver to fail")
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MAXCLACK_TEST_A=file\nMAXCLACK_TEST_B=file\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("MAXCLACK_TEST_A", "env")
	t.Setenv("MAXCLACK_TEST_B", "")
	os.Unsetenv("MAXCLACK_TEST_B")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("MAXCLACK_TEST_A"); got != "env" {
		t.Fatalf("expected existing value kept, got %q", got)
	}
	if got := os.Getenv("MAXCLACK_TEST_B"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
