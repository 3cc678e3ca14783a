package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Port                     string
	DBDriver                 string
	DatabaseURL              string
	DBHost                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	AutoMigrate              bool
	SeedPath                 string
	SeedSystemUsername       string
	S3Endpoint               string
	S3Region                 string
	AllowedOrigins           []string
	LogLevel                 slog.Level
	MaxRandomTags            int
	MaxPromptTags            int
	DefaultMatchLimit        int
	MaxMatchLimit            int
}

func Default() Config {
	return Config{
		Port:                     "8080",
		DBDriver:                 DriverPostgres,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		AutoMigrate:              true,
		SeedPath:                 "random_prompts.csv",
		SeedSystemUsername:       "maxclack",
		S3Region:                 "auto",
		AllowedOrigins:           []string{"*"},
		LogLevel:                 slog.LevelInfo,
		MaxRandomTags:            20,
		MaxPromptTags:            100,
		DefaultMatchLimit:        20,
		MaxMatchLimit:            100,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("DB_DRIVER"); raw != "" {
		cfg.DBDriver = strings.ToLower(strings.TrimSpace(raw))
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("MAXCLACK_DATABASE_URL"); raw != "" {
		cfg.DBHost = raw
	}
	if raw := os.Getenv("MAXCLACK_DATABASE_USERNAME"); raw != "" {
		cfg.DBUser = raw
	}
	if raw := os.Getenv("MAXCLACK_DATABASE_PASSWORD"); raw != "" {
		cfg.DBPassword = raw
	}
	if raw := os.Getenv("MAXCLACK_DATABASE_NAME"); raw != "" {
		cfg.DBName = raw
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoMigrate = value
		}
	}
	if raw, ok := os.LookupEnv("SEED_PATH"); ok {
		cfg.SeedPath = strings.TrimSpace(raw)
	}
	if raw := os.Getenv("SEED_SYSTEM_USERNAME"); raw != "" {
		cfg.SeedSystemUsername = strings.TrimSpace(raw)
	}
	if raw := os.Getenv("S3_ENDPOINT"); raw != "" {
		cfg.S3Endpoint = raw
	}
	if raw := os.Getenv("S3_REGION"); raw != "" {
		cfg.S3Region = raw
	}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		cfg.AllowedOrigins = splitList(raw)
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			cfg.LogLevel = level
		}
	}
	return cfg
}

// Validate reports configuration the process cannot start without.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := c.DSN(); err != nil {
		return err
	}
	if strings.TrimSpace(c.SeedSystemUsername) == "" {
		return errors.New("SEED_SYSTEM_USERNAME must not be empty")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise one assembled from the
// MAXCLACK_DATABASE_* parts for the configured driver.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", errors.New("DATABASE_URL or MAXCLACK_DATABASE_URL, MAXCLACK_DATABASE_USERNAME and MAXCLACK_DATABASE_NAME must be set")
	}
	switch c.DBDriver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBName), nil
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.DBUser, c.DBPassword),
			Host:   c.DBHost,
			Path:   "/" + c.DBName,
		}
		return u.String(), nil
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
