package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"maxclack/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	m, err := migrate.New("file://db/migrations/"+cfg.DBDriver, mustDatabaseURL(cfg))
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migrations applied")
}

// mustDatabaseURL turns the configured DSN into a golang-migrate URL.
func mustDatabaseURL(cfg config.Config) string {
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	dsn, err := cfg.DSN()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DBDriver != config.DriverMySQL {
		return dsn
	}
	dsn = strings.TrimPrefix(dsn, "mysql://")
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return "mysql://" + dsn + sep + "multiStatements=true"
}
