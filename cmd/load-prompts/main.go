package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"maxclack/internal/config"
	"maxclack/internal/db"
	"maxclack/internal/seedsource"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	filePath := flag.String("file", cfg.SeedPath, "path or s3:// location of the prompts csv")
	systemUser := flag.String("user", cfg.SeedSystemUsername, "username that owns imported prompts and tags")
	force := flag.Bool("force", false, "import even when prompts already exist")
	flag.Parse()

	if err := run(context.Background(), cfg, *filePath, *systemUser, *force); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, filePath, systemUser string, force bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := seedsource.Parse(filePath)
	if err != nil {
		return fmt.Errorf("invalid prompts file: %w", err)
	}

	conn, err := db.Open(cfg, nil)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}

	opts := seedsource.OptionsFromEnv(cfg.S3Endpoint, cfg.S3Region)
	open := func(ctx context.Context) (io.ReadCloser, error) {
		return seedsource.Open(ctx, loc, opts)
	}

	var inserted int
	if force {
		src, err := open(ctx)
		if err != nil {
			return fmt.Errorf("failed to read prompts: %w", err)
		}
		defer src.Close()
		inserted, err = db.ImportPrompts(ctx, conn, src, systemUser)
		if err != nil {
			return fmt.Errorf("failed to import prompts: %w", err)
		}
	} else {
		inserted, err = db.SeedPrompts(ctx, conn, open, systemUser)
		if err != nil {
			return fmt.Errorf("failed to import prompts: %w", err)
		}
		if inserted == 0 {
			log.Printf("prompts table is not empty; use -force to import anyway")
		}
	}

	log.Printf("loaded %d prompts from %s", inserted, loc)
	return nil
}
