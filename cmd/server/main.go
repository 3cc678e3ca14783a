package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maxclack/internal/config"
	"maxclack/internal/db"
	"maxclack/internal/seedsource"
	"maxclack/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg := config.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		fatal(logger, "invalid configuration", err)
	}

	conn, err := db.Open(cfg, logger)
	if err != nil {
		fatal(logger, "database connection failed", err)
	}
	if err := db.Ping(context.Background(), conn); err != nil {
		fatal(logger, "database unreachable", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			fatal(logger, "database migration failed", err)
		}
		logger.Info("database migration complete")
	}
	if err := seed(context.Background(), conn, cfg, logger); err != nil {
		fatal(logger, "seeding prompts failed", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(conn, cfg, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("maxclack server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func seed(ctx context.Context, conn *gorm.DB, cfg config.Config, logger *slog.Logger) error {
	if cfg.SeedPath == "" {
		return nil
	}
	loc, err := seedsource.Parse(cfg.SeedPath)
	if err != nil {
		return err
	}
	opts := seedsource.OptionsFromEnv(cfg.S3Endpoint, cfg.S3Region)
	inserted, err := db.SeedPrompts(ctx, conn, func(ctx context.Context) (io.ReadCloser, error) {
		return seedsource.Open(ctx, loc, opts)
	}, cfg.SeedSystemUsername)
	if errors.Is(err, seedsource.ErrNotFound) {
		logger.Warn("seed file not found, starting without sample prompts", "path", loc.String())
		return nil
	}
	if err != nil {
		return err
	}
	if inserted > 0 {
		logger.Info("seeded prompts", "count", inserted, "source", loc.String())
	}
	return nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
