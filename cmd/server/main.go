package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HectorEmCode/facturacionjtt/internal/config"
	"github.com/HectorEmCode/facturacionjtt/internal/db"
	"github.com/HectorEmCode/facturacionjtt/internal/server"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg := config.Load()
	setupLogging(cfg.Env)

	// Connect and bring the schema up to date
	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if *migrateOnlyFlag {
		slog.Info("migrations completed; exiting as requested")
		return
	}

	slog.Info("starting server", "env", cfg.Env, "port", cfg.Port)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(dbConn, cfg.LogoPath),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // PDF generation is synchronous
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}

// setupLogging installs the default slog handler: tint console output for
// development, JSON for anything else.
func setupLogging(env string) {
	var handler slog.Handler
	if env == "development" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug, TimeFormat: time.Kitchen})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
