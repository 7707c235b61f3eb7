// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Interior AI redesign server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"interiorai/internal/ai"
	"interiorai/internal/cache"
	"interiorai/internal/config"
	"interiorai/internal/database"
	"interiorai/internal/handlers"
	"interiorai/internal/middleware"
	"interiorai/internal/redesign"
	"interiorai/internal/router"
	"interiorai/internal/session"
	"interiorai/internal/storage"
	"interiorai/internal/store"
)

func main() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())

	// Image providers. Every provider is built; only the active one is used.
	providers := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"pollinations": {BaseURL: cfg.PollinationsBaseURL, Timeout: cfg.ProviderTimeout},
		"segmind":      {APIKey: cfg.SegmindAPIKey, Model: cfg.SegmindModel, BaseURL: cfg.SegmindBaseURL, Timeout: cfg.ProviderTimeout},
		"huggingface":  {APIKey: cfg.HuggingFaceAPIKey, Model: cfg.HuggingFaceModel, BaseURL: cfg.HuggingFaceBaseURL, Timeout: cfg.ProviderTimeout},
		"openai":       {APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIImageModel, BaseURL: cfg.OpenAIBaseURL, Timeout: cfg.ProviderTimeout},
		"imagen":       {APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiImageModel, BaseURL: cfg.GeminiBaseURL, Timeout: cfg.ProviderTimeout},
	})
	if !providers.Active().Configured() {
		slog.Warn("image provider has no credentials, using default",
			"requested", providers.ActiveName(),
			"default", ai.DefaultProvider,
		)
		providers.Select(ai.DefaultProvider)
	}

	slog.Info("image providers initialized",
		"active", providers.ActiveName(),
		"available", providers.Available(),
	)

	// Connect to S3-compatible object storage (optional; liked images stay
	// inline without it).
	var objects redesign.ObjectStore
	storageClient, err := storage.New(storage.Options{
		Endpoint:     cfg.S3Endpoint,
		Region:       cfg.S3Region,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		PublicBucket: cfg.S3BucketPublic,
		PublicURL:    cfg.S3PublicURL,
	})
	switch {
	case err != nil:
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	case storageClient != nil:
		objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "public_bucket", cfg.S3BucketPublic)
	default:
		slog.Warn("s3 storage not configured, liked images are stored inline")
	}

	// Generation pipeline.
	artifacts := redesign.NewRegistry()
	generator := redesign.NewGenerator(providers.Active(), artifacts, redesign.WithPacing(cfg.GenerationPacing))
	likes := redesign.NewLikes(artifacts, store.NewLikeStore(db), objects)

	limiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(router.Deps{
		Sessions:  sessionStore,
		Providers: providers,
		Redesign:  handlers.NewRedesign(generator, likes, cfg.MaxUploadBytes),
		Limiter:   limiter,
	})

	// A generate request runs every style back to back, so the write
	// timeout has to cover the worst case of all of them timing out.
	writeTimeout := time.Duration(redesign.MaxStyles)*(cfg.ProviderTimeout+cfg.GenerationPacing) + 30*time.Second

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "write_timeout", writeTimeout.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newLogger builds the structured logger: JSON in production, text in
// development, unless LOG_FORMAT says otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
