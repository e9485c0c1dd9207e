package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/metrics"
	"github.com/anonto42/chefhub/backend/internal/middleware"
	"github.com/anonto42/chefhub/backend/internal/router"
	"github.com/anonto42/chefhub/backend/pkg/config"
	"github.com/anonto42/chefhub/backend/pkg/firebase"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/anonto42/chefhub/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !cfg.DotEnvLoaded {
		log.Info("No .env file found, assuming environment variables are set")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the KV store on the configured backend
	store, db, err := config.InitStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store", "backend", cfg.KVBackend, "error", err)
	}
	defer db.CloseDB()

	m := metrics.New()

	// Event bus
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NatsURL != "" {
		nats, err := events.NewNatsPublisher(events.NatsConfig{
			URL:           cfg.NatsURL,
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS", "error", err)
		}
		publisher = nats
		log.Info("Publishing events to NATS", "url", cfg.NatsURL)
	}
	defer publisher.Close()

	deps := router.Dependencies{
		Store:     m.InstrumentStore(store),
		Publisher: publisher,
		Metrics:   m,
		Logger:    log,
		JWTSecret: cfg.JWTSecret,
	}

	// Initialize Firebase when credentials are available
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
		if err != nil {
			log.Fatal("Failed to initialize Firebase", "error", err)
		}
		deps.FirebaseVerifier = firebaseApp.AuthClient
		deps.IdentityDeleter = firebaseApp.AuthClient
	}

	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		deps.Auth = middleware.FirebaseAuthMiddleware(deps.FirebaseVerifier)
	default:
		deps.Auth = middleware.JWTAuthMiddleware(cfg.JWTSecret)
	}
	log.Info("Authentication configured", "mode", cfg.AuthMode)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, log, cfg.RequestTimeout)
	router.SetupRoutes(e, deps)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Metrics server listening", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", "error", err)
		}
	}()

	go func() {
		log.Info("HTTP server listening", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown failed", "error", err)
	}
}
