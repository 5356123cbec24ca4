// Package main is the entry point for the Coup de Tête API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/catalog"
	"github.com/coupdetete/backend/internal/config"
	"github.com/coupdetete/backend/internal/handler"
	"github.com/coupdetete/backend/internal/middleware"
	"github.com/coupdetete/backend/internal/repo"
	"github.com/coupdetete/backend/internal/roll"
	"github.com/coupdetete/backend/internal/service"
	"github.com/coupdetete/backend/migrations"
)

// rollBurst is how many spins a client may fire back to back before the
// per-minute rate applies.
const rollBurst = 5

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// The default logger writes plain text to stderr until ours is set up.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.AutoMigrate {
		if err := migrate(context.Background(), pool); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	// --- Domain -----------------------------------------------------------
	destinations, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load destination catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("destination catalog loaded", "destinations", destinations.Len())

	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, checkout and portal are disabled")
	}
	payments := billing.NewStripe(billing.Config{
		SecretKey:      cfg.StripeSecretKey,
		PremiumPriceID: cfg.StripePremiumPriceID,
	})

	now := func() time.Time { return time.Now().In(cfg.Location) }

	users := repo.NewUserRepo(pool)
	guests := repo.NewGuestRepo(pool)
	spins := repo.NewSpinRepo(pool)
	prefs := repo.NewPreferenceRepo(pool)
	mappings := repo.NewMappingRepo(pool)
	subs := repo.NewSubscriptionRepo(pool)

	destinationSvc, err := service.NewDestinationService(destinations, users, subs, prefs, mappings, roll.DefaultRNG, now, logger)
	if err != nil {
		slog.Error("failed to build destination service", "error", err)
		os.Exit(1)
	}

	rollLimiter, err := middleware.NewRateLimiter(cfg.RollRatePerMinute, rollBurst, logger)
	if err != nil {
		slog.Error("failed to build roll rate limiter", "error", err)
		os.Exit(1)
	}

	srv := handler.NewServer(handler.Deps{
		Quiz:          service.NewQuizService(prefs, logger),
		Rolls:         service.NewRollService(spins, roll.RejectZeroValues, logger),
		Leaderboard:   service.NewLeaderboardService(users, guests, spins, cfg.Location, now),
		Destinations:  destinationSvc,
		Preferences:   service.NewPreferenceService(prefs),
		Guests:        service.NewGuestService(guests, logger),
		Profiles:      service.NewProfileService(users, guests, spins),
		Subscriptions: service.NewSubscriptionService(users, subs, payments, cfg.AppBaseURL, now, logger),
		DB:            pool,
		Auth:          middleware.NewAuthenticator(cfg.JWTSecret),
		RollLimiter:   rollLimiter,
		WebhookSecret: cfg.StripeWebhookSecret,
		Log:           logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP, which the
	// roll rate limiter keys on.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations through a database/sql handle
// borrowed from the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
