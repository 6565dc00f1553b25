// @title GlobeTrotter Backend API
// @version 1.0
// @description Travel planning API: trips, stops, activities, budgets, itineraries and a community feed.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "GLOBETROTTER_BACK-END/docs" // This is required for swagger
	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/handlers"
	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/localstore"
	"GLOBETROTTER_BACK-END/internal/localstore/kv"
	"GLOBETROTTER_BACK-END/internal/middleware"
	"GLOBETROTTER_BACK-END/internal/routes"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/store/postgres"
	"GLOBETROTTER_BACK-END/internal/syncpolicy"
	"GLOBETROTTER_BACK-END/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := utils.NewLogger()
	ctx := context.Background()

	// --- Stores ---

	remote, pool := openRemote(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	medium, err := kv.Open(cfg.LocalStore)
	if err != nil {
		log.Fatalf("open local store: %v", err)
	}
	defer medium.Close()
	local := localstore.New(medium, cfg.LocalStore.KeyPrefix, logger)
	if cfg.LocalStore.Seed {
		local.Initialize(ctx)
	}
	logger.Info("Local store ready (%s)", cfg.LocalStore.Driver)

	// --- Sessions ---

	var revoker session.Revoker = session.NewMemoryRevoker()
	if cfg.IsSessionRedisConfigured() {
		revoker = session.NewRedisRevoker(session.NewRedisClient(cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB))
		logger.Info("Revoked sessions are kept in Redis at %s", cfg.Session.RedisAddr)
	}
	provider := session.NewProvider(remote, cfg.Auth)
	authenticator := middleware.NewAuthenticator(&cfg.JWT, revoker, cfg.Auth.AllowAnonymous, logger)

	// --- Services ---

	trips := syncpolicy.NewTrips(remote, local, logger)
	tripService := services.NewTripService(trips, remote, logger)
	planService := services.NewPlanService(tripService, remote, itinerary.DateRules{Strict: cfg.Itinerary.StrictDates}, logger)
	itineraryService := services.NewItineraryService(tripService, local, cfg.Itinerary.AutosaveDelay, logger)

	// --- HTTP Handlers ---

	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(provider, authenticator, &cfg.JWT, logger),
		Health:    handlers.NewHealthHandler(remote, local),
		Profile:   handlers.NewProfileHandler(services.NewProfileService(remote), logger),
		Trips:     handlers.NewTripsHandler(tripService, logger),
		Public:    handlers.NewPublicTripsHandler(tripService, logger),
		Plan:      handlers.NewPlanHandler(planService, logger),
		Itinerary: handlers.NewItineraryHandler(itineraryService, logger),
		Community: handlers.NewCommunityHandler(services.NewCommunityService(remote), logger),
		Admin:     handlers.NewAdminHandler(services.NewAdminService(remote), logger),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(tripService, remote, logger), logger),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(provider, cfg, logger)
	}

	// --- HTTP Server + Graceful Shutdown ---

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routes.SetupRoutes(h, authenticator, cfg.CORS),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}
	// Pending itinerary auto-saves are written before the stores close.
	if err := itineraryService.Close(shutdownCtx); err != nil {
		logger.Error("Flushing itinerary auto-saves: %v", err)
	}
	logger.Info("Server stopped.")
}

// openRemote connects to PostgreSQL. When the database is disabled or unreachable the
// service keeps running on the local store alone.
func openRemote(ctx context.Context, cfg *config.Config, logger *utils.Logger) (store.Remote, *pgxpool.Pool) {
	if !cfg.Database.Enabled {
		return postgres.Unavailable{}, nil
	}

	pool, err := postgres.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Remote store unavailable, continuing with the local store: %v", err)
		return postgres.Unavailable{}, nil
	}

	remote := postgres.New(pool, logger)
	if cfg.Database.Migrate {
		if err := remote.Migrate(ctx); err != nil {
			logger.Error("Migration failed: %v", err)
		}
	}
	return remote, pool
}
