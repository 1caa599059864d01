package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ucan-lab/hado-ken/internal/config"
	"github.com/ucan-lab/hado-ken/internal/container"
	"github.com/ucan-lab/hado-ken/internal/handler"
	"github.com/ucan-lab/hado-ken/internal/middleware"
	"github.com/ucan-lab/hado-ken/internal/repository"
	"github.com/ucan-lab/hado-ken/internal/service"
	"github.com/ucan-lab/hado-ken/pkg/database"
	"github.com/ucan-lab/hado-ken/pkg/logger"
	"github.com/ucan-lab/hado-ken/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Stop accepting new requests first
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed")
		}
	}

	if r.db != nil {
		r.db.Close()
		r.log.Info("Database connection pool closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"timezone":    cfg.Timezone,
		"deadline":    cfg.VoteDeadline,
	}).Info("Starting hado-ken server")

	ctn, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Repositories and services
	teamRepo := repository.NewTeamRepository(db)
	tournamentRepo := repository.NewTournamentRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	cacheService := service.NewCacheService(ctn.RedisClient, log.Logger)
	teamService := service.NewTeamService(teamRepo, cacheService, cfg.IconBaseURL, cfg.IconPlaceholder, log.Logger)
	votingService := service.NewVotingService(voteRepo, tournamentRepo, cacheService, ctn.Location, ctn.Deadline, log.Logger)
	resultService := service.NewResultService(voteRepo, teamService, votingService, log.Logger)

	router := setupRouter(ctn, teamService, votingService, resultService)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		db:          db,
		redisClient: ctn.RedisClient,
		server:      server,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(
	ctn *container.Container,
	teamService *service.TeamService,
	votingService *service.VotingService,
	resultService *service.ResultService,
) *chi.Mux {
	cfg := ctn.GetConfig()
	log := ctn.GetLogger()

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "If-None-Match"},
		ExposedHeaders:   []string{"Content-Length", "ETag"},
		AllowCredentials: false,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler(ctn)
	teamHandler := handler.NewTeamHandler(teamService, log)
	votingHandler := handler.NewVotingHandler(votingService, log)
	resultHandler := handler.NewResultHandler(resultService, log)
	qrCodeHandler := handler.NewQRCodeHandler(cfg.VotePageURL, log)

	// Health check
	r.Get("/health", healthHandler.Check)

	// Public API routes; participants are identified by free-text name, so
	// nothing here requires authentication
	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", teamHandler.ListTeams)
		r.Get("/qr-code", qrCodeHandler.GetQRCode)

		r.Route("/v1/voting", func(r chi.Router) {
			r.Get("/status", votingHandler.GetVotingStatus)
			r.Post("/vote", votingHandler.SubmitVote)
			r.Get("/my-status", votingHandler.GetMyVoteStatus)
			r.Get("/results", resultHandler.GetResults)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
