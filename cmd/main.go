package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campstack/camp-system/cache"
	"github.com/campstack/camp-system/config"
	"github.com/campstack/camp-system/db"
	"github.com/campstack/camp-system/handlers"
	"github.com/campstack/camp-system/repositories"
	api "github.com/campstack/camp-system/routes"
	"github.com/campstack/camp-system/services"
	"github.com/campstack/camp-system/standings"
	"github.com/campstack/camp-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// How often the final-match sweep runs. Idempotent, so the interval only
// bounds how late a final can appear when no score update triggered it.
const sweepInterval = 30 * time.Second

const migrationsPath = "file://migrations"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(dbConn, migrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	cacheStore, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("redis connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := standings.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	regRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	entryRepo := repositories.NewPostgresEntryRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	checkinRepo := repositories.NewPostgresCheckinRepository(dbConn)
	photoRepo := repositories.NewPostgresPhotoRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(regRepo, cacheStore, wsHub, logger)
	tournamentService := services.NewTournamentService(matchRepo, entryRepo, regRepo, wsHub, logger)
	checkinService := services.NewCheckinService(checkinRepo, wsHub, logger)
	galleryService := services.NewGalleryService(photoRepo, uploader, logger)
	overviewService := services.NewOverviewService(regRepo, matchRepo, photoRepo)
	logger.Info("services initialized")

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go tournamentService.RunRecomputeWorker(workerCtx)

	// Safety-net sweep for finals whose trigger was missed (e.g. a crash
	// between score write and recompute).
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if err := tournamentService.SweepFinals(workerCtx); err != nil {
					logger.Error("final sweep failed", slog.Any("error", err))
				}
			}
		}
	}()
	logger.Info("tournament workers started", slog.Duration("sweep_interval", sweepInterval))

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	overviewHandler := handlers.NewOverviewHandler(overviewService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		tournamentHandler,
		teamHandler,
		checkinHandler,
		galleryHandler,
		overviewHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
