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

	"github.com/dbv-club/championship-system/cache"
	"github.com/dbv-club/championship-system/config"
	"github.com/dbv-club/championship-system/db"
	"github.com/dbv-club/championship-system/handlers"
	"github.com/dbv-club/championship-system/middleware"
	"github.com/dbv-club/championship-system/repositories"
	api "github.com/dbv-club/championship-system/routes"
	"github.com/dbv-club/championship-system/services"
	"github.com/dbv-club/championship-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

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

	// Leaderboard cache is optional; without Redis every read hits Postgres.
	var leaderboardCache services.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewLeaderboardCache(cfg.RedisAddr, cfg.RedisPassword)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("redis unreachable, leaderboard cache disabled", slog.Any("error", err))
		} else {
			leaderboardCache = redisCache
			defer redisCache.Close()
			logger.Info("leaderboard cache initialized", slog.String("addr", cfg.RedisAddr))
		}
		cancelPing()
	}

	// Emblem storage is optional too.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	}

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	unitRepo := repositories.NewPostgresUnitRepository(dbConn)
	championshipRepo := repositories.NewPostgresChampionshipRepository(dbConn)
	evaluationRepo := repositories.NewPostgresEvaluationRepository(dbConn)
	demeritRepo := repositories.NewPostgresDemeritRepository(dbConn)
	classProgressRepo := repositories.NewPostgresClassProgressRepository(dbConn)
	rankingRepo := repositories.NewPostgresRankingRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	unitService := services.NewUnitService(unitRepo, uploader)
	championshipService := services.NewChampionshipService(championshipRepo)
	rankingService := services.NewRankingService(
		rankingRepo,
		evaluationRepo,
		demeritRepo,
		classProgressRepo,
		unitRepo,
		championshipRepo,
		leaderboardCache,
		logger,
	)
	evaluationService := services.NewEvaluationService(evaluationRepo, championshipRepo, rankingService)
	demeritService := services.NewDemeritService(demeritRepo, championshipRepo, rankingService)
	classProgressService := services.NewClassProgressService(classProgressRepo, championshipRepo, rankingService)
	dashboardService := services.NewDashboardService(evaluationRepo, demeritRepo, rankingRepo, championshipRepo)
	logger.Info("services initialized")

	auth := middleware.NewAuth(cfg.JWTSecretKey)
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	championshipHandler := handlers.NewChampionshipHandler(championshipService)
	unitHandler := handlers.NewUnitHandler(unitService)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService)
	demeritHandler := handlers.NewDemeritHandler(demeritService)
	classProgressHandler := handlers.NewClassProgressHandler(classProgressService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		authHandler,
		championshipHandler,
		unitHandler,
		evaluationHandler,
		demeritHandler,
		classProgressHandler,
		rankingHandler,
		dashboardHandler,
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
		} else {
			logger.Info("server stopped gracefully")
		}
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
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
