package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bporter/mcattrainer/internal/api"
	"github.com/bporter/mcattrainer/internal/config"
	"github.com/bporter/mcattrainer/internal/db"
	"github.com/bporter/mcattrainer/internal/jobs"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/repository/sqlite"
	"github.com/bporter/mcattrainer/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MCAT Trainer Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("daily_goal=%d", cfg.DailyGoal)
	log.Debug("recent_window=%d", cfg.RecentWindow)
	log.Debug("leech_threshold=%d", cfg.LeechThreshold)
	log.Debug("review_retention_days=%d", cfg.ReviewRetentionDays)
	log.Debug("maintenance_hour_utc=%d", cfg.MaintenanceHourUTC)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)
	flashcardRepo := sqlite.NewFlashcardRepository(database.DB)
	reviewRepo := sqlite.NewQuestionReviewRepository(database.DB)

	// Initialize services
	userService := services.NewUserService(userRepo)
	questionService := services.NewQuestionService(questionRepo, attemptRepo, sessionRepo, reviewRepo, cfg.RecentWindow, nil)
	sessionService := services.NewSessionService(sessionRepo, attemptRepo, userRepo)
	flashcardService := services.NewFlashcardService(flashcardRepo)
	reviewService := services.NewReviewService(reviewRepo)
	recommendationService := services.NewRecommendationService(attemptRepo, reviewRepo, cfg.DailyGoal, cfg.LeechThreshold)
	statsService := services.NewStatsService(attemptRepo, sessionRepo)

	srv := &api.Server{
		UserService:           userService,
		QuestionService:       questionService,
		SessionService:        sessionService,
		FlashcardService:      flashcardService,
		ReviewService:         reviewService,
		RecommendationService: recommendationService,
		StatsService:          statsService,
	}

	// Start nightly maintenance
	maintenance := jobs.NewMaintenance(database.DB, reviewService, cfg.ReviewRetentionDays, cfg.MaintenanceHourUTC)
	if err := maintenance.Start(); err != nil {
		log.Error("failed to start maintenance job: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping maintenance job")
	maintenance.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("MCAT Trainer Server Stopped")
	log.Info("===========================================")
}
