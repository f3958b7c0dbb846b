package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olenak/lingocards/internal/api"
	"github.com/olenak/lingocards/internal/auth"
	"github.com/olenak/lingocards/internal/config"
	"github.com/olenak/lingocards/internal/db"
	"github.com/olenak/lingocards/internal/dictionary"
	"github.com/olenak/lingocards/internal/jobs"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/mailer"
	"github.com/olenak/lingocards/internal/repository/sqlite"
	"github.com/olenak/lingocards/internal/services"
	"github.com/olenak/lingocards/internal/worker"
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
	log.Info("LingoCards Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("dev_mode=%t", cfg.DevMode)
	log.Debug("mail_worker_count=%d", cfg.MailWorkerCount)
	log.Debug("mail_queue_size=%d", cfg.MailQueueSize)
	log.Debug("media_dir=%s", cfg.MediaDir)

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is required")
		os.Exit(1)
	}

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
	collectionRepo := sqlite.NewCollectionRepository(database.DB)
	flashcardRepo := sqlite.NewFlashcardRepository(database.DB)
	shareRepo := sqlite.NewShareRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize mail delivery
	ses, err := mailer.NewSESMailer(context.Background(), cfg.MailAWSRegion, cfg.MailFromEmail, cfg.MailFromName)
	if err != nil {
		log.Error("failed to initialize mailer: %v", err)
		os.Exit(1)
	}
	mailPool := worker.NewPool(cfg.MailWorkerCount, cfg.MailQueueSize)
	queue := jobs.NewWorkerQueue(mailPool, ses)

	// Initialize services
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	authService := services.NewAuthService(userRepo, jwtManager)
	collectionService := services.NewCollectionService(collectionRepo, shareRepo)
	flashcardService := services.NewFlashcardService(flashcardRepo, collectionService)
	shareService := services.NewShareService(shareRepo, collectionRepo, userRepo, queue, cfg.AppBaseURL)
	studyService := services.NewStudyService(sessionRepo, flashcardRepo, progressRepo, collectionService)
	statsService := services.NewStatsService(statsRepo, progressRepo, collectionService)
	dictionaryService := services.NewDictionaryService(dictionary.New(cfg.DictionaryBaseURL))
	mediaService := services.NewMediaService(cfg.MediaDir, cfg.MaxUploadBytes)

	srv := &api.Server{
		AuthService:       authService,
		CollectionService: collectionService,
		FlashcardService:  flashcardService,
		ShareService:      shareService,
		StudyService:      studyService,
		StatsService:      statsService,
		DictionaryService: dictionaryService,
		MediaService:      mediaService,
		JWT:               jwtManager,
		MediaDir:          cfg.MediaDir,
		DevMode:           cfg.DevMode,
	}

	ctx, cancel := context.WithCancel(context.Background())
	mailPool.Start(ctx)

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

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping mail pool")
	mailPool.Stop()

	log.Info("===========================================")
	log.Info("LingoCards Server Stopped")
	log.Info("===========================================")
}
