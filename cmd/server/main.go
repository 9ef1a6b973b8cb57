package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cezatakip-service/internal/infrastructure/config"
	"cezatakip-service/internal/infrastructure/persistence"
	"cezatakip-service/internal/interface/httpapi"
	mongoRepo "cezatakip-service/internal/interface/repository"
	"cezatakip-service/internal/usecase"
	"cezatakip-service/pkg/logger"
	"cezatakip-service/pkg/metrics"
	"cezatakip-service/pkg/ratelimit"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Cezatakip Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	penaltyRepo := mongoRepo.NewMongoPenaltyRepository(db)
	userRepo := mongoRepo.NewMongoUserRepository(db)
	sessionRepo := mongoRepo.NewMongoSessionRepository(db)
	activityRepo := mongoRepo.NewMongoActivityRepository(db)

	// Set up usecases
	appMetrics := metrics.NewMetrics("cezatakip")
	importer := usecase.NewPenaltyImporter(penaltyRepo, log, appMetrics, cfg.ImportBatchSize, cfg.PrimarySheet, cfg.LogSheet)

	loginLimiter := ratelimit.New(cfg.LoginMaxAttempts, cfg.LoginWindow)
	authService := usecase.NewAuthService(userRepo, sessionRepo, loginLimiter, log, cfg.SessionTTL)

	// Set up HTTP surface
	mw := httpapi.NewMiddleware(authService, activityRepo, log)
	authHandler := httpapi.NewAuthHandler(authService, log)
	penaltyHandler := httpapi.NewPenaltyHandler(importer, penaltyRepo, mw, log, cfg.UploadDir, cfg.DefaultWorkbook)
	mux := httpapi.NewRouter(mw, authHandler, penaltyHandler)

	// Purge expired sessions in the background
	go func() {
		purgeTicker := time.NewTicker(1 * time.Hour)
		defer purgeTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Session purger stopped")
				return
			case <-purgeTicker.C:
				if err := authService.PurgeExpired(ctx); err != nil {
					log.Error("Error purging expired sessions", "error", err)
				}
			}
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Cezatakip Service stopped")
}
