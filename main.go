package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	api "journaly-backend/cmd/api"
	authdomain "journaly-backend/internal/auth/domain"
	authrepo "journaly-backend/internal/auth/repository"
	authusecase "journaly-backend/internal/auth/usecase"
	insightdomain "journaly-backend/internal/insight/domain"
	insightrepo "journaly-backend/internal/insight/repository"
	insightusecase "journaly-backend/internal/insight/usecase"
	journaldomain "journaly-backend/internal/journal/domain"
	journalrepo "journaly-backend/internal/journal/repository"
	journalusecase "journaly-backend/internal/journal/usecase"
	mooddomain "journaly-backend/internal/mood/domain"
	moodrepo "journaly-backend/internal/mood/repository"
	moodusecase "journaly-backend/internal/mood/usecase"
	"journaly-backend/internal/quote"
	"journaly-backend/pkg/config"
	"journaly-backend/pkg/crypto"
	"journaly-backend/pkg/database"
	"journaly-backend/pkg/embedding"
	"journaly-backend/pkg/llm"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	cfg.MustValidate()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&journaldomain.JournalEntry{},
		&journaldomain.VectorChunk{},
		&mooddomain.MoodEntry{},
		&insightdomain.WeeklyInsight{},
	); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Shared clients, constructed once and injected everywhere
	cipher, err := crypto.NewCipher(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal("failed to initialize cipher", zap.Error(err))
	}
	completer := llm.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL)
	embedder := embedding.NewClient(cfg.EmbeddingURL, cfg.EmbeddingKey, logger)

	// Repositories
	userRepository := authrepo.NewUserRepository(db)
	journalRepository := journalrepo.NewGormJournalRepository(db)
	moodRepository := moodrepo.NewGormMoodRepository(db)
	insightRepository := insightrepo.NewGormInsightRepository(db)

	// Background enrichment pipeline
	enricher := journalusecase.NewEnrichmentWorker(journalRepository, completer, embedder, cipher, logger, cfg.EnrichWorkerCount)
	enricher.Start()

	// Usecases
	authUsecase := authusecase.NewAuthUsecase(userRepository, cfg)
	journalUsecase := journalusecase.NewJournalUsecase(journalRepository, cipher, embedder, completer, enricher, logger)
	moodUsecase := moodusecase.NewMoodUsecase(moodRepository)
	insightUsecase := insightusecase.NewInsightUsecase(insightRepository, moodRepository, journalRepository, cipher, completer, logger)

	quoteService := quote.NewService(cfg.QuotesAPIKey, logger)

	handler := api.NewHandler(authUsecase, journalUsecase, moodUsecase, insightUsecase, quoteService, cfg)

	// Drain in-flight enrichment jobs on shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down, draining enrichment queue")
		enricher.Stop()
		os.Exit(0)
	}()

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
