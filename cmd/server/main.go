package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vode/interview/internal/config"
	"vode/interview/internal/conversation"
	"vode/interview/internal/handlers"
	"vode/interview/internal/interview"
	"vode/interview/internal/jobs"
	"vode/interview/internal/llm"
	_ "vode/interview/internal/llm/gemini"
	"vode/interview/internal/metrics"
	"vode/interview/internal/orchestrator"
	"vode/interview/internal/prompts"
	"vode/interview/internal/questions"
	"vode/interview/internal/routers"
	"vode/interview/internal/scoring"
	"vode/interview/internal/speech"
	_ "vode/interview/internal/speech/elevenlabs"
	"vode/interview/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, voiceHandler *handlers.VoiceHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, voiceHandler)
	router.Handle("/metrics", metrics.Handler())
}

// Helper function for environment variables
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("speech_provider", cfg.SpeechProvider),
		zap.Duration("session_ttl", cfg.SessionTTL))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	// speech synthesizer based on configuration
	synthesizer, err := speech.NewSynthesizer(cfg.SpeechProvider)
	if err != nil {
		logger.Fatal("Failed to initialize speech synthesizer", zap.Error(err))
	}

	db, err := initDatabase()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	interviewRepo := &store.InterviewRepository{DB: db}
	catalogRepo := &store.CatalogRepository{DB: db}
	questionRepo := &store.QuestionRepository{DB: db}

	sessions := conversation.NewStore(cfg.SessionTTL)
	coach := orchestrator.New(aiProvider, synthesizer, promptManager, sessions, logger)
	assigner := questions.NewAssigner(aiProvider, promptManager, questionRepo, interviewRepo, cfg.RecencyWindow, logger)
	scorer := scoring.NewSynthesizer(aiProvider, promptManager, logger)
	service := interview.NewService(interviewRepo, catalogRepo, assigner, coach, scorer, logger)

	interviewHandler := handlers.NewInterviewHandler(service, logger)
	voiceHandler := handlers.NewVoiceHandler(synthesizer, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, synthesizer, promptManager, db, cfg)

	// results exporter job
	exporterConfig := &jobs.ExporterConfig{
		Schedule:      getEnv("RESULTS_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:     getEnv("RESULTS_EXPORT_DIR", "./exports"),
		ExportEnabled: getEnv("RESULTS_EXPORT_ENABLED", "false") == "true",
	}
	exporterJob := jobs.NewResultsExporterJob(interviewRepo, exporterConfig)
	if exporterConfig.ExportEnabled {
		if err := exporterJob.Start(); err != nil {
			logger.Error("Failed to start results exporter job", zap.Error(err))
		} else {
			logger.Info("Results exporter job started", zap.String("schedule", exporterConfig.Schedule))
		}
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", "X-Candidate-ID"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware("interview"))

	registerRoutes(router, interviewHandler, voiceHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	exporterJob.Stop()
	sessions.Close()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
