package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-server/internal/ai"
	"content-server/internal/config"
	"content-server/internal/database"
	"content-server/internal/handler"
	"content-server/internal/logger"
	"content-server/internal/messaging"
	"content-server/internal/repository"
	"content-server/internal/service"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	rabbitMQConnectAttempts = 5
	rabbitMQConnectDelay    = 5 * time.Second
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		OutputPaths: cfg.GetLogOutputPaths(),
		Development: cfg.Env == "development",
		Service:     "content-server",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	log.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel), zap.String("env", cfg.Env))

	// --- External Connections ---
	startupCtx, cancelStartup := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelStartup()

	pgPool, err := database.NewPool(startupCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if err := database.ApplyMigrations(cfg.GetDSN(), log); err != nil {
		log.Fatal("Failed to apply database migrations", zap.Error(err))
	}

	completionClient, err := ai.NewCompletionClient(cfg, log)
	if err != nil {
		log.Fatal("Failed to create AI client", zap.Error(err))
	}

	publisher, closePublisher := setupPublisher(startupCtx, cfg, log)
	defer closePublisher()

	// --- Dependency Injection ---
	generationRepo := repository.NewPgGenerationRepository(pgPool, log)
	generationService := service.NewGenerationService(generationRepo, completionClient, publisher, log)
	generationHandler := handler.NewGenerationHandler(generationService, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := setupRouter(cfg, generationHandler, log)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Даем завершиться начатым генерациям
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.AITimeout+5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

// setupPublisher подключается к RabbitMQ, если задан RABBITMQ_URL.
// При недоступности брокера сервис работает без событий.
func setupPublisher(ctx context.Context, cfg *config.Config, log *zap.Logger) (messaging.EventPublisher, func()) {
	noop := func() {}
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set, generation events disabled")
		return messaging.NoopPublisher{}, noop
	}

	conn, err := messaging.Connect(ctx, cfg.RabbitMQURL, rabbitMQConnectAttempts, rabbitMQConnectDelay, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ, generation events disabled", zap.Error(err))
		return messaging.NoopPublisher{}, noop
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Error("Failed to open RabbitMQ channel, generation events disabled", zap.Error(err))
		closeConnection(conn, log)
		return messaging.NoopPublisher{}, noop
	}

	publisher, err := messaging.NewRabbitMQPublisher(ch, cfg.GenerationEventsQueue, log)
	if err != nil {
		log.Error("Failed to create generation events publisher", zap.Error(err))
		_ = ch.Close()
		closeConnection(conn, log)
		return messaging.NoopPublisher{}, noop
	}

	return publisher, func() {
		_ = ch.Close()
		closeConnection(conn, log)
	}
}

func closeConnection(conn *amqp.Connection, log *zap.Logger) {
	if err := conn.Close(); err != nil {
		log.Warn("Error closing RabbitMQ connection", zap.Error(err))
	}
}
