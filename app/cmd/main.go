package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"interpreter/app/config"
	"interpreter/app/usecase"
	"interpreter/internal/domain/repository"
	"interpreter/internal/infrastructure/llm"
	"interpreter/internal/infrastructure/metrics"
	mongorepo "interpreter/internal/infrastructure/store/mongodb"
	"interpreter/internal/infrastructure/transport"
)

func main() {
	// logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// load config
	cfg := loadConfig()

	// History store (optional)
	var historyRepo repository.HistoryRepository
	var mongoClient *mongo.Client
	if cfg.Mongo.URI != "" {
		mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer mongoCancel()
		client, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			logger.Error("mongo connect failed", "err", err)
			log.Fatalf("mongo connect: %v", err)
		}
		if err := client.Ping(mongoCtx, nil); err != nil {
			logger.Error("mongo ping failed", "err", err)
			log.Fatalf("mongo ping: %v", err)
		}
		logger.Info("connected to mongo", "uri", cfg.Mongo.URI)
		mongoClient = client
		historyRepo = mongorepo.NewMongoHistoryRepo(client.Database(cfg.Mongo.Database))
	} else {
		logger.Info("history store disabled, MONGO_URI not set")
	}

	// Usecases / services
	historySvc := usecase.NewHistoryService(historyRepo, logger)

	// LLM client
	invoker := llm.NewOpenAIInvoker(
		cfg.LLM.APIKey,
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		cfg.LLM.Timeout,
	)

	explainSvc := usecase.NewExplainService(invoker, historySvc, logger)

	// Transport (HTTP handlers)
	handler := transport.NewInterpreterHandler(
		explainSvc,
		historySvc,
		logger,
		prometheus.DefaultRegisterer,
	)

	// Router and server
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting metrics server on :2112")
		metrics.StartMetricsServer()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start HTTP server
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "err", err)
			cancel()
		}
	}()

	// OS signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	// Shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}

	if mongoClient != nil {
		logger.Info("disconnecting mongo")
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Error("mongo disconnect error", "err", err)
		}
	}

	logger.Info("service stopped")
}

func loadConfig() *config.Config {
	cfg := &config.Config{
		Server: config.HTTPServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  2 * time.Minute,
			WriteTimeout: 2 * time.Minute,
		},
		LLM: config.LLMConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-5-nano"),
			Timeout: 60 * time.Second,
		},
		Mongo: config.MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "interpreter"),
		},
	}

	if cfg.LLM.APIKey == "" {
		log.Fatal("OPENAI_API_KEY env variable is required")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
