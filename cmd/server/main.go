package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"botnest/internal/config"
	"botnest/internal/database"
	"botnest/internal/handlers"
	"botnest/internal/router"
	"botnest/internal/services"
	"botnest/internal/telemetry"
	"botnest/internal/websocket"
)

func main() {
	log.Println("🚀 Starting BotNest relay...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Tracing ────
	shutdownTracing, err := telemetry.InitTracing(context.Background(), cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		log.Fatalf("✗ Tracing initialization failed: %v", err)
	}
	defer shutdownTracing(context.Background())

	// ──── Step 3: Initialize Completion Provider ────
	var completer services.Completer
	switch cfg.Provider {
	case config.ProviderGemini:
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		completer = geminiService
		log.Printf("✓ Gemini client initialized (model %s)", cfg.GeminiModel)
	default:
		httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
		completer = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, httpClient)
		log.Printf("✓ OpenAI client initialized (model %s)", cfg.OpenAIModel)
	}

	// ──── Step 4: Optional Redis for the exchange feed ────
	var redisClient *redis.Client
	var wsHub *websocket.Hub
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		wsHub = websocket.NewHub(redisClient)
		log.Println("✓ Redis connected, exchange feed enabled")
	}

	// ──── Step 5: Handlers ────
	chatHandler := handlers.NewChatHandler(completer, services.NewExchangeLog(redisClient))

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, wsHub, cfg.FrontendURL)

	// No read/write timeouts: a slow provider call holds only its own request.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     otelhttp.NewHandler(r, "relay"),
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Server running on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: POST http://localhost:%s/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
