package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/patentmarket/admin-gateway/internal/core/auth"
	"github.com/patentmarket/admin-gateway/internal/core/trade"
	"github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"
	infraRedis "github.com/patentmarket/admin-gateway/internal/infra/redis"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/handler"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/middleware"
	"github.com/patentmarket/admin-gateway/pkg/config"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// redisPinger adapts the Redis client to the health handler's interface
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting admin gateway",
		"env", cfg.Env,
		"port", cfg.Port,
		"market_api", cfg.MarketAPIURL,
	)

	// Initialize Redis client for session storage
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Initialize the marketplace API gateway
	marketClient := marketapi.NewClient(cfg.MarketAPIURL, log)

	// Initialize services
	sessionStore := infraRedis.NewSessionStore(redisClient)
	authSvc := auth.NewService(marketClient, sessionStore, cfg.SessionTTL, log)
	tradeSvc := trade.NewService(marketClient, log)
	modalRegistry := trade.NewModalRegistry(tradeSvc.Detail, log)
	tokenSvc := middleware.NewTokenService(cfg.JWTSecret)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authSvc, tokenSvc, modalRegistry)
	tradeHandler := handler.NewTradeHandler(tradeSvc)
	modalHandler := handler.NewModalHandler(modalRegistry)
	healthHandler := handler.NewHealthHandler(redisPinger{client: redisClient})

	// Create HTTP router
	routerCfg := httpapi.Config{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthHandler:    authHandler,
		TradeHandler:   tradeHandler,
		ModalHandler:   modalHandler,
		HealthHandler:  healthHandler,
		SessionGuard:   middleware.SessionGuard(tokenSvc, authSvc),
	}
	r := httpapi.NewRouter(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
