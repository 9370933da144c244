package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mahendraputra/idx-radar/internal/api"
	"github.com/mahendraputra/idx-radar/internal/config"
	"github.com/mahendraputra/idx-radar/internal/dataset"
	"github.com/mahendraputra/idx-radar/internal/derive"
	"github.com/mahendraputra/idx-radar/internal/feed"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting screener API service",
		logger.Int("port", cfg.API.Port),
		logger.Int("health_port", cfg.API.HealthCheckPort),
		logger.Duration("cache_ttl", cfg.Cache.TTL),
	)

	client := feed.NewClient(cfg.Feed)
	deriver := derive.NewDeriver(cfg.Score)
	cache := dataset.NewCache(cfg.Cache.TTL, dataset.NewFeedLoader(client, deriver))

	// Warm the cache; a failing feed is not fatal, the first request
	// retries and surfaces the error.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.Feed.FetchTimeout)
	if _, err := cache.Get(warmCtx); err != nil {
		logger.Warn("Initial dataset load failed", logger.ErrorField(err))
	}
	cancelWarm()

	handler := api.NewHandler(cache, cfg.API.DefaultTopN)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Health and metrics on a separate listener.
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	healthMux.Handle("/metrics", promhttp.Handler())
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.HealthCheckPort),
		Handler: healthMux,
	}

	go func() {
		logger.Info("Health server listening", logger.Int("port", cfg.API.HealthCheckPort))
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health server failed", logger.ErrorField(err))
		}
	}()

	go func() {
		logger.Info("API server listening", logger.Int("port", cfg.API.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("API server failed", logger.ErrorField(err))
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown failed", logger.ErrorField(err))
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Health server shutdown failed", logger.ErrorField(err))
	}

	logger.Info("Shutdown complete")
}
