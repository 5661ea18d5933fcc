package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"caffenio/internal/config"
	httpapi "caffenio/internal/http"
	"caffenio/internal/metrics"
	"caffenio/internal/repository"
	"caffenio/internal/service"

	_ "caffenio/docs"
)

// buildLogger builds the production zap logger at the configured level.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := buildLogger(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting Caffenio kiosk API",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("redis", cfg.Redis.Addr))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, liveness will report degraded", zap.Error(err))
		}
		cancel()
	}

	store := repository.NewMemoryStore()
	catalog := repository.NewStaticCatalog()

	ordersSvc := service.NewOrderService(store, logger)
	catalogSvc := service.NewCatalogService(catalog)

	m := metrics.NewServerMetrics(prometheus.NewRegistry())

	srv := httpapi.NewServer(ordersSvc, catalogSvc, cfg.Auth.APIKey, logger, m,
		func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
