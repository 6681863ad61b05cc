package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"move-advisor/config"
	httpLayer "move-advisor/http"
	"move-advisor/repository"
	"move-advisor/service"
)

// newLogger builds a zap logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "", "info":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	var zc zap.Config
	switch cfg.Format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "", "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.Cache.RedisAddr)
		logger.Info("using redis cache", zap.String("addr", cfg.Cache.RedisAddr))
	} else {
		cache = repository.NewMemoryCache()
		logger.Info("using in-memory cache")
	}

	calcRepo := repository.NewCalculationRepositoryMemory()
	calculator := service.NewCalculatorService(calcRepo, logger)
	ai := service.NewAIService(cfg.AI, cache, logger)
	lead := service.NewLeadService(cfg.Lead.WebhookURL, logger)
	report := service.NewReportService()

	limiter := httpLayer.NewRateLimiter(cfg.Server.RateLimit, time.Minute)
	defer limiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterDeps{
		Calculator: httpLayer.NewCalculatorHandler(calculator),
		AI:         httpLayer.NewAIHandler(ai),
		Lead:       httpLayer.NewLeadHandler(lead),
		Report:     httpLayer.NewReportHandler(report),
	}, limiter, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("server exited")
}
