package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aandreyev/kb-search-api/internal/config"
	dbRedis "github.com/aandreyev/kb-search-api/internal/db/redis"
	logpkg "github.com/aandreyev/kb-search-api/internal/logger"
	"github.com/aandreyev/kb-search-api/internal/metrics"
	activityrepo "github.com/aandreyev/kb-search-api/internal/repository/activity"
	documentrepo "github.com/aandreyev/kb-search-api/internal/repository/document"
	searchrepo "github.com/aandreyev/kb-search-api/internal/repository/search"
	chiTransport "github.com/aandreyev/kb-search-api/internal/transport/chi"
	openaiEmb "github.com/aandreyev/kb-search-api/internal/transport/openai"
	activityuc "github.com/aandreyev/kb-search-api/internal/usecase/activity"
	healthuc "github.com/aandreyev/kb-search-api/internal/usecase/health"
	searchuc "github.com/aandreyev/kb-search-api/internal/usecase/search"
	"github.com/aandreyev/kb-search-api/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting knowledge base search API",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	searchRepo := searchrepo.New(store, searchrepo.Config{
		ChunkIndex:        cfg.Storage.ChunkIndex,
		KeyPrefix:         cfg.Storage.KeyPrefix,
		KeywordScoreScale: cfg.Search.KeywordScoreScale,
	})
	docRepo := documentrepo.New(store, cfg.Storage.DocumentPrefix)
	actRepo := activityrepo.New(store, cfg.Storage.ActivityStream)

	actSvc := activityuc.New(actRepo, logger, 5*time.Second)
	searchSvc := searchuc.NewService(searchRepo, docRepo, embedder, actSvc, searchuc.Options{
		KeywordScoreScale: cfg.Search.KeywordScoreScale,
		HybridEpsilon:     cfg.Search.HybridEpsilon,
		RRFDisplayScale:   cfg.Search.RRFDisplayScale,
		RetrieveTimeout:   time.Duration(cfg.Search.RetrieveTimeoutSec) * time.Second,
		MetadataTimeout:   time.Duration(cfg.Search.MetadataTimeoutSec) * time.Second,
	})
	healthSvc := healthuc.New(store, embedder)

	server := chiTransport.NewServer(searchSvc, actSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
