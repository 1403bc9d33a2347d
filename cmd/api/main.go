package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
	"github.com/ticketmint/ticket-indexer/internal/api/middleware"
	"github.com/ticketmint/ticket-indexer/internal/api/server"
	"github.com/ticketmint/ticket-indexer/internal/cache"
	"github.com/ticketmint/ticket-indexer/internal/config"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/metadata"
	"github.com/ticketmint/ticket-indexer/internal/providers/stacks"
	"github.com/ticketmint/ticket-indexer/internal/ratelimit"
	"github.com/ticketmint/ticket-indexer/internal/tickets"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ticket-indexer-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ticket Indexer API")

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	limiter := ratelimit.New(cfg.Stacks.RequestsPerSecond, cfg.Stacks.Burst)
	httpClient := adapter.NewHTTPClient(cfg.Stacks.HTTPTimeout, limiter)

	// Stacks API clients
	holdingsClient := stacks.NewHoldingsClient(
		cfg.Stacks.APIURL,
		cfg.Stacks.HoldingsPageSize,
		cfg.Stacks.HoldingsMaxPages,
		httpClient,
	)
	contractCaller := stacks.NewContractCaller(cfg.Stacks.APIURL, cfg.Stacks.Sender, httpClient, jsonAdapter)

	// Discovery pipeline
	resolver := metadata.NewResolver(contractCaller, cfg.Stacks.ContractCallTimeout)
	synthesizer := tickets.NewSynthesizer(clock)
	pipeline := tickets.NewPipeline(tickets.Config{
		WorkerPoolSize:  cfg.Pipeline.WorkerPoolSize,
		HoldingsTimeout: cfg.Pipeline.HoldingsTimeout,
	}, holdingsClient, resolver, synthesizer)

	// Cached ticket service
	ticketCache := cache.New(cfg.Cache.TTL, clock)
	service := tickets.NewService(pipeline, ticketCache, cfg.Pipeline.RunTimeout)

	logger.InfoCtx(ctx, "Pipeline configured",
		zap.String("stacks_api", cfg.Stacks.APIURL),
		zap.Int("worker_pool_size", cfg.Pipeline.WorkerPoolSize),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Create and start the HTTP server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, service)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			logger.ErrorCtx(ctx, err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(ctx, err)
	}

	logger.InfoCtx(ctx, "Ticket Indexer API stopped")
}
