package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/switch527/coin-base/internal/bootstrap"
	"github.com/switch527/coin-base/internal/feed"
	"github.com/switch527/coin-base/internal/feed/kafkafeed"
	"github.com/switch527/coin-base/internal/feed/ws"
	"github.com/switch527/coin-base/internal/infrastructure/rediscache"
	"github.com/switch527/coin-base/pkg/config"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/switch527/coin-base/pkg/postgresql"
	"github.com/switch527/coin-base/pkg/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		lg.Error(err)
		os.Exit(1)
	}
	defer pgClient.Close()

	if err := pgClient.Ping(ctx); err != nil {
		lg.Error(err)
		os.Exit(1)
	}

	var cache rediscache.LatestCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(lg, &cfg.Redis)
		if err := redisClient.Connect(ctx); err != nil {
			lg.Error(err)
			os.Exit(1)
		}
		defer redisClient.Disconnect(context.Background())
		cache = rediscache.NewLatestCache(redisClient, cfg.Redis.DefaultTTL, lg)
	}

	conn, err := newConnectivity(cfg, lg)
	if err != nil {
		lg.Error(err)
		os.Exit(1)
	}

	app := (&bootstrap.Bootstrap{}).Init(bootstrap.BootstrapConfig{
		Config:       cfg,
		Postgres:     pgClient,
		Connectivity: conn,
		Cache:        cache,
		Logger:       lg,
	})

	lg.Info("starting",
		logger.Field{Key: "app", Value: cfg.App.Name},
		logger.Field{Key: "environment", Value: cfg.App.Environment},
		logger.Field{Key: "port", Value: cfg.App.Port},
		logger.Field{Key: "feed_source", Value: cfg.Feed.Source},
	)

	go func() {
		if err := app.API.Server.Run(); err != nil {
			lg.Error(err)
			cancel()
		}
	}()

	archiveDone := make(chan error, 1)
	go func() {
		archiveDone <- app.Usecase.Archive.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var archiveErr error
	archiveFinished := false
	select {
	case <-quit:
		lg.Info("shutdown signal received")
		cancel()
	case archiveErr = <-archiveDone:
		archiveFinished = true
		cancel()
	}

	if !archiveFinished {
		// The archiver drains its queue on the way out; give it room to finish.
		select {
		case archiveErr = <-archiveDone:
		case <-time.After(30 * time.Second):
			lg.Warn("archiver did not stop in time")
		}
	}
	if archiveErr != nil {
		lg.Error(archiveErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.API.Server.Shutdown(shutdownCtx); err != nil {
		lg.Error(err)
	}

	lg.Info("stopped")
}

func newConnectivity(cfg *config.Config, lg logger.Interface) (feed.Connectivity, error) {
	switch cfg.Feed.Source {
	case "ws":
		return ws.NewConnectivity(ws.Config{
			URL:           cfg.Feed.GatewayURL,
			Symbols:       cfg.Feed.Symbols,
			DataTypes:     cfg.Feed.DataTypes,
			ChannelBuffer: cfg.Feed.ChannelBuffer,
		}, lg)
	case "kafka":
		return kafkafeed.NewConnectivity(kafkafeed.Config{
			Brokers:       cfg.Feed.Brokers,
			TopicPrefix:   cfg.Feed.TopicPrefix,
			ConsumerGroup: cfg.Feed.ConsumerGroup,
			Symbols:       cfg.Feed.Symbols,
			DataTypes:     cfg.Feed.DataTypes,
			ChannelBuffer: cfg.Feed.ChannelBuffer,
		}, lg)
	}
	return nil, fmt.Errorf("unknown feed source %q", cfg.Feed.Source)
}
