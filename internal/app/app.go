// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/internal/bootstrap"
	"github.com/AccelByte/extend-lobby-bot/internal/config"
	"github.com/AccelByte/extend-lobby-bot/internal/server"
	"github.com/AccelByte/extend-lobby-bot/pkg/lobbybot"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
	"github.com/AccelByte/extend-lobby-bot/pkg/status"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	publisher         *status.Publisher
	bot               *lobbybot.Bot
	shutdownTelemetry func(context.Context) error
}

// Options overrides collaborators of the application, for tests.
type Options struct {
	// Factory replaces the session provider built from the configuration.
	Factory provider.Factory
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Redis (optional, for status publication)
// 2. Lobby profile (YAML configuration)
// 3. Chat commands
// 4. Status publisher
// 5. Session provider and the lobby bot
// 6. Servers (gRPC health, metrics)
// 7. Telemetry (OpenTelemetry tracing)
// ============================================================
func New(ctx context.Context, cfg *config.Config, details provider.LogOnDetails, opts Options) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Initialize Redis
	// ============================================================
	if cfg.RedisEnabled {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	}

	// ============================================================
	// Step 2: Load lobby profile
	// ============================================================
	p, err := bootstrap.InitProfile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}

	// ============================================================
	// Step 3: Register chat commands
	// ============================================================
	commands, err := bootstrap.InitCommands(p)
	if err != nil {
		return nil, err
	}

	// ============================================================
	// Step 4: Status publication
	// ============================================================
	app.publisher = bootstrap.InitStatusPublisher(app.redisClient, cfg.StatusTTL())

	// ============================================================
	// Step 5: Session provider and bot
	// ============================================================
	factory := opts.Factory
	if factory == nil {
		factory = bootstrap.InitProvider(cfg)
	}
	app.bot, err = bootstrap.InitBot(cfg, details, factory, p, commands, app.publisher)
	if err != nil {
		return nil, err
	}

	// ============================================================
	// Step 6: Setup servers
	// ============================================================
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}
	app.bot.OnTransition(func(_, _ lobbybot.State, _ lobbybot.Trigger) {
		app.grpcServer.SetServing(app.bot.IsInState(lobbybot.StateDota))
	})

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// ============================================================
	// Step 7: Setup telemetry
	// ============================================================
	shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, 0, cfg.OtelEnabled)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	logrus.Info("application initialized successfully")

	return app, nil
}

// Bot returns the application's lobby bot.
func (a *App) Bot() *lobbybot.Bot {
	return a.bot
}

// initRedis connects to Redis, retrying the first ping with exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := status.NewRedisClient(status.RedisOptions{
		Host:     a.cfg.RedisHost,
		Port:     a.cfg.RedisPort,
		Password: a.cfg.RedisPassword,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(a.cfg.RedisMaxRetries, 0))), ctx)

	err := backoff.Retry(
		func() error {
			if err := status.Ping(ctx, client); err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
