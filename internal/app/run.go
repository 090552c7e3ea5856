// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AccelByte/extend-lobby-bot/pkg/lobbybot"
)

// Run starts the servers and the bot, and blocks until the bot signs off or a
// shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	// The publisher outlives the bot so the final SignedOff status is stored.
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()

	signedOff := make(chan struct{}, 1)
	a.bot.OnTransition(func(_, destination lobbybot.State, _ lobbybot.Trigger) {
		if destination == lobbybot.StateSignedOff {
			select {
			case signedOff <- struct{}{}:
			default:
			}
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.grpcServer.Serve)
	g.Go(a.metricsServer.Serve)
	if a.publisher != nil {
		g.Go(func() error {
			return a.publisher.Run(publisherCtx)
		})
	}
	g.Go(func() error {
		a.bot.Start()
		logrus.Info("application started successfully")

		if a.bot.State() != lobbybot.StateSignedOff {
			select {
			case <-signedOff:
				logrus.Info("bot signed off")
			case <-gctx.Done():
				logrus.Info("shutdown signal received")
			}
		}

		a.bot.Stop()
		a.bot.Wait()
		stopPublisher()
		a.stopServers(context.Background())
		return nil
	})

	err := g.Wait()
	if shutdownErr := a.Shutdown(context.Background()); err == nil {
		err = shutdownErr
	}
	return err
}

func (a *App) stopServers(ctx context.Context) {
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		logrus.Errorf("gRPC server shutdown error: %v", err)
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}
}

// Shutdown releases external connections once Run's workers have returned.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Run stops components in reverse dependency order:
// 1. Sign the bot off and wait for its goroutines
// 2. Flush the status publisher
// 3. Stop accepting requests (gRPC + metrics servers)
// 4. Close external connections (Redis), here
// 5. Flush telemetry data (OpenTelemetry), here
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
