// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/AccelByte/extend-lobby-bot/pkg/common"
)

// SetupTelemetry installs the trace context propagators and, when enabled,
// a tracer provider exporting to zipkin. It returns a shutdown function that
// flushes pending spans.
//
// ============================================================
// DEVELOPER: OpenTelemetry configuration
// ============================================================
// Spans are opened around every provider event the bot handles
// (see pkg/lobbybot/dispatcher.go). With OTEL_ENABLED=false the
// global no-op tracer is kept and spans cost nothing.
//
// The zipkin collector is read from OTEL_EXPORTER_ZIPKIN_ENDPOINT
// by common.NewTracerProvider.
// ============================================================
func SetupTelemetry(ctx context.Context, serviceName, environment string, id int, enabled bool) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			b3.New(),                   // Zipkin B3 propagation
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},      // W3C Baggage
		),
	)

	if !enabled {
		logrus.Infof("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	tracerProvider, err := common.NewTracerProvider(serviceName, environment, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tracerProvider)
	logrus.Infof("set tracer provider: (name: %s environment: %s id: %d)", serviceName, environment, id)

	shutdown := func(ctx context.Context) error {
		logrus.Info("shutting down telemetry...")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		logrus.Info("telemetry stopped")
		return nil
	}

	return shutdown, nil
}
