// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	traceIDField = "traceID"
	tracerName   = "lobby-bot"
)

// Scope ties a span to a logger for one unit of bot work, usually the
// handling of a single provider event. Tags land on both.
type Scope struct {
	Ctx     context.Context
	TraceID string
	Log     *log.Entry
	span    oteltrace.Span
}

// StartScope starts a span called name. Log is logger, or the standard
// logger when nil, tagged with the trace ID.
func StartScope(ctx context.Context, name string, logger *log.Entry) *Scope {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, name)
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	traceID := span.SpanContext().TraceID().String()
	return &Scope{
		Ctx:     spanCtx,
		TraceID: traceID,
		Log:     logger.WithField(traceIDField, traceID),
		span:    span,
	}
}

// Tag sets a string attribute on the span and the same field on Log.
func (s *Scope) Tag(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
	s.Log = s.Log.WithField(key, value)
}

// Note adds a span event.
func (s *Scope) Note(message string) {
	s.span.AddEvent(message)
}

// Fail records err on the span and marks it failed.
func (s *Scope) Fail(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// Child starts a span under s that shares its logger.
func (s *Scope) Child(name string) *Scope {
	ctx, span := s.span.TracerProvider().Tracer(tracerName).Start(s.Ctx, name)
	return &Scope{Ctx: ctx, TraceID: s.TraceID, Log: s.Log, span: span}
}

// End ends the span.
func (s *Scope) End() {
	s.span.End()
}
