package logger

import (
	"bytes"
	"context"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
)

type logCtxKey struct{}

var logCtx logCtxKey

const (
	logIDKey   = "logID"
	requestKey = "request"
)

type LogID [8]byte

func (lid LogID) String() string {
	return hex.EncodeToString(lid[:])
}

var nilLogID = LogID{}

func (lid LogID) IsValid() bool {
	return !bytes.Equal(lid[:], nilLogID[:])
}

type logContext struct {
	StartTime time.Time
	RequestID string
	LogID     LogID
}

func (lgCtx *logContext) ToFields() []zap.Field {
	if lgCtx == nil {
		return nil
	}

	attrs := make([]zap.Field, 0, 2)
	attrs = append(attrs, zap.String(logIDKey, lgCtx.LogID.String()))

	if lgCtx.RequestID != "" {
		attrs = append(attrs, zap.String(requestKey, lgCtx.RequestID))
	}
	return attrs
}

// Context stamps ctx with a fresh log ID unless one is already present.
func (l *logger) Context(ctx context.Context) context.Context {
	_, ok := ctx.Value(&logCtx).(*logContext)
	if ok {
		return ctx
	}

	lgCtx := &logContext{
		LogID:     l.idGenerator.NewLogID(ctx),
		StartTime: time.Now(),
	}
	return context.WithValue(ctx, &logCtx, lgCtx)
}

// WithRequestID attaches an externally supplied request ID to the log context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	lgCtx, ok := ctx.Value(&logCtx).(*logContext)
	if !ok {
		lgCtx = &logContext{StartTime: time.Now()}
	}

	next := &logContext{
		StartTime: lgCtx.StartTime,
		RequestID: requestID,
		LogID:     lgCtx.LogID,
	}
	return context.WithValue(ctx, &logCtx, next)
}

func getAttrs(ctx context.Context) []zap.Field {
	lgCtx, _ := ctx.Value(&logCtx).(*logContext)
	return lgCtx.ToFields()
}
