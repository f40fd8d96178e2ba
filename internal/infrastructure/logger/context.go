package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

// WithContext returns a context carrying the given logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger carried by ctx, or a no-op logger when
// none was attached
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID attaches a logger enriched with the request id
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithIdentity enriches the context logger with the authenticated family
// and user, so everything logged downstream of auth carries both ids
func WithIdentity(ctx context.Context, familyID, userID string) (context.Context, *zap.Logger) {
	enriched := FromContext(ctx).With(
		zap.String("family_id", familyID),
		zap.String("user_id", userID),
	)
	return WithContext(ctx, enriched), enriched
}
