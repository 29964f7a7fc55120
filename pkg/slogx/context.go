package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or the default logger outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// With derives a context whose logger carries args on every record, e.g.
// the portal and user once a session is resolved.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// Audit writes a security record at warn level tagged audit=true, so login
// failures and policy denials can be routed apart from request logs.
func Audit(ctx context.Context, msg string, attrs ...any) {
	FromContext(ctx).Warn(msg, append([]any{"audit", true}, attrs...)...)
}
