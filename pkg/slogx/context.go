package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type ctxKey struct{}

type annotationsKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// annotations collects attributes that handlers want on the request's access
// log line. The middleware owns it, handlers only append.
type annotations struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

func withAnnotations(ctx context.Context) (context.Context, *annotations) {
	a := &annotations{}
	return context.WithValue(ctx, annotationsKey{}, a), a
}

// Annotate adds attributes to the access log line written when the request
// finishes. Without HTTPMiddleware upstream it does nothing.
func Annotate(ctx context.Context, attrs ...slog.Attr) {
	a, ok := ctx.Value(annotationsKey{}).(*annotations)
	if !ok {
		return
	}
	a.mu.Lock()
	a.attrs = append(a.attrs, attrs...)
	a.mu.Unlock()
}

func (a *annotations) snapshot() []slog.Attr {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]slog.Attr, len(a.attrs))
	copy(out, a.attrs)
	return out
}
