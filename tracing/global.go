// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tracing

import (
	"context"
	"sync"
)

type contextKey struct{}

var (
	globalTracer Tracer = &NoopTracer{}
	globalMutex  sync.RWMutex
)

// NoopTracer is a tracer that does nothing
type NoopTracer struct{}

// StartSpan returns a noop span and ctx unchanged
func (t *NoopTracer) StartSpan(ctx context.Context, name string, attributes map[string]any) (Span, context.Context) {
	return NoopSpan{}, ctx
}

func (t *NoopTracer) Close(ctx context.Context) error {
	return nil
}

// NoopSpan is a span that does nothing
type NoopSpan struct{}

func (NoopSpan) End()                                            {}
func (NoopSpan) AddEvent(name string, attributes map[string]any) {}
func (NoopSpan) SetAttribute(key string, value any)              {}
func (NoopSpan) SetAttributes(attributes map[string]any)         {}
func (NoopSpan) Context() SpanContext                            { return SpanContext{} }

// GetTracer returns the global tracer
func GetTracer() Tracer {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return globalTracer
}

// SetTracer sets the global tracer, nil restores the noop tracer
func SetTracer(tracer Tracer) {
	if tracer == nil {
		tracer = &NoopTracer{}
	}
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalTracer = tracer
}

// Shutdown closes the global tracer and restores the noop tracer
func Shutdown(ctx context.Context) error {
	globalMutex.Lock()
	tracer := globalTracer
	globalTracer = &NoopTracer{}
	globalMutex.Unlock()

	return tracer.Close(ctx)
}

// ContextWithSpan adds a span to the context
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	return context.WithValue(ctx, contextKey{}, span)
}

// SpanFromContext gets a span from the context
func SpanFromContext(ctx context.Context) Span {
	span, _ := ctx.Value(contextKey{}).(Span)
	return span
}

// StartSpan starts a span with the global tracer
func StartSpan(ctx context.Context, name string, attributes map[string]any) (Span, context.Context) {
	return GetTracer().StartSpan(ctx, name, attributes)
}
