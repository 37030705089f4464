// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tracing

import (
	"context"
	"time"
)

// SpanType classifies what a span measures
type SpanType string

const (
	SpanTypeAgent SpanType = "agent"
	SpanTypeModel SpanType = "model"
	SpanTypeTool  SpanType = "tool"
)

// SpanContext contains the context of a span
type SpanContext struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
	Name         string
	StartTime    time.Time
	EndTime      time.Time
	Attributes   map[string]any
}

// Duration is the time between start and end, zero while the span is open
func (c *SpanContext) Duration() time.Duration {
	if c.EndTime.IsZero() {
		return 0
	}
	return c.EndTime.Sub(c.StartTime)
}

// SpanEvent represents an event in a span
type SpanEvent struct {
	Name       string
	Timestamp  time.Time
	Attributes map[string]any
}

// Span represents a span in a trace
type Span interface {
	// End ends the span, later calls are ignored
	End()

	// AddEvent adds an event to the span
	AddEvent(name string, attributes map[string]any)

	// SetAttribute sets an attribute on the span
	SetAttribute(key string, value any)

	// SetAttributes sets multiple attributes on the span
	SetAttributes(attributes map[string]any)

	// Context returns a snapshot of the span context
	Context() SpanContext
}

// Tracer is an interface for creating spans
type Tracer interface {
	// StartSpan starts a span as a child of the span in ctx, if any
	StartSpan(ctx context.Context, name string, attributes map[string]any) (Span, context.Context)

	// Close cleans up the tracer
	Close(ctx context.Context) error
}

// SpanProcessor handles span processing
type SpanProcessor interface {
	// OnStart is called when a span starts
	OnStart(span *StandardSpan)

	// OnEnd is called when a span ends
	OnEnd(span *StandardSpan)

	// Shutdown shuts down the processor
	Shutdown(ctx context.Context) error
}
