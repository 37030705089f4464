// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tracing

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// LogProcessor writes every ended span to a slog logger
type LogProcessor struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogProcessor creates a processor logging at level. A nil logger uses
// slog.Default().
func NewLogProcessor(logger *slog.Logger, level slog.Level) *LogProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProcessor{logger: logger, level: level}
}

func (p *LogProcessor) OnStart(span *StandardSpan) {}

func (p *LogProcessor) OnEnd(span *StandardSpan) {
	c := span.Context()

	attrs := []slog.Attr{
		slog.String("span", c.Name),
		slog.String("trace_id", c.TraceID),
		slog.String("span_id", c.SpanID),
		slog.Duration("duration", c.Duration()),
	}
	if c.ParentSpanID != "" {
		attrs = append(attrs, slog.String("parent_span_id", c.ParentSpanID))
	}

	keys := make([]string, 0, len(c.Attributes))
	for k := range c.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]any, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, slog.Any(k, c.Attributes[k]))
	}
	if len(fields) > 0 {
		attrs = append(attrs, slog.Group("attributes", fields...))
	}

	p.logger.LogAttrs(context.Background(), p.level, "span ended", attrs...)
}

func (p *LogProcessor) Shutdown(ctx context.Context) error {
	return nil
}

// MemoryProcessor keeps ended spans in memory, mostly for tests
type MemoryProcessor struct {
	mu       sync.Mutex
	spans    []*StandardSpan
	shutdown bool
}

func NewMemoryProcessor() *MemoryProcessor {
	return &MemoryProcessor{}
}

func (p *MemoryProcessor) OnStart(span *StandardSpan) {}

func (p *MemoryProcessor) OnEnd(span *StandardSpan) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return
	}
	p.spans = append(p.spans, span)
}

func (p *MemoryProcessor) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shutdown = true
	return nil
}

// Spans returns the ended spans in end order
func (p *MemoryProcessor) Spans() []*StandardSpan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*StandardSpan(nil), p.spans...)
}

// Names returns the names of the ended spans in end order
func (p *MemoryProcessor) Names() []string {
	spans := p.Spans()
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Context().Name
	}
	return names
}
