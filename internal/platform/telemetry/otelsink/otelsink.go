// Package otelsink records protocol trace events on OpenTelemetry
// spans.
package otelsink

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/virelproto/virel/internal/protocol/event"
)

// Sink is an event.Sink that attaches each trace event to the span in
// the caller's context. When no span is recording, a short span is
// started on the configured tracer so the event is not lost.
type Sink struct {
	tracer trace.Tracer
}

// New creates a sink recording on tracer.
func New(tracer trace.Tracer) *Sink {
	return &Sink{tracer: tracer}
}

// Append records one trace event as a span event.
func (s *Sink) Append(ctx context.Context, evt event.Event) error {
	if s == nil || s.tracer == nil {
		return nil
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		_, owned := s.tracer.Start(ctx, evt.Type.Prefix())
		defer owned.End()
		span = owned
	}

	span.AddEvent(string(evt.Type), trace.WithAttributes(attributes(evt)...))
	return nil
}

func attributes(evt event.Event) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("virel.domain", evt.Domain),
		attribute.Int("virel.lamport", evt.Lamport),
		attribute.Int64("virel.seq", int64(evt.Seq)),
	}
	if evt.Token != "" {
		attrs = append(attrs, attribute.String("virel.token", evt.Token))
	}
	return attrs
}
