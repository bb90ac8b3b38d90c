// Package telemetry routes protocol trace events to sinks.
//
// The machine emits bare events; the emitter stamps timestamps and
// sequence numbers before forwarding, so sinks receive a totally
// ordered stream without the core knowing about clocks.
package telemetry

import (
	"context"
	"time"

	"github.com/virelproto/virel/internal/protocol/event"
)

// Emitter decorates trace events with timestamps and sequence numbers
// and forwards them to a sink. A nil emitter or nil sink is a no-op.
type Emitter struct {
	sink  event.Sink
	clock func() time.Time
	seq   uint64
}

// NewEmitter creates an emitter forwarding to sink. A nil clock uses
// time.Now.
func NewEmitter(sink event.Sink, clock func() time.Time) *Emitter {
	return &Emitter{sink: sink, clock: clock}
}

// Append stamps and forwards one trace event. It implements event.Sink
// so an emitter can sit directly behind a machine.
func (e *Emitter) Append(ctx context.Context, evt event.Event) error {
	if e == nil || e.sink == nil {
		return nil
	}

	if evt.Timestamp.IsZero() {
		now := e.clock
		if now == nil {
			now = time.Now
		}
		evt.Timestamp = now().UTC()
	}
	if evt.Seq == 0 {
		e.seq++
		evt.Seq = e.seq
	}

	return e.sink.Append(ctx, evt)
}
