package telemetry

import (
	"context"
	"sync"

	"github.com/virelproto/virel/internal/protocol/event"
)

// MemorySink records trace events in emission order. It serves tests
// and callers that want a returned event log instead of a live sink.
type MemorySink struct {
	mu     sync.Mutex
	events []event.Event
}

// Append records one event. A nil sink is a no-op.
func (s *MemorySink) Append(_ context.Context, evt event.Event) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

// Events returns a copy of the recorded events in order.
func (s *MemorySink) Events() []event.Event {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.events...)
}

// Len returns the number of recorded events.
func (s *MemorySink) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
