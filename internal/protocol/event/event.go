// Package event defines the trace-event vocabulary emitted by the
// protocol machine and the sink interface that receives it.
//
// Trace events are facts about mutations that have occurred. They are
// advisory: a caller may route them to any sink or ignore them, and a
// failing sink never changes protocol behavior.
package event

import (
	"context"
	"strings"
	"time"
)

// Type identifies the type of a trace event.
type Type string

const (
	// TypeVoteCast records a token appended to a domain's vote sequence.
	TypeVoteCast Type = "vote.cast"
	// TypeSafeOnEntered records the transition into the fail-safe state,
	// naming the domain whose quorum triggered it.
	TypeSafeOnEntered Type = "quorum.safe_on_entered"
)

// Event represents an immutable trace event emitted by the machine.
type Event struct {
	// Seq is the emission sequence number (starts at 1).
	// Assigned by the emitter on append.
	Seq uint64
	// Timestamp is when the event was emitted.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// Domain is the voting domain the event concerns.
	Domain string
	// Token is the vote token, for vote.cast events.
	Token string
	// Lamport is the machine's lamport counter after the mutation.
	Lamport int
}

// Sink receives trace events in emission order.
type Sink interface {
	Append(ctx context.Context, evt Event) error
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Prefix returns the category prefix of the event type (e.g., "vote").
func (t Type) Prefix() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
