// Package domain implements the USP_VIREL protocol state machine: the
// guarded actions that move a component from OPERATIONAL into the
// irreversible SAFE_ON fail-safe mode under quorum voting, and the
// invariants that must hold after every transition.
package domain

import (
	"context"

	apperrors "github.com/virelproto/virel/internal/errors"
	"github.com/virelproto/virel/internal/protocol/event"
)

// State identifies the protocol mode of the component.
type State string

const (
	// StateOperational is the initial, normal operating mode.
	StateOperational State = "OPERATIONAL"
	// StateSafeOn is the irreversible fail-safe mode. Once entered,
	// no action returns the machine to OPERATIONAL.
	StateSafeOn State = "SAFE_ON"
)

// IsValid reports whether the state is a defined protocol mode.
func (s State) IsValid() bool {
	return s == StateOperational || s == StateSafeOn
}

// StepTag identifies which action AutoAdvance selected.
type StepTag string

const (
	// StepHaltPrecedence tags a fired fail-safe transition.
	StepHaltPrecedence StepTag = "halt_precedence"
	// StepSafeOn tags the SAFE_ON self-loop.
	StepSafeOn StepTag = "safe_on"
	// StepIdle tags the stuttering no-op step.
	StepIdle StepTag = "idle"
)

// maxVotesPerDomain bounds each domain's vote sequence, keeping the
// model finite-state.
const maxVotesPerDomain = 2

var (
	// ErrUnknownDomain indicates a vote cast into an unconfigured domain.
	ErrUnknownDomain = apperrors.New(apperrors.CodeProtocolUnknownDomain, "unknown domain")
	// ErrUnknownToken indicates a vote with an unconfigured token.
	ErrUnknownToken = apperrors.New(apperrors.CodeProtocolUnknownToken, "unknown token")
	// ErrLamportOverflow indicates the fail-safe transition would push
	// the lamport counter past its configured bound.
	ErrLamportOverflow = apperrors.New(apperrors.CodeProtocolLamportOverflow, "lamport counter would exceed its bound")
)

// Machine is the protocol state machine. It is a plain in-memory value
// with no locking of its own; callers that share one instance across
// goroutines must serialize access externally.
type Machine struct {
	cfg Config

	// state transitions OPERATIONAL -> SAFE_ON exactly once.
	state State
	// epoch is reserved for future epoch-advance actions; no current
	// action mutates it.
	epoch int
	// lamport increases by 1 exactly when the fail-safe transition
	// fires; otherwise unchanged.
	lamport int
	// quorumVotes holds one append-only vote sequence per domain.
	quorumVotes map[string][]string
	// provisionalTimer is reserved; no current action mutates it.
	provisionalTimer int

	sink event.Sink
}

// MachineOptions holds optional initial overrides for a new machine.
// The zero value yields the protocol's initial state.
type MachineOptions struct {
	// InitialState overrides the starting state. Empty means OPERATIONAL.
	InitialState State
	// InitialVotes overrides the vote mapping. Nil synthesizes one empty
	// sequence per configured domain; a supplied mapping must satisfy
	// the type invariant exactly.
	InitialVotes map[string][]string
	// Epoch, Lamport, and ProvisionalTimer override the counters.
	Epoch            int
	Lamport          int
	ProvisionalTimer int
	// Sink receives trace events. Nil disables emission.
	Sink event.Sink
}

// NewMachine constructs a protocol machine from a configuration and
// optional overrides, validating the initial state with the same
// invariant check every action uses.
func NewMachine(cfg Config, opts MachineOptions) (*Machine, error) {
	normalized, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	state := opts.InitialState
	if state == "" {
		state = StateOperational
	}

	votes := make(map[string][]string, len(normalized.Domains))
	if opts.InitialVotes == nil {
		for _, d := range normalized.Domains {
			votes[d] = nil
		}
	} else {
		for d, seq := range opts.InitialVotes {
			votes[d] = append([]string(nil), seq...)
		}
	}

	m := &Machine{
		cfg:              normalized,
		state:            state,
		epoch:            opts.Epoch,
		lamport:          opts.Lamport,
		quorumVotes:      votes,
		provisionalTimer: opts.ProvisionalTimer,
		sink:             opts.Sink,
	}
	if err := m.CheckInvariants(); err != nil {
		return nil, err
	}
	return m, nil
}

// CastVote appends token to the given domain's vote sequence.
//
// An unconfigured domain or token is a contract violation and returns
// an error with no effect. The guard fails silently (false, nil) when
// the machine is no longer OPERATIONAL or the domain's sequence is
// full. A fatal invariant error after the append indicates a defect.
func (m *Machine) CastVote(domain, token string) (bool, error) {
	if !m.cfg.HasDomain(domain) {
		return false, apperrors.WithMetadata(apperrors.CodeProtocolUnknownDomain, "unknown domain", map[string]string{"domain": domain})
	}
	if !m.cfg.HasToken(token) {
		return false, apperrors.WithMetadata(apperrors.CodeProtocolUnknownToken, "unknown token", map[string]string{"token": token})
	}

	if m.state != StateOperational {
		return false, nil
	}
	if len(m.quorumVotes[domain]) >= maxVotesPerDomain {
		return false, nil
	}

	m.quorumVotes[domain] = append(m.quorumVotes[domain], token)
	m.emit(event.Event{
		Type:    event.TypeVoteCast,
		Domain:  domain,
		Token:   token,
		Lamport: m.lamport,
	})

	if err := m.CheckInvariants(); err != nil {
		return false, err
	}
	return true, nil
}

// HaltPrecedence fires the OPERATIONAL -> SAFE_ON transition when some
// domain has a full vote sequence containing a HALT token.
//
// Domains are scanned in configured order and the first qualifying
// domain wins, so resolution is deterministic. If a domain qualifies
// but the lamport counter is already at its bound, the transition
// fails with a fatal overflow error rather than a silent refusal.
func (m *Machine) HaltPrecedence() (bool, error) {
	if m.state != StateOperational {
		return false, nil
	}

	for _, d := range m.cfg.Domains {
		if len(m.quorumVotes[d]) < maxVotesPerDomain || !m.hasHalt(d) {
			continue
		}
		if m.lamport >= m.cfg.LamportMax {
			return false, ErrLamportOverflow
		}

		m.state = StateSafeOn
		m.lamport++
		m.emit(event.Event{
			Type:    event.TypeSafeOnEntered,
			Domain:  d,
			Lamport: m.lamport,
		})

		if err := m.CheckInvariants(); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// SafeOnStaysSafe is the SAFE_ON self-loop: it mutates nothing and
// re-checks invariants. It returns true iff the machine is SAFE_ON.
func (m *Machine) SafeOnStaysSafe() (bool, error) {
	if m.state != StateSafeOn {
		return false, nil
	}
	if err := m.CheckInvariants(); err != nil {
		return false, err
	}
	return true, nil
}

// Idle is the stuttering step: always enabled, mutates nothing,
// re-checks invariants.
func (m *Machine) Idle() error {
	return m.CheckInvariants()
}

// AutoAdvance picks the next enabled action deterministically:
// HaltPrecedence first, then the SAFE_ON self-loop, then Idle.
// CastVote is excluded because it needs a caller-supplied domain and
// token and cannot be chosen here.
func (m *Machine) AutoAdvance() (StepTag, error) {
	fired, err := m.HaltPrecedence()
	if err != nil {
		return "", err
	}
	if fired {
		return StepHaltPrecedence, nil
	}

	if m.state == StateSafeOn {
		if _, err := m.SafeOnStaysSafe(); err != nil {
			return "", err
		}
		return StepSafeOn, nil
	}

	if err := m.Idle(); err != nil {
		return "", err
	}
	return StepIdle, nil
}

// hasHalt reports whether the domain's vote sequence contains HALT.
func (m *Machine) hasHalt(domain string) bool {
	for _, tok := range m.quorumVotes[domain] {
		if tok == TokenHalt {
			return true
		}
	}
	return false
}

// emit forwards a trace event to the configured sink. Emission is
// advisory: sink errors never change protocol behavior.
func (m *Machine) emit(evt event.Event) {
	if m.sink == nil {
		return
	}
	_ = m.sink.Append(context.Background(), evt)
}
