package domain

import apperrors "github.com/virelproto/virel/internal/errors"

var (
	// ErrInvariantState indicates an undefined protocol state value.
	ErrInvariantState = apperrors.New(apperrors.CodeInvariantState, "state is not a defined protocol mode")
	// ErrInvariantEpochBounds indicates the epoch counter left its bounds.
	ErrInvariantEpochBounds = apperrors.New(apperrors.CodeInvariantEpochBounds, "epoch counter out of bounds")
	// ErrInvariantLamportBounds indicates the lamport counter left its bounds.
	ErrInvariantLamportBounds = apperrors.New(apperrors.CodeInvariantLamportBounds, "lamport counter out of bounds")
	// ErrInvariantVoteDomains indicates the vote mapping does not have
	// exactly one entry per configured domain.
	ErrInvariantVoteDomains = apperrors.New(apperrors.CodeInvariantVoteDomains, "vote mapping must have exactly one entry per domain")
	// ErrInvariantVoteToken indicates an unconfigured token inside a
	// vote sequence.
	ErrInvariantVoteToken = apperrors.New(apperrors.CodeInvariantVoteToken, "vote sequence contains an unconfigured token")
	// ErrInvariantVoteBound indicates a vote sequence past its capacity.
	ErrInvariantVoteBound = apperrors.New(apperrors.CodeInvariantVoteBound, "vote sequence exceeds its capacity")
	// ErrInvariantTimer indicates a negative provisional timer.
	ErrInvariantTimer = apperrors.New(apperrors.CodeInvariantTimer, "provisional timer must not be negative")
	// ErrInvariantSafeState indicates SAFE_ON was reached or held
	// without a witnessing HALT vote in any domain.
	ErrInvariantSafeState = apperrors.New(apperrors.CodeInvariantSafeState, "SAFE_ON without a HALT vote in any domain")
)

// CheckInvariants validates the type invariant and the safe-state
// invariant. Every public action runs this before returning; a non-nil
// result from inside an action indicates a defect in the guard logic,
// not a caller error.
func (m *Machine) CheckInvariants() error {
	if err := m.checkTypeOK(); err != nil {
		return err
	}
	return m.checkSafeState()
}

// checkTypeOK validates the shape and bounds of every state field.
func (m *Machine) checkTypeOK() error {
	if !m.state.IsValid() {
		return ErrInvariantState
	}
	if m.epoch < 0 || m.epoch > m.cfg.EpochMax {
		return ErrInvariantEpochBounds
	}
	if m.lamport < 0 || m.lamport > m.cfg.LamportMax {
		return ErrInvariantLamportBounds
	}

	if len(m.quorumVotes) != len(m.cfg.Domains) {
		return ErrInvariantVoteDomains
	}
	for _, d := range m.cfg.Domains {
		seq, ok := m.quorumVotes[d]
		if !ok {
			return ErrInvariantVoteDomains
		}
		if len(seq) > maxVotesPerDomain {
			return ErrInvariantVoteBound
		}
		for _, tok := range seq {
			if !m.cfg.HasToken(tok) {
				return ErrInvariantVoteToken
			}
		}
	}

	if m.provisionalTimer < 0 {
		return ErrInvariantTimer
	}
	return nil
}

// checkSafeState validates that SAFE_ON is witnessed by a HALT vote.
func (m *Machine) checkSafeState() error {
	if m.state != StateSafeOn {
		return nil
	}
	for _, d := range m.cfg.Domains {
		if m.hasHalt(d) {
			return nil
		}
	}
	return ErrInvariantSafeState
}
