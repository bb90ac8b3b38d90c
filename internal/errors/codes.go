// Package errors provides structured error handling for the protocol model.
package errors

import "strings"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeConfigEmptyDomains    Code = "CONFIG_EMPTY_DOMAINS"
	CodeConfigEmptyDomainID   Code = "CONFIG_EMPTY_DOMAIN_ID"
	CodeConfigDuplicateDomain Code = "CONFIG_DUPLICATE_DOMAIN"
	CodeConfigEmptyTokens     Code = "CONFIG_EMPTY_TOKENS"
	CodeConfigEmptyTokenID    Code = "CONFIG_EMPTY_TOKEN_ID"
	CodeConfigDuplicateToken  Code = "CONFIG_DUPLICATE_TOKEN"
	CodeConfigNegativeBound   Code = "CONFIG_NEGATIVE_BOUND"

	// Caller contract errors
	CodeProtocolUnknownDomain Code = "PROTOCOL_UNKNOWN_DOMAIN"
	CodeProtocolUnknownToken  Code = "PROTOCOL_UNKNOWN_TOKEN"

	// Protocol fatal errors
	CodeProtocolLamportOverflow Code = "PROTOCOL_LAMPORT_OVERFLOW"

	// Invariant violations
	CodeInvariantState         Code = "INVARIANT_STATE"
	CodeInvariantEpochBounds   Code = "INVARIANT_EPOCH_BOUNDS"
	CodeInvariantLamportBounds Code = "INVARIANT_LAMPORT_BOUNDS"
	CodeInvariantVoteDomains   Code = "INVARIANT_VOTE_DOMAINS"
	CodeInvariantVoteToken     Code = "INVARIANT_VOTE_TOKEN"
	CodeInvariantVoteBound     Code = "INVARIANT_VOTE_BOUND"
	CodeInvariantTimer         Code = "INVARIANT_TIMER"
	CodeInvariantSafeState     Code = "INVARIANT_SAFE_STATE"
)

const invariantPrefix = "INVARIANT_"

// IsFatal reports whether the code identifies an unrecoverable defect:
// an invariant violation or a counter overflow, as opposed to a
// contract violation the caller can correct and retry.
func (c Code) IsFatal() bool {
	return c == CodeProtocolLamportOverflow || strings.HasPrefix(string(c), invariantPrefix)
}
