package domain

import (
	"strings"

	apperrors "github.com/virelproto/virel/internal/errors"
)

// Well-known vote tokens. The machine only assigns meaning to TokenHalt;
// any other configured token is an ordinary vote value.
const (
	// TokenHalt is the token whose quorum forces the fail-safe transition.
	TokenHalt = "HALT"
	// TokenRes is the conventional resume/continue vote token.
	TokenRes = "RES"
)

var (
	// ErrEmptyDomains indicates a configuration with no voting domains.
	ErrEmptyDomains = apperrors.New(apperrors.CodeConfigEmptyDomains, "at least one domain is required")
	// ErrEmptyDomainID indicates a blank domain identifier.
	ErrEmptyDomainID = apperrors.New(apperrors.CodeConfigEmptyDomainID, "domain identifier must not be empty")
	// ErrDuplicateDomain indicates a domain listed more than once.
	ErrDuplicateDomain = apperrors.New(apperrors.CodeConfigDuplicateDomain, "domains must be unique")
	// ErrEmptyTokens indicates a configuration with no vote tokens.
	ErrEmptyTokens = apperrors.New(apperrors.CodeConfigEmptyTokens, "at least one token is required")
	// ErrEmptyTokenID indicates a blank token identifier.
	ErrEmptyTokenID = apperrors.New(apperrors.CodeConfigEmptyTokenID, "token identifier must not be empty")
	// ErrDuplicateToken indicates a token listed more than once.
	ErrDuplicateToken = apperrors.New(apperrors.CodeConfigDuplicateToken, "tokens must be unique")
	// ErrNegativeBound indicates a negative counter bound or hold duration.
	ErrNegativeBound = apperrors.New(apperrors.CodeConfigNegativeBound, "bounds must not be negative")
)

// Config holds the immutable protocol constants supplied at construction.
type Config struct {
	// Domains are the voting constituencies, in iteration order.
	// Order matters: quorum resolution scans domains first to last.
	Domains []string
	// Tokens are the valid vote values.
	Tokens []string
	// EpochMax is the inclusive upper bound for the epoch counter.
	EpochMax int
	// LamportMax is the inclusive upper bound for the lamport counter.
	LamportMax int
	// HoldMs bounds the provisional timer. Retained for completeness;
	// no transition consults it.
	HoldMs int
}

// NormalizeConfig trims and validates protocol configuration, returning
// a copy whose slices are owned by the result.
func NormalizeConfig(cfg Config) (Config, error) {
	if len(cfg.Domains) == 0 {
		return Config{}, ErrEmptyDomains
	}
	if len(cfg.Tokens) == 0 {
		return Config{}, ErrEmptyTokens
	}
	if cfg.EpochMax < 0 || cfg.LamportMax < 0 || cfg.HoldMs < 0 {
		return Config{}, ErrNegativeBound
	}

	domains := make([]string, 0, len(cfg.Domains))
	seenDomains := make(map[string]struct{}, len(cfg.Domains))
	for _, d := range cfg.Domains {
		d = strings.TrimSpace(d)
		if d == "" {
			return Config{}, ErrEmptyDomainID
		}
		if _, ok := seenDomains[d]; ok {
			return Config{}, ErrDuplicateDomain
		}
		seenDomains[d] = struct{}{}
		domains = append(domains, d)
	}

	tokens := make([]string, 0, len(cfg.Tokens))
	seenTokens := make(map[string]struct{}, len(cfg.Tokens))
	for _, tok := range cfg.Tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Config{}, ErrEmptyTokenID
		}
		if _, ok := seenTokens[tok]; ok {
			return Config{}, ErrDuplicateToken
		}
		seenTokens[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	normalized := cfg
	normalized.Domains = domains
	normalized.Tokens = tokens
	return normalized, nil
}

// HasDomain reports whether d is a configured domain.
func (c Config) HasDomain(d string) bool {
	for _, known := range c.Domains {
		if known == d {
			return true
		}
	}
	return false
}

// HasToken reports whether tok is a configured token.
func (c Config) HasToken(tok string) bool {
	for _, known := range c.Tokens {
		if known == tok {
			return true
		}
	}
	return false
}
