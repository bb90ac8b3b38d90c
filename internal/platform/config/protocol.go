package config

import "github.com/virelproto/virel/internal/protocol/domain"

// Protocol declares the environment schema for the protocol constants.
type Protocol struct {
	// Domains lists the voting domains in quorum-resolution order.
	Domains []string `env:"VIREL_DOMAINS,required" envSeparator:","`
	// Tokens lists the valid vote tokens.
	Tokens []string `env:"VIREL_TOKENS" envSeparator:"," envDefault:"HALT,RES"`
	// EpochMax bounds the epoch counter.
	EpochMax int `env:"VIREL_EPOCH_MAX" envDefault:"5"`
	// LamportMax bounds the lamport counter.
	LamportMax int `env:"VIREL_LAMPORT_MAX" envDefault:"5"`
	// HoldMs bounds the provisional timer.
	HoldMs int `env:"VIREL_HOLD_MS" envDefault:"0"`
}

// LoadProtocol reads the protocol environment schema and returns a
// validated domain configuration.
func LoadProtocol() (domain.Config, error) {
	var p Protocol
	if err := ParseEnv(&p); err != nil {
		return domain.Config{}, err
	}
	return domain.NormalizeConfig(domain.Config{
		Domains:    p.Domains,
		Tokens:     p.Tokens,
		EpochMax:   p.EpochMax,
		LamportMax: p.LamportMax,
		HoldMs:     p.HoldMs,
	})
}
