package config

import (
	"errors"
	"testing"

	"github.com/virelproto/virel/internal/protocol/domain"
)

func TestLoadProtocolDefaults(t *testing.T) {
	t.Setenv("VIREL_DOMAINS", "A,B")

	cfg, err := LoadProtocol()
	if err != nil {
		t.Fatalf("load protocol: %v", err)
	}

	if len(cfg.Domains) != 2 || cfg.Domains[0] != "A" || cfg.Domains[1] != "B" {
		t.Fatalf("expected domains [A B], got %v", cfg.Domains)
	}
	if len(cfg.Tokens) != 2 || cfg.Tokens[0] != domain.TokenHalt || cfg.Tokens[1] != domain.TokenRes {
		t.Fatalf("expected default tokens [HALT RES], got %v", cfg.Tokens)
	}
	if cfg.EpochMax != 5 || cfg.LamportMax != 5 || cfg.HoldMs != 0 {
		t.Fatalf("expected default bounds 5/5/0, got %d/%d/%d", cfg.EpochMax, cfg.LamportMax, cfg.HoldMs)
	}
}

func TestLoadProtocolOverrides(t *testing.T) {
	t.Setenv("VIREL_DOMAINS", "east,west,arbiter")
	t.Setenv("VIREL_TOKENS", "HALT,RES,ABSTAIN")
	t.Setenv("VIREL_EPOCH_MAX", "9")
	t.Setenv("VIREL_LAMPORT_MAX", "3")
	t.Setenv("VIREL_HOLD_MS", "250")

	cfg, err := LoadProtocol()
	if err != nil {
		t.Fatalf("load protocol: %v", err)
	}

	if len(cfg.Domains) != 3 || cfg.Domains[2] != "arbiter" {
		t.Fatalf("expected 3 domains ending in arbiter, got %v", cfg.Domains)
	}
	if !cfg.HasToken("ABSTAIN") {
		t.Fatalf("expected ABSTAIN token, got %v", cfg.Tokens)
	}
	if cfg.EpochMax != 9 || cfg.LamportMax != 3 || cfg.HoldMs != 250 {
		t.Fatalf("expected bounds 9/3/250, got %d/%d/%d", cfg.EpochMax, cfg.LamportMax, cfg.HoldMs)
	}
}

func TestLoadProtocolRejectsInvalidConfig(t *testing.T) {
	t.Setenv("VIREL_DOMAINS", "A,A")

	_, err := LoadProtocol()
	if !errors.Is(err, domain.ErrDuplicateDomain) {
		t.Fatalf("expected ErrDuplicateDomain, got %v", err)
	}
}

func TestLoadProtocolRequiresDomains(t *testing.T) {
	// VIREL_DOMAINS unset: the env schema marks it required.
	t.Setenv("VIREL_DOMAINS", "")
	if _, err := LoadProtocol(); err == nil {
		t.Fatal("expected error when domains are empty")
	}
}
