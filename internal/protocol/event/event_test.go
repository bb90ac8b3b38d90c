package event

import "testing"

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value Type
		valid bool
	}{
		{name: "vote cast", value: TypeVoteCast, valid: true},
		{name: "safe on entered", value: TypeSafeOnEntered, valid: true},
		{name: "empty", value: Type(""), valid: false},
		{name: "whitespace", value: Type("   "), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsValid(); got != tt.valid {
				t.Fatalf("expected IsValid=%v for %q, got %v", tt.valid, tt.value, got)
			}
		})
	}
}

func TestTypePrefix(t *testing.T) {
	tests := []struct {
		name   string
		value  Type
		prefix string
	}{
		{name: "vote cast", value: TypeVoteCast, prefix: "vote"},
		{name: "safe on entered", value: TypeSafeOnEntered, prefix: "quorum"},
		{name: "no separator", value: Type("idle"), prefix: "idle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Prefix(); got != tt.prefix {
				t.Fatalf("expected prefix %q for %q, got %q", tt.prefix, tt.value, got)
			}
		})
	}
}
