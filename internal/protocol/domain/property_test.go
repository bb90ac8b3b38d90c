package domain

import (
	"errors"
	"math/rand"
	"testing"
)

// Randomized operation sequences, driven by seeded generators so
// failures reproduce. After every operation the invariants must hold,
// lamport must be non-decreasing, SAFE_ON must be permanent, and no
// vote sequence may exceed its capacity.

const (
	randomSequenceRuns  = 50
	randomSequenceSteps = 200
)

func applyRandomOperation(t *testing.T, rng *rand.Rand, m *Machine) {
	t.Helper()

	domains := []string{"A", "B", "Z"}
	tokens := []string{TokenHalt, TokenRes, "VETO"}

	switch rng.Intn(5) {
	case 0, 1:
		domain := domains[rng.Intn(len(domains))]
		token := tokens[rng.Intn(len(tokens))]
		valid := domain != "Z" && token != "VETO"
		_, err := m.CastVote(domain, token)
		if valid && err != nil {
			t.Fatalf("cast %s in %s: %v", token, domain, err)
		}
		if !valid && err == nil {
			t.Fatalf("expected contract violation for %s in %s", token, domain)
		}
	case 2:
		if _, err := m.HaltPrecedence(); err != nil && !errors.Is(err, ErrLamportOverflow) {
			t.Fatalf("halt precedence: %v", err)
		}
	case 3:
		if _, err := m.SafeOnStaysSafe(); err != nil {
			t.Fatalf("safe on stays safe: %v", err)
		}
	default:
		if err := m.Idle(); err != nil {
			t.Fatalf("idle: %v", err)
		}
	}
}

func TestRandomSequencesPreserveInvariants(t *testing.T) {
	for run := 0; run < randomSequenceRuns; run++ {
		rng := rand.New(rand.NewSource(int64(run)))
		m := newTestMachine(t, MachineOptions{})

		lamport := m.Lamport()
		safeOnSeen := false

		for step := 0; step < randomSequenceSteps; step++ {
			applyRandomOperation(t, rng, m)

			if err := m.CheckInvariants(); err != nil {
				t.Fatalf("run %d step %d: invariants violated: %v", run, step, err)
			}

			if m.Lamport() < lamport {
				t.Fatalf("run %d step %d: lamport decreased from %d to %d", run, step, lamport, m.Lamport())
			}
			lamport = m.Lamport()

			if safeOnSeen && m.State() != StateSafeOn {
				t.Fatalf("run %d step %d: SAFE_ON reverted to %v", run, step, m.State())
			}
			if m.State() == StateSafeOn {
				safeOnSeen = true
			}

			snap := m.Snapshot()
			for d, seq := range snap.QuorumVotes {
				if len(seq) > 2 {
					t.Fatalf("run %d step %d: domain %s holds %d votes", run, step, d, len(seq))
				}
			}
		}
	}
}

func TestLamportIncrementsExactlyOncePerFiring(t *testing.T) {
	for run := 0; run < randomSequenceRuns; run++ {
		rng := rand.New(rand.NewSource(int64(1000 + run)))
		m := newTestMachine(t, MachineOptions{})

		firings := 0
		for step := 0; step < randomSequenceSteps; step++ {
			before := m.Lamport()
			fired, err := m.HaltPrecedence()
			if err != nil {
				t.Fatalf("run %d step %d: halt precedence: %v", run, step, err)
			}
			if fired {
				firings++
				if m.Lamport() != before+1 {
					t.Fatalf("run %d step %d: expected lamport %d, got %d", run, step, before+1, m.Lamport())
				}
			} else if m.Lamport() != before {
				t.Fatalf("run %d step %d: lamport changed without firing", run, step)
			}

			domain := []string{"A", "B"}[rng.Intn(2)]
			token := []string{TokenHalt, TokenRes}[rng.Intn(2)]
			if _, err := m.CastVote(domain, token); err != nil {
				t.Fatalf("run %d step %d: cast vote: %v", run, step, err)
			}
		}

		if firings > 1 {
			t.Fatalf("run %d: transition fired %d times", run, firings)
		}
		if firings == 1 && m.Lamport() != 1 {
			t.Fatalf("run %d: expected lamport 1 after single firing, got %d", run, m.Lamport())
		}
	}
}

func TestEpochAndTimerStayInert(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := newTestMachine(t, MachineOptions{Epoch: 3, ProvisionalTimer: 7})

	for step := 0; step < randomSequenceSteps; step++ {
		applyRandomOperation(t, rng, m)
		if m.Epoch() != 3 {
			t.Fatalf("step %d: epoch mutated to %d", step, m.Epoch())
		}
		if m.ProvisionalTimer() != 7 {
			t.Fatalf("step %d: provisional timer mutated to %d", step, m.ProvisionalTimer())
		}
	}
}
