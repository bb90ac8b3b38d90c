package domain

// Snapshot is a read-only copy of the machine's state for display and
// reporting collaborators. Mutating a snapshot never affects the
// machine.
type Snapshot struct {
	State            State
	Epoch            int
	Lamport          int
	ProvisionalTimer int
	QuorumVotes      map[string][]string
}

// State returns the current protocol mode.
func (m *Machine) State() State {
	return m.state
}

// Epoch returns the epoch counter.
func (m *Machine) Epoch() int {
	return m.epoch
}

// Lamport returns the lamport counter.
func (m *Machine) Lamport() int {
	return m.lamport
}

// ProvisionalTimer returns the provisional timer counter.
func (m *Machine) ProvisionalTimer() int {
	return m.provisionalTimer
}

// Config returns the machine's normalized configuration with copied
// slices.
func (m *Machine) Config() Config {
	cfg := m.cfg
	cfg.Domains = append([]string(nil), m.cfg.Domains...)
	cfg.Tokens = append([]string(nil), m.cfg.Tokens...)
	return cfg
}

// Votes returns a copy of the given domain's vote sequence and whether
// the domain is configured.
func (m *Machine) Votes(domain string) ([]string, bool) {
	seq, ok := m.quorumVotes[domain]
	if !ok {
		return nil, false
	}
	return append([]string(nil), seq...), true
}

// Snapshot returns a deep copy of all protocol state.
func (m *Machine) Snapshot() Snapshot {
	votes := make(map[string][]string, len(m.quorumVotes))
	for d, seq := range m.quorumVotes {
		votes[d] = append([]string(nil), seq...)
	}
	return Snapshot{
		State:            m.state,
		Epoch:            m.epoch,
		Lamport:          m.lamport,
		ProvisionalTimer: m.provisionalTimer,
		QuorumVotes:      votes,
	}
}
