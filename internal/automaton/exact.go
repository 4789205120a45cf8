package automaton

import "fuzzytrie/internal/casefold"

// exactAutomaton is the k=0 degenerate case: it accepts exactly the query
// string under the configured case policy, nothing else.
type exactAutomaton struct {
	query  []rune
	policy casefold.Policy
}

func newExactAutomaton(query []rune, policy casefold.Policy) *exactAutomaton {
	return &exactAutomaton{query: query, policy: policy}
}

// Start encodes position 0 as state 1 (0 is DeadState).
func (a *exactAutomaton) Start() State {
	return 1
}

func (a *exactAutomaton) Step(state State, r rune) (State, bool) {
	pos := int(state) - 1
	if pos < 0 || pos >= len(a.query) {
		return DeadState, false
	}
	if !casefold.Equal(a.policy, a.query[pos], r) {
		return DeadState, false
	}
	return State(pos + 2), true
}

func (a *exactAutomaton) IsFinal(state State) bool {
	if state == DeadState {
		return false
	}
	return int(state)-1 == len(a.query)
}

func (a *exactAutomaton) Distance(State) int {
	return 0
}
