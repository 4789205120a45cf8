package automaton

import "fuzzytrie/internal/casefold"

// PrefixAutomaton accepts every string starting with a fixed prefix. It
// satisfies Automaton so it can be joined against the trie on its own, or
// combined with a fuzzy automaton via trie.And to require results that
// are both within distance k of a query and carry a literal prefix.
//
// States 1..len(prefix) track how much of the prefix has matched so far;
// state len(prefix)+1 is the accepting sink that loops on any input.
type PrefixAutomaton struct {
	prefix []rune
	policy casefold.Policy
}

// NewPrefixAutomaton returns an automaton accepting strings with the
// given prefix under policy.
func NewPrefixAutomaton(prefix []rune, policy casefold.Policy) *PrefixAutomaton {
	return &PrefixAutomaton{prefix: prefix, policy: policy}
}

func (a *PrefixAutomaton) Start() State {
	return 1
}

func (a *PrefixAutomaton) Step(state State, r rune) (State, bool) {
	pos := int(state) - 1
	if pos < len(a.prefix) {
		if casefold.Equal(a.policy, a.prefix[pos], r) {
			return State(pos + 2), true
		}
		return DeadState, false
	}
	return state, true // past the prefix: accept and loop
}

func (a *PrefixAutomaton) IsFinal(state State) bool {
	if state == DeadState {
		return false
	}
	return int(state)-1 >= len(a.prefix)
}

func (a *PrefixAutomaton) Distance(State) int {
	return 0
}
