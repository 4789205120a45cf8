// Package automaton builds Levenshtein acceptors over Unicode code points.
// Given a query and a distance bound k, Construct (see factory.go) selects
// the most specialized of several backends whose accepted language is
// exactly the set of strings within distance k of the query, under either
// the classical Levenshtein metric or the Restricted Edit (OSA) metric.
//
// All non-trivial term expansion — fuzzy, prefix, wildcard — runs as an
// Automaton walk joined against the trie, never as a post-hoc filter over
// a full key scan.
package automaton

// State represents a state in one automaton instance. It is meaningful
// only relative to the Automaton that produced it; states from different
// instances must never be mixed.
type State uint64

// DeadState is the sink state from which no accepting state is reachable.
const DeadState State = 0

// Automaton is the contract every backend satisfies. Its shape mirrors
// trie.Executor[State] exactly so any Automaton can drive a trie walk once
// wrapped by a concrete adapter.
type Automaton interface {
	// Start returns the initial state, before any input has been consumed.
	Start() State

	// Step consumes one code point. ok is false when the branch is dead —
	// no string extending the consumed input can still be accepted, and
	// the caller must stop descending that branch of the trie.
	Step(state State, r rune) (next State, ok bool)

	// IsFinal reports whether the input consumed so far is accepted.
	IsFinal(state State) bool

	// Distance returns the achieved distance when IsFinal holds. Its
	// value is unspecified otherwise.
	Distance(state State) int
}
