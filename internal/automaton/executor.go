package automaton

// executorAdapter wraps an Automaton value so it has a concrete type
// satisfying trie.Executor[State], without this package importing trie.
// A plain automaton.Automaton interface value could satisfy that
// interface structurally too, but Go cannot infer a generic type
// parameter from a bare interface value — callers passing an Automaton
// straight to a function like trie.SearchWith[V, S] would need to spell
// out S explicitly. Routing through a concrete type sidesteps that.
type executorAdapter struct {
	Automaton
}

// AsExecutor adapts a into the shape trie.SearchWith, trie.NewCursor, and
// the trie combinators expect.
func AsExecutor(a Automaton) executorAdapter {
	return executorAdapter{a}
}
