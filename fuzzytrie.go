// Package fuzzytrie is an in-memory index that answers two questions over
// a fixed set of string keys: does this exact key exist, and which keys
// lie within a given edit distance of a query. Construction is a one-shot
// Build from a static key/value set; the result is an immutable,
// concurrency-safe Store.
//
// Fuzzy search is driven by a Levenshtein automaton built once per query
// via the Schulz-Mihov parametric table (small k) or a direct windowed
// simulation (larger k, or the Restricted Edit metric), joined against a
// suffix-compressed trie in a single depth-first walk. Custom acceptance
// logic — a literal prefix constraint, a wildcard, any combination of
// these with a fuzzy automaton — can be supplied directly to SearchWith
// via the trie.Executor protocol, which requires no import of this
// package's internals.
package fuzzytrie

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"fuzzytrie/internal/automaton"
	"fuzzytrie/internal/casefold"
	"fuzzytrie/internal/metric"
	"fuzzytrie/internal/trie"
)

// Policy selects ordinal or case-folded comparison, for both exact lookup
// and fuzzy search.
type Policy = casefold.Policy

const (
	Sensitive   = casefold.Sensitive
	Insensitive = casefold.Insensitive
)

// Metric selects the edit-distance recurrence used by fuzzy search.
type Metric = metric.Metric

const (
	Levenshtein    = metric.Levenshtein
	RestrictedEdit = metric.RestrictedEdit
)

// KV is one key/value pair supplied to Build.
type KV[V comparable] = trie.KV[V]

// Result is one fuzzy search match.
type Result[V comparable] = trie.Result[V]

var (
	// ErrDuplicateKey is returned by Build when two keys compare equal
	// under the chosen Policy.
	ErrDuplicateKey = trie.ErrDuplicateKey

	// ErrInvalidInput is returned when a key or query is not valid UTF-8.
	ErrInvalidInput = trie.ErrInvalidInput

	// ErrInvalidDistance is returned by Search when k is negative.
	ErrInvalidDistance = automaton.ErrInvalidDistance

	// ErrDistanceCeilingExceeded is returned by Search when k exceeds the
	// supported ceiling.
	ErrDistanceCeilingExceeded = automaton.ErrDistanceCeilingExceeded

	// ErrCasePolicyMismatch is returned when a Search call's policy
	// disagrees with the Policy the Store was built with; the automaton
	// and the trie must fold case the same way or results are meaningless.
	ErrCasePolicyMismatch = errors.New("fuzzytrie: search policy does not match store policy")
)

// Store is a built, immutable fuzzy index. It is safe for concurrent use
// by any number of goroutines: Build is the only write.
type Store[V comparable] struct {
	inner   *trie.Store[V]
	factory *automaton.Factory
	policy  Policy
}

// Build constructs a Store from pairs. V must be comparable, since search
// results are deduplicated by (distance, value) using Go's built-in
// equality.
func Build[V comparable](pairs []KV[V], policy Policy) (*Store[V], error) {
	inner, err := trie.Build(pairs, policy)
	if err != nil {
		return nil, err
	}
	return &Store[V]{inner: inner, factory: automaton.NewFactory(), policy: policy}, nil
}

// Policy reports the case policy the store was built with.
func (s *Store[V]) Policy() Policy {
	return s.policy
}

// SetLogger redirects the store's automaton construction logging
// (table-build Debug events, windowed-fallback Warn events) to l. The hot
// Step path itself never logs. Unset, logging goes to slog.Default().
func (s *Store[V]) SetLogger(l *slog.Logger) {
	s.factory.WithLogger(l)
}

// TryGet looks up key exactly.
func (s *Store[V]) TryGet(key string) (V, bool) {
	return s.inner.TryGet(key)
}

// Search returns every key within distance k of query, under metric m.
// policy must match the Policy the Store was built with.
func (s *Store[V]) Search(query string, k int, m Metric, policy Policy) ([]Result[V], error) {
	a, err := s.construct(query, k, m, policy)
	if err != nil {
		return nil, err
	}
	return trie.SearchWith(s.inner, automaton.AsExecutor(a)), nil
}

// Enumerate returns a lazy cursor over the same results Search would
// return, produced incrementally as the caller advances it.
func (s *Store[V]) Enumerate(query string, k int, m Metric, policy Policy) (*trie.Cursor[V, automaton.State], error) {
	a, err := s.construct(query, k, m, policy)
	if err != nil {
		return nil, err
	}
	return trie.NewCursor[V](s.inner, automaton.AsExecutor(a)), nil
}

func (s *Store[V]) construct(query string, k int, m Metric, policy Policy) (automaton.Automaton, error) {
	if policy != s.policy {
		return nil, fmt.Errorf("%w: store=%v query=%v", ErrCasePolicyMismatch, s.policy, policy)
	}
	if !utf8.ValidString(query) {
		return nil, fmt.Errorf("%w: query %q", ErrInvalidInput, query)
	}
	return s.factory.Construct([]rune(query), k, m, policy)
}

// SearchWith runs a caller-supplied executor against the store directly,
// bypassing the built-in automaton factory. Use this for prefix,
// wildcard, or combinator searches built from internal/trie's And and
// WithMaxLength, or any other trie.Executor implementation.
func SearchWith[V comparable, S any](s *Store[V], ex trie.Executor[S]) []Result[V] {
	return trie.SearchWith(s.inner, ex)
}

// EnumerateWith runs a caller-supplied executor against the store lazily,
// mirroring SearchWith but returning a Cursor that produces matches
// incrementally as the caller advances it. Use this for lazy prefix,
// wildcard, or combinator searches.
func EnumerateWith[V comparable, S any](s *Store[V], ex trie.Executor[S]) *trie.Cursor[V, S] {
	return trie.NewCursor[V](s.inner, ex)
}
