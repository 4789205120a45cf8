// Package testutil holds fixtures shared by this module's test files:
// sample key/value sets and small assertion helpers, in the spirit of the
// teacher repo's own testutil package but scoped to a fuzzy trie instead
// of a document index.
package testutil

import (
	"testing"

	"fuzzytrie/internal/casefold"
	"fuzzytrie/internal/trie"
)

// SampleWords returns a small, deliberately prefix-sharing word list
// exercising both the trie's branching and its suffix compression: cat/
// cats/car share a branch point, kitten/sitting/bitten/mitten form a
// tight Levenshtein neighborhood, and catalog/cataloger exercise a long
// shared prefix with a compressed tail.
func SampleWords() []string {
	return []string{
		"cat", "cats", "car", "cart", "care",
		"dog", "dodge", "dot",
		"kitten", "sitting", "bitten", "mitten",
		"catalog", "cataloger",
	}
}

// SampleKV builds KV pairs from SampleWords, using each word as its own
// value.
func SampleKV() []trie.KV[string] {
	words := SampleWords()
	pairs := make([]trie.KV[string], len(words))
	for i, w := range words {
		pairs[i] = trie.KV[string]{Key: w, Value: w}
	}
	return pairs
}

// BuildSampleStore builds a Store from SampleKV, failing the test on
// error.
func BuildSampleStore(t *testing.T, policy casefold.Policy) *trie.Store[string] {
	t.Helper()
	s, err := trie.Build(SampleKV(), policy)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

// AssertContains fails the test unless value appears somewhere in results.
func AssertContains[V comparable](t *testing.T, results []trie.Result[V], value V) {
	t.Helper()
	for _, r := range results {
		if r.Value == value {
			return
		}
	}
	t.Errorf("expected %v among results %+v", value, results)
}

// AssertNotContains fails the test if value appears anywhere in results.
func AssertNotContains[V comparable](t *testing.T, results []trie.Result[V], value V) {
	t.Helper()
	for _, r := range results {
		if r.Value == value {
			t.Errorf("did not expect %v among results %+v", value, results)
			return
		}
	}
}
