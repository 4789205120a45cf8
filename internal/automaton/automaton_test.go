package automaton

import (
	"testing"

	"fuzzytrie/internal/casefold"
	"fuzzytrie/internal/metric"
)

// run feeds input through an automaton one code point at a time and
// reports whether it ends in an accepting state.
func run(a Automaton, input string) (bool, int) {
	state := a.Start()
	for _, r := range input {
		var ok bool
		state, ok = a.Step(state, r)
		if !ok {
			return false, 0
		}
	}
	return a.IsFinal(state), a.Distance(state)
}

func TestExactAutomaton(t *testing.T) {
	f := NewFactory()
	a, err := f.Construct([]rune("cat"), 0, metric.Levenshtein, casefold.Sensitive)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := run(a, "cat"); !ok {
		t.Error("should accept exact match")
	}
	if ok, _ := run(a, "bat"); ok {
		t.Error("should reject 1 edit with distance 0")
	}
}

func TestTableAutomatonLevenshtein(t *testing.T) {
	f := NewFactory()
	cases := []struct {
		query, input string
		k            int
		wantFinal    bool
		wantDist     int
	}{
		{"hello", "hello", 1, true, 0},
		{"hello", "hallo", 1, true, 1},
		{"hello", "helloo", 1, true, 1},
		{"hello", "world", 1, false, 0},
		{"kitten", "sitting", 3, true, 3},
		{"kitten", "sitting", 2, false, 0},
	}
	for _, c := range cases {
		a, err := f.Construct([]rune(c.query), c.k, metric.Levenshtein, casefold.Sensitive)
		if err != nil {
			t.Fatal(err)
		}
		ok, dist := run(a, c.input)
		if ok != c.wantFinal {
			t.Errorf("Construct(%q,k=%d).run(%q) final=%v want %v", c.query, c.k, c.input, ok, c.wantFinal)
			continue
		}
		if ok && dist != c.wantDist {
			t.Errorf("Construct(%q,k=%d).run(%q) dist=%d want %d", c.query, c.k, c.input, dist, c.wantDist)
		}
	}
}

func TestTableAgreesWithBruteForce(t *testing.T) {
	f := NewFactory()
	words := []string{"kitten", "sitting", "bitten", "cat", "cats", "dog", ""}
	for _, q := range words {
		for _, w := range words {
			for k := 0; k <= 3; k++ {
				want := metric.Distance(metric.Levenshtein, []rune(q), []rune(w))
				a, err := f.Construct([]rune(q), k, metric.Levenshtein, casefold.Sensitive)
				if err != nil {
					t.Fatal(err)
				}
				ok, dist := run(a, w)
				if want <= k {
					if !ok || dist != want {
						t.Errorf("query=%q input=%q k=%d: got final=%v dist=%d, want final=true dist=%d", q, w, k, ok, dist, want)
					}
				} else if ok {
					t.Errorf("query=%q input=%q k=%d: got final=true, want rejection (brute force dist=%d)", q, w, k, want)
				}
			}
		}
	}
}

func TestWindowAutomatonRestrictedEdit(t *testing.T) {
	f := NewFactory()
	a, err := f.Construct([]rune("ab"), 1, metric.RestrictedEdit, casefold.Sensitive)
	if err != nil {
		t.Fatal(err)
	}
	if ok, dist := run(a, "ba"); !ok || dist != 1 {
		t.Errorf("RestrictedEdit(ab,ba,k=1) = final=%v dist=%d, want true 1", ok, dist)
	}
	a2, err := f.Construct([]rune("ab"), 1, metric.Levenshtein, casefold.Sensitive)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := run(a2, "ba"); ok {
		t.Error("Levenshtein(ab,ba,k=1) should reject: transposition costs 2 under Levenshtein")
	}
}

func TestWindowAgreesWithBruteForce(t *testing.T) {
	f := NewFactory()
	words := []string{"kitten", "sitting", "bitten", "cat", "cats", "abcdef"}
	for _, m := range []metric.Metric{metric.Levenshtein, metric.RestrictedEdit} {
		for _, q := range words {
			for _, w := range words {
				for _, k := range []int{4, 5} {
					want := metric.Distance(m, []rune(q), []rune(w))
					a, err := f.Construct([]rune(q), k, m, casefold.Sensitive)
					if err != nil {
						t.Fatal(err)
					}
					ok, dist := run(a, w)
					if want <= k {
						if !ok || dist != want {
							t.Errorf("%v query=%q input=%q k=%d: got final=%v dist=%d, want true %d", m, q, w, k, ok, dist, want)
						}
					} else if ok {
						t.Errorf("%v query=%q input=%q k=%d: got final=true, want rejection", m, q, w, k)
					}
				}
			}
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	f := NewFactory()
	a, err := f.Construct([]rune("Hello"), 0, metric.Levenshtein, casefold.Insensitive)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := run(a, "hello"); !ok {
		t.Error("case-insensitive exact match should accept differing case")
	}
}

func TestFactoryRejectsBadDistance(t *testing.T) {
	f := NewFactory()
	if _, err := f.Construct([]rune("x"), -1, metric.Levenshtein, casefold.Sensitive); err == nil {
		t.Error("expected error for negative k")
	}
	if _, err := f.Construct([]rune("x"), kAbsoluteMax+1, metric.Levenshtein, casefold.Sensitive); err == nil {
		t.Error("expected error for k beyond ceiling")
	}
}

func TestPrefixAutomaton(t *testing.T) {
	a := NewPrefixAutomaton([]rune("hel"), casefold.Sensitive)
	for _, s := range []string{"hel", "hello", "help"} {
		if ok, _ := run(a, s); !ok {
			t.Errorf("PrefixAutomaton(hel) should accept %q", s)
		}
	}
	for _, s := range []string{"he", "world", "HEL"} {
		if ok, _ := run(a, s); ok {
			t.Errorf("PrefixAutomaton(hel) should reject %q", s)
		}
	}
}

func TestWildcardAutomaton(t *testing.T) {
	a, err := NewWildcardAutomaton([]rune("h*o"))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"ho", "heo", "hello"} {
		if ok, _ := run(a, s); !ok {
			t.Errorf("Wildcard(h*o) should accept %q", s)
		}
	}
	for _, s := range []string{"h", "world"} {
		if ok, _ := run(a, s); ok {
			t.Errorf("Wildcard(h*o) should reject %q", s)
		}
	}

	q, err := NewWildcardAutomaton([]rune("h?llo"))
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := run(q, "hallo"); !ok {
		t.Error("Wildcard(h?llo) should accept hallo")
	}
	if ok, _ := run(q, "hllo"); ok {
		t.Error("Wildcard(h?llo) should reject hllo")
	}
}

func TestWildcardTooLong(t *testing.T) {
	pattern := make([]rune, MaxWildcardPatternLength+1)
	for i := range pattern {
		pattern[i] = 'a'
	}
	if _, err := NewWildcardAutomaton(pattern); err == nil {
		t.Error("expected error for pattern exceeding max length")
	}
}
