package trie

import (
	"unicode/utf8"

	"fuzzytrie/internal/casefold"
)

// Store is an immutable, compact trie built once by Build. All lookups
// and searches are read-only and safe for concurrent use by any number of
// goroutines.
type Store[V comparable] struct {
	entries []entry
	values  []V
	tail    []rune
	policy  casefold.Policy
}

// Policy reports the case policy the store was built with.
func (s *Store[V]) Policy() casefold.Policy {
	return s.policy
}

// TryGet looks up key exactly, under the store's case policy.
func (s *Store[V]) TryGet(key string) (V, bool) {
	var zero V
	if !utf8.ValidString(key) {
		return zero, false
	}
	runes := []rune(key)
	idx := int32(0)
	pos := 0
	for {
		e := s.entries[idx]
		if pos == len(runes) {
			if e.hasValue {
				return s.values[e.valueIdx], true
			}
			return zero, false
		}
		childIdx, ok := s.findChild(e, runes[pos])
		if !ok {
			return zero, false
		}
		ce := s.entries[childIdx]
		pos++
		if ce.tailLen > 0 {
			tail := s.tail[ce.tailStart : ce.tailStart+ce.tailLen]
			need := pos + int(ce.tailLen)
			if need > len(runes) {
				return zero, false
			}
			for i, tr := range tail {
				if !casefold.Equal(s.policy, runes[pos+i], tr) {
					return zero, false
				}
			}
			pos = need
		}
		idx = childIdx
	}
}

func (s *Store[V]) findChild(e entry, r rune) (int32, bool) {
	for i := int32(0); i < e.childCount; i++ {
		ci := e.childStart + i
		if casefold.Equal(s.policy, s.entries[ci].label, r) {
			return ci, true
		}
	}
	return 0, false
}

// SearchWith runs ex against every key in s and returns every match,
// deduplicated by (distance, value): if the same value is reachable via
// more than one path at the same distance, it is reported once.
func SearchWith[V comparable, S any](s *Store[V], ex Executor[S]) []Result[V] {
	seen := map[dedupKey[V]]struct{}{}
	var results []Result[V]
	emit := func(state S, e *entry) {
		if !e.hasValue || !ex.IsFinal(state) {
			return
		}
		k := dedupKey[V]{distance: ex.Distance(state), value: s.values[e.valueIdx]}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		results = append(results, Result[V]{Distance: k.distance, Value: k.value})
	}

	start := ex.Start()
	emit(start, &s.entries[0])

	var overflow []workItem[S]
	var descend func(idx int32, state S, depth int)
	descend = func(idx int32, state S, depth int) {
		e := s.entries[idx]
		for ci := int32(0); ci < e.childCount; ci++ {
			childIdx := e.childStart + ci
			ce := &s.entries[childIdx]
			ns, ok := ex.Step(state, ce.label)
			if !ok {
				continue
			}
			if ce.tailLen > 0 {
				tail := s.tail[ce.tailStart : ce.tailStart+ce.tailLen]
				dead := false
				for _, tr := range tail {
					ns, ok = ex.Step(ns, tr)
					if !ok {
						dead = true
						break
					}
				}
				if dead {
					continue
				}
			}
			emit(ns, ce)
			if ce.childCount > 0 {
				if depth+1 >= dStack {
					overflow = append(overflow, workItem[S]{idx: childIdx, state: ns})
				} else {
					descend(childIdx, ns, depth+1)
				}
			}
		}
	}
	descend(0, start, 0)
	for len(overflow) > 0 {
		n := len(overflow) - 1
		w := overflow[n]
		overflow = overflow[:n]
		descend(w.idx, w.state, 0)
	}
	return results
}

type workItem[S any] struct {
	idx   int32
	state S
}

type dedupKey[V comparable] struct {
	distance int
	value    V
}
