package automaton

import (
	"fuzzytrie/internal/casefold"
	"fuzzytrie/internal/metric"
)

// windowAutomaton is the general-purpose backend: a direct, per-query
// simulation of the same windowed recurrence table.go precomputes, but
// computed on the fly instead of cached. It is used whenever the fast
// cached table cannot serve the request — RestrictedEdit at any k, or
// Levenshtein once k exceeds kTableMax — up to kAbsoluteMax.
//
// Unlike the table it keeps two closed vectors per step (the current one
// and the one from two steps back) plus the most recently consumed code
// point, which is what lets it evaluate the OSA transposition edge: a
// swap of the query's (i, i+1) against consumed (prev, cur) lands back at
// the same relative offset it started from, contributed by the vector
// from before prev was consumed.
type windowAutomaton struct {
	query  []rune
	policy casefold.Policy
	k      int
	m      metric.Metric
	frames []windowFrame
}

type windowFrame struct {
	cur           []int8
	priorCur      []int8 // cur of the previous frame; nil in frame 0
	priorRune     rune
	priorRuneSet  bool
	t             int
}

func newWindowAutomaton(query []rune, policy casefold.Policy, k int, m metric.Metric) *windowAutomaton {
	width := 2*k + 1
	dead := int8(k + 1)
	init := make([]int8, width)
	for i := range init {
		init[i] = dead
	}
	for i := 0; i <= k; i++ {
		init[k+i] = int8(i) // leading query deletions, closed like every later vector
	}
	a := &windowAutomaton{query: query, policy: policy, k: k, m: m}
	a.frames = append(a.frames, windowFrame{cur: init, t: 0})
	return a
}

// Start returns the handle for frame 0 (state values are 1-biased frame
// indices so 0 stays DeadState).
func (a *windowAutomaton) Start() State {
	return 1
}

func (a *windowAutomaton) Step(state State, r rune) (State, bool) {
	fr := a.frames[state-1]
	width := 2*a.k + 1
	dead := int8(a.k + 1)
	next := make([]int8, width)
	for i := range next {
		next[i] = dead
	}
	for jp := 0; jp < width; jp++ {
		best := dead
		pos := fr.t + (jp - a.k)
		if fr.cur[jp] < dead {
			cost := int8(1)
			if pos >= 0 && pos < len(a.query) && casefold.Equal(a.policy, a.query[pos], r) {
				cost = 0
			}
			if v := fr.cur[jp] + cost; v < best {
				best = v
			}
		}
		if jp+1 < width && fr.cur[jp+1] < dead {
			if v := fr.cur[jp+1] + 1; v < best {
				best = v
			}
		}
		next[jp] = best
	}
	for jp := 1; jp < width; jp++ {
		if v := next[jp-1] + 1; v < next[jp] {
			next[jp] = v
		}
	}
	if a.m.AllowsTransposition() && fr.priorRuneSet && fr.priorCur != nil {
		for jp := 0; jp < width; jp++ {
			if fr.priorCur[jp] >= dead {
				continue
			}
			i := (fr.t - 1) + (jp - a.k)
			if i < 0 || i+1 >= len(a.query) {
				continue
			}
			if casefold.Equal(a.policy, a.query[i], r) && casefold.Equal(a.policy, a.query[i+1], fr.priorRune) {
				if v := fr.priorCur[jp] + 1; v < next[jp] {
					next[jp] = v
				}
			}
		}
	}
	for i := range next {
		if next[i] > dead {
			next[i] = dead
		}
	}
	if allDead(next, dead) {
		return DeadState, false
	}
	a.frames = append(a.frames, windowFrame{
		cur:          next,
		priorCur:     fr.cur,
		priorRune:    r,
		priorRuneSet: true,
		t:            fr.t + 1,
	})
	return State(len(a.frames)), true
}

func (a *windowAutomaton) IsFinal(state State) bool {
	return a.Distance(state) <= a.k
}

func (a *windowAutomaton) Distance(state State) int {
	fr := a.frames[state-1]
	best := a.k + 1
	for j := 0; j < len(fr.cur); j++ {
		if int(fr.cur[j]) > a.k {
			continue
		}
		i := fr.t + (j - a.k)
		if i > len(a.query) {
			continue
		}
		remaining := len(a.query) - i
		if total := int(fr.cur[j]) + remaining; total < best {
			best = total
		}
	}
	return best
}
