package automaton

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// MaxWildcardPatternLength bounds compiled pattern size.
const MaxWildcardPatternLength = 256

// MaxDFAStates bounds how many distinct NFA subset states a pattern may
// expand into before construction gives up.
const MaxDFAStates = 4096

var (
	ErrWildcardPatternTooLong = errors.New("automaton: wildcard pattern exceeds maximum length")
	ErrDFAStateLimitExceeded  = errors.New("automaton: DFA state limit exceeded during construction")
)

// WildcardAutomaton accepts strings matching a wildcard pattern over
// Unicode code points. '*' matches zero or more code points, '?' matches
// exactly one.
//
// Because the alphabet is unbounded, subset construction runs lazily:
// each (state, code point) transition is computed and memoized the first
// time it is actually taken, rather than eagerly for every possible byte
// the way a fixed 256-symbol alphabet allows.
type WildcardAutomaton struct {
	nfa       *nfa
	sets      [][]int
	idOf      map[string]int32
	trans     []map[rune]int32
	accepting []bool
}

// NewWildcardAutomaton compiles a wildcard pattern.
func NewWildcardAutomaton(pattern []rune) (*WildcardAutomaton, error) {
	if len(pattern) > MaxWildcardPatternLength {
		return nil, ErrWildcardPatternTooLong
	}
	n := buildWildcardNFA(pattern)
	a := &WildcardAutomaton{nfa: n, idOf: map[string]int32{}}
	start := closure(n, []int{0})
	a.intern(start)
	return a, nil
}

func (a *WildcardAutomaton) Start() State {
	return 1
}

func (a *WildcardAutomaton) Step(state State, r rune) (State, bool) {
	id := int32(state) - 1
	if v, ok := a.trans[id][r]; ok {
		if v == 0 {
			return DeadState, false
		}
		return State(v), true
	}
	set := a.sets[id]
	var moved []int
	for _, s := range set {
		ns := a.nfa.states[s]
		if targets, ok := ns.onRune[r]; ok {
			moved = append(moved, targets...)
		}
		moved = append(moved, ns.onAny...)
	}
	if len(moved) == 0 {
		a.trans[id][r] = 0
		return DeadState, false
	}
	closed := closure(a.nfa, moved)
	if len(a.sets) >= MaxDFAStates {
		a.trans[id][r] = 0
		return DeadState, false
	}
	nid := a.intern(closed)
	a.trans[id][r] = nid + 1
	return State(nid + 1), true
}

func (a *WildcardAutomaton) IsFinal(state State) bool {
	if state == DeadState {
		return false
	}
	return a.accepting[int32(state)-1]
}

func (a *WildcardAutomaton) Distance(State) int {
	return 0
}

func (a *WildcardAutomaton) intern(set []int) int32 {
	key := setKey(set)
	if id, ok := a.idOf[key]; ok {
		return id
	}
	id := int32(len(a.sets))
	a.idOf[key] = id
	a.sets = append(a.sets, set)
	a.trans = append(a.trans, map[rune]int32{})
	a.accepting = append(a.accepting, isAccepting(a.nfa, set))
	return id
}

func setKey(set []int) string {
	var b strings.Builder
	for _, s := range set {
		b.WriteString(strconv.Itoa(s))
		b.WriteByte(',')
	}
	return b.String()
}

// --- NFA representation for wildcard patterns ---

type nfaState struct {
	onRune    map[rune][]int
	onAny     []int // '?' transitions and '*' self-loops
	epsilon   []int
	accepting bool
}

type nfa struct {
	states []*nfaState
}

func newNFAState() *nfaState {
	return &nfaState{}
}

func buildWildcardNFA(pattern []rune) *nfa {
	n := &nfa{}
	start := newNFAState()
	n.states = append(n.states, start)

	current := 0
	for _, ch := range pattern {
		next := len(n.states)
		nextState := newNFAState()
		n.states = append(n.states, nextState)

		switch ch {
		case '*':
			n.states[current].epsilon = append(n.states[current].epsilon, next)
			nextState.onAny = append(nextState.onAny, next)
			current = next
		case '?':
			n.states[current].onAny = append(n.states[current].onAny, next)
			current = next
		default:
			if n.states[current].onRune == nil {
				n.states[current].onRune = map[rune][]int{}
			}
			n.states[current].onRune[ch] = append(n.states[current].onRune[ch], next)
			current = next
		}
	}
	n.states[current].accepting = true
	return n
}

func closure(n *nfa, seed []int) []int {
	seen := map[int]bool{}
	stack := append([]int(nil), seed...)
	for _, s := range seed {
		seen[s] = true
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, eps := range n.states[s].epsilon {
			if !seen[eps] {
				seen[eps] = true
				stack = append(stack, eps)
			}
		}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

func isAccepting(n *nfa, set []int) bool {
	for _, s := range set {
		if n.states[s].accepting {
			return true
		}
	}
	return false
}
