package automaton

import "fuzzytrie/internal/casefold"

// tableAutomaton drives a shared Table against one query. It only ever
// carries classical Levenshtein semantics — the table has no notion of
// transposition — which is why Construct restricts it to metric.Levenshtein
// and hands RestrictedEdit queries to the windowed backend instead (see
// DESIGN.md).
//
// State packs the consumption count t in the high bits and the table
// state id (biased by 1, so 0 stays reserved for DeadState) in the low 24
// bits. 24 bits comfortably covers every canonical vector a k<=3 table
// can ever produce.
type tableAutomaton struct {
	query  []rune
	policy casefold.Policy
	k      int
	table  *Table
}

const tableIDBits = 24
const tableIDMask = 1<<tableIDBits - 1

func newTableAutomaton(query []rune, policy casefold.Policy, k int, table *Table) *tableAutomaton {
	return &tableAutomaton{query: query, policy: policy, k: k, table: table}
}

func encodeTableState(t int, id int32) State {
	return State(uint64(id+1)&tableIDMask | uint64(t)<<tableIDBits)
}

func decodeTableState(s State) (t int, id int32) {
	id = int32(uint64(s)&tableIDMask) - 1
	t = int(uint64(s) >> tableIDBits)
	return
}

func (a *tableAutomaton) Start() State {
	return encodeTableState(0, 0)
}

func (a *tableAutomaton) characteristic(t int, r rune) uint32 {
	width := a.table.width
	var chi uint32
	for j := 0; j < width; j++ {
		pos := t + (j - a.k)
		if pos >= 0 && pos < len(a.query) && casefold.Equal(a.policy, a.query[pos], r) {
			chi |= 1 << uint(j)
		}
	}
	return chi
}

func (a *tableAutomaton) Step(state State, r rune) (State, bool) {
	t, id := decodeTableState(state)
	chi := a.characteristic(t, r)
	nid := a.table.trans[id][chi]
	if nid == 0 {
		return DeadState, false
	}
	return encodeTableState(t+1, nid-1), true
}

func (a *tableAutomaton) IsFinal(state State) bool {
	d := a.Distance(state)
	return d <= a.k
}

func (a *tableAutomaton) Distance(state State) int {
	t, id := decodeTableState(state)
	arr := a.table.states[id]
	best := a.k + 1
	for j := 0; j < len(arr); j++ {
		if int(arr[j]) > a.k {
			continue
		}
		i := t + (j - a.k)
		if i > len(a.query) {
			continue
		}
		remaining := len(a.query) - i
		if total := int(arr[j]) + remaining; total < best {
			best = total
		}
	}
	return best
}
