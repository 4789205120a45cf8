package automaton

// Table is a Schulz-Mihov parametric transition table for Levenshtein
// distance k. Its states and transitions are a pure function of k alone —
// never of the query string — which is what lets a single build be
// memoized and reused across every query sharing the same k (see
// factory.go).
//
// Each table state is a canonical minimal-error vector of width 2k+1,
// holding, at offset j (relative position r = j-k from the automaton's
// current input-consumption count), the minimal number of errors needed
// to reach query position (consumed + r) so far. A value of k+1 marks a
// position as unreachable within budget.
//
// Transitions are indexed by a characteristic vector: bit j of chi is set
// iff the query character at relative offset r = j-k equals the input
// code point about to be consumed. Because chi depends only on which
// window positions match, not on what the characters actually are, the
// same table serves any query of any alphabet.
type Table struct {
	k      int
	width  int
	dead   int8
	states [][]int8 // states[id] is the canonical vector for id
	trans  [][]int32 // trans[id][chi] = nextID+1, or 0 for dead
}

func buildTable(k int) *Table {
	width := 2*k + 1
	dead := int8(k + 1)

	initial := make([]int8, width)
	for i := range initial {
		initial[i] = dead
	}
	// Relative offset i costs i errors: the first i query characters are
	// deleted before any input is consumed. This closes the start vector
	// under deletion, as stepVector expects of its input.
	for i := 0; i <= k; i++ {
		initial[k+i] = int8(i)
	}

	t := &Table{k: k, width: width, dead: dead}
	ids := map[string]int32{}
	key := func(arr []int8) string { return string(int8sToBytes(arr)) }

	t.states = append(t.states, initial)
	ids[key(initial)] = 0
	queue := []int32{0}

	chiCount := 1 << uint(width)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		arr := t.states[id]
		row := make([]int32, chiCount)
		for chi := 0; chi < chiCount; chi++ {
			next := stepVector(arr, k, uint32(chi))
			if allDead(next, dead) {
				row[chi] = 0
				continue
			}
			nk := key(next)
			nid, ok := ids[nk]
			if !ok {
				nid = int32(len(t.states))
				ids[nk] = nid
				t.states = append(t.states, next)
				queue = append(queue, nid)
			}
			row[chi] = nid + 1
		}
		t.trans = append(t.trans, row)
	}
	return t
}

// stepVector applies one consumed character to a closed error vector,
// given the characteristic vector of matches against the query window,
// and returns the newly closed vector.
//
// Three edges contribute to each new offset jp (relative position r=jp-k):
//   - match/substitution, from the same offset jp, cost 0 if chi bit jp is
//     set (the query character there equals the consumed one) else 1;
//   - insertion (the consumed character has no counterpart in the query),
//     from offset jp+1, cost 1;
//   - deletion (a query character is skipped without consuming input), an
//     epsilon edge from offset jp-1 to jp, cost 1, closed by a single
//     left-to-right relaxation pass since each deletion only ever advances
//     the offset by one.
func stepVector(old []int8, k int, chi uint32) []int8 {
	width := 2*k + 1
	dead := int8(k + 1)
	next := make([]int8, width)
	for jp := 0; jp < width; jp++ {
		best := dead
		if old[jp] < dead {
			cost := int8(1)
			if chi&(1<<uint(jp)) != 0 {
				cost = 0
			}
			if v := old[jp] + cost; v < best {
				best = v
			}
		}
		if jp+1 < width && old[jp+1] < dead {
			if v := old[jp+1] + 1; v < best {
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
	for jp := range next {
		if next[jp] > dead {
			next[jp] = dead
		}
	}
	return next
}

func allDead(arr []int8, dead int8) bool {
	for _, v := range arr {
		if v < dead {
			return false
		}
	}
	return true
}

func int8sToBytes(arr []int8) []byte {
	b := make([]byte, len(arr))
	for i, v := range arr {
		b[i] = byte(v)
	}
	return b
}
