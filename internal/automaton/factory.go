package automaton

import (
	"fmt"
	"log/slog"
	"sync"

	"fuzzytrie/internal/casefold"
	"fuzzytrie/internal/metric"
)

// Factory memoizes the expensive part of Construct — the Schulz-Mihov
// table build — across queries that share a distance bound. A table
// depends only on k, so one Factory can safely be shared by every search
// a Store serves concurrently.
type Factory struct {
	tables sync.Map // int (k) -> *Table
	log    *slog.Logger
}

// NewFactory returns a Factory with no tables built yet; they are built
// lazily on first use and cached for the Factory's lifetime. Logging goes
// to slog.Default() unless overridden with WithLogger.
func NewFactory() *Factory {
	return &Factory{log: slog.Default()}
}

// WithLogger returns f with its logger replaced. It mutates and returns f
// for chaining at construction time; it is not safe to call once the
// factory is already serving concurrent searches.
func (f *Factory) WithLogger(l *slog.Logger) *Factory {
	f.log = l
	return f
}

// Construct builds the automaton for one query, distance bound, metric and
// case policy. The returned Automaton is not safe for concurrent use by
// multiple goroutines, but independent calls to Construct are.
func (f *Factory) Construct(query []rune, k int, m metric.Metric, policy casefold.Policy) (Automaton, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidDistance, k)
	}
	if k > kAbsoluteMax {
		return nil, fmt.Errorf("%w: k=%d exceeds %d", ErrDistanceCeilingExceeded, k, kAbsoluteMax)
	}
	switch {
	case k == 0:
		return newExactAutomaton(query, policy), nil
	case m == metric.Levenshtein && k <= kTableMax:
		return newTableAutomaton(query, policy, k, f.table(k)), nil
	default:
		if f.log != nil {
			f.log.Warn("automaton: falling back to windowed simulation",
				"k", k, "metric", m.String(), "tableMax", kTableMax)
		}
		return newWindowAutomaton(query, policy, k, m), nil
	}
}

func (f *Factory) table(k int) *Table {
	if v, ok := f.tables.Load(k); ok {
		return v.(*Table)
	}
	t := buildTable(k)
	actual, loaded := f.tables.LoadOrStore(k, t)
	if !loaded && f.log != nil {
		f.log.Debug("automaton: built parametric table", "k", k, "states", len(t.states))
	}
	return actual.(*Table)
}
