package formula

import "fmt"

// Entry is one element of a parsed formula together with its aggregated count.
type Entry struct {
	Symbol Symbol
	Count  Count
}

// Formula is the ordered result of parsing: one entry per distinct element,
// in order of first occurrence. A Formula is not modified after Parse
// returns it.
type Formula struct {
	entries []Entry
	index   map[Symbol]int
}

// Len returns the number of distinct elements.
func (f *Formula) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// Entries returns a copy of the entries in order of first occurrence.
func (f *Formula) Entries() []Entry {
	if f == nil {
		return nil
	}
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Symbols returns the distinct symbols in order of first occurrence.
func (f *Formula) Symbols() []Symbol {
	if f == nil {
		return nil
	}
	out := make([]Symbol, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Symbol
	}
	return out
}

// Count returns the aggregated count recorded for sym.
func (f *Formula) Count(sym Symbol) (Count, bool) {
	if f == nil {
		return Count{}, false
	}
	i, ok := f.index[sym]
	if !ok {
		return Count{}, false
	}
	return f.entries[i].Count, true
}

// Legacy returns the counts in sentinel form: 0 for a single implicit
// occurrence, n for n counted occurrences.
func (f *Formula) Legacy() map[Symbol]int {
	out := make(map[Symbol]int, f.Len())
	for _, e := range f.Entries() {
		out[e.Symbol] = e.Count.Legacy()
	}
	return out
}

// Atoms returns the total number of atoms.
func (f *Formula) Atoms() int {
	n := 0
	for _, e := range f.Entries() {
		n += e.Count.Multiplicity()
	}
	return n
}

// Equal reports whether both formulas hold the same entries in the same order.
func (f *Formula) Equal(o *Formula) bool {
	if f.Len() != o.Len() {
		return false
	}
	for i := range f.Entries() {
		if f.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

// String returns the normalized rendering.
func (f *Formula) String() string {
	return Normalize(f)
}

// Aggregator folds (symbol, count) pairs into a Formula.
type Aggregator struct {
	f *Formula
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{f: &Formula{index: make(map[Symbol]int)}}
}

// Accumulate records one occurrence of sym. A new symbol is stored with c as
// given. A repeated symbol is stored as the sum of the multiplicities, which
// is always explicit: "HH" and "H2H3" aggregate to H2 and H5.
func (a *Aggregator) Accumulate(sym Symbol, c Count) error {
	i, seen := a.f.index[sym]
	if !seen {
		a.f.index[sym] = len(a.f.entries)
		a.f.entries = append(a.f.entries, Entry{Symbol: sym, Count: c})
		return nil
	}
	prior := a.f.entries[i].Count
	if prior.Multiplicity() > MaxCount-c.Multiplicity() {
		return &SyntaxError{Message: fmt.Sprintf(ErrMsgTotalOverflow, string(sym), MaxCount)}
	}
	a.f.entries[i].Count = prior.Merge(c)
	return nil
}

// Formula returns the accumulated formula. The Aggregator must not be used
// afterwards.
func (a *Aggregator) Formula() *Formula {
	f := a.f
	a.f = nil
	return f
}
