package formula

import "strings"

// Weigh returns the molecular weight of f: the sum over its elements of
// count times atomic weight, where an implicit count weighs one atom.
//
// Weigh does not modify f and returns the same value for the same inputs.
// A symbol missing from lookup yields an *InconsistencyError.
func Weigh(f *Formula, lookup Lookup) (float64, error) {
	var total float64
	for _, e := range f.Entries() {
		el, ok := lookup.Lookup(e.Symbol)
		if !ok {
			return 0, &InconsistencyError{Symbol: e.Symbol}
		}
		if e.Count.IsImplicit() {
			total += el.AtomicWeight
		} else {
			total += float64(e.Count.N()) * el.AtomicWeight
		}
	}
	return total, nil
}

// Normalize renders f in order of first occurrence, each element as its
// symbol followed by its count digits. Implicit counts render as the bare
// symbol.
func Normalize(f *Formula) string {
	var b strings.Builder
	for _, e := range f.Entries() {
		b.WriteString(string(e.Symbol))
		b.WriteString(e.Count.String())
	}
	return b.String()
}
