package formula

import (
	"fmt"
	"sort"
)

// Symbol is a one or two letter element symbol such as "H" or "Ni".
type Symbol string

// WellFormed reports whether s is an upper-case ASCII letter optionally
// followed by one lower-case ASCII letter.
func (s Symbol) WellFormed() bool {
	switch len(s) {
	case 1:
		return isUpper(s[0])
	case 2:
		return isUpper(s[0]) && isLower(s[1])
	default:
		return false
	}
}

// Element is one entry of an element table.
type Element struct {
	Symbol       Symbol  `json:"symbol" yaml:"symbol"`
	Name         string  `json:"name,omitempty" yaml:"name"`
	Number       int     `json:"number,omitempty" yaml:"number"`
	AtomicWeight float64 `json:"atomic_weight" yaml:"atomic_weight"`
}

// Lookup resolves element symbols. Matching is exact and case-sensitive.
// Implementations must be safe for concurrent use.
type Lookup interface {
	Lookup(sym Symbol) (Element, bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(sym Symbol) (Element, bool)

// Lookup calls f(sym).
func (f LookupFunc) Lookup(sym Symbol) (Element, bool) {
	return f(sym)
}

// Table is an immutable, map-backed Lookup.
type Table struct {
	bySymbol map[Symbol]Element
	order    []Symbol
}

// NewTable builds a Table. It rejects malformed symbols, non-positive atomic
// weights and duplicate symbols.
func NewTable(elems ...Element) (*Table, error) {
	t := &Table{
		bySymbol: make(map[Symbol]Element, len(elems)),
		order:    make([]Symbol, 0, len(elems)),
	}
	for _, e := range elems {
		if !e.Symbol.WellFormed() {
			return nil, fmt.Errorf("element %q: malformed symbol", e.Symbol)
		}
		if !(e.AtomicWeight > 0) {
			return nil, fmt.Errorf("element %q: atomic weight must be positive, got %v", e.Symbol, e.AtomicWeight)
		}
		if _, dup := t.bySymbol[e.Symbol]; dup {
			return nil, fmt.Errorf("element %q: duplicate symbol", e.Symbol)
		}
		t.bySymbol[e.Symbol] = e
		t.order = append(t.order, e.Symbol)
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(elems ...Element) *Table {
	t, err := NewTable(elems...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the element registered under sym.
func (t *Table) Lookup(sym Symbol) (Element, bool) {
	if t == nil {
		return Element{}, false
	}
	e, ok := t.bySymbol[sym]
	return e, ok
}

// Len returns the number of elements in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Elements returns the elements ordered by atomic number, then symbol.
// Elements without a number sort last in insertion order.
func (t *Table) Elements() []Element {
	if t == nil {
		return nil
	}
	out := make([]Element, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, t.bySymbol[s])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Number == 0) != (b.Number == 0) {
			return a.Number != 0
		}
		return a.Number < b.Number
	})
	return out
}
