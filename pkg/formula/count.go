package formula

import "strconv"

// MaxCount is the largest count a formula may carry for one element, written
// or accumulated.
const MaxCount = 1<<31 - 1

// Count is the number of occurrences recorded for an element. The zero value
// is the implicit count: a symbol written without digits, meaning one atom.
type Count struct {
	n int // 0 = implicit
}

// Implicit returns the count of a symbol written without digits.
func Implicit() Count {
	return Count{}
}

// Explicit returns a written count. n must be at least 1.
func Explicit(n int) Count {
	if n < 1 {
		panic("formula: explicit count must be positive, got " + strconv.Itoa(n))
	}
	return Count{n: n}
}

// CountFromLegacy converts the sentinel representation (0 = implicit one)
// into a Count. Negative values are treated as implicit.
func CountFromLegacy(v int) Count {
	if v < 1 {
		return Implicit()
	}
	return Count{n: v}
}

// IsImplicit reports whether no digits were recorded.
func (c Count) IsImplicit() bool {
	return c.n == 0
}

// N returns the written count, or 0 for an implicit count.
func (c Count) N() int {
	return c.n
}

// Multiplicity returns the number of atoms the count stands for.
func (c Count) Multiplicity() int {
	if c.n == 0 {
		return 1
	}
	return c.n
}

// Legacy returns the sentinel representation: 0 for implicit, n otherwise.
func (c Count) Legacy() int {
	return c.n
}

// Merge combines two occurrences of the same element. The result is always
// explicit and equals the sum of both multiplicities.
func (c Count) Merge(o Count) Count {
	return Count{n: c.Multiplicity() + o.Multiplicity()}
}

// String renders the count the way it appears after a symbol: empty for an
// implicit count, decimal digits otherwise.
func (c Count) String() string {
	if c.n == 0 {
		return ""
	}
	return strconv.Itoa(c.n)
}
