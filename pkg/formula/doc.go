// Package formula validates flat chemical formulas, aggregates their element
// counts, and derives molecular weights and canonical renderings.
//
// A formula is a sequence of ElementSymbol[Count] tokens such as "H2O",
// "NaCl" or "Ni3N". Parsing is a single left-to-right scan: each element
// symbol is checked against a Lookup as soon as it closes and each
// (symbol, count) pair is folded into the result immediately, so element
// order in the result is the order of first occurrence.
//
//	tbl, _ := formula.NewTable(formula.Element{Symbol: "H", AtomicWeight: 1.008},
//		formula.Element{Symbol: "O", AtomicWeight: 15.999})
//	f, err := formula.Parse("HOH", tbl)
//	// f.String() == "H2O"
//	w, err := formula.Weigh(f, tbl)
//
// Parentheses, hydrates, charges and isotopes are not supported.
package formula
