package formula

// scenarioTable is the element table used throughout the package tests.
func scenarioTable() *Table {
	return MustTable(
		Element{Symbol: "H", Name: "Hydrogen", Number: 1, AtomicWeight: 1.008},
		Element{Symbol: "C", Name: "Carbon", Number: 6, AtomicWeight: 12.011},
		Element{Symbol: "N", Name: "Nitrogen", Number: 7, AtomicWeight: 14.007},
		Element{Symbol: "O", Name: "Oxygen", Number: 8, AtomicWeight: 15.999},
		Element{Symbol: "Cl", Name: "Chlorine", Number: 17, AtomicWeight: 35.45},
		Element{Symbol: "Ni", Name: "Nickel", Number: 28, AtomicWeight: 58.693},
	)
}
