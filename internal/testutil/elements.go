package testutil

import "github.com/leapstack-labs/stoich/pkg/formula"

// ScenarioElements returns a small element table: H, C, N, O, Cl and Ni.
func ScenarioElements() []formula.Element {
	return []formula.Element{
		{Symbol: "H", Name: "Hydrogen", Number: 1, AtomicWeight: 1.008},
		{Symbol: "C", Name: "Carbon", Number: 6, AtomicWeight: 12.011},
		{Symbol: "N", Name: "Nitrogen", Number: 7, AtomicWeight: 14.007},
		{Symbol: "O", Name: "Oxygen", Number: 8, AtomicWeight: 15.999},
		{Symbol: "Cl", Name: "Chlorine", Number: 17, AtomicWeight: 35.45},
		{Symbol: "Ni", Name: "Nickel", Number: 28, AtomicWeight: 58.693},
	}
}

// ScenarioTable returns ScenarioElements as a lookup table.
func ScenarioTable() *formula.Table {
	return formula.MustTable(ScenarioElements()...)
}
