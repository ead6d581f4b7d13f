package molecule

import (
	"github.com/leapstack-labs/stoich/pkg/formula"
)

// Result is the outcome of a successful calculation.
type Result struct {
	Input           string         `json:"input"`
	Formula         string         `json:"formula"`
	Normalized      string         `json:"normalized"`
	MolecularWeight float64        `json:"molecular_weight"`
	Atoms           int            `json:"atoms"`
	Elements        []ElementShare `json:"elements"`
}

// ElementShare is one element's contribution to a molecular weight.
type ElementShare struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name,omitempty"`
	Count        int     `json:"count"`
	AtomicWeight float64 `json:"atomic_weight"`
	Mass         float64 `json:"mass"`
	MassPercent  float64 `json:"mass_percent"`
}

func newResult(raw string, f *formula.Formula, weight float64, tbl formula.Lookup) *Result {
	res := &Result{
		Input:           raw,
		Formula:         raw,
		Normalized:      formula.Normalize(f),
		MolecularWeight: weight,
		Atoms:           f.Atoms(),
	}
	for _, e := range f.Entries() {
		el, _ := tbl.Lookup(e.Symbol)
		share := ElementShare{
			Symbol:       string(e.Symbol),
			Name:         el.Name,
			Count:        e.Count.Multiplicity(),
			AtomicWeight: el.AtomicWeight,
			Mass:         float64(e.Count.Multiplicity()) * el.AtomicWeight,
		}
		if weight > 0 {
			share.MassPercent = share.Mass / weight * 100
		}
		res.Elements = append(res.Elements, share)
	}
	return res
}
