package output

import "time"

// JSON output shapes shared by commands.

// MoleculeItem is one saved formula.
type MoleculeItem struct {
	ID              string    `json:"id"`
	Formula         string    `json:"formula"`
	Normalized      string    `json:"normalized"`
	MolecularWeight float64   `json:"molecular_weight"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListOutput is the JSON shape of the list command.
type ListOutput struct {
	Molecules []MoleculeItem `json:"molecules"`
	Count     int            `json:"count"`
}

// SaveOutput is the JSON shape of the save command.
type SaveOutput struct {
	Saved    bool          `json:"saved"`
	Molecule *MoleculeItem `json:"molecule,omitempty"`
}

// ElementItem is one row of the element table.
type ElementItem struct {
	Number       int     `json:"number"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	AtomicWeight float64 `json:"atomic_weight"`
}

// ElementsOutput is the JSON shape of the elements command.
type ElementsOutput struct {
	Source   string        `json:"source"`
	Elements []ElementItem `json:"elements"`
	Count    int           `json:"count"`
}

// BatchItem is the outcome for one formula of a batch run.
type BatchItem struct {
	Input  string `json:"input"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchSummary counts the outcomes of a batch run.
type BatchSummary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// BatchOutput is the JSON shape of weigh --file.
type BatchOutput struct {
	Results []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}
