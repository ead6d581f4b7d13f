// Package state persists the element table and the catalog of saved
// molecules in SQLite.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/stoich/pkg/formula"
)

var (
	// ErrDuplicate is returned when saving a formula that is already in the catalog.
	ErrDuplicate = errors.New("formula already saved")

	// ErrNotFound is returned when a molecule does not exist.
	ErrNotFound = errors.New("molecule not found")

	// errNotOpened is returned by every operation on a store without a database.
	errNotOpened = errors.New("database not opened")
)

// Molecule is a saved formula with the weight computed when it was saved.
type Molecule struct {
	ID              string    `json:"id"`
	Formula         string    `json:"formula"`
	Normalized      string    `json:"normalized"`
	MolecularWeight float64   `json:"molecular_weight"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store is the persistence surface used by the rest of the application.
type Store interface {
	SeedElements(ctx context.Context, elems []formula.Element) (int, error)
	CountElements(ctx context.Context) (int, error)
	ListElements(ctx context.Context) ([]formula.Element, error)
	LoadElements(ctx context.Context) (*formula.Table, error)

	SaveMolecule(ctx context.Context, m *Molecule) error
	GetMolecule(ctx context.Context, formulaText string) (*Molecule, error)
	ListMolecules(ctx context.Context) ([]*Molecule, error)
	ListFormulas(ctx context.Context) ([]string, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
