// Package molecule implements the user-facing actions on formulas:
// calculating weights, normalizing, saving to the catalog and recalling
// saved formulas.
package molecule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/leapstack-labs/stoich/pkg/formula"
)

// ErrNoCatalog is returned by catalog operations on a Service built without one.
var ErrNoCatalog = errors.New("no formula catalog configured")

// TableSource yields the element table to validate against. Each call
// returns one immutable snapshot.
type TableSource interface {
	Table() *formula.Table
}

// Catalog stores saved formulas.
type Catalog interface {
	SaveMolecule(ctx context.Context, m *state.Molecule) error
	GetMolecule(ctx context.Context, formulaText string) (*state.Molecule, error)
	ListMolecules(ctx context.Context) ([]*state.Molecule, error)
}

// Service runs formula actions against an element table and a catalog.
type Service struct {
	elements TableSource
	catalog  Catalog
	logger   *slog.Logger
}

// NewService creates a Service. catalog may be nil when only calculations are needed.
func NewService(elements TableSource, catalog Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		elements: elements,
		catalog:  catalog,
		logger:   logger,
	}
}

// Elements returns the current element table snapshot.
func (s *Service) Elements() *formula.Table {
	return s.elements.Table()
}

// Calculate validates raw and computes its molecular weight. The returned
// Result reports raw as entered.
func (s *Service) Calculate(ctx context.Context, raw string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.evaluate(raw, s.elements.Table())
}

// Normalize validates raw and reports its normalized form together with the
// molecular weight.
func (s *Service) Normalize(ctx context.Context, raw string) (*Result, error) {
	res, err := s.Calculate(ctx, raw)
	if err != nil {
		return nil, err
	}
	res.Formula = res.Normalized
	return res, nil
}

// Save validates raw, computes its weight and appends it to the catalog.
// With normalize set the normalized form is stored instead of raw.
func (s *Service) Save(ctx context.Context, raw string, normalize bool) (*state.Molecule, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}

	res, err := s.Calculate(ctx, raw)
	if err != nil {
		return nil, err
	}

	m := &state.Molecule{
		Formula:         res.Input,
		Normalized:      res.Normalized,
		MolecularWeight: res.MolecularWeight,
	}
	if normalize {
		m.Formula = res.Normalized
	}

	if err := s.catalog.SaveMolecule(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("formula saved", "formula", m.Formula, "weight", m.MolecularWeight)
	return m, nil
}

// List returns the saved molecules.
func (s *Service) List(ctx context.Context) ([]*state.Molecule, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	return s.catalog.ListMolecules(ctx)
}

// Recall looks up a saved formula and recalculates it against the current
// element table.
func (s *Service) Recall(ctx context.Context, formulaText string) (*Result, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	m, err := s.catalog.GetMolecule(ctx, formulaText)
	if err != nil {
		return nil, err
	}
	return s.Calculate(ctx, m.Formula)
}

func (s *Service) evaluate(raw string, tbl *formula.Table) (*Result, error) {
	f, err := formula.Parse(raw, tbl)
	if err != nil {
		s.logger.Debug("formula rejected", "formula", raw, "error", err)
		return nil, err
	}

	weight, err := formula.Weigh(f, tbl)
	if err != nil {
		s.logger.Error("validated formula could not be weighed", "formula", raw, "error", err)
		return nil, fmt.Errorf("weigh %q: %w", raw, err)
	}

	res := newResult(raw, f, weight, tbl)
	s.logger.Debug("formula weighed", "formula", raw, "normalized", res.Normalized, "weight", weight)
	return res, nil
}
