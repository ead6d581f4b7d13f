package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveMolecule appends m to the catalog. ID and CreatedAt are filled in when
// empty. Saving a formula string that is already stored returns ErrDuplicate.
func (s *SQLiteStore) SaveMolecule(ctx context.Context, m *Molecule) error {
	if s.db == nil {
		return errNotOpened
	}
	if m.Formula == "" {
		return fmt.Errorf("cannot save an empty formula")
	}

	if m.ID == "" {
		m.ID = generateID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM molecules WHERE formula = ?`, m.Formula).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrDuplicate, m.Formula)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to check molecule: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO molecules (id, formula, normalized, molecular_weight, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Formula, m.Normalized, m.MolecularWeight, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save molecule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit molecule: %w", err)
	}

	s.logger.Debug("molecule saved", "id", m.ID, "formula", m.Formula)
	return nil
}

// GetMolecule retrieves a saved molecule by its formula string.
func (s *SQLiteStore) GetMolecule(ctx context.Context, formulaText string) (*Molecule, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	m := &Molecule{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, formula, normalized, molecular_weight, created_at FROM molecules WHERE formula = ?`,
		formulaText,
	).Scan(&m.ID, &m.Formula, &m.Normalized, &m.MolecularWeight, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, formulaText)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get molecule: %w", err)
	}
	return m, nil
}

// ListMolecules returns all saved molecules, oldest first.
func (s *SQLiteStore) ListMolecules(ctx context.Context) ([]*Molecule, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, formula, normalized, molecular_weight, created_at
		 FROM molecules ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list molecules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var molecules []*Molecule
	for rows.Next() {
		m := &Molecule{}
		if err := rows.Scan(&m.ID, &m.Formula, &m.Normalized, &m.MolecularWeight, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan molecule: %w", err)
		}
		molecules = append(molecules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list molecules: %w", err)
	}
	return molecules, nil
}

// ListFormulas returns the formula strings of all saved molecules, oldest first.
func (s *SQLiteStore) ListFormulas(ctx context.Context) ([]string, error) {
	molecules, err := s.ListMolecules(ctx)
	if err != nil {
		return nil, err
	}
	formulas := make([]string, len(molecules))
	for i, m := range molecules {
		formulas[i] = m.Formula
	}
	return formulas, nil
}
