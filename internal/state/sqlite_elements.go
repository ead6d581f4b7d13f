package state

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/stoich/pkg/formula"
)

// SeedElements inserts the elements that are not stored yet and returns how
// many were inserted. Existing rows are left untouched.
func (s *SQLiteStore) SeedElements(ctx context.Context, elems []formula.Element) (int, error) {
	if s.db == nil {
		return 0, errNotOpened
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO elements (symbol, name, number, atomic_weight) VALUES (?, ?, ?, ?)
		 ON CONFLICT(symbol) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare element insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, e := range elems {
		res, err := stmt.ExecContext(ctx, string(e.Symbol), e.Name, e.Number, e.AtomicWeight)
		if err != nil {
			return 0, fmt.Errorf("failed to insert element %s: %w", e.Symbol, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit elements: %w", err)
	}

	s.logger.Debug("elements seeded", "inserted", inserted, "total", len(elems))
	return inserted, nil
}

// UpsertElement inserts or replaces one element.
func (s *SQLiteStore) UpsertElement(ctx context.Context, e formula.Element) error {
	if s.db == nil {
		return errNotOpened
	}
	if _, err := formula.NewTable(e); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO elements (symbol, name, number, atomic_weight) VALUES (?, ?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET name = excluded.name, number = excluded.number,
		 atomic_weight = excluded.atomic_weight`,
		string(e.Symbol), e.Name, e.Number, e.AtomicWeight,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert element %s: %w", e.Symbol, err)
	}
	return nil
}

// CountElements returns the number of stored elements.
func (s *SQLiteStore) CountElements(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, errNotOpened
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count elements: %w", err)
	}
	return n, nil
}

// ListElements returns all stored elements ordered by atomic number.
func (s *SQLiteStore) ListElements(ctx context.Context) ([]formula.Element, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, name, number, atomic_weight FROM elements ORDER BY number, symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to list elements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var elems []formula.Element
	for rows.Next() {
		var e formula.Element
		var sym string
		if err := rows.Scan(&sym, &e.Name, &e.Number, &e.AtomicWeight); err != nil {
			return nil, fmt.Errorf("failed to scan element: %w", err)
		}
		e.Symbol = formula.Symbol(sym)
		elems = append(elems, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list elements: %w", err)
	}
	return elems, nil
}

// LoadElements returns the stored elements as a lookup table.
func (s *SQLiteStore) LoadElements(ctx context.Context) (*formula.Table, error) {
	elems, err := s.ListElements(ctx)
	if err != nil {
		return nil, err
	}
	tbl, err := formula.NewTable(elems...)
	if err != nil {
		return nil, fmt.Errorf("stored element table is invalid: %w", err)
	}
	return tbl, nil
}
