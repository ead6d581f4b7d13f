package state

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/stoich/internal/testutil"
	"github.com/leapstack-labs/stoich/pkg/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	assert.Equal(t, ":memory:", store.Path())
	require.NoError(t, store.Close())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	_, err := store.CountElements(ctx)
	assert.ErrorIs(t, err, errNotOpened)
	assert.ErrorIs(t, store.SaveMolecule(ctx, &Molecule{Formula: "H2O"}), errNotOpened)
	_, err = store.ListMolecules(ctx)
	assert.ErrorIs(t, err, errNotOpened)
	assert.ErrorIs(t, store.Migrate(ctx), errNotOpened)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	version, err := store.GetMigrationVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	for _, table := range []string{"elements", "molecules"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s should exist", table)
		_ = rows.Close()
	}
}

func TestSQLiteStore_Elements(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	elems := testutil.ScenarioElements()

	inserted, err := store.SeedElements(ctx, elems)
	require.NoError(t, err)
	assert.Equal(t, len(elems), inserted)

	// Seeding again inserts nothing.
	inserted, err = store.SeedElements(ctx, elems)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	n, err := store.CountElements(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(elems), n)

	tbl, err := store.LoadElements(ctx)
	require.NoError(t, err)
	el, ok := tbl.Lookup("Ni")
	require.True(t, ok)
	assert.Equal(t, 58.693, el.AtomicWeight)
	assert.Equal(t, "Nickel", el.Name)

	require.NoError(t, store.UpsertElement(ctx, formula.Element{Symbol: "Ni", Name: "Nickel", Number: 28, AtomicWeight: 58.6934}))
	tbl, err = store.LoadElements(ctx)
	require.NoError(t, err)
	el, _ = tbl.Lookup("Ni")
	assert.Equal(t, 58.6934, el.AtomicWeight)

	assert.Error(t, store.UpsertElement(ctx, formula.Element{Symbol: "nI", AtomicWeight: 1}))
}

func TestSQLiteStore_Molecules(t *testing.T) {
	tests := []struct {
		name   string
		verify func(t *testing.T, store *SQLiteStore)
	}{
		{
			name: "save fills id and timestamp",
			verify: func(t *testing.T, store *SQLiteStore) {
				m := &Molecule{Formula: "H2O", Normalized: "H2O", MolecularWeight: 18.015}
				require.NoError(t, store.SaveMolecule(context.Background(), m))
				assert.NotEmpty(t, m.ID)
				assert.WithinDuration(t, time.Now().UTC(), m.CreatedAt, time.Minute)

				got, err := store.GetMolecule(context.Background(), "H2O")
				require.NoError(t, err)
				assert.Equal(t, m.ID, got.ID)
				assert.Equal(t, 18.015, got.MolecularWeight)
				assert.WithinDuration(t, m.CreatedAt, got.CreatedAt, time.Second)
			},
		},
		{
			name: "duplicate formula",
			verify: func(t *testing.T, store *SQLiteStore) {
				ctx := context.Background()
				require.NoError(t, store.SaveMolecule(ctx, &Molecule{Formula: "NaCl", Normalized: "NaCl", MolecularWeight: 58.44}))
				err := store.SaveMolecule(ctx, &Molecule{Formula: "NaCl", Normalized: "NaCl", MolecularWeight: 58.44})
				assert.ErrorIs(t, err, ErrDuplicate)
			},
		},
		{
			name: "empty formula",
			verify: func(t *testing.T, store *SQLiteStore) {
				assert.Error(t, store.SaveMolecule(context.Background(), &Molecule{}))
			},
		},
		{
			name: "not found",
			verify: func(t *testing.T, store *SQLiteStore) {
				_, err := store.GetMolecule(context.Background(), "XeF4")
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name: "list keeps save order",
			verify: func(t *testing.T, store *SQLiteStore) {
				ctx := context.Background()
				base := time.Date(2014, 2, 13, 12, 0, 0, 0, time.UTC)
				for i, f := range []string{"NNiN", "H2O", "Ni3N"} {
					require.NoError(t, store.SaveMolecule(ctx, &Molecule{
						Formula:   f,
						CreatedAt: base.Add(time.Duration(i) * time.Second),
					}))
				}

				formulas, err := store.ListFormulas(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"NNiN", "H2O", "Ni3N"}, formulas)
			},
		},
		{
			name: "empty catalog",
			verify: func(t *testing.T, store *SQLiteStore) {
				molecules, err := store.ListMolecules(context.Background())
				require.NoError(t, err)
				assert.Empty(t, molecules)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, setupTestStore(t))
		})
	}
}

func TestSQLiteStore_SaveMoleculeInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM molecules WHERE formula = ?`)).
		WithArgs("H2O").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO molecules`)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	store := NewSQLiteStoreWithDB(db, testutil.NewTestLogger(t))
	err = store.SaveMolecule(context.Background(), &Molecule{Formula: "H2O", Normalized: "H2O", MolecularWeight: 18.015})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save molecule")
	assert.NotErrorIs(t, err, ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ListElementsQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT symbol, name, number, atomic_weight FROM elements`)).
		WillReturnError(errors.New("no such table: elements"))

	store := NewSQLiteStoreWithDB(db, nil)
	_, err = store.LoadElements(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list elements")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_SeedElementsRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO elements`))
	prep.ExpectExec().WithArgs("H", "Hydrogen", 1, 1.008).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("O", "Oxygen", 8, 15.999).WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	store := NewSQLiteStoreWithDB(db, nil)
	_, err = store.SeedElements(context.Background(), []formula.Element{
		{Symbol: "H", Name: "Hydrogen", Number: 1, AtomicWeight: 1.008},
		{Symbol: "O", Name: "Oxygen", Number: 8, AtomicWeight: 15.999},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert element O")

	assert.NoError(t, mock.ExpectationsWereMet())
}
