package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol_WellFormed(t *testing.T) {
	for _, s := range []Symbol{"H", "Ni", "Uu"} {
		assert.True(t, s.WellFormed(), s)
	}
	for _, s := range []Symbol{"", "h", "NI", "Nii", "1", "N1"} {
		assert.False(t, s.WellFormed(), s)
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name      string
		elems     []Element
		errSubstr string
	}{
		{"ok", []Element{{Symbol: "H", AtomicWeight: 1.008}}, ""},
		{"malformed symbol", []Element{{Symbol: "hx", AtomicWeight: 1}}, "malformed symbol"},
		{"zero weight", []Element{{Symbol: "H"}}, "must be positive"},
		{"duplicate", []Element{{Symbol: "H", AtomicWeight: 1}, {Symbol: "H", AtomicWeight: 2}}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.elems...)
			if tt.errSubstr == "" {
				require.NoError(t, err)
				assert.Equal(t, len(tt.elems), tbl.Len())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestTable_LookupIsExact(t *testing.T) {
	tbl := scenarioTable()

	el, ok := tbl.Lookup("Ni")
	require.True(t, ok)
	assert.Equal(t, 58.693, el.AtomicWeight)

	_, ok = tbl.Lookup("ni")
	assert.False(t, ok)
	_, ok = tbl.Lookup("NI")
	assert.False(t, ok)

	var nilTable *Table
	_, ok = nilTable.Lookup("H")
	assert.False(t, ok)
}

func TestTable_ElementsOrderedByNumber(t *testing.T) {
	tbl := MustTable(
		Element{Symbol: "O", Number: 8, AtomicWeight: 15.999},
		Element{Symbol: "Xx", AtomicWeight: 1},
		Element{Symbol: "H", Number: 1, AtomicWeight: 1.008},
	)
	var got []Symbol
	for _, e := range tbl.Elements() {
		got = append(got, e.Symbol)
	}
	assert.Equal(t, []Symbol{"H", "O", "Xx"}, got)
}
