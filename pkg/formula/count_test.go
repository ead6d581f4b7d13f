package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	imp := Implicit()
	assert.True(t, imp.IsImplicit())
	assert.Equal(t, 1, imp.Multiplicity())
	assert.Equal(t, 0, imp.Legacy())
	assert.Equal(t, "", imp.String())

	three := Explicit(3)
	assert.False(t, three.IsImplicit())
	assert.Equal(t, 3, three.Multiplicity())
	assert.Equal(t, 3, three.Legacy())
	assert.Equal(t, "3", three.String())

	one := Explicit(1)
	assert.False(t, one.IsImplicit(), "a written 1 stays explicit")
	assert.Equal(t, "1", one.String())
}

func TestCount_Merge(t *testing.T) {
	tests := []struct {
		name  string
		prior Count
		next  Count
		want  Count
	}{
		{"implicit + implicit", Implicit(), Implicit(), Explicit(2)},
		{"explicit + explicit", Explicit(2), Explicit(3), Explicit(5)},
		{"implicit + explicit", Implicit(), Explicit(3), Explicit(4)},
		{"explicit + implicit", Explicit(3), Implicit(), Explicit(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prior.Merge(tt.next))
		})
	}
}

func TestCountFromLegacy(t *testing.T) {
	assert.Equal(t, Implicit(), CountFromLegacy(0))
	assert.Equal(t, Implicit(), CountFromLegacy(-4))
	assert.Equal(t, Explicit(7), CountFromLegacy(7))
}

func TestExplicit_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { Explicit(0) })
}
