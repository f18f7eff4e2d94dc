package isoline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSignedArea(t *testing.T) {
	// clockwise on screen with y down
	square := Path{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	assert.Equal(t, -4.0, square.SignedArea())

	reversed := make(Path, len(square))
	for i, p := range square {
		reversed[len(square)-1-i] = p
	}
	assert.Equal(t, 4.0, reversed.SignedArea())
	assert.Zero(t, Path{{0, 0}, {1, 1}}.SignedArea())
}

func TestPathClosedLength(t *testing.T) {
	assert.False(t, Path{}.Closed())
	assert.False(t, Path{{1, 1}}.Closed())
	assert.False(t, Path{{0, 0}, {3, 4}}.Closed())
	assert.True(t, Path{{0, 0}, {3, 4}, {0, 0}}.Closed())
	assert.Equal(t, 10.0, Path{{0, 0}, {3, 4}, {0, 0}}.Length())
}

func TestIsolinesSummary(t *testing.T) {
	iso := Isolines{
		20: {{{0, 0}, {1, 1}}},
		-5: {{{4, -2}, {1, 1}}, {{2, 2}, {3, 3}}},
		10: nil,
	}
	assert.Equal(t, []float64{-5, 20}, iso.Levels())
	assert.Equal(t, 3, iso.Count())
	b, ok := iso.Bounds()
	require.True(t, ok)
	assert.Equal(t, Bounds{Point{0, -2}, Point{4, 3}}, b)

	_, ok = Isolines{}.Bounds()
	assert.False(t, ok)
}
