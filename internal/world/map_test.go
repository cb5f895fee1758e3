package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridIndexesStayInSync(t *testing.T) {
	g := NewGrid(7, 5)
	require.Equal(t, 35, g.Size())

	seen := make(map[Cube]bool)
	g.Each(func(c *Cell) {
		byCube, ok := g.CellByCube(c.Cube)
		require.True(t, ok)
		require.Same(t, c, byCube)
		require.False(t, seen[c.Cube], "duplicate cube %v", c.Cube)
		seen[c.Cube] = true
	})
	assert.Len(t, seen, 35)

	c := NewCell(3, 2)
	c.Type = TerrainMountain
	g.SetCell(c)
	byCube, ok := g.CellByCube(ToCube(3, 2))
	require.True(t, ok)
	assert.Equal(t, TerrainMountain, byCube.Type)
	assert.Equal(t, TerrainMountain, g.Cell(3, 2).Type)
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(4, 3)
	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(3, 2))
	assert.False(t, g.InBounds(4, 0))
	assert.False(t, g.InBounds(0, 3))
	assert.False(t, g.InBounds(-1, 1))

	_, ok := g.Lookup(5, 5)
	assert.False(t, ok)
	assert.Equal(t, TerrainPlaceholder, g.CellAt(-1, 0).Type)
	assert.Panics(t, func() { g.Cell(4, 0) })
	assert.Panics(t, func() { g.SetCell(NewCell(9, 9)) })

	_, ok = g.CellByCube(Cube{X: 100, Y: -100, Z: 0})
	assert.False(t, ok)
}

func TestEmptyGrid(t *testing.T) {
	g := NewGrid(0, -3)
	assert.Zero(t, g.Size())
	assert.False(t, g.InBounds(0, 0))
}
