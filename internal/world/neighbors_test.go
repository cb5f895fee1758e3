package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborsSquareImmediate(t *testing.T) {
	g := NewGrid(10, 10)
	c := g.Cell(5, 5)
	ns := g.NeighborsSquare(c, Immediate, Any)
	require.Len(t, ns, 8)
	for _, n := range ns {
		assert.NotSame(t, c, n)
		assert.LessOrEqual(t, abs(n.Pos.X-5), 1)
		assert.LessOrEqual(t, abs(n.Pos.Y-5), 1)
	}
}

func TestNeighborsCubeImmediate(t *testing.T) {
	g := NewGrid(10, 10)
	c := g.Cell(5, 5)
	ns := g.NeighborsCube(c, Immediate, Any)
	require.Len(t, ns, 6)

	want := make(map[Cube]bool)
	for _, n := range c.Cube.Neighbors() {
		want[n] = true
	}
	for _, n := range ns {
		assert.NotSame(t, c, n)
		assert.True(t, want[n.Cube], "unexpected neighbor %v", n.Cube)
	}
}

func TestNeighborCountsDifferAboveImmediate(t *testing.T) {
	g := NewGrid(20, 20)
	c := g.Cell(10, 10)
	assert.Len(t, g.NeighborsSquare(c, Close, Any), 24)
	assert.Len(t, g.NeighborsCube(c, Close, Any), 18)
	assert.Len(t, g.NeighborsSquare(c, Medium, Any), 80)
	assert.Len(t, g.NeighborsCube(c, Medium, Any), 60)
}

func TestNeighborsAtEdgesAreClipped(t *testing.T) {
	g := NewGrid(5, 5)
	corner := g.Cell(0, 0)
	assert.Len(t, g.NeighborsSquare(corner, Immediate, Any), 3)
	for _, n := range g.NeighborsCube(corner, Immediate, Any) {
		assert.True(t, g.InBounds(n.Pos.X, n.Pos.Y))
	}
	assert.Len(t, g.NeighborsCube(corner, Immediate, Any), 2)
}

func TestNeighborsFilter(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetType(1, 1, TerrainShallowWater)
	g.SetType(2, 1, TerrainDeepWater)
	g.SetType(3, 3, TerrainMountain)
	c := g.Cell(2, 2)

	water := g.NeighborsSquare(c, Immediate, Water)
	require.Len(t, water, 2)
	for _, n := range water {
		assert.True(t, n.Is(Water))
	}
	assert.Len(t, g.NeighborsSquare(c, Immediate, GroupOf(TerrainMountain)), 1)
	assert.Len(t, g.NeighborsSquare(c, Immediate, Land), 1)
	assert.Empty(t, g.NeighborsSquare(c, Immediate, Group{}))
}

func TestNeighborsByTopology(t *testing.T) {
	g := NewGrid(9, 9)
	c := g.Cell(4, 4)
	assert.Len(t, g.Neighbors(TopologySquare)(c, Immediate, Any), 8)
	assert.Len(t, g.Neighbors(TopologyCube)(c, Immediate, Any), 6)

	topo, err := ParseTopology("cube")
	require.NoError(t, err)
	assert.Equal(t, TopologyCube, topo)
	_, err = ParseTopology("triangle")
	assert.Error(t, err)
}
