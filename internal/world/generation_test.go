package world

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topologyCombos() []GenParams {
	var out []GenParams
	for _, gen := range []Topology{TopologySquare, TopologyCube} {
		for _, smooth := range []Topology{TopologySquare, TopologyCube} {
			p := SmallTestParams()
			p.GenerationTopology = gen
			p.SmoothingTopology = smooth
			out = append(out, p)
		}
	}
	return out
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, p := range topologyCombos() {
		name := fmt.Sprintf("%s-%s", p.GenerationTopology, p.SmoothingTopology)
		t.Run(name, func(t *testing.T) {
			a := Generate(80, 60, p)
			b := Generate(80, 60, p)
			require.True(t, a.Equal(b), "same seed produced different maps")
			assert.Equal(t, p.Seed, a.Seed())
		})
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	p := SmallTestParams()
	a := Generate(120, 120, p)
	p.Seed = 7
	b := Generate(120, 120, p)
	assert.False(t, a.Equal(b))
}

func TestGenerateCoversEveryCell(t *testing.T) {
	for _, p := range topologyCombos() {
		g := Generate(64, 48, p)
		g.Each(func(c *Cell) {
			require.NotEqual(t, TerrainNone, c.Type, "cell %v left ungenerated", c.Pos)
			require.NotEqual(t, TerrainPlaceholder, c.Type, "cell %v is a placeholder", c.Pos)
			require.Zero(t, c.Cube.X+c.Cube.Y+c.Cube.Z)
		})
	}
}

func TestGenerateKeepsMountainsAwayFromWater(t *testing.T) {
	for _, p := range topologyCombos() {
		g := Generate(100, 80, p)
		smooth := g.Neighbors(p.SmoothingTopology)
		g.Each(func(c *Cell) {
			if c.Type != TerrainMountain {
				return
			}
			require.Zero(t, CountNeighbors(smooth, c, Close, Water), "mountain %v touches water", c.Pos)
		})
	}
}

func TestGenerateProducesFeatures(t *testing.T) {
	p := SmallTestParams()
	p.LakeFactor = 0
	g := Generate(150, 150, p)
	counts := TerrainCounts(g)
	assert.Greater(t, counts[TerrainPlain], 0)
	assert.Greater(t, counts[TerrainHighland], 0)
	assert.Greater(t, counts[TerrainMountain], 0)
	assert.Zero(t, counts[TerrainShallowWater]+counts[TerrainDeepWater])

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, g.Size(), total)
	assert.InDelta(t, 1.0, Coverage(g, Land), 1e-9)
}

func TestGenerateResolvesRandomSeed(t *testing.T) {
	p := SmallTestParams()
	p.Seed = 0
	g := Generate(10, 10, p)
	assert.NotZero(t, g.Seed())

	p.Seed = g.Seed()
	assert.True(t, g.Equal(Generate(10, 10, p)), "replaying the resolved seed must reproduce the map")
}

func TestGenerateEmpty(t *testing.T) {
	g := NewGenerator(DefaultGenParams()).GenerateEmpty(6, 4)
	assert.Equal(t, 24, g.Size())
	g.Each(func(c *Cell) {
		assert.Equal(t, TerrainNone, c.Type)
	})
	assert.Zero(t, Generate(0, 10, SmallTestParams()).Size())
}

func TestSeedCount(t *testing.T) {
	assert.Equal(t, 0, seedCount(0.0001, 4000))
	assert.Equal(t, 1, seedCount(0.0001, 5000))
	assert.Equal(t, 10, seedCount(0.001, 10000))
}

func TestLakesFloodWithFullSpread(t *testing.T) {
	g := NewGrid(10, 10)
	p := DefaultGenParams()
	p.LakeFactor = 0.01
	p.LakeSpreadFactor = 1
	generateLakes(g, NewRNG(3), p, g.NeighborsSquare)
	g.Each(func(c *Cell) {
		require.Equal(t, TerrainShallowWater, c.Type)
	})
}

func TestMountainsWithoutSpreadRingThemselvesInHighland(t *testing.T) {
	g := NewGrid(10, 10)
	p := DefaultGenParams()
	p.MountainFactor = 0.01
	p.MountainSpreadFactor = 0
	generateMountains(g, NewRNG(11), p, g.NeighborsSquare)

	counts := TerrainCounts(g)
	require.Equal(t, 1, counts[TerrainMountain])
	var peak *Cell
	g.Each(func(c *Cell) {
		if c.Type == TerrainMountain {
			peak = c
		}
	})
	require.NotNil(t, peak)
	assert.Equal(t, len(g.NeighborsSquare(peak, Immediate, Any)), counts[TerrainHighland])
}

func TestMountainSeedsSkipWater(t *testing.T) {
	g := NewGrid(3, 3)
	g.SetType(1, 1, TerrainShallowWater)
	g.SetType(1, 2, TerrainShallowWater)
	p := DefaultGenParams()
	p.MountainFactor = 1
	generateMountains(g, NewRNG(5), p, g.NeighborsSquare)

	counts := TerrainCounts(g)
	assert.Zero(t, counts[TerrainMountain])
	assert.Zero(t, counts[TerrainHighland])
	assert.Equal(t, 2, counts[TerrainShallowWater])
}

func TestSmoothingPassRules(t *testing.T) {
	p := DefaultGenParams()

	t.Run("isolated water dries up", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.SetType(2, 2, TerrainShallowWater)
		smoothingPass(g, p, g.NeighborsSquare)
		assert.Equal(t, TerrainNone, g.Cell(2, 2).Type)
	})

	t.Run("crowded highland becomes mountain", func(t *testing.T) {
		g := NewGrid(5, 5)
		for _, o := range []Offset{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}} {
			g.SetType(o.X, o.Y, TerrainMountain)
		}
		g.SetType(2, 2, TerrainHighland)
		smoothingPass(g, p, g.NeighborsSquare)
		assert.Equal(t, TerrainMountain, g.Cell(2, 2).Type)
	})

	t.Run("mountain near water is cleared", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.SetType(0, 0, TerrainMountain)
		g.SetType(2, 2, TerrainShallowWater)
		g.SetType(2, 3, TerrainShallowWater)
		g.SetType(3, 2, TerrainShallowWater)
		smoothingPass(g, p, g.NeighborsSquare)
		assert.Equal(t, TerrainNone, g.Cell(0, 0).Type)
		assert.Equal(t, TerrainShallowWater, g.Cell(2, 2).Type)
	})

	t.Run("lake interior fills in", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.Each(func(c *Cell) { c.Type = TerrainShallowWater })
		g.SetType(2, 2, TerrainNone)
		smoothingPass(g, p, g.NeighborsSquare)
		assert.Equal(t, TerrainShallowWater, g.Cell(2, 2).Type)
	})
}

func TestSmoothingPass2ErodesThinWater(t *testing.T) {
	g := NewGrid(6, 3)
	// A single row of water: interior cells have 2 water neighbors.
	for x := 0; x < 6; x++ {
		g.SetType(x, 1, TerrainShallowWater)
	}
	p := DefaultGenParams()
	smoothingPass2(g, p, g.NeighborsSquare)
	assert.Zero(t, TerrainCounts(g)[TerrainShallowWater])
}

func TestSmoothingPass3DeepensInteriors(t *testing.T) {
	g := NewGrid(10, 10)
	g.Each(func(c *Cell) { c.Type = TerrainShallowWater })
	g.SetType(0, 0, TerrainPlain)
	g.SetType(9, 0, TerrainMountain)
	smoothingPass3(g, g.NeighborsSquare)

	assert.Equal(t, TerrainShallowWater, g.Cell(4, 4).Type)
	assert.Equal(t, TerrainDeepWater, g.Cell(5, 5).Type)
	assert.Equal(t, TerrainDeepWater, g.Cell(9, 9).Type)
	assert.Equal(t, TerrainNone, g.Cell(9, 0).Type)
}

func TestGeneratePlains(t *testing.T) {
	g := NewGrid(3, 3)
	g.SetType(1, 1, TerrainMountain)
	generatePlains(g)
	counts := TerrainCounts(g)
	assert.Equal(t, 8, counts[TerrainPlain])
	assert.Equal(t, 1, counts[TerrainMountain])
}
