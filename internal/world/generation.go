// Map generation: lakes and mountains are grown from random seed cells,
// three smoothing passes clean up the noise, and whatever is left becomes plains.
package world

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/talgya/cellmap/internal/entropy"
)

// GenParams holds map generation parameters.
type GenParams struct {
	MountainFactor       float64 // Mountain seeds per cell
	MountainSpreadFactor float64 // Chance a mountain spreads to a neighbor (else highland)

	LakeFactor       float64 // Lake seeds per cell
	LakeSpreadFactor float64 // Chance a lake spreads to a neighbor

	SmoothingMountainFactor   int // Highland with more mountain neighbors becomes mountain
	SmoothingLakeFactor       int // Empty cell with more water neighbors becomes water
	WaterSmoothingPasses      int // Iterations of the water erosion pass
	WaterSmoothingPass3Factor int // Base water-neighbor minimum during erosion

	GenerationTopology Topology // Neighborhood used while growing regions
	SmoothingTopology  Topology // Neighborhood used while smoothing

	Seed int64 // Random seed (0 = random)
}

// DefaultGenParams returns the stock generation parameters.
func DefaultGenParams() GenParams {
	return GenParams{
		MountainFactor:       0.001,
		MountainSpreadFactor: 0.35,

		LakeFactor:       0.0001,
		LakeSpreadFactor: 0.064,

		SmoothingMountainFactor:   5,
		SmoothingLakeFactor:       11,
		WaterSmoothingPasses:      3,
		WaterSmoothingPass3Factor: 3,

		GenerationTopology: TopologySquare,
		SmoothingTopology:  TopologySquare,
	}
}

// SmallTestParams returns denser parameters so tiny maps still get
// lakes and mountain ranges.
func SmallTestParams() GenParams {
	p := DefaultGenParams()
	p.MountainFactor = 0.01
	p.LakeFactor = 0.002
	p.Seed = 42
	return p
}

// Generator builds grids from a fixed parameter set.
type Generator struct {
	Params GenParams

	// Entropy supplies the seed when Params.Seed is 0. Nil uses crypto/rand.
	Entropy *entropy.Client
}

// NewGenerator creates a generator for the given parameters.
func NewGenerator(p GenParams) *Generator {
	return &Generator{Params: p}
}

// Generate is a shortcut for NewGenerator(p).Generate(width, height).
func Generate(width, height int, p GenParams) *Grid {
	return NewGenerator(p).Generate(width, height)
}

// GenerateEmpty returns a grid where every cell is still TerrainNone.
func (gen *Generator) GenerateEmpty(width, height int) *Grid {
	return NewGrid(width, height)
}

// ResolveSeed returns the configured seed, drawing a fresh one when it is 0.
func (gen *Generator) ResolveSeed() int64 {
	if gen.Params.Seed != 0 {
		return gen.Params.Seed
	}
	return entropy.Seed(gen.Entropy)
}

// Generate creates a complete map. The same seed, parameters and
// topologies always produce the same grid.
func (gen *Generator) Generate(width, height int) *Grid {
	seed := gen.ResolveSeed()
	g := gen.GenerateEmpty(width, height)
	g.seed = seed
	if g.Size() == 0 {
		return g
	}

	rng := NewRNG(seed)
	p := gen.Params
	grow := g.Neighbors(p.GenerationTopology)
	smooth := g.Neighbors(p.SmoothingTopology)

	generateLakes(g, rng, p, grow)
	generateMountains(g, rng, p, grow)
	smoothingPass(g, p, smooth)
	smoothingPass2(g, p, smooth)
	smoothingPass3(g, smooth)
	generatePlains(g)

	slog.Debug("map generated",
		"width", width,
		"height", height,
		"seed", seed,
		"generation_topology", p.GenerationTopology,
		"smoothing_topology", p.SmoothingTopology,
	)
	return g
}

// NewRNG creates the deterministic generator used by every random phase.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// seedCount converts a per-cell density into a number of seeds.
func seedCount(factor float64, size int) int {
	return int(math.Round(factor * float64(size)))
}

// randomCell draws x then y; the order is part of the seed contract.
func randomCell(g *Grid, rng *rand.Rand) *Cell {
	x := rng.IntN(g.width)
	y := rng.IntN(g.height)
	return g.Cell(x, y)
}

// generateLakes drops lake seeds and floods outwards at Close range.
func generateLakes(g *Grid, rng *rand.Rand, p GenParams, neighbors NeighborFunc) {
	seeds := seedCount(p.LakeFactor, g.Size())
	queue := make([]*Cell, 0, seeds)

	for i := 0; i < seeds; i++ {
		c := randomCell(g, rng)
		c.Type = TerrainShallowWater
		queue = append(queue, c)
	}

	grown := 0
	for head := 0; head < len(queue); head++ {
		for _, n := range neighbors(queue[head], Close, Any) {
			if n.Type != TerrainNone {
				continue
			}
			if rng.Float64() < p.LakeSpreadFactor {
				n.Type = TerrainShallowWater
				queue = append(queue, n)
				grown++
			}
		}
	}

	slog.Debug("lakes grown", "seeds", seeds, "grown", grown)
}

// generateMountains drops mountain seeds away from water and floods outwards
// at Immediate range. Cells that fail the spread roll become highland and
// stop there.
func generateMountains(g *Grid, rng *rand.Rand, p GenParams, neighbors NeighborFunc) {
	seeds := seedCount(p.MountainFactor, g.Size())
	queue := make([]*Cell, 0, seeds)

	skipped := 0
	for i := 0; i < seeds; i++ {
		c := randomCell(g, rng)
		if CountNeighbors(neighbors, c, Immediate, Water) > 0 {
			skipped++
			continue
		}
		c.Type = TerrainMountain
		queue = append(queue, c)
	}

	for head := 0; head < len(queue); head++ {
		for _, n := range neighbors(queue[head], Immediate, Any) {
			if n.Type != TerrainNone {
				continue
			}
			if rng.Float64() < p.MountainSpreadFactor {
				n.Type = TerrainMountain
				queue = append(queue, n)
			} else {
				n.Type = TerrainHighland
			}
		}
	}

	slog.Debug("mountains grown", "seeds", seeds, "skipped", skipped, "mountains", len(queue))
}

// smoothingPass removes isolated water, merges dense highland into
// mountains, pulls mountains back from water and fills lake interiors.
func smoothingPass(g *Grid, p GenParams, neighbors NeighborFunc) {
	g.Each(func(c *Cell) {
		switch c.Type {
		case TerrainShallowWater:
			if CountNeighbors(neighbors, c, Immediate, Water) < 2 {
				c.Type = TerrainNone
			}
		case TerrainHighland:
			if CountNeighbors(neighbors, c, Immediate, GroupOf(TerrainMountain)) > p.SmoothingMountainFactor {
				c.Type = TerrainMountain
			}
			fallthrough
		case TerrainMountain:
			if CountNeighbors(neighbors, c, Close, Water) > 0 {
				c.Type = TerrainNone
			}
		case TerrainNone:
			fillLake(c, p, neighbors)
		}
	})
}

// smoothingPass2 erodes thin water edges, stricter on every iteration.
func smoothingPass2(g *Grid, p GenParams, neighbors NeighborFunc) {
	for i := 0; i < p.WaterSmoothingPasses; i++ {
		minWater := i + p.WaterSmoothingPass3Factor
		g.Each(func(c *Cell) {
			switch c.Type {
			case TerrainShallowWater:
				if CountNeighbors(neighbors, c, Immediate, Water) < minWater {
					c.Type = TerrainNone
				}
			case TerrainNone:
				fillLake(c, p, neighbors)
			}
		})
	}
}

// smoothingPass3 turns shallow water surrounded by water at Medium range
// into deep water. Lakes filled in after the first pass can end up next to
// a mountain, so mountains are pulled back from water once more here.
func smoothingPass3(g *Grid, neighbors NeighborFunc) {
	g.Each(func(c *Cell) {
		switch c.Type {
		case TerrainShallowWater:
			for _, n := range neighbors(c, Medium, Any) {
				if !n.Is(Water) {
					return
				}
			}
			c.Type = TerrainDeepWater
		case TerrainMountain:
			if CountNeighbors(neighbors, c, Close, Water) > 0 {
				c.Type = TerrainNone
			}
		}
	})
}

// generatePlains fills every untouched cell with plains.
func generatePlains(g *Grid) {
	g.Each(func(c *Cell) {
		if c.Type == TerrainNone {
			c.Type = TerrainPlain
		}
	})
}

func fillLake(c *Cell, p GenParams, neighbors NeighborFunc) {
	if CountNeighbors(neighbors, c, Close, Water) > p.SmoothingLakeFactor {
		c.Type = TerrainShallowWater
	}
}
