// Relief: a continuous elevation layer laid over a generated grid.
// Terrain types pick an elevation band and layered simplex noise picks the
// height inside it, so renderers get smooth shading without touching types.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Band is the half-open elevation interval [Low, High) for one terrain type.
type Band struct {
	Low  float64
	High float64
}

// reliefBands are ordered so deeper water is always lower than land.
var reliefBands = [terrainCount]Band{
	TerrainNone:         {0.30, 0.55},
	TerrainPlain:        {0.30, 0.55},
	TerrainHighland:     {0.55, 0.75},
	TerrainMountain:     {0.75, 1.00},
	TerrainShallowWater: {0.15, 0.30},
	TerrainDeepWater:    {0.00, 0.15},
	TerrainPlaceholder:  {0.00, 0.00},
}

// place maps n in [0, 1] into the band, keeping the upper bound open.
func (b Band) place(n float64) float64 {
	v := b.Low + (b.High-b.Low)*n
	if v >= b.High && b.High > b.Low {
		v = math.Nextafter(b.High, b.Low)
	}
	return max(v, b.Low)
}

// ReliefBand returns the elevation band of a terrain type.
func ReliefBand(t Terrain) Band {
	if t >= terrainCount {
		return Band{}
	}
	return reliefBands[t]
}

// ReliefConfig controls the noise used inside each band.
type ReliefConfig struct {
	Octaves     int
	Frequency   float64
	Persistence float64
}

// DefaultReliefConfig returns a reasonable starting configuration.
func DefaultReliefConfig() ReliefConfig {
	return ReliefConfig{
		Octaves:     4,
		Frequency:   0.08,
		Persistence: 0.5,
	}
}

// ReliefMap holds one elevation per grid cell.
type ReliefMap struct {
	width  int
	height int
	values []float64
}

// At returns the elevation at (x, y), or 0 when out of bounds.
func (r *ReliefMap) At(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0
	}
	return r.values[y*r.width+x]
}

// Relief computes the elevation layer for g. The result depends only on the
// cell types, seed and config.
func Relief(g *Grid, seed int64, cfg ReliefConfig) *ReliefMap {
	noise := opensimplex.NewNormalized(seed)
	r := &ReliefMap{
		width:  g.width,
		height: g.height,
		values: make([]float64, len(g.cells)),
	}

	for i := range g.cells {
		c := &g.cells[i]
		band := ReliefBand(c.Type)
		// Sample in cube space so neighboring hexes get neighboring heights.
		x := float64(c.Cube.X) + float64(c.Cube.Z)*0.5
		y := float64(c.Cube.Z) * 0.8660254037844386
		n := octaveNoise(noise, x, y, cfg.Octaves, cfg.Frequency, cfg.Persistence)
		r.values[i] = band.place(n)
	}

	return r
}

// octaveNoise generates fractal noise by layering multiple frequencies.
// Output stays in [0, 1) for a normalized source.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	if octaves <= 0 {
		octaves = 1
	}
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
