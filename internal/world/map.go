package world

import "fmt"

// Grid holds every cell of a width x height map. Cells live in a dense
// row-major slice; the cube index maps cube coordinates to slice positions
// so both views always share one copy of each cell.
type Grid struct {
	width  int
	height int
	seed   int64

	cells []Cell
	cube  map[Cube]int
}

// NewGrid creates a grid filled with ungenerated cells.
// Non-positive dimensions produce an empty grid.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		cube:   make(map[Cube]int, width*height),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			g.SetCell(NewCell(x, y))
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Size returns the total number of cells.
func (g *Grid) Size() int { return g.width * g.height }

// Seed returns the seed the grid was generated with, or 0 for hand-built grids.
func (g *Grid) Seed() int64 { return g.seed }

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

// SetCell stores c at its offset position and refreshes the cube index.
// The cube coordinate is recomputed from c.Pos. Panics if c.Pos is off the grid.
func (g *Grid) SetCell(c Cell) {
	if !g.InBounds(c.Pos.X, c.Pos.Y) {
		panic(fmt.Sprintf("world: SetCell out of bounds (%d,%d) on %dx%d grid", c.Pos.X, c.Pos.Y, g.width, g.height))
	}
	c.Cube = ToCube(c.Pos.X, c.Pos.Y)
	i := g.index(c.Pos.X, c.Pos.Y)
	g.cells[i] = c
	g.cube[c.Cube] = i
}

// SetType changes the terrain of the cell at (x, y).
func (g *Grid) SetType(x, y int, t Terrain) {
	g.Cell(x, y).Type = t
}

// Cell returns the cell at (x, y). Panics when (x, y) is out of bounds.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: cell (%d,%d) out of bounds on %dx%d grid", x, y, g.width, g.height))
	}
	return &g.cells[g.index(x, y)]
}

// Lookup returns the cell at (x, y), or false when out of bounds.
func (g *Grid) Lookup(x, y int) (*Cell, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.cells[g.index(x, y)], true
}

// CellAt returns the cell at (x, y), or a placeholder copy when out of bounds.
func (g *Grid) CellAt(x, y int) Cell {
	if c, ok := g.Lookup(x, y); ok {
		return *c
	}
	return PlaceholderCell(x, y)
}

// CellByCube returns the cell with the given cube coordinate, if any.
func (g *Grid) CellByCube(c Cube) (*Cell, bool) {
	i, ok := g.cube[c]
	if !ok {
		return nil, false
	}
	return &g.cells[i], true
}

// Each calls fn for every cell, column by column (x outer, y inner).
// fn may change the cell's type.
func (g *Grid) Each(fn func(c *Cell)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			fn(&g.cells[g.index(x, y)])
		}
	}
}

// Cells returns a copy of every cell in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Equal reports whether two grids have the same dimensions and cell types.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, cells=%d, seed=%d)", g.width, g.height, g.Size(), g.seed)
}
