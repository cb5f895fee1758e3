package navigation

import (
	"fmt"
	"strings"

	"github.com/talgya/cellmap/internal/world"
)

// Path is an ordered route from start to end, both inclusive.
// It is built once by the pathfinder and never modified afterwards.
type Path struct {
	cells    []world.Cell
	cost     int // number of cells
	realCost int // movement cost of every cell after the start
}

// newPath builds a path from cells ordered start to end.
func newPath(cells []world.Cell) *Path {
	p := &Path{cells: cells, cost: len(cells)}
	for i := 1; i < len(cells); i++ {
		p.realCost += cells[i].MovementCost()
	}
	return p
}

// Cells returns a copy of the path's cells, start first.
func (p *Path) Cells() []world.Cell {
	out := make([]world.Cell, len(p.cells))
	copy(out, p.cells)
	return out
}

// Cost returns the number of cells on the path.
func (p *Path) Cost() int { return p.cost }

// RealCost returns the summed movement cost of entering every cell after the start.
func (p *Path) RealCost() int { return p.realCost }

// Start returns the first cell.
func (p *Path) Start() world.Cell { return p.cells[0] }

// End returns the last cell.
func (p *Path) End() world.Cell { return p.cells[len(p.cells)-1] }

// Contains reports whether the path visits offset (x, y).
func (p *Path) Contains(x, y int) bool {
	for i := range p.cells {
		if p.cells[i].Pos.X == x && p.cells[i].Pos.Y == y {
			return true
		}
	}
	return false
}

func (p *Path) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path(cost=%d, real=%d):", p.cost, p.realCost)
	for i := range p.cells {
		fmt.Fprintf(&b, " (%d,%d)", p.cells[i].Pos.X, p.cells[i].Pos.Y)
	}
	return b.String()
}
