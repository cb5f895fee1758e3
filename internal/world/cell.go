package world

import "fmt"

// Cell is a single terrain unit on the grid. Pos and Cube never change
// after creation; Type is rewritten by the generator and read-only afterwards.
type Cell struct {
	Pos  Offset  `json:"pos"`
	Cube Cube    `json:"cube"`
	Type Terrain `json:"type"`
}

// NewCell creates an ungenerated cell at offset (x, y).
func NewCell(x, y int) Cell {
	return Cell{
		Pos:  Offset{X: x, Y: y},
		Cube: ToCube(x, y),
		Type: TerrainNone,
	}
}

// PlaceholderCell returns the out-of-bounds sentinel for offset (x, y).
func PlaceholderCell(x, y int) Cell {
	c := NewCell(x, y)
	c.Type = TerrainPlaceholder
	return c
}

// MovementCost returns the cost of entering this cell.
func (c *Cell) MovementCost() int {
	return c.Type.MovementCost()
}

// MovementEnabled reports whether the cell can be entered.
func (c *Cell) MovementEnabled() bool {
	return c.Type.MovementEnabled()
}

// DistanceFrom returns the cube distance between two cells.
func (c *Cell) DistanceFrom(o *Cell) int {
	return CubeDistance(c.Cube, o.Cube)
}

// Is reports whether the cell's type belongs to g.
func (c *Cell) Is(g Group) bool {
	return g.Contains(c.Type)
}

func (c *Cell) String() string {
	return fmt.Sprintf("%s(%d,%d)", c.Type, c.Pos.X, c.Pos.Y)
}
