// Package world provides the terrain grid, cells and the map generator.
// Cells are addressed by offset coordinates (x, y) and carry a derived
// cube coordinate used for hex-style adjacency and distance.
package world

// Offset is a position on the rectangular grid.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cube is a cube coordinate. X + Y + Z is always zero.
type Cube struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Range is a neighbourhood radius in grid-distance units.
type Range int

const (
	Immediate Range = 1
	Close     Range = 2
	Medium    Range = 4
	Far       Range = 8
)

// CubeDirections defines the six neighbor offsets in cube coordinates.
var CubeDirections = [6]Cube{
	{X: 1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 1},
	{X: 0, Y: -1, Z: 1},
}

// ToCube converts offset coordinates to cube coordinates.
// Odd rows are shifted half a cell, so x loses floor(y/2).
func ToCube(x, y int) Cube {
	cx := x - floorDiv2(y)
	cz := y
	return Cube{X: cx, Y: -cx - cz, Z: cz}
}

// ToOffset is the inverse of ToCube.
func (c Cube) ToOffset() Offset {
	return Offset{X: c.X + floorDiv2(c.Z), Y: c.Z}
}

// Cube returns the cube coordinate of an offset position.
func (o Offset) Cube() Cube {
	return ToCube(o.X, o.Y)
}

// Add returns c+d.
func (c Cube) Add(d Cube) Cube {
	return Cube{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Neighbors returns the six adjacent cube coordinates.
func (c Cube) Neighbors() [6]Cube {
	var result [6]Cube
	for i, dir := range CubeDirections {
		result[i] = c.Add(dir)
	}
	return result
}

// CubeDistance returns the hex distance between two cube coordinates.
func CubeDistance(a, b Cube) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	dz := abs(a.Z - b.Z)
	// Max of the three absolute differences.
	max := dx
	if dy > max {
		max = dy
	}
	if dz > max {
		max = dz
	}
	return max
}

func floorDiv2(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
