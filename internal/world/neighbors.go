package world

import "fmt"

// Topology selects how a neighborhood of a given radius is measured.
type Topology uint8

const (
	// TopologySquare is a box in offset space: |dx| <= r and |dy| <= r.
	TopologySquare Topology = iota
	// TopologyCube is a hex disc in cube space: cube distance <= r.
	TopologyCube
)

func (t Topology) String() string {
	switch t {
	case TopologySquare:
		return "square"
	case TopologyCube:
		return "cube"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// ParseTopology accepts "square" or "cube".
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "square", "Square":
		return TopologySquare, nil
	case "cube", "Cube":
		return TopologyCube, nil
	}
	return TopologySquare, fmt.Errorf("unknown topology %q", s)
}

// NeighborFunc returns the cells around c within radius whose type is in filter.
type NeighborFunc func(c *Cell, radius Range, filter Group) []*Cell

// Neighbors returns the neighborhood query matching topology t.
func (g *Grid) Neighbors(t Topology) NeighborFunc {
	if t == TopologyCube {
		return g.NeighborsCube
	}
	return g.NeighborsSquare
}

// NeighborsSquare returns every in-bounds cell in the box
// [x-r, x+r] x [y-r, y+r] except c itself, keeping types in filter.
func (g *Grid) NeighborsSquare(c *Cell, radius Range, filter Group) []*Cell {
	r := int(radius)
	result := make([]*Cell, 0, (2*r+1)*(2*r+1)-1)
	for x := c.Pos.X - r; x <= c.Pos.X+r; x++ {
		for y := c.Pos.Y - r; y <= c.Pos.Y+r; y++ {
			if x == c.Pos.X && y == c.Pos.Y {
				continue
			}
			n, ok := g.Lookup(x, y)
			if !ok {
				continue
			}
			if filter.Contains(n.Type) {
				result = append(result, n)
			}
		}
	}
	return result
}

// NeighborsCube returns every indexed cell within cube distance r of c,
// except c itself, keeping types in filter.
func (g *Grid) NeighborsCube(c *Cell, radius Range, filter Group) []*Cell {
	r := int(radius)
	result := make([]*Cell, 0, 3*r*(r+1))
	for cx := c.Cube.X - r; cx <= c.Cube.X+r; cx++ {
		for cy := c.Cube.Y - r; cy <= c.Cube.Y+r; cy++ {
			cz := -cx - cy
			if dz := c.Cube.Z - cz; dz < -r || dz > r {
				continue
			}
			if cx == c.Cube.X && cy == c.Cube.Y {
				continue
			}
			n, ok := g.CellByCube(Cube{X: cx, Y: cy, Z: cz})
			if !ok {
				continue
			}
			if filter.Contains(n.Type) {
				result = append(result, n)
			}
		}
	}
	return result
}

// CountNeighbors is a shortcut for len(fn(c, radius, filter)).
func CountNeighbors(fn NeighborFunc, c *Cell, radius Range, filter Group) int {
	return len(fn(c, radius, filter))
}
