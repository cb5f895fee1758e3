// Package navigation finds movement-cost aware routes across a generated grid.
// Movement is always between hex-adjacent cells (cube distance 1), whatever
// topology was used to generate the map.
package navigation

import (
	"container/heap"

	"github.com/talgya/cellmap/internal/world"
)

// Pathfinder answers route queries against one finished grid.
// It never changes cell types, so queries can run one after another freely.
type Pathfinder struct {
	grid *world.Grid
}

// New creates a pathfinder for g.
func New(g *world.Grid) *Pathfinder {
	return &Pathfinder{grid: g}
}

// FindPath computes the cheapest route from (x1, y1) to (x2, y2).
// It returns false when either endpoint cannot be entered, lies off the grid,
// or when no route connects them.
func (pf *Pathfinder) FindPath(x1, y1, x2, y2 int) (*Path, bool) {
	start, ok := pf.grid.Lookup(x1, y1)
	if !ok || !start.MovementEnabled() {
		return nil, false
	}
	goal, ok := pf.grid.Lookup(x2, y2)
	if !ok || !goal.MovementEnabled() {
		return nil, false
	}
	if start == goal {
		return newPath([]world.Cell{*start}), true
	}

	open := &nodePQ{}
	heap.Init(open)
	heap.Push(open, &pqNode{cell: start, g: 0, f: start.DistanceFrom(goal)})

	g := map[world.Offset]int{start.Pos: 0}
	came := map[world.Offset]*world.Cell{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode)
		if cur.cell == goal {
			break
		}
		// Stale entry; a cheaper route to this cell was queued later.
		if cur.g > g[cur.cell.Pos] {
			continue
		}
		for _, nb := range pf.grid.NeighborsCube(cur.cell, world.Immediate, world.Any) {
			if !nb.MovementEnabled() {
				continue
			}
			tentative := cur.g + nb.MovementCost()
			old, seen := g[nb.Pos]
			if !seen || tentative < old {
				g[nb.Pos] = tentative
				came[nb.Pos] = cur.cell
				heap.Push(open, &pqNode{cell: nb, g: tentative, f: tentative + nb.DistanceFrom(goal)})
			}
		}
	}

	if _, reached := came[goal.Pos]; !reached {
		return nil, false
	}

	// Walk predecessors back to the start, then reverse.
	cells := []world.Cell{*goal}
	for c := came[goal.Pos]; c != nil; c = came[c.Pos] {
		cells = append(cells, *c)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return newPath(cells), true
}

// PQ implementation
type pqNode struct {
	cell *world.Cell
	g    int
	f    int
}

type nodePQ []*pqNode

func (p nodePQ) Len() int           { return len(p) }
func (p nodePQ) Less(i, j int) bool { return p[i].f < p[j].f }
func (p nodePQ) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p *nodePQ) Push(x any)        { *p = append(*p, x.(*pqNode)) }
func (p *nodePQ) Pop() any {
	old := *p
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*p = old[:n-1]
	return x
}
