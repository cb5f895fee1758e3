package world

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	for i := range g.cells {
		counts[g.cells[i].Type]++
	}
	return counts
}

// Coverage returns the fraction of cells whose type is in group.
func Coverage(g *Grid, group Group) float64 {
	if g.Size() == 0 {
		return 0
	}
	n := 0
	for i := range g.cells {
		if group.Contains(g.cells[i].Type) {
			n++
		}
	}
	return float64(n) / float64(g.Size())
}
