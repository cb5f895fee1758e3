package main

import (
	"io"
	"strings"

	"github.com/talgya/cellmap/internal/navigation"
	"github.com/talgya/cellmap/internal/world"
)

var glyphs = map[world.Terrain]byte{
	world.TerrainNone:         '?',
	world.TerrainPlain:        '.',
	world.TerrainHighland:     'n',
	world.TerrainMountain:     '^',
	world.TerrainShallowWater: '~',
	world.TerrainDeepWater:    '=',
	world.TerrainPlaceholder:  ' ',
}

const pathGlyph = '*'

// renderASCII writes one row per line, one glyph per cell. Odd rows are
// indented by one space so the hex stagger stays visible. Cells on any of
// paths are drawn as '*'.
func renderASCII(w io.Writer, g *world.Grid, paths ...*navigation.Path) error {
	onPath := make(map[world.Offset]bool)
	for _, p := range paths {
		for _, c := range p.Cells() {
			onPath[c.Pos] = true
		}
	}

	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		if y%2 == 1 {
			sb.WriteByte(' ')
		}
		for x := 0; x < g.Width(); x++ {
			if onPath[world.Offset{X: x, Y: y}] {
				sb.WriteByte(pathGlyph)
				continue
			}
			sb.WriteByte(glyphs[g.Cell(x, y).Type])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
