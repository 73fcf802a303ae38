package render

import (
	"mazepath/internal/grid"
	"strings"
)

// Text renders g as plain text, top row first, one line per row. Path
// nodes use theme.Path; the first and last path nodes use Start and End.
func Text(g *grid.Grid, path []grid.NodeID, theme Theme) string {
	marks := make(map[grid.NodeID]string, len(path))
	for _, id := range path {
		marks[id] = theme.Path
	}
	if len(path) > 0 {
		marks[path[0]] = theme.Start
		marks[path[len(path)-1]] = theme.End
	}

	var b strings.Builder
	for row := g.Length() - 1; row >= 0; row-- {
		for col := 0; col < g.Width(); col++ {
			id, _ := g.NodeAt(grid.Coord{Col: col, Row: row})
			if glyph, ok := marks[id]; ok {
				b.WriteString(glyph)
			} else {
				b.WriteString(theme.Tile(g.Kind(id)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
