// Package render draws grids and paths to a terminal or to plain text.
package render

import (
	"mazepath/internal/grid"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// statusRows is the height reserved at the bottom of the screen for the
// separator and two status lines.
const statusRows = 3

// Renderer draws a grid onto a tcell screen. Higher rows are drawn nearer
// the top of the screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
	style  tcell.Style
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(0, h-statusRows), theme.CellWidth()),
		theme:  theme,
		style:  tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// Theme returns the glyph set in use.
func (r *Renderer) Theme() Theme { return r.theme }

// Resize refits the viewport after the screen size changed.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(0, h-statusRows)
}

// CenterOn recenters the camera on tile c of g.
func (r *Renderer) CenterOn(g *grid.Grid, c grid.Coord) {
	r.camera.Center(c.Col, viewLine(g, c))
}

// TileToScreen returns the screen cell of tile c. visible is false when
// the tile is outside the viewport.
func (r *Renderer) TileToScreen(g *grid.Grid, c grid.Coord) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(c.Col, viewLine(g, c))
}

// Clear blanks the back buffer.
func (r *Renderer) Clear() { r.screen.Clear() }

// Show flushes the back buffer to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// DrawGrid draws every visible tile as wall or floor.
func (r *Renderer) DrawGrid(g *grid.Grid) {
	for i := 0; i < g.Len(); i++ {
		id := grid.NodeID(i)
		r.drawTile(g, g.Coord(id), r.theme.Tile(g.Kind(id)))
	}
}

// DrawPath marks each node of path.
func (r *Renderer) DrawPath(g *grid.Grid, path []grid.NodeID) {
	for _, id := range path {
		if g.Contains(id) {
			r.drawTile(g, g.Coord(id), r.theme.Path)
		}
	}
}

// DrawMarkers draws the start, end and cursor glyphs. The cursor is drawn
// last so it stays visible on top of an endpoint.
func (r *Renderer) DrawMarkers(g *grid.Grid, start, end, cursor grid.Coord) {
	r.drawTile(g, start, r.theme.Start)
	r.drawTile(g, end, r.theme.End)
	r.drawTile(g, cursor, r.theme.Cursor)
}

func (r *Renderer) drawTile(g *grid.Grid, c grid.Coord, glyph string) {
	if !g.InBounds(c) {
		return
	}
	sx, sy, onScreen := r.TileToScreen(g, c)
	if !onScreen {
		return
	}
	r.putGlyph(sx, sy, glyph, r.style)
}

// putGlyph draws a glyph (ASCII or multi-rune emoji) at screen position
// (x, y) and pads the rest of the tile with spaces.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	for col := runewidth.StringWidth(glyph); col < r.camera.CellWidth; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}

// viewLine maps a grid row to a line counted from the top of the grid.
func viewLine(g *grid.Grid, c grid.Coord) int {
	return g.Length() - 1 - c.Row
}
