package render

import (
	"mazepath/internal/grid"
	"mazepath/internal/pathfind"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func mustRows(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	require.NoError(t, err)
	return g
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawGrid(t *testing.T) {
	s := newScreen(t, 40, 12)
	g := mustRows(t,
		"#.#",
		"...",
		"#..",
	)
	r := NewRenderer(s, ASCIITheme)
	r.CenterOn(g, grid.Coord{Col: 1, Row: 1})
	r.DrawGrid(g)

	// Top-left tile of the text is the highest row.
	x, y, ok := r.TileToScreen(g, grid.Coord{Col: 0, Row: 2})
	require.True(t, ok)
	assert.Equal(t, '#', runeAt(s, x, y))
	assert.Equal(t, '.', runeAt(s, x+1, y))
	assert.Equal(t, '.', runeAt(s, x, y+1))
	assert.Equal(t, '#', runeAt(s, x, y+2))
	assert.Equal(t, '.', runeAt(s, x+2, y+2))
}

func TestDrawPathAndMarkers(t *testing.T) {
	s := newScreen(t, 40, 12)
	g := mustRows(t,
		"...",
		".#.",
		"...",
	)
	start := grid.Coord{Col: 0, Row: 0}
	end := grid.Coord{Col: 2, Row: 2}
	a, _ := g.NodeAt(start)
	b, _ := g.NodeAt(end)
	res, err := pathfind.Find(g, a, b)
	require.NoError(t, err)
	require.True(t, res.Found)

	r := NewRenderer(s, ASCIITheme)
	r.CenterOn(g, grid.Coord{Col: 1, Row: 1})
	r.DrawGrid(g)
	r.DrawPath(g, res.Path)
	r.DrawMarkers(g, start, end, grid.Coord{Col: 1, Row: 1})

	for _, c := range res.Coords(g)[1 : len(res.Path)-1] {
		x, y, ok := r.TileToScreen(g, c)
		require.True(t, ok)
		assert.Equal(t, '*', runeAt(s, x, y), "path tile %v", c)
	}
	x, y, _ := r.TileToScreen(g, start)
	assert.Equal(t, 'S', runeAt(s, x, y))
	x, y, _ = r.TileToScreen(g, end)
	assert.Equal(t, 'E', runeAt(s, x, y))
	x, y, _ = r.TileToScreen(g, grid.Coord{Col: 1, Row: 1})
	assert.Equal(t, '@', runeAt(s, x, y))
}

func TestWideGlyphsPadTile(t *testing.T) {
	s := newScreen(t, 40, 12)
	g := mustRows(t, "#.")
	theme := ASCIITheme
	theme.Wall = "🧱"
	require.Equal(t, 2, theme.CellWidth())

	r := NewRenderer(s, theme)
	r.CenterOn(g, grid.Coord{})
	r.DrawGrid(g)

	x0, y, ok := r.TileToScreen(g, grid.Coord{Col: 0})
	require.True(t, ok)
	x1, _, _ := r.TileToScreen(g, grid.Coord{Col: 1})
	assert.Equal(t, 2, x1-x0)
	assert.Equal(t, '🧱', runeAt(s, x0, y))
	assert.Equal(t, '.', runeAt(s, x1, y))
	assert.Equal(t, ' ', runeAt(s, x1+1, y))
}

func TestTilesOutsideViewportAreSkipped(t *testing.T) {
	s := newScreen(t, 4, 6)
	g := mustRows(t, strings.Repeat(".", 20))
	r := NewRenderer(s, ASCIITheme)
	r.CenterOn(g, grid.Coord{Col: 0})

	_, _, ok := r.TileToScreen(g, grid.Coord{Col: 19})
	assert.False(t, ok)
	r.DrawGrid(g) // must not write past the screen
}

func TestDrawStatus(t *testing.T) {
	s := newScreen(t, 30, 10)
	r := NewRenderer(s, ASCIITheme)
	r.DrawStatus("path 12 steps", "q quit")

	assert.Equal(t, '─', runeAt(s, 0, 7))
	var line strings.Builder
	for x := 0; x < len("path 12 steps"); x++ {
		line.WriteRune(runeAt(s, x, 8))
	}
	assert.Equal(t, "path 12 steps", line.String())
	assert.Equal(t, 'q', runeAt(s, 0, 9))
}

func TestText(t *testing.T) {
	rows := []string{
		"#.#",
		"#..",
		"##.",
	}
	g := mustRows(t, rows...)
	assert.Equal(t, strings.Join(rows, "\n")+"\n", Text(g, nil, ASCIITheme))

	a, _ := g.NodeAt(grid.Coord{Col: 1, Row: 2})
	b, _ := g.NodeAt(grid.Coord{Col: 2, Row: 0})
	res, err := pathfind.Find(g, a, b)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "#S#\n#**\n##E\n", Text(g, res.Path, ASCIITheme))
}

func TestThemes(t *testing.T) {
	th, err := ThemeByName("ascii")
	require.NoError(t, err)
	assert.Equal(t, ASCIITheme, th)
	assert.Equal(t, 1, th.CellWidth())
	assert.Equal(t, "#", th.Tile(grid.TileWall))
	assert.Equal(t, ".", th.Tile(grid.TileFloor))

	th, err = ThemeByName("emoji")
	require.NoError(t, err)
	assert.Equal(t, 2, th.CellWidth())

	_, err = ThemeByName("neon")
	assert.Error(t, err)

	th = ASCIITheme.Override(map[string]string{"path": "o", "lava": "~", "wall": ""})
	assert.Equal(t, "o", th.Path)
	assert.Equal(t, "#", th.Wall)
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(10, 5, 20, 10, 2)
	sx, sy, ok := c.WorldToScreen(10, 5)
	require.True(t, ok)
	wx, wy := c.ScreenToWorld(sx, sy)
	assert.Equal(t, 10, wx)
	assert.Equal(t, 5, wy)
}
