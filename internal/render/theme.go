package render

import (
	"fmt"
	"mazepath/internal/grid"

	"github.com/mattn/go-runewidth"
)

// Theme holds the glyphs used to draw one maze. Emoji carry their own
// colors, so each element gets a distinct glyph rather than a tint.
type Theme struct {
	Wall   string
	Floor  string
	Path   string
	Start  string
	End    string
	Cursor string
}

// DefaultTheme draws with two-column emoji.
var DefaultTheme = Theme{
	Wall:   "🧱",
	Floor:  "⬛",
	Path:   "🟨",
	Start:  "🟢",
	End:    "🔴",
	Cursor: "🔳",
}

// ASCIITheme is for terminals and logs without emoji support.
var ASCIITheme = Theme{
	Wall:   "#",
	Floor:  ".",
	Path:   "*",
	Start:  "S",
	End:    "E",
	Cursor: "@",
}

// ThemeByName returns "emoji" or "ascii".
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "emoji", "":
		return DefaultTheme, nil
	case "ascii":
		return ASCIITheme, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// Override replaces glyphs by element name (wall, floor, path, start, end,
// cursor). Unknown names and empty glyphs are ignored.
func (t Theme) Override(glyphs map[string]string) Theme {
	for k, v := range glyphs {
		if v == "" {
			continue
		}
		switch k {
		case "wall":
			t.Wall = v
		case "floor":
			t.Floor = v
		case "path":
			t.Path = v
		case "start":
			t.Start = v
		case "end":
			t.End = v
		case "cursor":
			t.Cursor = v
		}
	}
	return t
}

// Tile returns the glyph for a tile of the given kind.
func (t Theme) Tile(kind grid.TileKind) string {
	if kind == grid.TileWall {
		return t.Wall
	}
	return t.Floor
}

// CellWidth is the number of terminal columns one tile occupies: the
// widest glyph in the theme.
func (t Theme) CellWidth() int {
	w := 1
	for _, g := range []string{t.Wall, t.Floor, t.Path, t.Start, t.End, t.Cursor} {
		w = max(w, runewidth.StringWidth(g))
	}
	return w
}
