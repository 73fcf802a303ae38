// Package generate authors maze layouts: rooms joined by corridors, or
// perfect mazes where every pair of floor tiles has exactly one route.
package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"mazepath/internal/grid"
)

// ErrInvalidConfig is returned when a Config cannot produce a layout.
var ErrInvalidConfig = errors.New("invalid generator config")

// Style selects the generation algorithm.
type Style uint8

const (
	StyleRooms Style = iota
	StylePerfect
)

func (s Style) String() string {
	switch s {
	case StyleRooms:
		return "rooms"
	case StylePerfect:
		return "perfect"
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// ParseStyle maps a style name to a Style.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "rooms", "":
		return StyleRooms, nil
	case "perfect":
		return StylePerfect, nil
	}
	return 0, fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, name)
}

// Config drives generation of one layout.
type Config struct {
	Width, Length int
	Style         Style

	// Rooms style only.
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle

	Rand *rand.Rand
}

// Rect is an axis-aligned room, inclusive on both edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center tile of the rectangle.
func (r Rect) Center() grid.Coord {
	return grid.Coord{Col: (r.X1 + r.X2) / 2, Row: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Layout is a generated grid with suggested endpoints on floor tiles.
type Layout struct {
	Grid  *grid.Grid
	Rooms []Rect
	Start grid.Coord
	End   grid.Coord
}

// Generate builds a layout. Every floor tile of the result is reachable
// from every other.
func Generate(cfg *Config) (*Layout, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := newCanvas(cfg.Width, cfg.Length)

	var lay *Layout
	switch cfg.Style {
	case StylePerfect:
		lay = carvePerfect(c, cfg.Rand)
	default:
		lay = carveRooms(c, cfg)
		if len(lay.Rooms) == 0 {
			return nil, fmt.Errorf("%w: no room fits in %dx%d", ErrInvalidConfig, cfg.Width, cfg.Length)
		}
	}

	g, err := grid.New(cfg.Width, cfg.Length, c.isWall)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	lay.Grid = g
	return lay, nil
}

func (cfg *Config) validate() error {
	if cfg == nil || cfg.Rand == nil {
		return fmt.Errorf("%w: missing random source", ErrInvalidConfig)
	}
	switch cfg.Style {
	case StylePerfect:
		if cfg.Width < 3 || cfg.Length < 3 {
			return fmt.Errorf("%w: perfect maze needs at least 3x3, got %dx%d", ErrInvalidConfig, cfg.Width, cfg.Length)
		}
	case StyleRooms:
		if cfg.Width < 5 || cfg.Length < 5 {
			return fmt.Errorf("%w: rooms need at least 5x5, got %dx%d", ErrInvalidConfig, cfg.Width, cfg.Length)
		}
		if cfg.MinLeafSize <= 0 || cfg.MaxLeafSize < cfg.MinLeafSize {
			return fmt.Errorf("%w: leaf size range [%d,%d]", ErrInvalidConfig, cfg.MinLeafSize, cfg.MaxLeafSize)
		}
		if cfg.MinRoomSize <= 0 || cfg.RoomPadding < 0 {
			return fmt.Errorf("%w: room size %d padding %d", ErrInvalidConfig, cfg.MinRoomSize, cfg.RoomPadding)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, cfg.Style)
	}
	return nil
}

// canvas is the mutable tile buffer layouts are carved into before the
// immutable grid is built.
type canvas struct {
	width, length int
	walls         []bool
}

// newCanvas returns a canvas filled with walls.
func newCanvas(width, length int) *canvas {
	walls := make([]bool, width*length)
	for i := range walls {
		walls[i] = true
	}
	return &canvas{width: width, length: length, walls: walls}
}

func (c *canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.length
}

func (c *canvas) carve(x, y int) {
	if c.inBounds(x, y) {
		c.walls[y*c.width+x] = false
	}
}

func (c *canvas) floor(x, y int) bool {
	return c.inBounds(x, y) && !c.walls[y*c.width+x]
}

func (c *canvas) isWall(p grid.Coord) bool {
	return c.walls[p.Row*c.width+p.Col]
}
