// Package grid models a rectangular, 4-connected tile topology.
//
// Nodes live in a flat arena and are addressed by NodeID. Links between
// neighbors are plain indices, built once by New and never mutated, so a
// Grid is safe to read from multiple goroutines.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidSize is returned for non-positive dimensions or ragged rows.
	ErrInvalidSize = errors.New("invalid grid size")
)

// NodeID indexes a node in its Grid's arena.
type NodeID int

// NoNode is the absent node handle (grid edges, unresolved endpoints).
const NoNode NodeID = -1

// TileKind classifies a tile for pathfinding.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
)

type node struct {
	coord Coord
	kind  TileKind
	links [4]NodeID
}

// Grid owns every node of one layout.
type Grid struct {
	width, length int
	nodes         []node
}

// New builds a width × length grid. wall reports which coordinates are walls;
// a nil wall func yields an all-floor grid.
func New(width, length int, wall func(Coord) bool) (*Grid, error) {
	if width <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, length)
	}
	g := &Grid{width: width, length: length, nodes: make([]node, width*length)}
	for row := 0; row < length; row++ {
		for col := 0; col < width; col++ {
			c := Coord{col, row}
			n := &g.nodes[g.index(c)]
			n.coord = c
			if wall != nil && wall(c) {
				n.kind = TileWall
			}
			for _, d := range Directions {
				n.links[d] = NoNode
			}
		}
	}
	// Link each node to its right and upper neighbor; the reverse link is
	// set in the same step so pairs can never disagree.
	for i := range g.nodes {
		c := g.nodes[i].coord
		if up := c.Step(Up); g.InBounds(up) {
			g.connect(NodeID(i), g.index(up), Up)
		}
		if right := c.Step(Right); g.InBounds(right) {
			g.connect(NodeID(i), g.index(right), Right)
		}
	}
	return g, nil
}

// FromRows builds a grid from text rows, top row first. '#' marks a wall,
// any other rune is floor.
func FromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	cells := make([][]rune, len(rows))
	for i, r := range rows {
		cells[i] = []rune(r)
		if len(cells[i]) != len(cells[0]) {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrInvalidSize, i, len(cells[i]), len(cells[0]))
		}
	}
	length := len(cells)
	return New(len(cells[0]), length, func(c Coord) bool {
		return cells[length-1-c.Row][c.Col] == '#'
	})
}

func (g *Grid) connect(from, to NodeID, d Direction) {
	g.nodes[from].links[d] = to
	g.nodes[to].links[d.Opposite()] = from
}

func (g *Grid) index(c Coord) NodeID {
	return NodeID(c.Row*g.width + c.Col)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Length returns the number of rows.
func (g *Grid) Length() int { return g.length }

// Len returns the number of nodes.
func (g *Grid) Len() int { return len(g.nodes) }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.length
}

// Contains reports whether id addresses a node of g.
func (g *Grid) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// NodeAt returns the node at c.
func (g *Grid) NodeAt(c Coord) (NodeID, error) {
	if !g.InBounds(c) {
		return NoNode, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, c, g.width, g.length)
	}
	return g.index(c), nil
}

// Neighbor returns the node one step from id in direction d, or NoNode at an edge.
// Panics if id is not a node of g.
func (g *Grid) Neighbor(id NodeID, d Direction) NodeID {
	return g.nodes[id].links[d]
}

// Coord returns the coordinate of id. Panics if id is not a node of g.
func (g *Grid) Coord(id NodeID) Coord {
	return g.nodes[id].coord
}

// Kind returns the tile classification of id. Panics if id is not a node of g.
func (g *Grid) Kind(id NodeID) TileKind {
	return g.nodes[id].kind
}

// IsWall reports whether id is impassable. Panics if id is not a node of g.
func (g *Grid) IsWall(id NodeID) bool {
	return g.nodes[id].kind == TileWall
}
