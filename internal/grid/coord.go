package grid

import "fmt"

// Coord is a (column, row) tile coordinate. The bottom-left tile is (0,0).
type Coord struct {
	Col, Row int
}

// String formats the coordinate as "(col,row)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Manhattan returns the sum of absolute differences along both axes.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.Col-other.Col) + abs(c.Row-other.Row)
}

// Step returns the coordinate one tile away in direction d.
func (c Coord) Step(d Direction) Coord {
	switch d {
	case Up:
		return Coord{c.Col, c.Row + 1}
	case Right:
		return Coord{c.Col + 1, c.Row}
	case Down:
		return Coord{c.Col, c.Row - 1}
	case Left:
		return Coord{c.Col - 1, c.Row}
	}
	return c
}

// Direction is one of the four cardinal links of a node.
type Direction uint8

// Direction values, indexing a node's links.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the cardinal directions in the order searches evaluate them.
var Directions = [4]Direction{Up, Right, Down, Left}

// Opposite returns the direction pointing back along d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
