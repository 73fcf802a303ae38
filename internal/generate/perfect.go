package generate

import (
	"math/rand"
	"mazepath/internal/grid"
)

// carvePerfect carves a perfect maze with a randomized depth-first walk.
// Cells sit on odd coordinates; the wall between two cells is opened when
// the walk steps across it, so the floor forms a spanning tree.
func carvePerfect(c *canvas, rng *rand.Rand) *Layout {
	lastX, lastY := lastCell(c.width), lastCell(c.length)
	start := grid.Coord{Col: 1, Row: 1}

	c.carve(start.Col, start.Row)
	stack := []grid.Coord{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		moved := false
		for _, i := range rng.Perm(4) {
			d := grid.Directions[i]
			wall := cur.Step(d)
			next := wall.Step(d)
			if next.Col < 1 || next.Col > lastX || next.Row < 1 || next.Row > lastY {
				continue
			}
			if c.floor(next.Col, next.Row) {
				continue
			}
			c.carve(wall.Col, wall.Row)
			c.carve(next.Col, next.Row)
			stack = append(stack, next)
			moved = true
			break
		}
		if !moved {
			stack = stack[:len(stack)-1]
		}
	}

	return &Layout{Start: start, End: grid.Coord{Col: lastX, Row: lastY}}
}

// lastCell returns the highest odd index that leaves a wall border in a
// dimension of size n.
func lastCell(n int) int {
	if (n-2)%2 == 1 {
		return n - 2
	}
	return n - 3
}
