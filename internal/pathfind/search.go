// Package pathfind finds shortest paths on a grid.Grid.
//
// The search is best-first, keyed by distance from the start plus the
// Manhattan distance to the target. When a visited node is reached by a
// shorter route it is reparented and the new distance is pushed down the
// whole subtree of nodes routed through it, so the parent links always form
// a consistent shortest-path tree.
//
// Per-search metadata lives in the Searcher, never on the Grid: any number of
// Searchers may run against the same Grid concurrently, but a single
// Searcher is not safe for concurrent use.
package pathfind

import (
	"errors"
	"fmt"
	"mazepath/internal/grid"
)

var (
	// ErrInvalidEndpoint is returned when start or end is not a node of the grid.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrUnreachableEndpoint is returned when start or end is a wall.
	ErrUnreachableEndpoint = errors.New("endpoint is a wall")
)

// Result is the outcome of a search. Found is false when both endpoints are
// valid but no route connects them; Path is then nil.
type Result struct {
	Path     []grid.NodeID // start to end inclusive
	Found    bool
	Expanded int // frontier pops
	Relaxed  int // nodes whose distance was lowered after discovery
}

// Steps returns the number of edges in the path.
func (r Result) Steps() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Coords maps the path to tile coordinates.
func (r Result) Coords(g *grid.Grid) []grid.Coord {
	if r.Path == nil {
		return nil
	}
	out := make([]grid.Coord, len(r.Path))
	for i, id := range r.Path {
		out[i] = g.Coord(id)
	}
	return out
}

// meta is the transient search state of one node.
type meta struct {
	parent   grid.NodeID
	distance int // -1 until reached
	estimate int // distance + Manhattan to target, -1 until reached
	visited  bool
	slot     int // frontier heap index, -1 when not queued
	seq      uint64
}

var unreached = meta{parent: grid.NoNode, distance: -1, estimate: -1, slot: -1}

// Searcher runs searches with reusable buffers.
type Searcher struct {
	meta  []meta
	open  frontier
	stack []grid.NodeID
}

// NewSearcher returns an empty Searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Find runs a single search with freshly allocated state.
func Find(g *grid.Grid, start, end grid.NodeID) (Result, error) {
	return NewSearcher().Find(g, start, end)
}

// Find returns a shortest path from start to end.
func (s *Searcher) Find(g *grid.Grid, start, end grid.NodeID) (Result, error) {
	if g == nil || !g.Contains(start) || !g.Contains(end) {
		recordSearch(outcomeInvalid, Result{})
		return Result{}, fmt.Errorf("%w: start=%d end=%d", ErrInvalidEndpoint, start, end)
	}
	if g.IsWall(start) {
		recordSearch(outcomeUnreachable, Result{})
		return Result{}, fmt.Errorf("%w: start %v", ErrUnreachableEndpoint, g.Coord(start))
	}
	if g.IsWall(end) {
		recordSearch(outcomeUnreachable, Result{})
		return Result{}, fmt.Errorf("%w: end %v", ErrUnreachableEndpoint, g.Coord(end))
	}
	if start == end {
		res := Result{Path: []grid.NodeID{start}, Found: true}
		recordSearch(outcomeFound, res)
		return res, nil
	}

	s.reset(g.Len())
	target := g.Coord(end)
	var res Result

	s.assign(g, start, grid.NoNode, target)
	s.open.push(start)

	for s.open.Len() > 0 && s.meta[end].parent == grid.NoNode {
		cur := s.open.pop()
		res.Expanded++
		for _, d := range grid.Directions {
			n := g.Neighbor(cur, d)
			if n == grid.NoNode || g.IsWall(n) {
				continue
			}
			res.Relaxed += s.evaluate(g, cur, n, target)
		}
	}

	if s.meta[end].parent == grid.NoNode {
		recordSearch(outcomeNoPath, res)
		return res, nil
	}
	res.Path = s.buildPath(end)
	res.Found = true
	recordSearch(outcomeFound, res)
	return res, nil
}

func (s *Searcher) reset(n int) {
	if cap(s.meta) < n {
		s.meta = make([]meta, n)
	}
	s.meta = s.meta[:n]
	for i := range s.meta {
		s.meta[i] = unreached
	}
	s.open = frontier{items: s.open.items[:0], meta: s.meta}
	s.stack = s.stack[:0]
}

// evaluate considers reaching n from cur and returns how many nodes were relaxed.
func (s *Searcher) evaluate(g *grid.Grid, cur, n grid.NodeID, target grid.Coord) int {
	m := &s.meta[n]
	if !m.visited {
		s.assign(g, n, cur, target)
		s.open.push(n)
		return 0
	}
	if s.meta[cur].distance+1 >= m.distance {
		return 0
	}
	return s.relax(g, n, cur, target)
}

// relax reparents id under parent, then walks every node whose parent chain
// runs through id and recomputes its distance. Distances strictly increase
// away from the start along parent links, and a node is only reparented
// under a strictly closer one, so the links stay a tree and the walk visits
// each descendant once. Every updated node is re-queued so its expansion
// sees the corrected distance.
func (s *Searcher) relax(g *grid.Grid, id, parent grid.NodeID, target grid.Coord) int {
	s.assign(g, id, parent, target)
	s.open.push(id)
	relaxed := 1

	s.stack = append(s.stack[:0], id)
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		for _, d := range grid.Directions {
			child := g.Neighbor(top, d)
			if child == grid.NoNode || s.meta[child].parent != top {
				continue
			}
			s.assign(g, child, top, target)
			s.open.push(child)
			relaxed++
			s.stack = append(s.stack, child)
		}
	}
	return relaxed
}

func (s *Searcher) assign(g *grid.Grid, id, parent grid.NodeID, target grid.Coord) {
	m := &s.meta[id]
	m.parent = parent
	m.distance = 0
	if parent != grid.NoNode {
		m.distance = s.meta[parent].distance + 1
	}
	m.estimate = m.distance + g.Coord(id).Manhattan(target)
	m.visited = true
}

// buildPath follows parent links back from end and returns them start-first.
func (s *Searcher) buildPath(end grid.NodeID) []grid.NodeID {
	path := make([]grid.NodeID, 0, s.meta[end].distance+1)
	for cur := end; cur != grid.NoNode; cur = s.meta[cur].parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
