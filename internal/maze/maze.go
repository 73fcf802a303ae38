// Package maze wraps a grid.Grid with the lookups callers usually start from:
// world positions, tile coordinates, or node handles.
package maze

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"mazepath/internal/grid"
	"mazepath/internal/pathfind"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("mazepath.maze")

// Position is a point in world space. Tile (col, row) is centered at
// origin + (col, row) * tileSize.
type Position struct {
	X, Y float64
}

// Maze is a grid plus its placement in world space. PathFind calls on one
// Maze are serialized.
type Maze struct {
	grid     *grid.Grid
	tileSize float64
	origin   Position
	logger   *slog.Logger

	mu       sync.Mutex
	searcher *pathfind.Searcher
}

// Option configures a Maze.
type Option func(*Maze)

// WithTileSize sets the world-space distance between tile centers.
func WithTileSize(size float64) Option {
	return func(m *Maze) { m.tileSize = size }
}

// WithOrigin sets the world position of tile (0,0).
func WithOrigin(p Position) Option {
	return func(m *Maze) { m.origin = p }
}

// WithLogger sets the logger for rejected or failed requests.
func WithLogger(l *slog.Logger) Option {
	return func(m *Maze) { m.logger = l }
}

// New creates a Maze over g with unit tiles at the world origin.
func New(g *grid.Grid, opts ...Option) *Maze {
	m := &Maze{
		grid:     g,
		tileSize: 1,
		logger:   slog.Default(),
		searcher: pathfind.NewSearcher(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Grid returns the underlying grid.
func (m *Maze) Grid() *grid.Grid { return m.grid }

// WorldPosition returns the world-space center of id.
func (m *Maze) WorldPosition(id grid.NodeID) Position {
	c := m.grid.Coord(id)
	return Position{
		X: m.origin.X + float64(c.Col)*m.tileSize,
		Y: m.origin.Y + float64(c.Row)*m.tileSize,
	}
}

// NodeAt returns the node at c, or grid.ErrOutOfBounds.
func (m *Maze) NodeAt(c grid.Coord) (grid.NodeID, error) {
	return m.grid.NodeAt(c)
}

// NearestNode returns the node closest to p, walls included.
func (m *Maze) NearestNode(p Position) grid.NodeID {
	return m.nearest(p, false)
}

// NearestOpenNode returns the non-wall node closest to p, or grid.NoNode
// when the grid has no floor.
func (m *Maze) NearestOpenNode(p Position) grid.NodeID {
	id := m.nearest(p, true)
	if id == grid.NoNode {
		m.logger.Warn("no open node in maze", "x", p.X, "y", p.Y)
	}
	return id
}

func (m *Maze) nearest(p Position, skipWalls bool) grid.NodeID {
	found := grid.NoNode
	best := math.MaxFloat64
	for i := 0; i < m.grid.Len(); i++ {
		id := grid.NodeID(i)
		if skipWalls && m.grid.IsWall(id) {
			continue
		}
		wp := m.WorldPosition(id)
		if d := math.Hypot(wp.X-p.X, wp.Y-p.Y); d < best {
			best = d
			found = id
		}
	}
	return found
}

// PathFindPositions finds a path between the open nodes nearest to a and b.
func (m *Maze) PathFindPositions(ctx context.Context, a, b Position) (pathfind.Result, error) {
	return m.PathFind(ctx, m.NearestOpenNode(a), m.NearestOpenNode(b))
}

// PathFindCoords finds a path between the nodes at a and b.
func (m *Maze) PathFindCoords(ctx context.Context, a, b grid.Coord) (pathfind.Result, error) {
	start, err := m.grid.NodeAt(a)
	if err != nil {
		m.logger.Error("cannot resolve start coordinate", "coord", a.String(), "error", err)
		return pathfind.Result{}, err
	}
	end, err := m.grid.NodeAt(b)
	if err != nil {
		m.logger.Error("cannot resolve end coordinate", "coord", b.String(), "error", err)
		return pathfind.Result{}, err
	}
	return m.PathFind(ctx, start, end)
}

// PathFind finds a shortest path from start to end. A missing route is
// reported as Result.Found == false with a nil error.
func (m *Maze) PathFind(ctx context.Context, start, end grid.NodeID) (pathfind.Result, error) {
	_, span := tracer.Start(ctx, "maze.PathFind",
		trace.WithAttributes(
			attribute.Int("maze.start", int(start)),
			attribute.Int("maze.end", int(end)),
			attribute.Int("maze.width", m.grid.Width()),
			attribute.Int("maze.length", m.grid.Length()),
		),
	)
	defer span.End()

	m.mu.Lock()
	res, err := m.searcher.Find(m.grid, start, end)
	m.mu.Unlock()

	span.SetAttributes(
		attribute.Int("search.expanded", res.Expanded),
		attribute.Int("search.relaxed", res.Relaxed),
	)

	switch {
	case errors.Is(err, pathfind.ErrInvalidEndpoint):
		m.logger.Error("cannot pathfind between missing nodes", "start", int(start), "end", int(end))
	case errors.Is(err, pathfind.ErrUnreachableEndpoint):
		m.logger.Warn("cannot pathfind into or out of a wall", "error", err)
	case err != nil:
		m.logger.Error("pathfind failed", "error", err)
	case !res.Found:
		m.logger.Warn("no valid path found",
			"start", m.grid.Coord(start).String(), "end", m.grid.Coord(end).String(),
			"expanded", res.Expanded)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(attribute.Bool("search.found", res.Found), attribute.Int("search.steps", res.Steps()))
	return res, nil
}
