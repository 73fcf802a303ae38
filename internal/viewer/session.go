// Package viewer is the interactive maze viewer shared by the local
// terminal and SSH sessions.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mazepath/internal/generate"
	"mazepath/internal/grid"
	"mazepath/internal/maze"
	"mazepath/internal/pathfind"
	"mazepath/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

const helpLine = "arrows/hjkl move  s start  e end  enter solve  r new maze  q quit"

// Generator produces a new layout each time it is called.
type Generator func() (*generate.Layout, error)

// Session is one viewer bound to a screen. It is driven by a single
// goroutine and is not safe for concurrent use.
type Session struct {
	ID string

	screen   tcell.Screen
	renderer *render.Renderer
	generate Generator
	logger   *slog.Logger
	mazeOpts []maze.Option

	maze   *maze.Maze
	start  grid.Coord
	end    grid.Coord
	cursor grid.Coord
	path   []grid.NodeID
	status string
}

// NewSession creates a session and generates its first layout.
func NewSession(screen tcell.Screen, gen Generator, theme render.Theme, logger *slog.Logger, opts ...maze.Option) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)
	s := &Session{
		ID:       id,
		screen:   screen,
		renderer: render.NewRenderer(screen, theme),
		generate: gen,
		logger:   logger,
		mazeOpts: append([]maze.Option{maze.WithLogger(logger)}, opts...),
	}
	if err := s.regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run draws the session and handles input until the user quits, the
// screen's input fails or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("viewer session started")
	defer s.logger.Info("viewer session ended")

	// Wake PollEvent so the loop sees the cancellation.
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	s.draw()
	for {
		ev := s.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventError:
			s.logger.Info("screen input closed", "error", ev.Error())
			return nil
		case *tcell.EventInterrupt:
			continue
		case *tcell.EventResize:
			s.screen.Sync()
			s.renderer.Resize()
		case *tcell.EventKey:
			if !s.handle(ctx, keyToAction(ev)) {
				return nil
			}
		}
		s.draw()
	}
}

// handle applies one action. It returns false when the session should end.
func (s *Session) handle(ctx context.Context, a Action) bool {
	if d, ok := actionToDirection(a); ok {
		if next := s.cursor.Step(d); s.maze.Grid().InBounds(next) {
			s.cursor = next
		}
		return true
	}

	switch a {
	case ActionSetStart:
		s.start = s.cursor
		s.clearPath(fmt.Sprintf("start set to %s", s.start))
	case ActionSetEnd:
		s.end = s.cursor
		s.clearPath(fmt.Sprintf("end set to %s", s.end))
	case ActionSolve:
		s.solve(ctx)
	case ActionRegenerate:
		if err := s.regenerate(); err != nil {
			s.logger.Error("failed to generate maze", "error", err)
			s.status = "could not generate a new maze"
		}
	case ActionQuit:
		return false
	}
	return true
}

func (s *Session) solve(ctx context.Context) {
	res, err := s.maze.PathFindCoords(ctx, s.start, s.end)
	s.path = nil
	switch {
	case errors.Is(err, pathfind.ErrUnreachableEndpoint):
		s.status = "start or end is a wall"
	case errors.Is(err, grid.ErrOutOfBounds), errors.Is(err, pathfind.ErrInvalidEndpoint):
		s.status = "start or end is outside the maze"
	case err != nil:
		s.status = err.Error()
	case !res.Found:
		s.status = fmt.Sprintf("no path from %s to %s (expanded %d)", s.start, s.end, res.Expanded)
	default:
		s.path = res.Path
		s.status = fmt.Sprintf("path %d steps  expanded %d  relaxed %d", res.Steps(), res.Expanded, res.Relaxed)
	}
	s.logger.Debug("solved", "start", s.start.String(), "end", s.end.String(), "status", s.status)
}

func (s *Session) regenerate() error {
	lay, err := s.generate()
	if err != nil {
		return err
	}
	s.maze = maze.New(lay.Grid, s.mazeOpts...)
	s.start, s.end, s.cursor = lay.Start, lay.End, lay.Start
	s.clearPath(fmt.Sprintf("%dx%d maze", lay.Grid.Width(), lay.Grid.Length()))
	return nil
}

func (s *Session) clearPath(status string) {
	s.path = nil
	s.status = status
}

func (s *Session) draw() {
	g := s.maze.Grid()
	s.renderer.Clear()
	s.renderer.CenterOn(g, s.cursor)
	s.renderer.DrawGrid(g)
	s.renderer.DrawPath(g, s.path)
	s.renderer.DrawMarkers(g, s.start, s.end, s.cursor)
	s.renderer.DrawStatus(s.status, helpLine)
	s.renderer.Show()
}
