package main

import (
	"errors"
	"fmt"
	"mazepath/internal/grid"
	"mazepath/internal/maze"
	"mazepath/internal/render"

	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		seed          int64
		width, length int
		style         string
		from, to      string
		theme         string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Generate a maze and print the shortest path between two tiles",
		Long: `Generate a maze from the configured settings and print it with the shortest
path marked. Endpoints default to the ones suggested by the generator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("seed") {
				a.cfg.Maze.Seed = seed
			}
			if flags.Changed("width") {
				a.cfg.Maze.Width = width
			}
			if flags.Changed("length") {
				a.cfg.Maze.Length = length
			}
			if flags.Changed("style") {
				a.cfg.Maze.Style = style
			}
			if flags.Changed("theme") {
				a.cfg.Render.Theme = theme
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.solve(cmd, from, to)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&seed, "seed", 0, "generator seed (0 picks one from the clock)")
	f.IntVar(&width, "width", 0, "maze width in tiles")
	f.IntVar(&length, "length", 0, "maze length in tiles")
	f.StringVar(&style, "style", "", "maze style: rooms or perfect")
	f.StringVar(&from, "from", "", "start tile as col,row (default: generator start)")
	f.StringVar(&to, "to", "", "end tile as col,row (default: generator end)")
	f.StringVar(&theme, "theme", "", "glyph theme: emoji or ascii")
	return cmd
}

func (a *app) solve(cmd *cobra.Command, from, to string) error {
	seed := resolveSeed(a.cfg.Maze.Seed)
	lay, err := a.generator(seed)()
	if err != nil {
		return err
	}
	start, end := lay.Start, lay.End
	if from != "" {
		if start.Col, start.Row, err = parseCoord(from); err != nil {
			return err
		}
	}
	if to != "" {
		if end.Col, end.Row, err = parseCoord(to); err != nil {
			return err
		}
	}
	theme, err := a.theme()
	if err != nil {
		return err
	}

	m := maze.New(lay.Grid, maze.WithLogger(a.logger), maze.WithTileSize(a.cfg.Maze.TileSize))
	res, err := m.PathFindCoords(cmd.Context(), start, end)
	if err != nil {
		if errors.Is(err, grid.ErrOutOfBounds) {
			return fmt.Errorf("endpoint outside the %dx%d maze: %w", lay.Grid.Width(), lay.Grid.Length(), err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Text(lay.Grid, res.Path, theme))
	fmt.Fprintf(out, "seed %d  %s -> %s\n", seed, start, end)
	if !res.Found {
		fmt.Fprintf(out, "no path  expanded %d\n", res.Expanded)
		return nil
	}
	fmt.Fprintf(out, "path %d steps  expanded %d  relaxed %d\n", res.Steps(), res.Expanded, res.Relaxed)
	return nil
}
