package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"mazepath/internal/config"
	"mazepath/internal/generate"
	"mazepath/internal/render"
	"mazepath/internal/viewer"
	"time"

	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands after flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "mazepath",
		Short:        "Generate grid mazes and find shortest paths through them",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newSolveCmd(a), newViewCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// theme resolves the configured glyph set.
func (a *app) theme() (render.Theme, error) {
	t, err := render.ThemeByName(a.cfg.Render.Theme)
	if err != nil {
		return render.Theme{}, err
	}
	return t.Override(a.cfg.Render.Glyphs), nil
}

// generator returns a viewer.Generator drawing from its own random source.
func (a *app) generator(seed int64) viewer.Generator {
	rng := rand.New(rand.NewSource(seed))
	maze := a.cfg.Maze
	return func() (*generate.Layout, error) {
		gc, err := maze.GeneratorConfig(rng)
		if err != nil {
			return nil, err
		}
		return generate.Generate(gc)
	}
}

// resolveSeed replaces a zero seed with a time-based one.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// parseCoord parses "col,row".
func parseCoord(s string) (col, row int, err error) {
	if _, err := fmt.Sscanf(s, "%d,%d", &col, &row); err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: want col,row", s)
	}
	return col, row, nil
}
