package main

import (
	"fmt"
	"log/slog"
	"mazepath/internal/maze"
	"mazepath/internal/viewer"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore and solve mazes in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := a.theme()
			if err != nil {
				return err
			}
			// The screen owns the terminal, so logs go to a file or nowhere.
			logger := slog.New(slog.DiscardHandler)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				level, _ := a.cfg.Log.SlogLevel()
				logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("terminal setup: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("screen init: %w", err)
			}
			defer screen.Fini()

			sess, err := viewer.NewSession(screen, a.generator(resolveSeed(a.cfg.Maze.Seed)), theme, logger,
				maze.WithTileSize(a.cfg.Maze.TileSize))
			if err != nil {
				return err
			}
			return sess.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the viewer runs")
	return cmd
}
