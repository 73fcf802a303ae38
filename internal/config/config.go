// Package config loads mazepath settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"math/rand"
	"mazepath/internal/generate"
)

// Config is the root of the YAML document.
type Config struct {
	Maze   MazeConfig   `yaml:"maze"`
	Render RenderConfig `yaml:"render"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type MazeConfig struct {
	Width    int         `yaml:"width"`
	Length   int         `yaml:"length"`
	Style    string      `yaml:"style"` // rooms | perfect
	Seed     int64       `yaml:"seed"`  // 0 picks a time-based seed
	TileSize float64     `yaml:"tile_size"`
	Rooms    RoomsConfig `yaml:"rooms"`
}

type RoomsConfig struct {
	MinLeafSize int    `yaml:"min_leaf_size"`
	MaxLeafSize int    `yaml:"max_leaf_size"`
	MinRoomSize int    `yaml:"min_room_size"`
	RoomPadding int    `yaml:"room_padding"`
	Corridor    string `yaml:"corridor"` // l | z | straight
}

type RenderConfig struct {
	Theme  string            `yaml:"theme"`  // emoji | ascii
	Glyphs map[string]string `yaml:"glyphs"` // per-element overrides: wall, floor, path, start, end, cursor
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKey     string `yaml:"host_key"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables /metrics
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Maze: MazeConfig{
			Width:    41,
			Length:   21,
			Style:    "perfect",
			TileSize: 1,
			Rooms: RoomsConfig{
				MinLeafSize: 8,
				MaxLeafSize: 20,
				MinRoomSize: 4,
				RoomPadding: 1,
				Corridor:    "l",
			},
		},
		Render: RenderConfig{Theme: "emoji"},
		Server: ServerConfig{
			Addr:    ":2222",
			HostKey: "mazepath_host_key",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Maze.Width <= 0 || c.Maze.Length <= 0 {
		return fmt.Errorf("maze size %dx%d must be positive", c.Maze.Width, c.Maze.Length)
	}
	if c.Maze.TileSize <= 0 {
		return fmt.Errorf("maze tile_size %v must be positive", c.Maze.TileSize)
	}
	if _, err := generate.ParseStyle(c.Maze.Style); err != nil {
		return err
	}
	if _, err := generate.ParseCorridorStyle(c.Maze.Rooms.Corridor); err != nil {
		return err
	}
	switch c.Render.Theme {
	case "emoji", "ascii":
	default:
		return fmt.Errorf("unknown render theme %q", c.Render.Theme)
	}
	for k := range c.Render.Glyphs {
		switch k {
		case "wall", "floor", "path", "start", "end", "cursor":
		default:
			return fmt.Errorf("unknown glyph %q", k)
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// GeneratorConfig converts the maze settings for generate.Generate.
func (m MazeConfig) GeneratorConfig(rng *rand.Rand) (*generate.Config, error) {
	style, err := generate.ParseStyle(m.Style)
	if err != nil {
		return nil, err
	}
	corridor, err := generate.ParseCorridorStyle(m.Rooms.Corridor)
	if err != nil {
		return nil, err
	}
	return &generate.Config{
		Width:         m.Width,
		Length:        m.Length,
		Style:         style,
		MinLeafSize:   m.Rooms.MinLeafSize,
		MaxLeafSize:   m.Rooms.MaxLeafSize,
		MinRoomSize:   m.Rooms.MinRoomSize,
		RoomPadding:   m.Rooms.RoomPadding,
		CorridorStyle: corridor,
		Rand:          rng,
	}, nil
}
