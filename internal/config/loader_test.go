package config

import (
	"log/slog"
	"math/rand"
	"mazepath/internal/generate"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "perfect", cfg.Maze.Style)
	assert.Equal(t, ":2222", cfg.Server.Addr)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"mazepath.yaml": {Data: []byte(`
maze:
  width: 61
  style: rooms
  seed: 42
  rooms:
    corridor: z
render:
  theme: ascii
  glyphs:
    path: "o"
log:
  level: debug
`)},
	}

	cfg, err := Load(fsys, "mazepath.yaml")
	require.NoError(t, err)

	assert.Equal(t, 61, cfg.Maze.Width)
	assert.Equal(t, 21, cfg.Maze.Length, "unset fields keep defaults")
	assert.Equal(t, int64(42), cfg.Maze.Seed)
	assert.Equal(t, "z", cfg.Maze.Rooms.Corridor)
	assert.Equal(t, 8, cfg.Maze.Rooms.MinLeafSize)
	assert.Equal(t, "ascii", cfg.Render.Theme)
	assert.Equal(t, "o", cfg.Render.Glyphs["path"])

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad yaml", "maze: [1, 2"},
		{"bad style", "maze:\n  style: spiral\n"},
		{"bad corridor", "maze:\n  rooms:\n    corridor: diagonal\n"},
		{"bad size", "maze:\n  width: 0\n"},
		{"bad tile size", "maze:\n  tile_size: -1\n"},
		{"bad theme", "render:\n  theme: neon\n"},
		{"bad glyph", "render:\n  glyphs:\n    lava: x\n"},
		{"bad level", "log:\n  level: loud\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{"c.yaml": {Data: []byte(tc.data)}}
			_, err := Load(fsys, "c.yaml")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "absent.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "mazepath.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  metrics_addr: \":9100\"\n"), 0o644))
	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.MetricsAddr)
}

func TestGeneratorConfig(t *testing.T) {
	cfg := Default()
	cfg.Maze.Style = "rooms"
	cfg.Maze.Rooms.Corridor = "straight"

	gc, err := cfg.Maze.GeneratorConfig(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, generate.StyleRooms, gc.Style)
	assert.Equal(t, generate.CorridorStraight, gc.CorridorStyle)
	assert.Equal(t, cfg.Maze.Width, gc.Width)

	lay, err := generate.Generate(gc)
	require.NoError(t, err)
	assert.Equal(t, cfg.Maze.Length, lay.Grid.Length())
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("..", "..", "mazepath.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
