package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// maxFileSize bounds how much of a config file is read.
const maxFileSize = 1 << 20

// Load reads name from fsys and overlays it onto Default.
func Load(fsys fs.FS, name string) (*Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d", name, len(data), maxFileSize)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// LoadFile loads a config from a path on disk. An empty path returns Default.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
