package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags. An
// empty path skips the file; a nil flags skips overrides.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file over the defaults.
func LoadFile(path string) (*Config, error) {
	return Load(path, nil)
}

// loadFromFile decodes YAML or TOML by extension, merging into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return err
}

// Validate rejects settings the mesher cannot run with.
func (c *Config) Validate() error {
	m := c.Meshing
	if m.LevelOfDetail < 0 {
		return fmt.Errorf("config: level_of_detail %d is negative", m.LevelOfDetail)
	}
	if m.PlaneWorkers < 0 {
		return fmt.Errorf("config: plane_workers %d is negative", m.PlaneWorkers)
	}
	if m.CacheEntries < 0 {
		return fmt.Errorf("config: cache_entries %d is negative", m.CacheEntries)
	}
	if !(m.VoxelScale > 0) {
		return fmt.Errorf("config: voxel_scale %v must be positive", m.VoxelScale)
	}
	if c.Scene.Size < 0 {
		return fmt.Errorf("config: scene size %d is negative", c.Scene.Size)
	}
	if c.Export.AtlasScale < 1 {
		return fmt.Errorf("config: atlas_scale %d must be at least 1", c.Export.AtlasScale)
	}
	return nil
}
