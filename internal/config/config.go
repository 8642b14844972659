// Package config handles the voxmesh CLI settings.
package config

// Config is the root configuration.
type Config struct {
	Meshing MeshingConfig `yaml:"meshing" toml:"meshing"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Scene   SceneConfig   `yaml:"scene" toml:"scene"`
	Export  ExportConfig  `yaml:"export" toml:"export"`
}

// MeshingConfig controls mesh generation.
type MeshingConfig struct {
	ParallelPlanes bool    `yaml:"parallel_planes" toml:"parallel_planes"`
	PlaneWorkers   int     `yaml:"plane_workers" toml:"plane_workers"` // 0 = GOMAXPROCS
	CacheEntries   int     `yaml:"cache_entries" toml:"cache_entries"` // 0 disables the cache
	LevelOfDetail  int     `yaml:"level_of_detail" toml:"level_of_detail"`
	VoxelScale     float32 `yaml:"voxel_scale" toml:"voxel_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"` // debug, info, warn, error
	LogFile    string `yaml:"log_file" toml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Console    bool   `yaml:"console" toml:"console"`
}

// SceneConfig selects the demo volume.
type SceneConfig struct {
	Kind      string  `yaml:"kind" toml:"kind"` // cube, sphere, checker, terrain, hollow
	Size      int     `yaml:"size" toml:"size"`
	Seed      int64   `yaml:"seed" toml:"seed"`
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
	Textured  bool    `yaml:"textured" toml:"textured"`
}

// ExportConfig holds output paths. Empty paths skip that output.
type ExportConfig struct {
	MeshPath   string `yaml:"mesh_path" toml:"mesh_path"`
	AtlasPath  string `yaml:"atlas_path" toml:"atlas_path"`
	AtlasScale int    `yaml:"atlas_scale" toml:"atlas_scale"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Meshing: MeshingConfig{
			ParallelPlanes: false,
			PlaneWorkers:   0,
			CacheEntries:   64,
			LevelOfDetail:  0,
			VoxelScale:     1,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Console:    true,
		},
		Scene: SceneConfig{
			Kind:      "terrain",
			Size:      32,
			Seed:      1,
			Amplitude: 0.5,
		},
		Export: ExportConfig{
			MeshPath:   "voxmesh.glb",
			AtlasPath:  "",
			AtlasScale: 8,
		},
	}
}
