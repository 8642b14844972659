package config

import "flag"

// Flags holds the command-line overrides registered on a FlagSet.
type Flags struct {
	config   *string
	debug    *bool
	parallel *bool
	workers  *int
	lod      *int
	cache    *int
	scene    *string
	size     *int
	seed     *int64
	out      *string
	atlas    *string
	logFile  *string
}

// RegisterFlags defines the voxmesh flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:   fs.String("config", "", "Path to config file (.yaml or .toml)"),
		debug:    fs.Bool("debug", false, "Enable debug logging"),
		parallel: fs.Bool("parallel", false, "Mesh with the parallel planes generator"),
		workers:  fs.Int("workers", -1, "Plane workers (0 = GOMAXPROCS)"),
		lod:      fs.Int("lod", -1, "Level of detail"),
		cache:    fs.Int("cache", -1, "Mesh cache entries (0 disables)"),
		scene:    fs.String("scene", "", "Scene kind: cube, sphere, checker, terrain, hollow"),
		size:     fs.Int("size", 0, "Scene edge length in voxels"),
		seed:     fs.Int64("seed", 0, "Terrain seed"),
		out:      fs.String("out", "", "GLB output path"),
		atlas:    fs.String("atlas", "", "Level atlas PNG output path"),
		logFile:  fs.String("log-file", "", "Log file path"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.parallel {
		cfg.Meshing.ParallelPlanes = true
	}
	if *f.workers >= 0 {
		cfg.Meshing.PlaneWorkers = *f.workers
	}
	if *f.lod >= 0 {
		cfg.Meshing.LevelOfDetail = *f.lod
	}
	if *f.cache >= 0 {
		cfg.Meshing.CacheEntries = *f.cache
	}
	if *f.scene != "" {
		cfg.Scene.Kind = *f.scene
	}
	if *f.size > 0 {
		cfg.Scene.Size = *f.size
	}
	if *f.seed != 0 {
		cfg.Scene.Seed = *f.seed
	}
	if *f.out != "" {
		cfg.Export.MeshPath = *f.out
	}
	if *f.atlas != "" {
		cfg.Export.AtlasPath = *f.atlas
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
