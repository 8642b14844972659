// Command voxmesh builds a demo voxel volume, meshes it on the generation
// queue and exports the result as a GLB file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/export"
	"voxmesh/internal/logger"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/scene"

	"github.com/DmitriyVTitov/size"
	"github.com/dustin/go-humanize"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// generateTimeout bounds the wait for a mesh; failed tasks never signal Done.
const generateTimeout = 2 * time.Minute

func main() {
	closer.Bind(logger.Sync)
	closer.Checked(func() error {
		return run(os.Args[1:], os.Stdout)
	}, true)
}

// run executes one CLI invocation. The queue is drained and the logger synced
// before it returns; the closer bindings only cover interrupts.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("voxmesh", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	saveConfig := fs.String("save-config", "", "Write the effective config as YAML and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags.ConfigPath(), flags)
	if err != nil {
		return err
	}
	if *saveConfig != "" {
		return cfg.SaveTo(*saveConfig)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		}
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, cfg.Logging.Console); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log

	queue := meshing.NewGenerationQueue(log)
	closer.Bind(queue.Close)
	defer queue.Close()
	gen := meshing.NewGenerator(queue, cfg.Meshing.CacheEntries, meshing.Options{
		ParallelPlanes: cfg.Meshing.ParallelPlanes,
		PlaneWorkers:   cfg.Meshing.PlaneWorkers,
		Logger:         log.Named("mesh"),
	})

	var rec profiling.Recorder

	stop := rec.Track("scene")
	sc, err := scene.Build(scene.Params{
		Kind:      scene.Kind(cfg.Scene.Kind),
		Size:      cfg.Scene.Size,
		Scale:     cfg.Meshing.VoxelScale,
		Seed:      cfg.Scene.Seed,
		Amplitude: cfg.Scene.Amplitude,
		Textured:  cfg.Scene.Textured,
	})
	stop()
	if err != nil {
		return err
	}
	log.Info("scene built",
		zap.String("kind", cfg.Scene.Kind),
		zap.Int("size", cfg.Scene.Size),
		zap.Int("solid", sc.Volume.Solid()))

	stop = rec.Track("mesh")
	var slot meshing.MeshSlot
	h, err := gen.Submit(sc.Volume, sc.Layout, cfg.Meshing.LevelOfDetail)
	if err != nil {
		return err
	}
	slot.Replace(h)
	select {
	case <-h.Done():
	case <-time.After(generateTimeout):
		return fmt.Errorf("mesh task %d did not complete within %s", h.ID(), generateTimeout)
	}
	stop()
	mesh, ok := slot.Poll()
	if !ok {
		return errors.New("mesh task completed without geometry")
	}

	if path := cfg.Export.MeshPath; path != "" {
		stop = rec.Track("export")
		err := export.WriteGLB(mesh, path)
		stop()
		if errors.Is(err, export.ErrEmptyMesh) {
			log.Warn("scene produced no faces, skipping mesh export")
		} else if err != nil {
			return err
		} else {
			log.Info("mesh written", zap.String("path", path))
		}
	}
	if path := cfg.Export.AtlasPath; path != "" {
		if err := export.WriteAtlasPNG(path, cfg.Export.AtlasScale); err != nil {
			return err
		}
		log.Info("level atlas written", zap.String("path", path))
	}

	printStats(stdout, mesh, gen.CacheStats(), &rec)
	return nil
}

func printStats(w io.Writer, m *meshing.Mesh, cs meshing.CacheStats, rec *profiling.Recorder) {
	fmt.Fprintf(w, "vertices:  %s\n", humanize.Comma(int64(m.VertexCount())))
	fmt.Fprintf(w, "quads:     %s\n", humanize.Comma(int64(m.QuadCount())))
	fmt.Fprintf(w, "triangles: %s\n", humanize.Comma(int64(len(m.Triangles)/3)))
	fmt.Fprintf(w, "memory:    %s\n", humanize.Bytes(uint64(size.Of(m))))
	if lo, hi, ok := m.Bounds(); ok {
		fmt.Fprintf(w, "bounds:    %v .. %v\n", lo, hi)
	}
	fmt.Fprintf(w, "cache:     %d entries, %d hits, %d misses\n", cs.Entries, cs.Hits, cs.Misses)
	fmt.Fprintf(w, "timings:   %s (total %s)\n", rec.TopN(3), profiling.FormatMs(rec.Total()))
}
