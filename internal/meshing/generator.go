package meshing

import (
	"voxmesh/internal/voxel"

	"go.uber.org/zap"
)

// Generator is the submit surface: it snapshots volumes into tasks, serves
// repeated snapshots from the mesh cache and enqueues the rest.
type Generator struct {
	queue *GenerationQueue
	cache *meshCache
	opts  Options
	log   *zap.Logger
}

// NewGenerator submits to q. cacheEntries <= 0 disables the cache. opts sets
// defaults for every MeshTask; the LOD is given per Submit.
func NewGenerator(q *GenerationQueue, cacheEntries int, opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		queue: q,
		cache: newMeshCache(cacheEntries, log.Named("cache")),
		opts:  opts,
		log:   log,
	}
}

// Submit snapshots vol and layout and queues a mesh task at level of detail
// lod. Meshes served from the cache are shared between handles and must be
// treated as read-only.
func (g *Generator) Submit(vol *voxel.Volume, layout *voxel.AtlasLayout, lod int) (Handle, error) {
	opts := g.opts
	opts.LevelOfDetail = lod

	var key uint64
	if g.cache != nil && vol != nil {
		key = snapshotKey(vol, layout, lod)
		if m, ok := g.cache.get(key); ok {
			g.log.Debug("mesh cache hit", zap.Uint64("key", key))
			return completedHandle(m, g.log), nil
		}
	}

	t, err := NewMeshTask(vol, layout, opts)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		t.onComplete = func(m *Mesh) { g.cache.add(key, m) }
	}
	if err := g.queue.Enqueue(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SubmitBillboard queues a billboard task.
func (g *Generator) SubmitBillboard(spec Billboard) (Handle, error) {
	t, err := NewBillboardTask(spec, g.log)
	if err != nil {
		return nil, err
	}
	if err := g.queue.Enqueue(t); err != nil {
		return nil, err
	}
	return t, nil
}

// CacheStats reports the mesh cache counters. Zero when the cache is off.
func (g *Generator) CacheStats() CacheStats {
	return g.cache.stats()
}

// cachedTask is a handle that completed before it was returned.
type cachedTask struct {
	taskCore
}

func completedHandle(m *Mesh, log *zap.Logger) Handle {
	t := &cachedTask{}
	t.init("cached", log)
	t.mesh = m
	t.state.Store(int32(StateCompleted))
	close(t.done)
	return t
}
