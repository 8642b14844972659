package meshing

import (
	"encoding/binary"
	"sync"

	"voxmesh/internal/voxel"

	"github.com/DmitriyVTitov/size"
	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
)

// meshCache memoizes completed meshes by snapshot content. lru.Cache is not
// safe for concurrent use, so every access holds mu.
type meshCache struct {
	mu    sync.Mutex
	lru   *lru.Cache
	hits  uint64
	miss  uint64
	log   *zap.Logger
	bytes int
}

func newMeshCache(entries int, log *zap.Logger) *meshCache {
	if entries <= 0 {
		return nil
	}
	c := &meshCache{lru: lru.New(entries), log: log}
	c.lru.OnEvicted = func(key lru.Key, value interface{}) {
		n := size.Of(value)
		c.bytes -= n
		c.log.Debug("mesh evicted", zap.Uint64("key", key.(uint64)), zap.String("size", humanize.Bytes(uint64(n))))
	}
	return c
}

func (c *meshCache) get(key uint64) (*Mesh, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		c.miss++
		return nil, false
	}
	c.hits++
	return v.(*Mesh), true
}

func (c *meshCache) add(key uint64, m *Mesh) {
	if c == nil {
		return
	}
	n := size.Of(m)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lru.Get(key); ok {
		return
	}
	c.bytes += n
	c.lru.Add(key, m)
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	Bytes   int
}

func (c *meshCache) stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: c.lru.Len(), Hits: c.hits, Misses: c.miss, Bytes: c.bytes}
}

// snapshotKey hashes everything a mesh depends on: dimensions, scale and
// voxels of the volume, the atlas layout and the level of detail.
func snapshotKey(vol *voxel.Volume, layout *voxel.AtlasLayout, lod int) uint64 {
	buf := make([]byte, 0, 20+vol.Len()*13)
	buf = vol.AppendKey(buf)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(lod))
	for _, e := range layout.Entries() {
		for _, tile := range [...]int{e.XPositive, e.XNegative, e.YPositive, e.YNegative, e.ZPositive, e.ZNegative} {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(tile)))
		}
	}
	return xxhash.Sum64(buf)
}
