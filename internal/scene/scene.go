// Package scene builds procedural demo volumes for the CLI and benchmarks.
package scene

import (
	"fmt"
	"math"

	"voxmesh/internal/voxel"

	perlin "github.com/aquilax/go-perlin"
)

// Kind names a demo volume.
type Kind string

const (
	KindCube    Kind = "cube"
	KindSphere  Kind = "sphere"
	KindChecker Kind = "checker"
	KindTerrain Kind = "terrain"
	KindHollow  Kind = "hollow"
)

// Kinds lists every scene kind Build accepts.
var Kinds = []Kind{KindCube, KindSphere, KindChecker, KindTerrain, KindHollow}

// Params configures Build.
type Params struct {
	Kind      Kind
	Size      int
	Scale     float32
	Seed      int64
	Amplitude float64 // terrain relief as a fraction of Size
	Textured  bool    // atlas voxels instead of colors
}

// Scene is a generated volume and the atlas layout its voxels refer to.
// Layout is nil for colored scenes.
type Scene struct {
	Volume *voxel.Volume
	Layout *voxel.AtlasLayout
}

var (
	stone   = voxel.Solid(voxel.Color{R: 0.5, G: 0.5, B: 0.5, A: 1})
	dirt    = voxel.Solid(voxel.Color{R: 0.45, G: 0.3, B: 0.15, A: 1})
	grass   = voxel.Solid(voxel.Color{R: 0.3, G: 0.65, B: 0.2, A: 1})
	bedrock = voxel.Solid(voxel.Color{R: 0.15, G: 0.15, B: 0.15, A: 1})
)

// palette maps the terrain blocks to voxels, colored or textured.
type palette struct {
	layout  *voxel.AtlasLayout
	stone   voxel.Voxel
	dirt    voxel.Voxel
	grass   voxel.Voxel
	bedrock voxel.Voxel
}

func newPalette(textured bool) (palette, error) {
	if !textured {
		return palette{stone: stone, dirt: dirt, grass: grass, bedrock: bedrock}, nil
	}
	layout := voxel.NewAtlasLayout(
		voxel.UniformFaces(1),
		voxel.UniformFaces(2),
		voxel.FaceIndices{
			XPositive: 3, XNegative: 3,
			YPositive: 0, YNegative: 2,
			ZPositive: 3, ZNegative: 3,
		},
		voxel.UniformFaces(7),
	)
	var vs [4]voxel.Voxel
	for i := range vs {
		v, err := voxel.NewAtlas(layout, i, 1)
		if err != nil {
			return palette{}, err
		}
		vs[i] = v
	}
	return palette{layout: layout, stone: vs[0], dirt: vs[1], grass: vs[2], bedrock: vs[3]}, nil
}

// Build generates the volume named by p.Kind.
func Build(p Params) (*Scene, error) {
	if p.Size < 0 {
		return nil, fmt.Errorf("scene: size %d is negative", p.Size)
	}
	if p.Scale == 0 {
		p.Scale = 1
	}
	pal, err := newPalette(p.Textured)
	if err != nil {
		return nil, err
	}
	vol, err := voxel.NewVolume(p.Size, p.Size, p.Size, p.Scale)
	if err != nil {
		return nil, err
	}

	n := p.Size
	switch p.Kind {
	case KindCube:
		vol.Fill(func(_, _, _ int) voxel.Voxel { return pal.stone })
	case KindSphere:
		vol.Fill(sphere(n, pal.stone))
	case KindChecker:
		vol.Fill(func(w, h, d int) voxel.Voxel {
			if (w+h+d)%2 == 0 {
				return pal.stone
			}
			return voxel.Empty()
		})
	case KindHollow:
		vol.Fill(func(w, h, d int) voxel.Voxel {
			if w == 0 || h == 0 || d == 0 || w == n-1 || h == n-1 || d == n-1 {
				return pal.stone
			}
			return voxel.Empty()
		})
	case KindTerrain:
		t := NewTerrain(p.Seed, n, p.Amplitude)
		vol.Fill(t.voxelAt(pal))
	default:
		return nil, fmt.Errorf("scene: unknown kind %q", p.Kind)
	}
	return &Scene{Volume: vol, Layout: pal.layout}, nil
}

func sphere(n int, vx voxel.Voxel) func(w, h, d int) voxel.Voxel {
	c := float64(n) / 2
	r2 := c * c
	return func(w, h, d int) voxel.Voxel {
		dx := float64(w) + 0.5 - c
		dy := float64(h) + 0.5 - c
		dz := float64(d) + 0.5 - c
		if dx*dx+dy*dy+dz*dz <= r2 {
			return vx
		}
		return voxel.Empty()
	}
}

// Terrain is a perlin heightmap over an n×n column grid.
type Terrain struct {
	noise      *perlin.Perlin
	size       int
	baseHeight float64
	amp        float64
}

// NewTerrain returns a heightmap whose surface sits around half of size and
// varies by amplitude*size.
func NewTerrain(seed int64, size int, amplitude float64) *Terrain {
	return &Terrain{
		noise:      perlin.NewPerlin(2, 2, 3, seed),
		size:       size,
		baseHeight: float64(size) / 2,
		amp:        amplitude * float64(size),
	}
}

// HeightAt returns the surface height of column (x, z), clamped to [1, size].
func (t *Terrain) HeightAt(x, z int) int {
	fx, fz := float64(x), float64(z)
	n := t.noise.Noise2D(fx*0.05, fz*0.05) +
		0.5*t.noise.Noise2D(fx*0.15, fz*0.15) +
		0.25*t.noise.Noise2D(fx*0.3, fz*0.3)
	h := int(math.Floor(t.baseHeight + n*t.amp))
	if h < 1 {
		h = 1
	}
	if h > t.size {
		h = t.size
	}
	return h
}

func (t *Terrain) voxelAt(pal palette) func(w, h, d int) voxel.Voxel {
	heights := make([]int, t.size*t.size)
	for z := 0; z < t.size; z++ {
		for x := 0; x < t.size; x++ {
			heights[x+z*t.size] = t.HeightAt(x, z)
		}
	}
	return func(w, h, d int) voxel.Voxel {
		top := heights[w+d*t.size]
		switch {
		case h >= top:
			return voxel.Empty()
		case h == 0:
			return pal.bedrock
		case h == top-1:
			return pal.grass
		case h >= top-4:
			return pal.dirt
		default:
			return pal.stone
		}
	}
}
