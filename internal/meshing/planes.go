package meshing

import (
	"voxmesh/internal/voxel"

	"golang.org/x/sync/errgroup"
)

// faceBits marks which faces of a voxel are visible on a visibility plane.
type faceBits uint8

const (
	faceNegative faceBits = 1 << iota
	facePositive
)

// visibilityPlane is layer c along axis of the volume with the visible faces
// of every voxel in it.
type visibilityPlane struct {
	axis   int
	layer  int
	du, dv int
	bits   []faceBits
	voxels []voxel.Voxel
}

func buildVisibilityPlane(vol *voxel.Volume, axis, layer int) *visibilityPlane {
	u, v := planeAxes(axis)
	dims := vol.Dims()
	p := &visibilityPlane{
		axis:   axis,
		layer:  layer,
		du:     dims[u],
		dv:     dims[v],
		bits:   make([]faceBits, dims[u]*dims[v]),
		voxels: make([]voxel.Voxel, dims[u]*dims[v]),
	}
	var x [3]int
	x[axis] = layer
	n := 0
	for x[v] = 0; x[v] < dims[v]; x[v]++ {
		for x[u] = 0; x[u] < dims[u]; x[u]++ {
			vx := vol.Get(x[0], x[1], x[2])
			if !vx.IsEmpty() {
				p.voxels[n] = vx
				prev, next := x, x
				prev[axis]--
				next[axis]++
				if vol.Get(prev[0], prev[1], prev[2]).IsEmpty() {
					p.bits[n] |= faceNegative
				}
				if vol.Get(next[0], next[1], next[2]).IsEmpty() {
					p.bits[n] |= facePositive
				}
			}
			n++
		}
	}
	return p
}

// part merges the faces of one sign on the plane.
func (p *visibilityPlane) part(sign int) []Quad {
	want, side, plane := faceNegative, SideSecond, p.layer
	if sign > 0 {
		want, side, plane = facePositive, SideFirst, p.layer+1
	}
	mask := make([]FaceRecord, len(p.bits))
	for i, b := range p.bits {
		if b&want != 0 {
			mask[i] = FaceRecord{HasFace: true, Side: side, Voxel: p.voxels[i]}
		}
	}
	var quads []Quad
	mergeMask(mask, p.du, p.dv, func(i, j, w, h int, rec FaceRecord) {
		quads = append(quads, Quad{Axis: p.axis, Plane: plane, U: i, V: j, W: w, H: h, Normal: sign, Voxel: rec.Voxel})
	})
	return quads
}

// planeParts computes every visibility plane and then every (plane, sign)
// part concurrently, at most workers goroutines at a time (<= 0 means no
// limit). Parts are returned in plane order: x layers, then y, then z,
// negative before positive.
func planeParts(vol *voxel.Volume, workers int) ([][]Quad, error) {
	dims := vol.Dims()
	var planes []*visibilityPlane
	slots := make([]int, 0, 3)
	for d := 0; d < 3; d++ {
		slots = append(slots, len(planes))
		for c := 0; c < dims[d]; c++ {
			planes = append(planes, nil)
		}
	}

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for d := 0; d < 3; d++ {
		for c := 0; c < dims[d]; c++ {
			g.Go(func() error {
				planes[slots[d]+c] = buildVisibilityPlane(vol, d, c)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parts := make([][]Quad, 2*len(planes))
	for i, p := range planes {
		g.Go(func() error {
			parts[2*i] = p.part(-1)
			return nil
		})
		g.Go(func() error {
			parts[2*i+1] = p.part(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// buildParts encodes each part into its own mesh concurrently and joins them
// in part order.
func buildParts(parts [][]Quad, fr frame, layout *voxel.AtlasLayout, workers int) (*Mesh, error) {
	meshes := make([]*Mesh, len(parts))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, quads := range parts {
		if len(quads) == 0 {
			continue
		}
		g.Go(func() error {
			b := newBuilder(fr, layout)
			for _, q := range quads {
				if err := b.add(q); err != nil {
					return err
				}
			}
			meshes[i] = b.mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := &Mesh{}
	for _, m := range meshes {
		if m != nil {
			out.Append(m)
		}
	}
	return out, nil
}
