package meshing

import (
	"fmt"

	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Side records which of the two voxels straddling a sweep plane owns a face.
type Side uint8

const (
	SideNone Side = iota
	// SideFirst is the voxel at x; its face points along +axis.
	SideFirst
	// SideSecond is the voxel at x+1; its face points along -axis.
	SideSecond
)

// FaceRecord is one cell of a sweep-plane mask.
type FaceRecord struct {
	HasFace bool
	Side    Side
	Voxel   voxel.Voxel
}

func (r FaceRecord) matches(o FaceRecord) bool {
	return o.HasFace && o.Side == r.Side && r.Voxel.Equal(o.Voxel)
}

// Quad is one merged rectangle of faces. Plane is the coordinate of the face
// plane along Axis, U and V the origin on the in-plane axes (Axis+1)%3 and
// (Axis+2)%3, W and H the extent along them.
type Quad struct {
	Axis   int
	Plane  int
	U, V   int
	W, H   int
	Normal int
	Voxel  voxel.Voxel
}

// Face returns the orientation of the quad.
func (q Quad) Face() voxel.Face {
	f, err := voxel.FaceFor(q.Axis, q.Normal)
	if err != nil {
		panic(err)
	}
	return f
}

func planeAxes(d int) (u, v int) {
	if d < 0 || d > 2 {
		panic(fmt.Sprintf("meshing: sweep axis %d", d))
	}
	return (d + 1) % 3, (d + 2) % 3
}

// classify fills mask with the faces between layer c and c+1 along axis d.
// c ranges over [-1, dims[d]-1]; cells outside the volume count as empty.
func classify(vol *voxel.Volume, d, c int, mask []FaceRecord) {
	u, v := planeAxes(d)
	dims := vol.Dims()
	var x, q [3]int
	x[d] = c
	q[d] = 1
	n := 0
	for x[v] = 0; x[v] < dims[v]; x[v]++ {
		for x[u] = 0; x[u] < dims[u]; x[u]++ {
			first := vol.Get(x[0], x[1], x[2])
			second := vol.Get(x[0]+q[0], x[1]+q[1], x[2]+q[2])
			switch {
			case !first.IsEmpty() && second.IsEmpty():
				mask[n] = FaceRecord{HasFace: true, Side: SideFirst, Voxel: first}
			case first.IsEmpty() && !second.IsEmpty():
				mask[n] = FaceRecord{HasFace: true, Side: SideSecond, Voxel: second}
			default:
				mask[n] = FaceRecord{}
			}
			n++
		}
	}
}

// mergeMask walks a du x dv mask in row-major order and emits maximal
// rectangles, widest first. Emitted cells are cleared.
func mergeMask(mask []FaceRecord, du, dv int, emit func(u, v, w, h int, rec FaceRecord)) {
	n := 0
	for j := 0; j < dv; j++ {
		for i := 0; i < du; {
			rec := mask[n]
			if !rec.HasFace {
				i++
				n++
				continue
			}

			w := 1
			for i+w < du && rec.matches(mask[n+w]) {
				w++
			}

			h := 1
		rows:
			for ; j+h < dv; h++ {
				for k := 0; k < w; k++ {
					if !rec.matches(mask[n+k+h*du]) {
						break rows
					}
				}
			}

			emit(i, j, w, h, rec)

			for l := 0; l < h; l++ {
				for k := 0; k < w; k++ {
					mask[n+k+l*du] = FaceRecord{}
				}
			}
			i += w
			n += w
		}
	}
}

// sweepQuads runs the three-axis greedy sweep over vol.
func sweepQuads(vol *voxel.Volume, emit func(Quad)) {
	dims := vol.Dims()
	for d := 0; d < 3; d++ {
		u, v := planeAxes(d)
		du, dv := dims[u], dims[v]
		if du == 0 || dv == 0 {
			continue
		}
		mask := make([]FaceRecord, du*dv)

		// every column starts facing -d and flips each time a quad covers it
		normals := make([]int, du*dv)
		for i := range normals {
			normals[i] = -1
		}

		for c := -1; c < dims[d]; c++ {
			classify(vol, d, c, mask)
			plane := c + 1
			mergeMask(mask, du, dv, func(i, j, w, h int, rec FaceRecord) {
				normal := normals[i+j*du]
				for l := 0; l < h; l++ {
					for k := 0; k < w; k++ {
						normals[i+k+(j+l)*du] = -normals[i+k+(j+l)*du]
					}
				}
				emit(Quad{Axis: d, Plane: plane, U: i, V: j, W: w, H: h, Normal: normal, Voxel: rec.Voxel})
			})
		}
	}
}

// builder turns quads into mesh arrays.
type builder struct {
	mesh   *Mesh
	frame  frame
	layout *voxel.AtlasLayout
}

func newBuilder(fr frame, layout *voxel.AtlasLayout) *builder {
	return &builder{mesh: &Mesh{}, frame: fr, layout: layout}
}

func (b *builder) add(q Quad) error {
	u, v := planeAxes(q.Axis)
	var x, du, dv [3]int
	x[q.Axis] = q.Plane
	x[u], x[v] = q.U, q.V
	du[u] = q.W
	dv[v] = q.H

	face := q.Face()
	fa, err := q.Voxel.EncodeFace(face, q.W, q.H, b.layout)
	if err != nil {
		return fmt.Errorf("encode %v quad at %d,%d,%d: %w", face, x[0], x[1], x[2], err)
	}

	corners := [4]mgl32.Vec3{
		b.frame.point(x),
		b.frame.point(add3(x, du)),
		b.frame.point(add3(add3(x, du), dv)),
		b.frame.point(add3(x, dv)),
	}
	b.mesh.addQuad(corners, face.Normal(), q.Normal < 0, fa)
	return nil
}

func add3(a, b [3]int) [3]int {
	return [3]int{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
