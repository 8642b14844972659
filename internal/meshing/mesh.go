package meshing

import (
	"fmt"

	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is the generated geometry: parallel per-vertex arrays plus a triangle
// list with 6 indices per quad. It is never modified once a task completes.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec4
	UV0       []mgl32.Vec2
	UV1       []mgl32.Vec2
	UV2       []mgl32.Vec2
	Triangles []uint32
	Tangents  []mgl32.Vec4
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// QuadCount returns the number of quads, assuming two triangles per quad.
func (m *Mesh) QuadCount() int { return len(m.Triangles) / 6 }

// Bounds returns the axis-aligned bounding box of the vertices. ok is false
// for an empty mesh.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, p := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi, true
}

// Validate checks that all per-vertex arrays have the vertex count (Colors may
// be empty) and that every index references a vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n || len(m.UV0) != n || len(m.UV1) != n || len(m.UV2) != n {
		return fmt.Errorf("%w: %d vertices, %d normals, uv %d/%d/%d",
			ErrMalformedMesh, n, len(m.Normals), len(m.UV0), len(m.UV1), len(m.UV2))
	}
	if len(m.Colors) != 0 && len(m.Colors) != n {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrMalformedMesh, len(m.Colors), n)
	}
	if len(m.Tangents) != 0 && len(m.Tangents) != n {
		return fmt.Errorf("%w: %d tangents for %d vertices", ErrMalformedMesh, len(m.Tangents), n)
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrMalformedMesh, len(m.Triangles))
	}
	for _, i := range m.Triangles {
		if int(i) >= n {
			return fmt.Errorf("%w: index %d of %d vertices", ErrMalformedMesh, i, n)
		}
	}
	return nil
}

// Append concatenates o onto m, rebasing o's indices.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, o.Vertices...)
	m.Normals = append(m.Normals, o.Normals...)
	m.Colors = append(m.Colors, o.Colors...)
	m.UV0 = append(m.UV0, o.UV0...)
	m.UV1 = append(m.UV1, o.UV1...)
	m.UV2 = append(m.UV2, o.UV2...)
	m.Tangents = append(m.Tangents, o.Tangents...)
	for _, i := range o.Triangles {
		m.Triangles = append(m.Triangles, base+i)
	}
}

// addQuad appends four corners and two triangles. Corners go counter-clockwise
// seen from the normal when flip is false.
func (m *Mesh) addQuad(corners [4]mgl32.Vec3, normal mgl32.Vec3, flip bool, fa voxel.FaceAttributes) {
	base := uint32(len(m.Vertices))
	for i, p := range corners {
		m.Vertices = append(m.Vertices, p)
		m.Normals = append(m.Normals, normal)
		c := fa.Colors[i]
		m.Colors = append(m.Colors, mgl32.Vec4{c.R, c.G, c.B, c.A})
		m.UV0 = append(m.UV0, fa.UV0[i])
		m.UV1 = append(m.UV1, fa.UV1[i])
		m.UV2 = append(m.UV2, fa.UV2[i])
	}
	if flip {
		m.Triangles = append(m.Triangles, base, base+2, base+1, base, base+3, base+2)
		return
	}
	m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
}

// frame maps grid coordinates of the (possibly downsampled) working volume to
// mesh space: scaled by the LOD factor, clamped to the source extent, centred
// on the origin and multiplied by the voxel scale.
type frame struct {
	factor int
	extent [3]int
	offset mgl32.Vec3
	scale  float32
}

func newFrame(extent [3]int, factor int, scale float32) frame {
	return frame{
		factor: factor,
		extent: extent,
		offset: mgl32.Vec3{float32(extent[0]) / 2, float32(extent[1]) / 2, float32(extent[2]) / 2},
		scale:  scale,
	}
}

func (f frame) point(x [3]int) mgl32.Vec3 {
	var p mgl32.Vec3
	for i := 0; i < 3; i++ {
		p[i] = (float32(min(x[i]*f.factor, f.extent[i])) - f.offset[i]) * f.scale
	}
	return p
}
