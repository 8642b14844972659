package meshing

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minUVArea is the smallest |det| of a triangle's UV edge matrix that still
// contributes to tangents.
const minUVArea = 1e-12

// NoTangent is stored for vertices whose triangles all have degenerate UVs.
var NoTangent = mgl32.Vec4{0, 0, 0, 1}

// SolveTangents computes a tangent with handedness in w for every vertex
// (Lengyel's method). Triangles with zero UV area are skipped; vertices that
// receive no contribution get NoTangent.
func SolveTangents(vertices, normals []mgl32.Vec3, uv []mgl32.Vec2, triangles []uint32) ([]mgl32.Vec4, error) {
	n := len(vertices)
	if len(normals) != n || len(uv) != n {
		return nil, fmt.Errorf("%w: %d vertices, %d normals, %d uvs", ErrMalformedMesh, n, len(normals), len(uv))
	}
	if len(triangles)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrMalformedMesh, len(triangles))
	}

	tan1 := make([]mgl32.Vec3, n)
	tan2 := make([]mgl32.Vec3, n)

	for t := 0; t < len(triangles); t += 3 {
		i1, i2, i3 := triangles[t], triangles[t+1], triangles[t+2]
		if int(i1) >= n || int(i2) >= n || int(i3) >= n {
			return nil, fmt.Errorf("%w: triangle %d references %d/%d/%d of %d vertices", ErrMalformedMesh, t/3, i1, i2, i3, n)
		}

		e1 := vertices[i2].Sub(vertices[i1])
		e2 := vertices[i3].Sub(vertices[i1])

		s1 := uv[i2][0] - uv[i1][0]
		s2 := uv[i3][0] - uv[i1][0]
		t1 := uv[i2][1] - uv[i1][1]
		t2 := uv[i3][1] - uv[i1][1]

		det := s1*t2 - s2*t1
		if math.Abs(float64(det)) < minUVArea {
			continue
		}
		r := 1 / det

		sdir := e1.Mul(t2).Sub(e2.Mul(t1)).Mul(r)
		tdir := e2.Mul(s1).Sub(e1.Mul(s2)).Mul(r)

		for _, i := range [3]uint32{i1, i2, i3} {
			tan1[i] = tan1[i].Add(sdir)
			tan2[i] = tan2[i].Add(tdir)
		}
	}

	out := make([]mgl32.Vec4, n)
	for i := range out {
		nrm := normals[i]
		t := tan1[i]

		// Gram-Schmidt
		ortho := t.Sub(nrm.Mul(nrm.Dot(t)))
		l := ortho.Len()
		if l == 0 || math.IsNaN(float64(l)) {
			out[i] = NoTangent
			continue
		}
		ortho = ortho.Mul(1 / l)

		w := float32(1)
		if nrm.Cross(t).Dot(tan2[i]) < 0 {
			w = -1
		}
		out[i] = ortho.Vec4(w)
	}
	return out, nil
}
