package meshing

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	quadVerts = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	quadNorms = []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	quadTris  = []uint32{0, 1, 2, 0, 2, 3}
)

func TestTangentHandedness(t *testing.T) {
	straight := []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tan, err := SolveTangents(quadVerts, quadNorms, straight, quadTris)
	if err != nil {
		t.Fatalf("SolveTangents: %v", err)
	}
	for i, v := range tan {
		if !v.ApproxEqual(mgl32.Vec4{1, 0, 0, 1}) {
			t.Fatalf("vertex %d: got %v, want (1,0,0,+1)", i, v)
		}
	}

	mirrored := []mgl32.Vec2{{1, 0}, {0, 0}, {0, 1}, {1, 1}}
	tan, err = SolveTangents(quadVerts, quadNorms, mirrored, quadTris)
	if err != nil {
		t.Fatalf("SolveTangents: %v", err)
	}
	for i, v := range tan {
		if !v.ApproxEqual(mgl32.Vec4{-1, 0, 0, -1}) {
			t.Fatalf("vertex %d: got %v, want (-1,0,0,-1)", i, v)
		}
	}
}

func TestTangentDegenerateUV(t *testing.T) {
	flat := []mgl32.Vec2{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}
	tan, err := SolveTangents(quadVerts, quadNorms, flat, quadTris)
	if err != nil {
		t.Fatalf("SolveTangents: %v", err)
	}
	for i, v := range tan {
		if v != NoTangent {
			t.Fatalf("vertex %d: got %v, want NoTangent", i, v)
		}
	}
}

func TestTangentMalformed(t *testing.T) {
	if _, err := SolveTangents(quadVerts, quadNorms[:3], make([]mgl32.Vec2, 4), quadTris); !errors.Is(err, ErrMalformedMesh) {
		t.Fatalf("short normals: got %v", err)
	}
	if _, err := SolveTangents(quadVerts, quadNorms, make([]mgl32.Vec2, 4), []uint32{0, 1, 9}); !errors.Is(err, ErrMalformedMesh) {
		t.Fatalf("bad index: got %v", err)
	}
}

func TestMeshTangentsAreUnitOrAbsent(t *testing.T) {
	vol := randomVolume(t, 3, 6, 6, 6)
	m := generate(t, vol, nil, Options{})
	for i, v := range m.Tangents {
		if v[3] != 1 && v[3] != -1 {
			t.Fatalf("vertex %d: handedness %v", i, v[3])
		}
		l := v.Vec3().Len()
		if v != NoTangent && (l < 0.999 || l > 1.001) {
			t.Fatalf("vertex %d: tangent length %v", i, l)
		}
		if d := v.Vec3().Dot(m.Normals[i]); d > 1e-4 || d < -1e-4 {
			t.Fatalf("vertex %d: tangent not orthogonal to normal (%v)", i, d)
		}
	}
}
