package voxel

import (
	"errors"
	"testing"
)

var red = Color{R: 1, A: 1}

func mustColor(t *testing.T, c Color, m, s, e float32) Voxel {
	t.Helper()
	v, err := NewColor(c, m, s, e)
	if err != nil {
		t.Fatalf("NewColor: %v", err)
	}
	return v
}

func TestEmptyVoxelAccessors(t *testing.T) {
	v := Empty()
	if !v.IsEmpty() {
		t.Fatalf("zero voxel should be empty")
	}
	if _, err := v.Color(); !errors.Is(err, ErrEmptyVoxel) {
		t.Fatalf("Color on empty: got %v, want ErrEmptyVoxel", err)
	}
	if _, err := v.Metallic(); !errors.Is(err, ErrEmptyVoxel) {
		t.Fatalf("Metallic on empty: got %v, want ErrEmptyVoxel", err)
	}
	if _, err := v.AtlasIndex(); !errors.Is(err, ErrEmptyVoxel) {
		t.Fatalf("AtlasIndex on empty: got %v, want ErrEmptyVoxel", err)
	}
}

func TestWrongMaterialAccessor(t *testing.T) {
	v := mustColor(t, red, 0, 0, 0)
	if _, err := v.AtlasIndex(); !errors.Is(err, ErrWrongMaterial) {
		t.Fatalf("AtlasIndex on color voxel: got %v, want ErrWrongMaterial", err)
	}
}

func TestNewColorRejectsOutOfRange(t *testing.T) {
	for _, s := range []float32{-0.01, 1.01} {
		if _, err := NewColor(red, s, 0, 0); !errors.Is(err, ErrInvalidScalar) {
			t.Fatalf("metallic %v: got %v, want ErrInvalidScalar", s, err)
		}
		if _, err := NewColor(red, 0, s, 0); !errors.Is(err, ErrInvalidScalar) {
			t.Fatalf("smoothness %v: got %v, want ErrInvalidScalar", s, err)
		}
		if _, err := NewColor(red, 0, 0, s); !errors.Is(err, ErrInvalidScalar) {
			t.Fatalf("emission %v: got %v, want ErrInvalidScalar", s, err)
		}
	}
}

func TestNewAtlasValidatesLayout(t *testing.T) {
	layout := NewAtlasLayout(UniformFaces(3))
	if _, err := NewAtlas(layout, 1, 1); !errors.Is(err, ErrInvalidAtlasIndex) {
		t.Fatalf("primary out of layout: got %v", err)
	}
	if _, err := NewAtlasDetail(layout, 0, 4, 1); !errors.Is(err, ErrInvalidAtlasIndex) {
		t.Fatalf("detail out of layout: got %v", err)
	}
	if _, err := NewAtlas(nil, 0, 1); !errors.Is(err, ErrInvalidAtlasIndex) {
		t.Fatalf("nil layout: got %v", err)
	}
	v, err := NewAtlasDetail(layout, 0, NoDetail, 0.5)
	if err != nil {
		t.Fatalf("NewAtlasDetail: %v", err)
	}
	if d, _ := v.DetailIndex(); d != NoDetail {
		t.Fatalf("detail: got %d, want NoDetail", d)
	}
}

func TestEqualEpsilon(t *testing.T) {
	a := mustColor(t, red, 0.5, 0.25, 0)
	b := mustColor(t, red, 0.503, 0.25, 0)
	c := mustColor(t, red, 0.505, 0.25, 0)
	if !a.Equal(b) {
		t.Fatalf("scalars within 1/256 should compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("scalars 0.005 apart should not compare equal")
	}
	d := mustColor(t, Color{R: 1, G: 0.001, A: 1}, 0.5, 0.25, 0)
	if a.Equal(d) {
		t.Fatalf("colors must match exactly")
	}
	if a.Equal(Empty()) || !Empty().Equal(Empty()) {
		t.Fatalf("empty voxels are only equal to each other")
	}
}

func TestEqualAtlas(t *testing.T) {
	layout := NewAtlasLayout(UniformFaces(0), UniformFaces(1))
	a, _ := NewAtlas(layout, 0, 1)
	b, _ := NewAtlas(layout, 0, 0.999)
	c, _ := NewAtlas(layout, 1, 1)
	d, _ := NewAtlasDetail(layout, 0, 1, 1)
	if !a.Equal(b) {
		t.Fatalf("alpha within epsilon should merge")
	}
	if a.Equal(c) || a.Equal(d) {
		t.Fatalf("different indices must not merge")
	}
	if a.Equal(Solid(red)) {
		t.Fatalf("different materials must not merge")
	}
}

func TestFaceFor(t *testing.T) {
	for _, f := range Faces {
		got, err := FaceFor(f.Axis(), f.Sign())
		if err != nil || got != f {
			t.Fatalf("FaceFor(%d,%d): got %v %v, want %v", f.Axis(), f.Sign(), got, err, f)
		}
		if n := f.Normal(); n[f.Axis()] != float32(f.Sign()) || n.Len() != 1 {
			t.Fatalf("%v normal: got %v", f, n)
		}
	}
	if _, err := FaceFor(3, 1); !errors.Is(err, ErrUnknownFace) {
		t.Fatalf("axis 3: got %v", err)
	}
}

func TestColorScalars(t *testing.T) {
	v, err := NewColor(Color{R: 1, A: 1}, 0.25, 0.5, 0.75)
	if err != nil {
		t.Fatalf("NewColor: %v", err)
	}
	m, _ := v.Metallic()
	s, _ := v.Smoothness()
	e, _ := v.Emission()
	if m != 0.25 || s != 0.5 || e != 0.75 {
		t.Fatalf("got metallic %v smoothness %v emission %v", m, s, e)
	}
	a, _ := NewAtlas(NewAtlasLayout(UniformFaces(0)), 0, 1)
	if _, err := a.Smoothness(); !errors.Is(err, ErrWrongMaterial) {
		t.Fatalf("Smoothness on atlas voxel: got %v", err)
	}
}
