package voxel

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLevelTexels(t *testing.T) {
	lo, hi := LevelTexels(0)
	if !lo.ApproxEqual(mgl32.Vec2{1.0 / 64, 1.0 / 64}) || !hi.ApproxEqual(mgl32.Vec2{3.0 / 64, 3.0 / 64}) {
		t.Fatalf("level 0: got %v %v", lo, hi)
	}
	lo, _ = LevelTexels(1)
	if !lo.ApproxEqual(mgl32.Vec2{61.0 / 64, 61.0 / 64}) {
		t.Fatalf("level 255: got %v", lo)
	}
	// 0.5 rounds to 128: column 0, row 8
	lo, _ = LevelTexels(0.5)
	if !lo.ApproxEqual(mgl32.Vec2{1.0 / 64, 33.0 / 64}) {
		t.Fatalf("level 128: got %v", lo)
	}
}

func TestEncodeColorCorners(t *testing.T) {
	v := mustColor(t, red, 0, 1, 0)
	lo, hi := LevelTexels(0)
	x, err := v.EncodeFace(XNegative, 3, 2, nil)
	if err != nil {
		t.Fatalf("EncodeFace: %v", err)
	}
	want := [4]mgl32.Vec2{{hi[0], hi[1]}, {lo[0], hi[1]}, {lo[0], lo[1]}, {hi[0], lo[1]}}
	if x.UV0 != want {
		t.Fatalf("x face uv0: got %v, want %v", x.UV0, want)
	}
	z, _ := v.EncodeFace(ZPositive, 1, 1, nil)
	want = [4]mgl32.Vec2{{lo[0], hi[1]}, {lo[0], lo[1]}, {hi[0], lo[1]}, {hi[0], hi[1]}}
	if z.UV0 != want {
		t.Fatalf("z face uv0: got %v, want %v", z.UV0, want)
	}
	slo, _ := LevelTexels(1)
	if z.UV1[1] != slo {
		t.Fatalf("smoothness channel: got %v, want %v", z.UV1[1], slo)
	}
	for _, c := range z.Colors {
		if c != red {
			t.Fatalf("color: got %v", c)
		}
	}
}

func TestEncodeIndependentOfSize(t *testing.T) {
	v := mustColor(t, red, 0.3, 0.6, 0.9)
	a, _ := v.EncodeFace(YPositive, 1, 1, nil)
	b, _ := v.EncodeFace(YPositive, 7, 3, nil)
	if a != b {
		t.Fatalf("color encoding should not depend on quad size")
	}
}

func TestEncodeAtlas(t *testing.T) {
	layout := NewAtlasLayout(
		FaceIndices{XPositive: 1, XNegative: 2, YPositive: 3, YNegative: 4, ZPositive: 5, ZNegative: 6},
		UniformFaces(9),
	)
	plain, _ := NewAtlas(layout, 0, 0.75)
	fa, err := plain.EncodeFace(ZPositive, 4, 2, layout)
	if err != nil {
		t.Fatalf("EncodeFace: %v", err)
	}
	if fa.UV2[0] != (mgl32.Vec2{5.0 / 256, 0}) {
		t.Fatalf("uv2 without detail: got %v", fa.UV2[0])
	}
	if fa.UV1[0] != (mgl32.Vec2{4.0 / 256, 2.0 / 256}) {
		t.Fatalf("z face uv1: got %v", fa.UV1[0])
	}
	if fa.Colors[0] != (Color{A: 0.75}) {
		t.Fatalf("alpha color: got %v", fa.Colors[0])
	}
	if fa.UV0 != [4]mgl32.Vec2{{1, 0}, {0, 0}, {0, 1}, {1, 1}} {
		t.Fatalf("z+ uv0: got %v", fa.UV0)
	}

	detailed, _ := NewAtlasDetail(layout, 0, 1, 1)
	fa, _ = detailed.EncodeFace(XNegative, 4, 2, layout)
	if fa.UV2[3] != (mgl32.Vec2{2.0 / 256, 9.0 / 256}) {
		t.Fatalf("uv2 with detail: got %v", fa.UV2[3])
	}
	if fa.UV1[0] != (mgl32.Vec2{2.0 / 256, 4.0 / 256}) {
		t.Fatalf("x face uv1: got %v", fa.UV1[0])
	}

	if _, err := plain.EncodeFace(ZPositive, 1, 1, NewAtlasLayout()); !errors.Is(err, ErrInvalidAtlasIndex) {
		t.Fatalf("lookup against empty layout: got %v", err)
	}
}

func TestEncodeRejects(t *testing.T) {
	if _, err := Empty().EncodeFace(XPositive, 1, 1, nil); !errors.Is(err, ErrEmptyVoxel) {
		t.Fatalf("empty: got %v", err)
	}
	if _, err := Solid(red).EncodeFace(FaceNone, 1, 1, nil); !errors.Is(err, ErrUnknownFace) {
		t.Fatalf("FaceNone: got %v", err)
	}
}
