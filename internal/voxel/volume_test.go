package voxel

import (
	"bytes"
	"errors"
	"testing"
)

func TestVolumeIndex(t *testing.T) {
	v, err := NewVolume(4, 3, 2, 1)
	if err != nil {
		t.Fatalf("NewVolume: %v", err)
	}
	i, err := v.Index(1, 2, 1)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if want := 1 + 2*4 + 1*4*3; i != want {
		t.Fatalf("index: got %d, want %d", i, want)
	}
	for _, c := range [][3]int{{-1, 0, 0}, {4, 0, 0}, {0, 3, 0}, {0, 0, 2}} {
		if _, err := v.At(c[0], c[1], c[2]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("At%v: got %v, want ErrOutOfRange", c, err)
		}
		if !v.Get(c[0], c[1], c[2]).IsEmpty() {
			t.Fatalf("Get%v outside should be empty", c)
		}
	}
}

func TestVolumeAccessors(t *testing.T) {
	v, err := NewVolume(4, 3, 2, 0.5)
	if err != nil {
		t.Fatalf("NewVolume: %v", err)
	}
	if v.Width() != 4 || v.Height() != 3 || v.Depth() != 2 || v.Len() != 24 || v.Scale() != 0.5 {
		t.Fatalf("got %dx%dx%d len %d scale %v", v.Width(), v.Height(), v.Depth(), v.Len(), v.Scale())
	}
	if v.Dims() != [3]int{4, 3, 2} {
		t.Fatalf("Dims: got %v", v.Dims())
	}
}

func TestVolumeFromLength(t *testing.T) {
	if _, err := VolumeFrom(make([]Voxel, 5), 2, 2, 2, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("short slice: got %v", err)
	}
	if _, err := NewVolume(-1, 1, 1, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("negative width: got %v", err)
	}
	if _, err := NewVolume(1, 1, 1, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("zero scale: got %v", err)
	}
}

func TestVolumeCloneIsDeep(t *testing.T) {
	v, _ := NewVolume(2, 2, 2, 1)
	_ = v.Set(0, 0, 0, Solid(red))
	c := v.Clone()
	_ = v.Set(0, 0, 0, Empty())
	_ = v.Set(1, 1, 1, Solid(red))
	if got, _ := c.At(0, 0, 0); got.IsEmpty() {
		t.Fatalf("clone changed with source")
	}
	if got, _ := c.At(1, 1, 1); !got.IsEmpty() {
		t.Fatalf("clone changed with source")
	}
}

func TestDownsample(t *testing.T) {
	v, _ := NewVolume(5, 4, 3, 0.5)
	v.Fill(func(w, h, d int) Voxel {
		if w%2 == 0 && h%2 == 0 && d%2 == 0 {
			return Solid(red)
		}
		return Empty()
	})
	lod, err := v.Downsample(1)
	if err != nil {
		t.Fatalf("Downsample: %v", err)
	}
	if lod.Dims() != [3]int{3, 2, 2} {
		t.Fatalf("dims: got %v, want [3 2 2]", lod.Dims())
	}
	if lod.Solid() != lod.Len() {
		t.Fatalf("every sampled voxel should be solid: %d of %d", lod.Solid(), lod.Len())
	}
	if lod.Scale() != 0.5 {
		t.Fatalf("scale: got %v", lod.Scale())
	}
	if _, err := v.Downsample(-1); err == nil {
		t.Fatalf("negative level should fail")
	}
}

func TestAppendKeyDistinguishesContent(t *testing.T) {
	a, _ := NewVolume(2, 1, 1, 1)
	b := a.Clone()
	if !bytes.Equal(a.AppendKey(nil), b.AppendKey(nil)) {
		t.Fatalf("equal volumes should have equal keys")
	}
	_ = b.Set(1, 0, 0, Solid(red))
	if bytes.Equal(a.AppendKey(nil), b.AppendKey(nil)) {
		t.Fatalf("different volumes should have different keys")
	}
}

func TestAtlasLayoutClone(t *testing.T) {
	l := NewAtlasLayout(UniformFaces(1))
	c := l.Clone()
	l.Add(UniformFaces(2))
	if c.Len() != 1 || l.Len() != 2 {
		t.Fatalf("clone len %d, source len %d", c.Len(), l.Len())
	}
	tile, err := l.Lookup(1, ZNegative)
	if err != nil || tile != 2 {
		t.Fatalf("Lookup: got %d %v", tile, err)
	}
}
