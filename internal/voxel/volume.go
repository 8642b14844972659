package voxel

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Volume is a dense, fixed-size grid of voxels stored flat in x-fastest order.
type Volume struct {
	width, height, depth int
	scale                float32
	voxels               []Voxel
}

// NewVolume returns an empty volume of the given size. scale is the edge
// length of one voxel in mesh units.
func NewVolume(width, height, depth int, scale float32) (*Volume, error) {
	if err := checkDims(width, height, depth, scale); err != nil {
		return nil, err
	}
	return &Volume{
		width:  width,
		height: height,
		depth:  depth,
		scale:  scale,
		voxels: make([]Voxel, width*height*depth),
	}, nil
}

// VolumeFrom copies voxels into a new volume. len(voxels) must equal
// width*height*depth.
func VolumeFrom(voxels []Voxel, width, height, depth int, scale float32) (*Volume, error) {
	if err := checkDims(width, height, depth, scale); err != nil {
		return nil, err
	}
	if len(voxels) != width*height*depth {
		return nil, fmt.Errorf("%w: %d voxels for %dx%dx%d", ErrInvalidDimensions, len(voxels), width, height, depth)
	}
	v := &Volume{width: width, height: height, depth: depth, scale: scale, voxels: make([]Voxel, len(voxels))}
	copy(v.voxels, voxels)
	return v, nil
}

func checkDims(width, height, depth int, scale float32) error {
	if width < 0 || height < 0 || depth < 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, depth)
	}
	if !(scale > 0) || math.IsInf(float64(scale), 0) {
		return fmt.Errorf("%w: scale %v", ErrInvalidDimensions, scale)
	}
	return nil
}

// Width is the cell count along x.
func (v *Volume) Width() int { return v.width }

// Height is the cell count along y.
func (v *Volume) Height() int { return v.height }

// Depth is the cell count along z.
func (v *Volume) Depth() int { return v.depth }

// Scale is the edge length of one voxel in mesh units.
func (v *Volume) Scale() float32 { return v.scale }

// Len is the total number of cells.
func (v *Volume) Len() int { return len(v.voxels) }

// Dims returns width, height and depth indexed by axis.
func (v *Volume) Dims() [3]int { return [3]int{v.width, v.height, v.depth} }

// InBounds reports whether (w,h,d) addresses a cell.
func (v *Volume) InBounds(w, h, d int) bool {
	return w >= 0 && w < v.width && h >= 0 && h < v.height && d >= 0 && d < v.depth
}

// Index maps a coordinate to its offset in the flat voxel sequence.
func (v *Volume) Index(w, h, d int) (int, error) {
	if !v.InBounds(w, h, d) {
		return 0, fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrOutOfRange, w, h, d, v.width, v.height, v.depth)
	}
	return w + h*v.width + d*v.width*v.height, nil
}

// At returns the voxel at (w,h,d).
func (v *Volume) At(w, h, d int) (Voxel, error) {
	i, err := v.Index(w, h, d)
	if err != nil {
		return Voxel{}, err
	}
	return v.voxels[i], nil
}

// Get is At for callers that treat the outside of the volume as empty space.
func (v *Volume) Get(w, h, d int) Voxel {
	if !v.InBounds(w, h, d) {
		return Voxel{}
	}
	return v.voxels[w+h*v.width+d*v.width*v.height]
}

// Set stores vx at (w,h,d).
func (v *Volume) Set(w, h, d int, vx Voxel) error {
	i, err := v.Index(w, h, d)
	if err != nil {
		return err
	}
	v.voxels[i] = vx
	return nil
}

// Fill sets every cell to fn(w,h,d).
func (v *Volume) Fill(fn func(w, h, d int) Voxel) {
	i := 0
	for d := 0; d < v.depth; d++ {
		for h := 0; h < v.height; h++ {
			for w := 0; w < v.width; w++ {
				v.voxels[i] = fn(w, h, d)
				i++
			}
		}
	}
}

// Replace swaps in a full new voxel sequence of the same length.
func (v *Volume) Replace(voxels []Voxel) error {
	if len(voxels) != len(v.voxels) {
		return fmt.Errorf("%w: %d voxels for %dx%dx%d", ErrInvalidDimensions, len(voxels), v.width, v.height, v.depth)
	}
	copy(v.voxels, voxels)
	return nil
}

// Solid returns the number of non-empty cells.
func (v *Volume) Solid() int {
	n := 0
	for _, vx := range v.voxels {
		if !vx.IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. Voxels are values, so copying the slice is enough.
func (v *Volume) Clone() *Volume {
	c := *v
	c.voxels = make([]Voxel, len(v.voxels))
	copy(c.voxels, v.voxels)
	return &c
}

// Downsample keeps every 2^level-th voxel along each axis. The result has
// ceil(n/2^level) cells per axis and the same per-voxel scale; callers scale
// geometry back up by the factor.
func (v *Volume) Downsample(level int) (*Volume, error) {
	if level < 0 || level > 30 {
		return nil, fmt.Errorf("%w: level of detail %d", ErrInvalidDimensions, level)
	}
	if level == 0 {
		return v.Clone(), nil
	}
	f := 1 << level
	w := (v.width + f - 1) / f
	h := (v.height + f - 1) / f
	d := (v.depth + f - 1) / f
	out := &Volume{width: w, height: h, depth: d, scale: v.scale, voxels: make([]Voxel, w*h*d)}
	i := 0
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.voxels[i] = v.voxels[x*f+y*f*v.width+z*f*v.width*v.height]
				i++
			}
		}
	}
	return out, nil
}

// AppendKey appends a stable binary encoding of the volume to b, for hashing.
func (v *Volume) AppendKey(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(v.width))
	b = binary.LittleEndian.AppendUint32(b, uint32(v.height))
	b = binary.LittleEndian.AppendUint32(b, uint32(v.depth))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.scale))
	for _, vx := range v.voxels {
		b = vx.AppendKey(b)
	}
	return b
}

// AppendKey appends a stable binary encoding of the voxel to b.
func (v Voxel) AppendKey(b []byte) []byte {
	b = append(b, byte(v.material))
	switch v.material {
	case MaterialColor:
		for _, f := range [...]float32{v.color.R, v.color.G, v.color.B, v.color.A, v.metallic, v.smoothness, v.emission} {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
		}
	case MaterialAtlas:
		detail := int32(NoDetail)
		if v.hasDetail {
			detail = int32(v.detail)
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(int32(v.atlas)))
		b = binary.LittleEndian.AppendUint32(b, uint32(detail))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.alpha))
	}
	return b
}
