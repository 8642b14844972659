package voxel

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance for material scalars when comparing voxels. Values
// closer than one 8-bit level land on the same atlas texel.
const Epsilon = 1.0 / 256.0

// NoDetail marks an atlas voxel without a detail texture.
const NoDetail = -1

// Material tells which payload a voxel carries.
type Material uint8

const (
	MaterialNone Material = iota
	MaterialColor
	MaterialAtlas
)

func (m Material) String() string {
	switch m {
	case MaterialColor:
		return "color"
	case MaterialAtlas:
		return "atlas"
	default:
		return "none"
	}
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// Voxel is one cell of a volume: empty, a colored material or a texture atlas
// reference. The zero value is empty.
type Voxel struct {
	material Material

	// color material
	color      Color
	metallic   float32
	smoothness float32
	emission   float32

	// atlas material
	atlas     int
	detail    int
	hasDetail bool
	alpha     float32
}

// Empty returns the empty voxel.
func Empty() Voxel { return Voxel{} }

// NewColor returns a colored voxel. The scalars must lie in [0,1].
func NewColor(c Color, metallic, smoothness, emission float32) (Voxel, error) {
	if err := checkUnit("metallic", metallic); err != nil {
		return Voxel{}, err
	}
	if err := checkUnit("smoothness", smoothness); err != nil {
		return Voxel{}, err
	}
	if err := checkUnit("emission", emission); err != nil {
		return Voxel{}, err
	}
	return Voxel{
		material:   MaterialColor,
		color:      c,
		metallic:   metallic,
		smoothness: smoothness,
		emission:   emission,
	}, nil
}

// Solid is a colored voxel with no metallic, smoothness or emission.
func Solid(c Color) Voxel {
	return Voxel{material: MaterialColor, color: c}
}

// NewAtlas returns a textured voxel referencing entry index of layout.
func NewAtlas(layout *AtlasLayout, index int, alpha float32) (Voxel, error) {
	if !layout.Has(index) {
		return Voxel{}, fmt.Errorf("%w: primary %d (layout has %d)", ErrInvalidAtlasIndex, index, layout.Len())
	}
	if err := checkUnit("alpha", alpha); err != nil {
		return Voxel{}, err
	}
	return Voxel{material: MaterialAtlas, atlas: index, alpha: alpha}, nil
}

// NewAtlasDetail returns a textured voxel with a detail texture. The detail
// entry takes precedence over the primary one when encoded.
func NewAtlasDetail(layout *AtlasLayout, index, detail int, alpha float32) (Voxel, error) {
	v, err := NewAtlas(layout, index, alpha)
	if err != nil {
		return Voxel{}, err
	}
	if detail == NoDetail {
		return v, nil
	}
	if !layout.Has(detail) {
		return Voxel{}, fmt.Errorf("%w: detail %d (layout has %d)", ErrInvalidAtlasIndex, detail, layout.Len())
	}
	v.detail = detail
	v.hasDetail = true
	return v, nil
}

func checkUnit(name string, s float32) error {
	if math.IsNaN(float64(s)) || s < 0 || s > 1 {
		return fmt.Errorf("%w: %s=%v", ErrInvalidScalar, name, s)
	}
	return nil
}

// IsEmpty reports whether the voxel carries no material.
func (v Voxel) IsEmpty() bool { return v.material == MaterialNone }

// Material returns the payload kind.
func (v Voxel) Material() Material { return v.material }

func (v Voxel) require(m Material) error {
	if v.material == MaterialNone {
		return ErrEmptyVoxel
	}
	if v.material != m {
		return fmt.Errorf("%w: want %s, have %s", ErrWrongMaterial, m, v.material)
	}
	return nil
}

// Color returns the color of a color-material voxel.
func (v Voxel) Color() (Color, error) {
	if err := v.require(MaterialColor); err != nil {
		return Color{}, err
	}
	return v.color, nil
}

// Metallic returns the metallic scalar of a color voxel.
func (v Voxel) Metallic() (float32, error) {
	if err := v.require(MaterialColor); err != nil {
		return 0, err
	}
	return v.metallic, nil
}

// Smoothness returns the smoothness scalar of a color voxel.
func (v Voxel) Smoothness() (float32, error) {
	if err := v.require(MaterialColor); err != nil {
		return 0, err
	}
	return v.smoothness, nil
}

// Emission returns the emission scalar of a color voxel.
func (v Voxel) Emission() (float32, error) {
	if err := v.require(MaterialColor); err != nil {
		return 0, err
	}
	return v.emission, nil
}

// AtlasIndex returns the primary atlas entry.
func (v Voxel) AtlasIndex() (int, error) {
	if err := v.require(MaterialAtlas); err != nil {
		return 0, err
	}
	return v.atlas, nil
}

// DetailIndex returns the detail atlas entry or NoDetail.
func (v Voxel) DetailIndex() (int, error) {
	if err := v.require(MaterialAtlas); err != nil {
		return 0, err
	}
	if !v.hasDetail {
		return NoDetail, nil
	}
	return v.detail, nil
}

// Alpha returns the alpha level of an atlas voxel.
func (v Voxel) Alpha() (float32, error) {
	if err := v.require(MaterialAtlas); err != nil {
		return 0, err
	}
	return v.alpha, nil
}

// Equal reports whether two voxels may share a merged quad. Scalars compare
// within Epsilon, colors and atlas indices exactly.
func (v Voxel) Equal(o Voxel) bool {
	if v.material != o.material {
		return false
	}
	switch v.material {
	case MaterialColor:
		return v.color == o.color &&
			near(v.metallic, o.metallic) &&
			near(v.smoothness, o.smoothness) &&
			near(v.emission, o.emission)
	case MaterialAtlas:
		return v.atlas == o.atlas &&
			v.hasDetail == o.hasDetail &&
			v.detail == o.detail &&
			near(v.alpha, o.alpha)
	default:
		return true
	}
}

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < Epsilon
}

func (v Voxel) String() string {
	switch v.material {
	case MaterialColor:
		return fmt.Sprintf("color(%.3g,%.3g,%.3g,%.3g m=%.3g s=%.3g e=%.3g)",
			v.color.R, v.color.G, v.color.B, v.color.A, v.metallic, v.smoothness, v.emission)
	case MaterialAtlas:
		if v.hasDetail {
			return fmt.Sprintf("atlas(%d detail=%d a=%.3g)", v.atlas, v.detail, v.alpha)
		}
		return fmt.Sprintf("atlas(%d a=%.3g)", v.atlas, v.alpha)
	default:
		return "empty"
	}
}
