package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Level atlas geometry: 256 material levels laid out 16 per row, each level a
// 2x2 texel block in a 32x32 texture.
const (
	LevelCount    = 256
	LevelsPerRow  = 16
	LevelBlock    = 2
	AtlasTexels   = LevelsPerRow * LevelBlock
	texelSize     = float32(1) / AtlasTexels
	Normalization = 256
)

// FaceAttributes holds the per-corner vertex data of one quad, in the same
// corner order the mesher emits positions.
type FaceAttributes struct {
	Colors [4]Color
	UV0    [4]mgl32.Vec2
	UV1    [4]mgl32.Vec2
	UV2    [4]mgl32.Vec2
}

// LevelIndex quantizes a unit scalar to one of the 256 atlas levels.
func LevelIndex(s float32) int {
	i := int(math.Round(float64(s) * (LevelCount - 1)))
	if i < 0 {
		return 0
	}
	if i >= LevelCount {
		return LevelCount - 1
	}
	return i
}

// LevelTexels returns the UV rectangle sampling the centre of a level's block.
func LevelTexels(s float32) (lo, hi mgl32.Vec2) {
	idx := LevelIndex(s)
	tx := float32((idx % LevelsPerRow) * LevelBlock)
	ty := float32((idx / LevelsPerRow) * LevelBlock)
	lo = mgl32.Vec2{tx*texelSize + texelSize/2, ty*texelSize + texelSize/2}
	hi = lo.Add(mgl32.Vec2{texelSize, texelSize})
	return lo, hi
}

// corner picks lo (false) or hi (true) per component.
type corner [2]bool

var levelCorners = [3][4]corner{
	// x faces
	{{true, true}, {false, true}, {false, false}, {true, false}},
	// y faces
	{{false, false}, {false, true}, {true, true}, {true, false}},
	// z faces
	{{false, true}, {false, false}, {true, false}, {true, true}},
}

var atlasCorners = map[Face][4]corner{
	XPositive: {{false, false}, {false, true}, {true, true}, {true, false}},
	XNegative: {{true, false}, {true, true}, {false, true}, {false, false}},
	YPositive: {{false, false}, {false, true}, {true, true}, {true, false}},
	YNegative: {{false, false}, {false, true}, {true, true}, {true, false}},
	ZPositive: {{true, false}, {false, false}, {false, true}, {true, true}},
	ZNegative: {{false, false}, {true, false}, {true, true}, {false, true}},
}

func pick(c corner, lo, hi mgl32.Vec2) mgl32.Vec2 {
	out := lo
	if c[0] {
		out[0] = hi[0]
	}
	if c[1] {
		out[1] = hi[1]
	}
	return out
}

// EncodeFace returns the vertex attributes of a width x height quad on face f
// owned by v. The result depends only on the material, f and the quad size.
func (v Voxel) EncodeFace(f Face, width, height int, layout *AtlasLayout) (FaceAttributes, error) {
	if !f.Valid() {
		return FaceAttributes{}, fmt.Errorf("%w: %d", ErrUnknownFace, f)
	}
	switch v.material {
	case MaterialColor:
		return v.encodeColor(f), nil
	case MaterialAtlas:
		return v.encodeAtlas(f, width, height, layout)
	default:
		return FaceAttributes{}, ErrEmptyVoxel
	}
}

func (v Voxel) encodeColor(f Face) FaceAttributes {
	var fa FaceAttributes
	table := levelCorners[f.Axis()]
	channels := [3]*[4]mgl32.Vec2{&fa.UV0, &fa.UV1, &fa.UV2}
	for ch, s := range [3]float32{v.metallic, v.smoothness, v.emission} {
		lo, hi := LevelTexels(s)
		for i, c := range table {
			channels[ch][i] = pick(c, lo, hi)
		}
	}
	for i := range fa.Colors {
		fa.Colors[i] = v.color
	}
	return fa
}

func (v Voxel) encodeAtlas(f Face, width, height int, layout *AtlasLayout) (FaceAttributes, error) {
	var fa FaceAttributes
	primary, err := layout.Lookup(v.atlas, f)
	if err != nil {
		return fa, err
	}
	detail := 0
	if v.hasDetail {
		if detail, err = layout.Lookup(v.detail, f); err != nil {
			return fa, err
		}
	}

	lo, hi := mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}
	for i, c := range atlasCorners[f] {
		fa.UV0[i] = pick(c, lo, hi)
	}

	size := mgl32.Vec2{float32(height) / Normalization, float32(width) / Normalization}
	if f.Axis() == 2 {
		size = mgl32.Vec2{size[1], size[0]}
	}
	tiles := mgl32.Vec2{float32(primary) / Normalization, float32(detail) / Normalization}
	for i := 0; i < 4; i++ {
		fa.UV1[i] = size
		fa.UV2[i] = tiles
		fa.Colors[i] = Color{A: v.alpha}
	}
	return fa, nil
}
