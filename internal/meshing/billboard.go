package meshing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// NoTexture marks an absent billboard level.
const NoTexture = -1

// Billboard describes a vertical stack of crossed, two-sided unit quads: an
// optional bottom level, MiddleCount repeats of the middle texture and an
// optional top level. Texture indices are atlas tiles or NoTexture.
type Billboard struct {
	Bottom      int `yaml:"bottom" toml:"bottom"`
	Middle      int `yaml:"middle" toml:"middle"`
	MiddleCount int `yaml:"middle_count" toml:"middle_count"`
	Top         int `yaml:"top" toml:"top"`
}

// levels returns the texture of every level from the bottom up.
func (b Billboard) levels() []int {
	var out []int
	if b.Bottom != NoTexture {
		out = append(out, b.Bottom)
	}
	if b.Middle != NoTexture {
		for i := 0; i < b.MiddleCount; i++ {
			out = append(out, b.Middle)
		}
	}
	if b.Top != NoTexture {
		out = append(out, b.Top)
	}
	return out
}

// BillboardTask builds the mesh of a Billboard.
type BillboardTask struct {
	taskCore
	spec Billboard
}

// NewBillboardTask validates spec and returns a pending task.
func NewBillboardTask(spec Billboard, log *zap.Logger) (*BillboardTask, error) {
	for _, idx := range [...]int{spec.Bottom, spec.Middle, spec.Top} {
		if idx < NoTexture {
			return nil, fmt.Errorf("meshing: billboard texture index %d", idx)
		}
	}
	if spec.MiddleCount < 0 {
		return nil, fmt.Errorf("meshing: billboard middle count %d", spec.MiddleCount)
	}
	t := &BillboardTask{spec: spec}
	t.init("billboard", log)
	return t, nil
}

func (t *BillboardTask) Run() {
	t.execute(t.createMesh)
}

// billboardQuads holds the four crossed quads of one level as (x, dy, z)
// corners, dy being 0 for the bottom edge and 1 for the top edge.
var billboardQuads = [4]struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0.5, 0, 0}, {-0.5, 1, 0}, {-0.5, 0, 0}, {0.5, 1, 0}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-0.5, 0, 0}, {0.5, 1, 0}, {0.5, 0, 0}, {-0.5, 1, 0}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0, 0, -0.5}, {0, 1, 0.5}, {0, 0, 0.5}, {0, 1, -0.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0.5}, {0, 1, -0.5}, {0, 0, -0.5}, {0, 1, 0.5}}},
}

var billboardUV = [4]mgl32.Vec2{{0, 0}, {1, 1}, {1, 0}, {0, 1}}

func (t *BillboardTask) createMesh() (*Mesh, error) {
	levels := t.spec.levels()
	m := &Mesh{}
	height := -float32(len(levels)) / 2
	for _, tex := range levels {
		tile := mgl32.Vec2{float32(tex) / 256, 0}
		for _, q := range billboardQuads {
			base := uint32(len(m.Vertices))
			for i, c := range q.corners {
				m.Vertices = append(m.Vertices, mgl32.Vec3{c[0], c[1] + height, c[2]})
				m.Normals = append(m.Normals, q.normal)
				m.UV0 = append(m.UV0, billboardUV[i])
				m.UV1 = append(m.UV1, tile)
				m.UV2 = append(m.UV2, mgl32.Vec2{})
			}
			m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+3, base+1)
		}
		height++
	}
	var err error
	m.Tangents, err = SolveTangents(m.Vertices, m.Normals, m.UV0, m.Triangles)
	if err != nil {
		return nil, err
	}
	return m, nil
}
