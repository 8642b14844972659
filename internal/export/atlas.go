package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"voxmesh/internal/voxel"

	"golang.org/x/image/draw"
)

// RenderLevelAtlas draws the material level lookup texture: level i fills the
// LevelBlock×LevelBlock texel block at column i%LevelsPerRow, row
// i/LevelsPerRow, with gray value i.
func RenderLevelAtlas() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, voxel.AtlasTexels, voxel.AtlasTexels))
	for level := 0; level < voxel.LevelCount; level++ {
		x0 := (level % voxel.LevelsPerRow) * voxel.LevelBlock
		y0 := (level / voxel.LevelsPerRow) * voxel.LevelBlock
		for y := y0; y < y0+voxel.LevelBlock; y++ {
			for x := x0; x < x0+voxel.LevelBlock; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(level)})
			}
		}
	}
	return img
}

// ScaleAtlas enlarges src by an integer factor without filtering, so every
// texel stays one flat level.
func ScaleAtlas(src image.Image, scale int) (*image.Gray, error) {
	if scale < 1 {
		return nil, fmt.Errorf("export: atlas scale %d must be at least 1", scale)
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// WriteAtlasPNG renders the level atlas scaled by scale and writes it to path.
func WriteAtlasPNG(path string, scale int) error {
	img, err := ScaleAtlas(RenderLevelAtlas(), scale)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("export: encoding %s: %w", path, err)
	}
	return f.Close()
}
