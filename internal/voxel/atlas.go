package voxel

import "fmt"

// FaceIndices maps each face orientation of a textured voxel to a tile of the
// texture atlas.
//
//	 ___________________
//	|    |    |    |    |
//	|  0 |  1 |  2 |  3 |
//	|____|____|____|____|
//	|    |    |    |    |
//	|  4 |  5 |  6 |  7 |
//	|____|____|____|____|
type FaceIndices struct {
	XPositive int `yaml:"x_positive" toml:"x_positive"`
	XNegative int `yaml:"x_negative" toml:"x_negative"`
	YPositive int `yaml:"y_positive" toml:"y_positive"`
	YNegative int `yaml:"y_negative" toml:"y_negative"`
	ZPositive int `yaml:"z_positive" toml:"z_positive"`
	ZNegative int `yaml:"z_negative" toml:"z_negative"`
}

// UniformFaces uses the same tile on all six faces.
func UniformFaces(tile int) FaceIndices {
	return FaceIndices{tile, tile, tile, tile, tile, tile}
}

// For returns the tile used by face f.
func (fi FaceIndices) For(f Face) (int, error) {
	switch f {
	case XPositive:
		return fi.XPositive, nil
	case XNegative:
		return fi.XNegative, nil
	case YPositive:
		return fi.YPositive, nil
	case YNegative:
		return fi.YNegative, nil
	case ZPositive:
		return fi.ZPositive, nil
	case ZNegative:
		return fi.ZNegative, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownFace, f)
	}
}

// AtlasLayout is the table atlas voxels index into. The owner populates it
// before creating voxels; generation tasks work on a clone.
type AtlasLayout struct {
	entries []FaceIndices
}

// NewAtlasLayout returns a layout holding the given entries in order.
func NewAtlasLayout(entries ...FaceIndices) *AtlasLayout {
	l := &AtlasLayout{entries: make([]FaceIndices, 0, len(entries))}
	l.entries = append(l.entries, entries...)
	return l
}

// Add appends an entry and returns its index.
func (l *AtlasLayout) Add(fi FaceIndices) int {
	l.entries = append(l.entries, fi)
	return len(l.entries) - 1
}

// Len returns the number of entries. A nil layout is empty.
func (l *AtlasLayout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Has reports whether entry is a valid index.
func (l *AtlasLayout) Has(entry int) bool {
	return entry >= 0 && entry < l.Len()
}

// Lookup returns the tile used by face f of the given entry.
func (l *AtlasLayout) Lookup(entry int, f Face) (int, error) {
	if !l.Has(entry) {
		return 0, fmt.Errorf("%w: %d (layout has %d)", ErrInvalidAtlasIndex, entry, l.Len())
	}
	return l.entries[entry].For(f)
}

// Entries returns a copy of the table.
func (l *AtlasLayout) Entries() []FaceIndices {
	if l == nil {
		return nil
	}
	out := make([]FaceIndices, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clone returns an independent copy of the layout.
func (l *AtlasLayout) Clone() *AtlasLayout {
	return &AtlasLayout{entries: l.Entries()}
}
