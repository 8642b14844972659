package voxel

import "errors"

var (
	// ErrEmptyVoxel is returned when material data is read from an empty voxel.
	ErrEmptyVoxel = errors.New("voxel: empty voxel has no material")
	// ErrWrongMaterial is returned when a field of the other material variant is read.
	ErrWrongMaterial = errors.New("voxel: field not available for this material")
	// ErrInvalidScalar is returned for material scalars outside [0,1].
	ErrInvalidScalar = errors.New("voxel: material scalar outside [0,1]")
	// ErrInvalidAtlasIndex is returned for atlas indices not present in the layout.
	ErrInvalidAtlasIndex = errors.New("voxel: atlas index not in layout")
	// ErrOutOfRange is returned for volume coordinates outside the grid.
	ErrOutOfRange = errors.New("voxel: coordinate out of range")
	// ErrInvalidDimensions is returned for negative sizes or mismatched voxel counts.
	ErrInvalidDimensions = errors.New("voxel: invalid volume dimensions")
	// ErrUnknownFace is returned for a face orientation outside the six axis directions.
	ErrUnknownFace = errors.New("voxel: unknown face orientation")
)
