package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Face is the orientation of a voxel face. Exactly one axis, one sign.
type Face uint8

const (
	FaceNone Face = iota
	XPositive
	XNegative
	YPositive
	YNegative
	ZPositive
	ZNegative
)

// Faces lists the six valid orientations.
var Faces = [6]Face{XPositive, XNegative, YPositive, YNegative, ZPositive, ZNegative}

// FaceFor returns the face on axis (0=x, 1=y, 2=z) whose normal has the given sign.
func FaceFor(axis, sign int) (Face, error) {
	if axis < 0 || axis > 2 || (sign != 1 && sign != -1) {
		return FaceNone, fmt.Errorf("%w: axis %d sign %d", ErrUnknownFace, axis, sign)
	}
	f := Face(1 + axis*2)
	if sign < 0 {
		f++
	}
	return f, nil
}

// Valid reports whether f is one of the six orientations.
func (f Face) Valid() bool {
	return f >= XPositive && f <= ZNegative
}

// Axis returns 0, 1 or 2 for x, y or z faces and -1 for FaceNone.
func (f Face) Axis() int {
	if !f.Valid() {
		return -1
	}
	return int(f-1) / 2
}

// Sign returns +1 or -1 for the normal direction and 0 for FaceNone.
func (f Face) Sign() int {
	if !f.Valid() {
		return 0
	}
	if (f-1)%2 == 0 {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	if axis := f.Axis(); axis >= 0 {
		n[axis] = float32(f.Sign())
	}
	return n
}

func (f Face) String() string {
	switch f {
	case XPositive:
		return "+X"
	case XNegative:
		return "-X"
	case YPositive:
		return "+Y"
	case YNegative:
		return "-Y"
	case ZPositive:
		return "+Z"
	case ZNegative:
		return "-Z"
	default:
		return "none"
	}
}
