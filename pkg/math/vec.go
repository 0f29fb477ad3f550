// Package math provides the vector types and unit conversions used when
// compiling models.
package math

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// UnitScale is the number of model units per world unit.
const UnitScale = 16

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// Array returns the components as an array.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Vec3FromSlice builds a vector from the first three values of s.
func Vec3FromSlice(s []float32) (Vec3, error) {
	if len(s) < 3 {
		return Vec3{}, errors.Errorf("expected 3 components, got %d", len(s))
	}
	return Vec3{s[0], s[1], s[2]}, nil
}

// UnitsToWorld converts a position, origin or scale from model units to
// world units.
func UnitsToWorld(v Vec3) Vec3 {
	return Vec3{v.X / UnitScale, v.Y / UnitScale, v.Z / UnitScale}
}

// DegreesToRadians converts an Euler rotation from degrees to radians.
func DegreesToRadians(v Vec3) Vec3 {
	return Vec3{mgl32.DegToRad(v.X), mgl32.DegToRad(v.Y), mgl32.DegToRad(v.Z)}
}
