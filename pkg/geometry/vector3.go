package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 represents a 3D point or vector.
// It shares its layout with r3.Vec, which does the arithmetic.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Splat returns a vector with all three components set to s
func Splat(s float64) Vector3 {
	return Vector3{X: s, Y: s, Z: s}
}

func (v Vector3) vec() r3.Vec {
	return r3.Vec(v)
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3(r3.Add(v.vec(), other.vec()))
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3(r3.Sub(v.vec(), other.vec()))
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3(r3.Scale(scalar, v.vec()))
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3(r3.Cross(v.vec(), other.vec()))
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return r3.Norm(v.vec())
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	if v.Length() == 0 {
		return Vector3{}
	}
	return Vector3(r3.Unit(v.vec()))
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
