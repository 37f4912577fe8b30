package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box.
//
// Center and size are cached and recomputed by every constructor and
// mutator, so they always describe the current corners. All containment
// and intersection tests are strict: points or faces lying exactly on the
// boundary are outside.
type BoundingBox struct {
	min    Vector3
	max    Vector3
	center Vector3
	size   Vector3
}

// NewBoundingBox creates a bounding box from two corners. The corners are
// stored as given; min <= max is the caller's responsibility.
func NewBoundingBox(min, max Vector3) BoundingBox {
	b := BoundingBox{min: min, max: max}
	b.update()
	return b
}

// EmptyBoundingBox returns a box with min at +Inf and max at -Inf, the
// identity for Extend.
func EmptyBoundingBox() BoundingBox {
	return NewBoundingBox(Splat(math.Inf(1)), Splat(math.Inf(-1)))
}

// BoundingBoxOf scans the vertices once for the per-axis extrema.
// An empty slice yields EmptyBoundingBox; guard with IsEmpty.
func BoundingBoxOf(vertices []Vector3) BoundingBox {
	min := Splat(math.Inf(1))
	max := Splat(math.Inf(-1))
	for _, v := range vertices {
		min = min.Min(v)
		max = max.Max(v)
	}
	return NewBoundingBox(min, max)
}

func (b *BoundingBox) update() {
	b.center = Vector3{
		X: (b.min.X + b.max.X) / 2.0,
		Y: (b.min.Y + b.max.Y) / 2.0,
		Z: (b.min.Z + b.max.Z) / 2.0,
	}
	b.size = b.max.Sub(b.min)
}

// SetMin replaces the min corner
func (b *BoundingBox) SetMin(min Vector3) {
	b.min = min
	b.update()
}

// SetMax replaces the max corner
func (b *BoundingBox) SetMax(max Vector3) {
	b.max = max
	b.update()
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.min = b.min.Min(point)
	b.max = b.max.Max(point)
	b.update()
}

// Min returns the min corner
func (b BoundingBox) Min() Vector3 { return b.min }

// Max returns the max corner
func (b BoundingBox) Max() Vector3 { return b.max }

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 { return b.center }

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 { return b.size }

// IsEmpty reports whether min exceeds max on any axis, as it does for a
// box built from no vertices.
func (b BoundingBox) IsEmpty() bool {
	return b.min.X > b.max.X || b.min.Y > b.max.Y || b.min.Z > b.max.Z
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.size.Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	return b.size.X * b.size.Y * b.size.Z
}

// ContainsPoint reports whether p lies strictly inside the box on all
// three axes. Boundary points are not contained.
func (b BoundingBox) ContainsPoint(p Vector3) bool {
	return b.min.X < p.X && p.X < b.max.X &&
		b.min.Y < p.Y && p.Y < b.max.Y &&
		b.min.Z < p.Z && p.Z < b.max.Z
}

// ContainsBox reports whether both corners of other are strictly inside
// the box. Boxes sharing a boundary with b are not contained.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return b.ContainsPoint(other.min) && b.ContainsPoint(other.max)
}

// IntersectsBox reports whether the two boxes overlap with positive depth
// on every axis. Boxes that only touch along a face, edge or corner do not
// intersect. The test is symmetric.
func (b BoundingBox) IntersectsBox(other BoundingBox) bool {
	return overlaps(b.min.X, b.max.X, other.min.X, other.max.X) &&
		overlaps(b.min.Y, b.max.Y, other.min.Y, other.max.Y) &&
		overlaps(b.min.Z, b.max.Z, other.min.Z, other.max.Z)
}

// overlaps is the per-axis interval test: one interval has an endpoint
// strictly inside the other.
func overlaps(min, max, otherMin, otherMax float64) bool {
	return (min < otherMin && max > otherMin) ||
		(min < otherMax && max > otherMax) ||
		(otherMin < min && otherMax > min) ||
		(otherMin < max && otherMax > max)
}
