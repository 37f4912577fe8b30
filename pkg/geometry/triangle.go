package geometry

import "math"

// Triangle is a face resolved to its three vertex positions.
// Vertex order is the winding: it fixes the sign of SignedVolume.
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{
		V1: v1,
		V2: v2,
		V3: v3,
	}
}

// edges returns the two edge vectors leaving V1
func (t Triangle) edges() (a, b Vector3) {
	return t.V1.Sub(t.V2), t.V1.Sub(t.V3)
}

// Area returns the surface area of the triangle as half the magnitude of
// the cross product of its two edges from V1. Degenerate triangles have
// area 0.
func (t Triangle) Area() float64 {
	a, b := t.edges()
	return a.Cross(b).Length() / 2.0
}

// TrigArea computes the area from the height over the edge V1-V3:
//
//	h    = |a| * sin(acos(a.b / (|a| |b|)))
//	area = |b| * h / 2
//
// with a = V1-V2 and b = V1-V3. It matches Area for well formed
// triangles. A zero-length edge divides by zero and the result is NaN.
func (t Triangle) TrigArea() float64 {
	a, b := t.edges()
	lenA := a.Length()
	lenB := b.Length()

	// Rounding can push the cosine just outside [-1, 1] for near
	// collinear edges; acos would then return NaN for a valid triangle.
	cos := a.Dot(b) / (lenA * lenB)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	h := lenA * math.Sin(math.Acos(cos))
	return lenB * h / 2.0
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// triangle and the origin: V1 . (V2 x V3) / 6. Summed over a closed,
// consistently wound mesh it yields the enclosed volume; outward
// counter-clockwise winding gives a positive total.
func (t Triangle) SignedVolume() float64 {
	return t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
}

// CalculateNormal computes the unit normal implied by the winding
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// IsDegenerate reports whether the three vertices are collinear
func (t Triangle) IsDegenerate() bool {
	return t.Area() == 0
}
