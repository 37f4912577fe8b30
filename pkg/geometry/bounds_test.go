package geometry

import (
	"math"
	"testing"
)

func checkDerived(t *testing.T, bbox BoundingBox) {
	t.Helper()

	min, max := bbox.Min(), bbox.Max()
	expectedCenter := NewVector3((min.X+max.X)/2, (min.Y+max.Y)/2, (min.Z+max.Z)/2)
	if bbox.Center() != expectedCenter {
		t.Errorf("Center failed: expected %v, got %v", expectedCenter, bbox.Center())
	}
	if expectedSize := max.Sub(min); bbox.Size() != expectedSize {
		t.Errorf("Size failed: expected %v, got %v", expectedSize, bbox.Size())
	}
}

func TestNewBoundingBox(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(0, 0, 0), NewVector3(10, 20, 30))

	if center, expected := bbox.Center(), NewVector3(5, 10, 15); center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
	if size, expected := bbox.Size(), NewVector3(10, 20, 30); size != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, size)
	}
	if volume := bbox.Volume(); math.Abs(volume-6000) > 1e-10 {
		t.Errorf("Volume failed: expected 6000, got %v", volume)
	}
	if diagonal, expected := bbox.Diagonal(), math.Sqrt(1400); math.Abs(diagonal-expected) > 1e-10 {
		t.Errorf("Diagonal failed: expected %v, got %v", expected, diagonal)
	}
}

func TestBoundingBoxOf(t *testing.T) {
	vertices := []Vector3{
		NewVector3(1, 2, 3),
		NewVector3(4, 5, 6),
		NewVector3(-1, 0, 2),
		NewVector3(2, 7, -4),
	}
	bbox := BoundingBoxOf(vertices)

	if expected := NewVector3(-1, 0, -4); bbox.Min() != expected {
		t.Errorf("Min failed: expected %v, got %v", expected, bbox.Min())
	}
	if expected := NewVector3(4, 7, 6); bbox.Max() != expected {
		t.Errorf("Max failed: expected %v, got %v", expected, bbox.Max())
	}
	checkDerived(t, bbox)

	// Every extremum comes from some vertex on that axis.
	min, max := bbox.Min(), bbox.Max()
	found := [6]bool{}
	for _, v := range vertices {
		found[0] = found[0] || v.X == min.X
		found[1] = found[1] || v.Y == min.Y
		found[2] = found[2] || v.Z == min.Z
		found[3] = found[3] || v.X == max.X
		found[4] = found[4] || v.Y == max.Y
		found[5] = found[5] || v.Z == max.Z
	}
	for i, ok := range found {
		if !ok {
			t.Errorf("extremum %d does not come from an input vertex", i)
		}
	}
}

func TestBoundingBoxOfSingleVertex(t *testing.T) {
	p := NewVector3(1, -2, 3)
	bbox := BoundingBoxOf([]Vector3{p})

	if bbox.Min() != p || bbox.Max() != p {
		t.Errorf("expected degenerate box at %v, got %v..%v", p, bbox.Min(), bbox.Max())
	}
	if bbox.IsEmpty() {
		t.Error("a single-vertex box is not empty")
	}
	if bbox.ContainsPoint(p) {
		t.Error("a zero-size box contains nothing")
	}
}

func TestBoundingBoxOfEmpty(t *testing.T) {
	bbox := BoundingBoxOf(nil)

	if bbox.Min() != Splat(math.Inf(1)) {
		t.Errorf("Min failed: expected +Inf, got %v", bbox.Min())
	}
	if bbox.Max() != Splat(math.Inf(-1)) {
		t.Errorf("Max failed: expected -Inf, got %v", bbox.Max())
	}
	if !bbox.IsEmpty() {
		t.Error("expected empty box")
	}
	if bbox.ContainsPoint(NewVector3(0, 0, 0)) {
		t.Error("empty box must not contain any point")
	}
	if empty := EmptyBoundingBox(); bbox.Min() != empty.Min() || bbox.Max() != empty.Max() {
		t.Errorf("expected EmptyBoundingBox corners, got %v..%v", bbox.Min(), bbox.Max())
	}
}

func TestBoundingBoxMutationKeepsDerivedFields(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(-0.25, -0.25, -0.25), NewVector3(0.25, 0.25, 0.25))
	checkDerived(t, bbox)

	bbox.SetMin(NewVector3(-10, -10, -10))
	if bbox.Min() != NewVector3(-10, -10, -10) {
		t.Errorf("SetMin failed: got %v", bbox.Min())
	}
	checkDerived(t, bbox)

	bbox.SetMax(NewVector3(-9, -9, -9))
	if bbox.Max() != NewVector3(-9, -9, -9) {
		t.Errorf("SetMax failed: got %v", bbox.Max())
	}
	checkDerived(t, bbox)

	if expected := NewVector3(-9.5, -9.5, -9.5); bbox.Center() != expected {
		t.Errorf("Center failed after mutation: expected %v, got %v", expected, bbox.Center())
	}
	if expected := NewVector3(1, 1, 1); bbox.Size() != expected {
		t.Errorf("Size failed after mutation: expected %v, got %v", expected, bbox.Size())
	}
}

func TestBoundingBoxExtend(t *testing.T) {
	bbox := EmptyBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	if expected := NewVector3(-1, 0, 2); bbox.Min() != expected {
		t.Errorf("Min failed: expected %v, got %v", expected, bbox.Min())
	}
	if expected := NewVector3(4, 5, 6); bbox.Max() != expected {
		t.Errorf("Max failed: expected %v, got %v", expected, bbox.Max())
	}
	checkDerived(t, bbox)
}

func TestContainsPoint(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))

	tests := []struct {
		name     string
		point    Vector3
		expected bool
	}{
		{"center", NewVector3(0, 0, 0), true},
		{"inside", NewVector3(0.5, -0.5, 0.99), true},
		{"outside", NewVector3(-10, 0, 0), false},
		{"on min x face", NewVector3(-1, 0, 0), false},
		{"on max x face", NewVector3(1, 0, 0), false},
		{"on min y face", NewVector3(0, -1, 0), false},
		{"on max y face", NewVector3(0, 1, 0), false},
		{"on min z face", NewVector3(0, 0, -1), false},
		{"on max z face", NewVector3(0, 0, 1), false},
		{"on corner", NewVector3(1, 1, 1), false},
		{"NaN", NewVector3(math.NaN(), 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v): expected %v, got %v", tt.point, tt.expected, got)
			}
		})
	}
}

func TestContainsBox(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))

	tests := []struct {
		name     string
		other    BoundingBox
		expected bool
	}{
		{"strictly inside", NewBoundingBox(NewVector3(-0.25, -0.25, -0.25), NewVector3(0.25, 0.25, 0.25)), true},
		{"same box", bbox, false},
		{"shares min face", NewBoundingBox(NewVector3(-1, -0.5, -0.5), NewVector3(0.5, 0.5, 0.5)), false},
		{"crosses boundary", NewBoundingBox(NewVector3(-10, -10, -10), NewVector3(0.25, 0.25, 0.25)), false},
		{"disjoint", NewBoundingBox(NewVector3(-10, -10, -10), NewVector3(-9, -9, -9)), false},
		{"encloses", NewBoundingBox(NewVector3(-2, -2, -2), NewVector3(2, 2, 2)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.ContainsBox(tt.other); got != tt.expected {
				t.Errorf("ContainsBox: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIntersectsBox(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))

	tests := []struct {
		name     string
		other    BoundingBox
		expected bool
	}{
		{"inside", NewBoundingBox(NewVector3(-0.25, -0.25, -0.25), NewVector3(0.25, 0.25, 0.25)), true},
		{"partial overlap", NewBoundingBox(NewVector3(-10, -10, -10), NewVector3(0.25, 0.25, 0.25)), true},
		{"encloses", NewBoundingBox(NewVector3(-2, -2, -2), NewVector3(2, 2, 2)), true},
		{"disjoint", NewBoundingBox(NewVector3(-10, -10, -10), NewVector3(-9, -9, -9)), false},
		{"disjoint on one axis", NewBoundingBox(NewVector3(-0.5, -0.5, 2), NewVector3(0.5, 0.5, 3)), false},
		{"touching face", NewBoundingBox(NewVector3(1, -0.5, -0.5), NewVector3(2, 0.5, 0.5)), false},
		{"touching edge", NewBoundingBox(NewVector3(1, 1, -0.5), NewVector3(2, 2, 0.5)), false},
		{"touching corner", NewBoundingBox(NewVector3(1, 1, 1), NewVector3(2, 2, 2)), false},
		// The interval test needs one endpoint strictly inside the other
		// interval, so an axis with identical extents does not overlap.
		{"identical extents", bbox, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.IntersectsBox(tt.other); got != tt.expected {
				t.Errorf("IntersectsBox: expected %v, got %v", tt.expected, got)
			}
			if got := tt.other.IntersectsBox(bbox); got != tt.expected {
				t.Errorf("IntersectsBox (reversed): expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIntersectsBoxSymmetric(t *testing.T) {
	coords := []float64{-2, -1, 0, 0.5, 1, 3}
	var boxes []BoundingBox
	for _, lo := range coords {
		for _, hi := range coords {
			if lo < hi {
				boxes = append(boxes, NewBoundingBox(NewVector3(lo, lo, lo/2), NewVector3(hi, hi, hi/2+0.25)))
			}
		}
	}

	for i, a := range boxes {
		for j, b := range boxes {
			if a.IntersectsBox(b) != b.IntersectsBox(a) {
				t.Errorf("IntersectsBox not symmetric for boxes %d and %d", i, j)
			}
		}
	}
}
