package analysis

import (
	"fmt"

	"github.com/philipparndt/objmetrics/pkg/geometry"
)

// QueryKind distinguishes point and box queries
type QueryKind int

const (
	PointQuery QueryKind = iota
	BoxQuery
)

// String returns the query kind name
func (k QueryKind) String() string {
	switch k {
	case PointQuery:
		return "point"
	case BoxQuery:
		return "box"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Query is a containment or intersection check against a mesh's
// bounding box.
type Query struct {
	Name  string
	Kind  QueryKind
	Point geometry.Vector3
	Box   geometry.BoundingBox
}

// NewPointQuery creates a point containment query
func NewPointQuery(name string, p geometry.Vector3) Query {
	if name == "" {
		name = fmt.Sprintf("point %g %g %g", p.X, p.Y, p.Z)
	}
	return Query{Name: name, Kind: PointQuery, Point: p}
}

// NewBoxQuery creates a box containment and intersection query
func NewBoxQuery(name string, box geometry.BoundingBox) Query {
	if name == "" {
		min, max := box.Min(), box.Max()
		name = fmt.Sprintf("bbox {%g %g %g} {%g %g %g}", min.X, min.Y, min.Z, max.X, max.Y, max.Z)
	}
	return Query{Name: name, Kind: BoxQuery, Box: box}
}

// QueryResult is the outcome of one query. Intersects is always false for
// point queries.
type QueryResult struct {
	Query      Query
	Contains   bool
	Intersects bool
}

// DefaultQueries returns the fixed checks of the standard report: the
// origin, a point far outside, and a small box that is first grown to
// straddle the boundary and then moved out entirely.
func DefaultQueries() []Query {
	queries := []Query{
		NewPointQuery("", geometry.NewVector3(0, 0, 0)),
		NewPointQuery("", geometry.NewVector3(-10, 0, 0)),
	}

	other := geometry.NewBoundingBox(geometry.Splat(-0.25), geometry.Splat(0.25))
	queries = append(queries, NewBoxQuery("", other))

	other.SetMin(geometry.Splat(-10))
	queries = append(queries, NewBoxQuery("", other))

	other.SetMax(geometry.Splat(-9))
	queries = append(queries, NewBoxQuery("", other))

	return queries
}

// EvaluateQueries runs every query against box. An empty box contains and
// intersects nothing.
func EvaluateQueries(box geometry.BoundingBox, queries []Query) []QueryResult {
	results := make([]QueryResult, 0, len(queries))
	for _, q := range queries {
		result := QueryResult{Query: q}
		if !box.IsEmpty() {
			switch q.Kind {
			case PointQuery:
				result.Contains = box.ContainsPoint(q.Point)
			case BoxQuery:
				result.Contains = box.ContainsBox(q.Box)
				result.Intersects = box.IntersectsBox(q.Box)
			}
		}
		results = append(results, result)
	}
	return results
}
