package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/objmetrics/pkg/geometry"
	"github.com/philipparndt/objmetrics/pkg/obj"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	FaceID int
}

// FaceInfo holds the per-face contributions to the totals
type FaceInfo struct {
	Index        int
	Area         float64
	SignedVolume float64
	Perimeter    float64
	Triangle     geometry.Triangle
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	Name            string
	BoundingBox     geometry.BoundingBox
	Dimensions      geometry.Vector3
	Volume          float64 // signed, summed over all faces
	SurfaceArea     float64
	VertexCount     int
	FaceCount       int
	DegenerateFaces int
	EdgeCount       int
	MinEdgeLength   float64
	MaxEdgeLength   float64
	AvgEdgeLength   float64
	AllEdges        []EdgeInfo
}

// HasBounds reports whether the mesh had any vertices to bound
func (r *MeasurementResult) HasBounds() bool {
	return !r.BoundingBox.IsEmpty()
}

// AnalyzeMesh accumulates area, signed volume and edge statistics over all
// faces in a single pass and builds the bounding box from the vertices.
func AnalyzeMesh(mesh *obj.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		Name:        mesh.Name,
		BoundingBox: mesh.BoundingBox(),
		VertexCount: mesh.VertexCount(),
		FaceCount:   mesh.FaceCount(),
		AllEdges:    make([]EdgeInfo, 0, 3*mesh.FaceCount()),
	}

	if result.HasBounds() {
		result.Dimensions = result.BoundingBox.Size()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for i := range mesh.Faces {
		triangle := mesh.Triangle(i)

		area := triangle.Area()
		result.SurfaceArea += area
		result.Volume += triangle.SignedVolume()
		if area == 0 {
			result.DegenerateFaces++
		}

		edges := [3][2]geometry.Vector3{
			{triangle.V1, triangle.V2},
			{triangle.V2, triangle.V3},
			{triangle.V3, triangle.V1},
		}
		for _, edge := range edges {
			length := edge[0].Distance(edge[1])

			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:  edge[0],
				End:    edge[1],
				Length: length,
				FaceID: i,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// Faces returns the per-face contributions in face order
func Faces(mesh *obj.Mesh) []FaceInfo {
	faces := make([]FaceInfo, mesh.FaceCount())
	for i := range mesh.Faces {
		triangle := mesh.Triangle(i)
		faces[i] = FaceInfo{
			Index:        i,
			Area:         triangle.Area(),
			SignedVolume: triangle.SignedVolume(),
			Perimeter:    triangle.Perimeter(),
			Triangle:     triangle,
		}
	}
	return faces
}

// SortFacesByArea sorts faces by area, largest first when descending
func SortFacesByArea(faces []FaceInfo, descending bool) {
	sort.SliceStable(faces, func(i, j int) bool {
		if descending {
			return faces[i].Area > faces[j].Area
		}
		return faces[i].Area < faces[j].Area
	})
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	if count < 0 {
		count = 0
	}

	return edges[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return FormatVectorPrecision(v, 6)
}

// FormatVectorPrecision formats a 3D vector with the given number of decimals
func FormatVectorPrecision(v geometry.Vector3, precision int) string {
	return fmt.Sprintf("(%.*f, %.*f, %.*f)", precision, v.X, precision, v.Y, precision, v.Z)
}
