package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/objmetrics/pkg/geometry"
)

// Float is a float64 that encodes NaN and the infinities as the JSON
// strings "NaN", "+Inf" and "-Inf" instead of failing.
type Float float64

// MarshalJSON implements json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

// Vector is the serializable form of a geometry.Vector3
type Vector struct {
	X Float `json:"x"`
	Y Float `json:"y"`
	Z Float `json:"z"`
}

func newVector(v geometry.Vector3) Vector {
	return Vector{X: Float(v.X), Y: Float(v.Y), Z: Float(v.Z)}
}

func (v Vector) vector3() geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

// BoxReport is the serializable form of a bounding box
type BoxReport struct {
	Min    Vector `json:"min"`
	Max    Vector `json:"max"`
	Size   Vector `json:"size"`
	Center Vector `json:"center"`
}

// QueryReport is the serializable form of a query result
type QueryReport struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Contains   bool   `json:"contains"`
	Intersects *bool  `json:"intersects,omitempty"`
}

// Report is the summary printed by the info command
type Report struct {
	File        string        `json:"file,omitempty"`
	Name        string        `json:"name,omitempty"`
	Vertices    int           `json:"vertices"`
	Faces       int           `json:"faces"`
	SurfaceArea Float         `json:"surface_area"`
	Volume      Float         `json:"volume"`
	Finite      bool          `json:"finite"` // false once a NaN or infinity reached the totals or bounds
	BoundingBox *BoxReport    `json:"bounding_box"` // nil for a mesh without vertices
	Queries     []QueryReport `json:"queries,omitempty"`
}

// NewReport assembles the report for an analyzed mesh
func NewReport(file string, result *MeasurementResult, queries []QueryResult) *Report {
	report := &Report{
		File:        file,
		Name:        result.Name,
		Vertices:    result.VertexCount,
		Faces:       result.FaceCount,
		SurfaceArea: Float(result.SurfaceArea),
		Volume:      Float(result.Volume),
		Finite:      isFinite(result.SurfaceArea) && isFinite(result.Volume),
	}

	if result.HasBounds() {
		bbox := result.BoundingBox
		report.BoundingBox = &BoxReport{
			Min:    newVector(bbox.Min()),
			Max:    newVector(bbox.Max()),
			Size:   newVector(bbox.Size()),
			Center: newVector(bbox.Center()),
		}
		report.Finite = report.Finite && bbox.Min().IsFinite() && bbox.Max().IsFinite()
	}

	for _, q := range queries {
		qr := QueryReport{
			Name:     q.Query.Name,
			Kind:     q.Query.Kind.String(),
			Contains: q.Contains,
		}
		if q.Query.Kind == BoxQuery {
			intersects := q.Intersects
			qr.Intersects = &intersects
		}
		report.Queries = append(report.Queries, qr)
	}

	return report
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteText writes the human readable report
func (r *Report) WriteText(w io.Writer, precision int) error {
	ew := &errWriter{w: w}
	p := ew.printf
	vec := func(v Vector) string {
		return FormatVectorPrecision(v.vector3(), precision)
	}

	p("OBJ File Information\n")
	p("====================\n")
	if r.Name != "" {
		p("Name: %s\n", r.Name)
	}
	if r.File != "" {
		p("File: %s\n", r.File)
	}
	p("\n")

	p("Mesh Statistics:\n")
	p("  Vertices: %d\n", r.Vertices)
	p("  Faces: %d\n", r.Faces)
	p("  Surface Area: %.*f square units\n", precision, r.SurfaceArea)
	p("  Volume: %.*f cubic units\n", precision, r.Volume)
	if !r.Finite {
		p("  Warning: non-finite values in totals or bounds\n")
	}
	p("\n")

	p("Bounding Box:\n")
	if r.BoundingBox == nil {
		p("  (empty: no vertices)\n")
	} else {
		p("  Min: %s\n", vec(r.BoundingBox.Min))
		p("  Max: %s\n", vec(r.BoundingBox.Max))
		p("  Size: %s\n", vec(r.BoundingBox.Size))
		p("  Center: %s\n", vec(r.BoundingBox.Center))
	}

	if len(r.Queries) > 0 {
		p("\nQueries:\n")
		for _, q := range r.Queries {
			p("  Contains %s: %t\n", q.Name, q.Contains)
			if q.Intersects != nil {
				p("  Intersects %s: %t\n", q.Name, *q.Intersects)
			}
		}
	}

	return ew.err
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// errWriter keeps the first write error and drops later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
