package obj

import (
	"github.com/philipparndt/objmetrics/pkg/geometry"
)

// Face is a triangle given as three 0-based indices into Mesh.Vertices.
// The index order is the winding.
type Face struct {
	V [3]int
}

// NewFace creates a face from three vertex indices
func NewFace(a, b, c int) Face {
	return Face{V: [3]int{a, b, c}}
}

// Mesh represents a parsed OBJ model: a vertex store and the triangular
// faces referencing it. Faces hold indices, not vertex copies, and every
// index is checked against the store when the face is added.
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// NewMesh creates a new empty mesh
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]geometry.Vector3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its 0-based index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face after checking that every index refers to a
// vertex already in the store.
func (m *Mesh) AddFace(face Face) error {
	for _, idx := range face.V {
		if idx < 0 || idx >= len(m.Vertices) {
			return &IndexError{Index: idx, VertexCount: len(m.Vertices)}
		}
	}
	m.Faces = append(m.Faces, face)
	return nil
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces in the mesh
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Triangle resolves face i to its vertex positions
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	return geometry.NewTriangle(m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]])
}

// Triangles resolves every face to its vertex positions
func (m *Mesh) Triangles() []geometry.Triangle {
	triangles := make([]geometry.Triangle, len(m.Faces))
	for i := range m.Faces {
		triangles[i] = m.Triangle(i)
	}
	return triangles
}

// BoundingBox calculates the bounding box of all vertices, including
// vertices no face references. It is empty for a mesh without vertices.
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundingBoxOf(m.Vertices)
}

// SurfaceArea calculates the total surface area of the model
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for i := range m.Faces {
		totalArea += m.Triangle(i).Area()
	}
	return totalArea
}

// Volume sums the signed volume of every face. It is the enclosed volume
// only for a closed, consistently wound mesh.
func (m *Mesh) Volume() float64 {
	totalVolume := 0.0
	for i := range m.Faces {
		totalVolume += m.Triangle(i).SignedVolume()
	}
	return totalVolume
}
