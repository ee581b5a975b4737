// Package mesh owns indexed triangle geometry: construction from indexed
// buffers or raw triangle soup, in-place Euler/OBJ-Zup rotation, and
// vertex/triangle accessors. It is the leaf dependency of the
// ray-intersection and graph-generation packages.
package mesh

import (
	"math"

	"github.com/cadop/dhart-sub001/dherr"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// Mesh is an indexed triangle mesh: a flat vertex buffer and a flat index
// buffer, three indices per triangle.
type Mesh struct {
	vertices []r3.Vec
	indices  [][3]uint32
	id       int32
	name     string
}

// FromIndexed builds a Mesh directly from vertex and index buffers. It
// fails with dherr.ErrInvalidMesh if any index is out of range or the
// buffers are too small: len(vertices) >= 3, len(indices) >= 1.
func FromIndexed(vertices []r3.Vec, indices [][3]uint32, id int32, name string) (*Mesh, error) {
	if len(vertices) < 3 || len(indices) < 1 {
		return nil, dherr.ErrInvalidMesh
	}
	for _, tri := range indices {
		for _, idx := range tri {
			if int(idx) >= len(vertices) {
				return nil, dherr.ErrInvalidMesh
			}
		}
	}
	v := make([]r3.Vec, len(vertices))
	copy(v, vertices)
	idx := make([][3]uint32, len(indices))
	copy(idx, indices)
	return &Mesh{vertices: v, indices: idx, id: id, name: name}, nil
}

// FromTriangleSoup builds a Mesh from a flat triangle soup: every 3
// consecutive Vecs define one triangle, not yet deduplicated. Vertices are
// hashed by their exact bit pattern into dense ids; each distinct vertex
// triple appears once in the resulting vertex buffer. Fails with
// dherr.ErrInvalidMesh if len(soup) % 3 != 0 or the soup is empty.
func FromTriangleSoup(soup []r3.Vec, id int32, name string) (*Mesh, error) {
	if len(soup) == 0 || len(soup)%3 != 0 {
		return nil, dherr.ErrInvalidMesh
	}
	denseID := make(map[vecKey]uint32, len(soup))
	vertices := make([]r3.Vec, 0, len(soup))
	indices := make([][3]uint32, 0, len(soup)/3)
	for t := 0; t < len(soup); t += 3 {
		var tri [3]uint32
		for k := 0; k < 3; k++ {
			v := soup[t+k]
			key := hashVec(v)
			id, ok := denseID[key]
			if !ok {
				id = uint32(len(vertices))
				denseID[key] = id
				vertices = append(vertices, v)
			}
			tri[k] = id
		}
		indices = append(indices, tri)
	}
	return FromIndexed(vertices, indices, id, name)
}

// vecKey is the exact bit-pattern key for Vec deduplication.
type vecKey struct{ x, y, z uint64 }

func hashVec(v r3.Vec) vecKey {
	return vecKey{
		x: math.Float64bits(v.X),
		y: math.Float64bits(v.Y),
		z: math.Float64bits(v.Z),
	}
}

// NumVerts returns the number of unique vertices in the mesh.
func (m *Mesh) NumVerts() int { return len(m.vertices) }

// NumTris returns the number of triangles in the mesh.
func (m *Mesh) NumTris() int { return len(m.indices) }

// Vertex returns the i'th vertex.
func (m *Mesh) Vertex(i int) r3.Vec { return m.vertices[i] }

// Index returns the i'th triangle's three vertex indices.
func (m *Mesh) Index(i int) [3]uint32 { return m.indices[i] }

// Triangle returns the i'th triangle as an r3.Triangle of vertex positions.
func (m *Mesh) Triangle(i int) r3.Triangle {
	idx := m.indices[i]
	return r3.Triangle{m.vertices[idx[0]], m.vertices[idx[1]], m.vertices[idx[2]]}
}

// ID returns the mesh's id: the one it was constructed with, or the last
// one given to SetID. Registering the mesh with a RayTracer does not
// change it; the id the tracer uses is AddMesh's return value.
func (m *Mesh) ID() int32 { return m.id }

// SetID sets the mesh's id.
func (m *Mesh) SetID(id int32) { m.id = id }

// Name returns the mesh's name.
func (m *Mesh) Name() string { return m.name }

// Equals reports whether m and other have vertex-wise equal geometry
// within a fixed 0.001 mesh-compare tolerance.
func (m *Mesh) Equals(other *Mesh) bool {
	if m.NumVerts() != other.NumVerts() || m.NumTris() != other.NumTris() {
		return false
	}
	const tol = 0.001
	for i := range m.vertices {
		if r3.Distance(m.vertices[i], other.vertices[i]) >= tol {
			return false
		}
	}
	for i := range m.indices {
		if m.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}
