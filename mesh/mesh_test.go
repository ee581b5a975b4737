package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/cadop/dhart-sub001/dherr"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

func square() []r3.Vec {
	// Two triangles forming the axis-aligned square (-10,-10,0)-(10,10,0).
	a := r3.Vec{X: -10, Y: -10, Z: 0}
	b := r3.Vec{X: 10, Y: -10, Z: 0}
	c := r3.Vec{X: 10, Y: 10, Z: 0}
	d := r3.Vec{X: -10, Y: 10, Z: 0}
	return []r3.Vec{a, b, c, a, c, d}
}

func TestFromTriangleSoupDeduplicates(t *testing.T) {
	m, err := FromTriangleSoup(square(), 0, "plane")
	if err != nil {
		t.Fatalf("FromTriangleSoup: %v", err)
	}
	if m.NumVerts() != 4 {
		t.Errorf("NumVerts() = %d, want 4", m.NumVerts())
	}
	if m.NumTris() != 2 {
		t.Errorf("NumTris() = %d, want 2", m.NumTris())
	}
}

func TestFromTriangleSoupBadLength(t *testing.T) {
	_, err := FromTriangleSoup(square()[:4], 0, "bad")
	if !errors.Is(err, dherr.ErrInvalidMesh) {
		t.Fatalf("err = %v, want ErrInvalidMesh", err)
	}
}

func TestFromIndexedOutOfRangeIndex(t *testing.T) {
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}}
	_, err := FromIndexed(verts, [][3]uint32{{0, 1, 5}}, 0, "bad")
	if !errors.Is(err, dherr.ErrInvalidMesh) {
		t.Fatalf("err = %v, want ErrInvalidMesh", err)
	}
}

func TestRotateObjZUpRoundTrip(t *testing.T) {
	m, err := FromTriangleSoup(square(), 0, "plane")
	if err != nil {
		t.Fatal(err)
	}
	orig := make([]r3.Vec, m.NumVerts())
	for i := range orig {
		orig[i] = m.Vertex(i)
	}
	if err := m.ConvertOBJToZUp(); err != nil {
		t.Fatalf("ConvertOBJToZUp: %v", err)
	}
	if err := m.ConvertZUpToOBJ(); err != nil {
		t.Fatalf("ConvertZUpToOBJ: %v", err)
	}
	for i := range orig {
		if r3.Distance(orig[i], m.Vertex(i)) > 1e-4 {
			t.Errorf("vertex %d = %v, want %v", i, m.Vertex(i), orig[i])
		}
	}
}

func TestRotateNumericError(t *testing.T) {
	m, err := FromIndexed([]r3.Vec{
		{X: math.Inf(1)}, {X: 1}, {Y: 1},
	}, [][3]uint32{{0, 1, 2}}, 0, "bad")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Rotate(10, 0, 0); !errors.Is(err, dherr.ErrNumeric) {
		t.Fatalf("Rotate err = %v, want ErrNumeric", err)
	}
}

func TestEquals(t *testing.T) {
	a, _ := FromTriangleSoup(square(), 0, "a")
	b, _ := FromTriangleSoup(square(), 1, "b")
	if !a.Equals(b) {
		t.Error("Equals() = false for identical geometry")
	}
}
