package graphgen

import (
	"testing"

	"github.com/cadop/dhart-sub001/mesh"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

func flatPlane(t *testing.T) *raytracer.RayTracer {
	t.Helper()
	soup := []r3.Vec{
		{X: -50, Y: -50, Z: 0}, {X: 50, Y: -50, Z: 0}, {X: 50, Y: 50, Z: 0},
		{X: -50, Y: -50, Z: 0}, {X: 50, Y: 50, Z: 0}, {X: -50, Y: 50, Z: 0},
	}
	m, err := mesh.FromTriangleSoup(soup, 0, "ground")
	if err != nil {
		t.Fatalf("FromTriangleSoup: %v", err)
	}
	rt := raytracer.New(true)
	rt.AddMesh(m, true)
	return rt
}

func basicParams() Params {
	return Params{
		StartPoint:        r3.Vec{X: 0, Y: 0, Z: 1},
		Spacing:           r3.Vec{X: 1, Y: 1, Z: 1},
		MaxNodes:          25,
		UpStep:            0.5,
		DownStep:          0.5,
		UpSlope:           45,
		DownSlope:         45,
		MaxStepConnection: 1,
		MinConnections:    1,
		Precision:         Precision{NodeZ: 0.01, NodeSpacing: 0.01, GroundOffset: 0.01},
		CoreCount:         0,
	}
}

func TestGenerateOnFlatPlaneProducesGrid(t *testing.T) {
	rt := flatPlane(t)
	g := New(rt, nil, nil, AllIntersections)
	result := g.Generate(basicParams())
	if result.Size() == 0 {
		t.Fatal("expected a non-empty graph on flat walkable ground")
	}
	for id := 0; id < result.Size(); id++ {
		n := result.NodeOf(int32(id))
		if n.Z != 0 {
			t.Errorf("node %d Z = %v, want 0 on a flat plane", id, n.Z)
		}
	}
}

func TestGenerateEmptyWhenStartUnsupported(t *testing.T) {
	rt := raytracer.New(true) // no geometry at all
	g := New(rt, nil, nil, AllIntersections)
	result := g.Generate(basicParams())
	if result.Size() != 0 {
		t.Fatalf("Size() = %d, want 0 with no geometry under the start point", result.Size())
	}
}

func TestGenerateRespectsMaxNodes(t *testing.T) {
	rt := flatPlane(t)
	g := New(rt, nil, nil, AllIntersections)
	p := basicParams()
	p.MaxNodes = 3
	result := g.Generate(p)
	// MaxNodes bounds the number of expanded parents, i.e. the nodes that
	// have outgoing edges; their children may push Size() above it.
	expanded, err := result.Edges("")
	if err != nil {
		t.Fatalf("Edges: %v", err)
	}
	if len(expanded) > 3 {
		t.Fatalf("expanded nodes = %d, want <= 3", len(expanded))
	}
}

func TestGenerateParallelMatchesSerialSize(t *testing.T) {
	rt := flatPlane(t)
	serialParams := basicParams()
	serialResult := New(rt, nil, nil, AllIntersections).Generate(serialParams)

	parallelParams := basicParams()
	parallelParams.CoreCount = -1
	parallelResult := New(rt, nil, nil, AllIntersections).Generate(parallelParams)

	if serialResult.Size() != parallelResult.Size() {
		t.Errorf("serial Size() = %d, parallel Size() = %d, want equal", serialResult.Size(), parallelResult.Size())
	}
}
