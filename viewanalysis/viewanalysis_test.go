package viewanalysis

import (
	"math"
	"testing"

	"github.com/cadop/dhart-sub001/graph"
	"github.com/cadop/dhart-sub001/mesh"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

func TestDistributeFullSphereReturnsUnitVectors(t *testing.T) {
	pts := Distribute(64, 90, 90)
	if len(pts) == 0 {
		t.Fatal("expected a non-empty direction set")
	}
	for _, p := range pts {
		if !r3.IsFinite(p) {
			t.Fatalf("non-finite direction: %v", p)
		}
		if math.Abs(r3.Norm(p)-1) > 1e-6 {
			t.Errorf("‖%v‖ = %v, want 1", p, r3.Norm(p))
		}
	}
}

func TestDistributeFirstPointFullSphere(t *testing.T) {
	pts := Distribute(8, 90, 90)
	if len(pts) == 0 {
		t.Fatal("expected points")
	}
	first := pts[0]
	if math.Abs(first.X) > 1e-6 || math.Abs(first.Y+1) > 1e-6 || math.Abs(first.Z) > 1e-6 {
		t.Errorf("first point = %v, want ~(0,-1,0)", first)
	}
}

func TestDistributeZeroYieldsEmpty(t *testing.T) {
	if pts := Distribute(0, 90, 90); pts != nil {
		t.Errorf("Distribute(0, ...) = %v, want nil", pts)
	}
}

func plane() *mesh.Mesh {
	soup := []r3.Vec{
		{X: -50, Y: -50, Z: 0}, {X: 50, Y: -50, Z: 0}, {X: 50, Y: 50, Z: 0},
		{X: -50, Y: -50, Z: 0}, {X: 50, Y: 50, Z: 0}, {X: -50, Y: 50, Z: 0},
	}
	m, _ := mesh.FromTriangleSoup(soup, 0, "ground")
	return m
}

func TestNoAggregateCountsDownwardHit(t *testing.T) {
	rt := raytracer.New(true)
	rt.AddMesh(plane(), true)

	nodes := []r3.Vec{{X: 0, Y: 0, Z: 1}}
	dirs := []r3.Vec{{X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: 1}}
	hits := NoAggregate(rt, nodes, 0, dirs, math.Inf(1), nil)
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if !hits[0].DidHit() {
		t.Error("expected downward ray to hit the plane")
	}
	if hits[1].DidHit() {
		t.Error("expected upward ray to miss")
	}
}

func TestAggregateCount(t *testing.T) {
	rt := raytracer.New(true)
	rt.AddMesh(plane(), true)

	nodes := []r3.Vec{{X: 0, Y: 0, Z: 1}}
	dirs := Distribute(32, 90, 90)
	scores := Aggregate(rt, nodes, 0, dirs, graph.Count, math.Inf(1), nil)
	if scores[0] <= 0 {
		t.Errorf("Count score = %v, want > 0", scores[0])
	}
}
