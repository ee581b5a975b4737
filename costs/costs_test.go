package costs

import (
	"testing"

	"github.com/cadop/dhart-sub001/graph"
	"github.com/cadop/dhart-sub001/graphgen"
	"github.com/cadop/dhart-sub001/mesh"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

func flatGraph(t *testing.T) (*graph.Graph, *raytracer.RayTracer) {
	t.Helper()
	soup := []r3.Vec{
		{X: -50, Y: -50, Z: 0}, {X: 50, Y: -50, Z: 0}, {X: 50, Y: 50, Z: 0},
		{X: -50, Y: -50, Z: 0}, {X: 50, Y: 50, Z: 0}, {X: -50, Y: 50, Z: 0},
	}
	m, err := mesh.FromTriangleSoup(soup, 0, "ground")
	if err != nil {
		t.Fatal(err)
	}
	rt := raytracer.New(true)
	rt.AddMesh(m, true)

	gen := graphgen.New(rt, nil, nil, graphgen.AllIntersections)
	g := gen.Generate(graphgen.Params{
		StartPoint:        r3.Vec{X: 0, Y: 0, Z: 1},
		Spacing:           r3.Vec{X: 1, Y: 1, Z: 1},
		MaxNodes:          12,
		UpStep:            0.5,
		DownStep:          0.5,
		UpSlope:           45,
		DownSlope:         45,
		MaxStepConnection: 1,
		MinConnections:    1,
		Precision:         graphgen.Precision{NodeZ: 0.01, NodeSpacing: 0.01, GroundOffset: 0.01},
		CoreCount:         0,
	})
	if g.Size() == 0 {
		t.Fatal("expected a non-empty graph")
	}
	return g, rt
}

func TestDeriveStepTypeFlatIsAllNone(t *testing.T) {
	g, rt := flatGraph(t)
	if err := DeriveStepType(g, rt, 0.01, 0.5, 0.5, nil); err != nil {
		t.Fatalf("DeriveStepType: %v", err)
	}
	sets, err := g.Edges(StepTypeLayerName)
	if err != nil {
		t.Fatalf("Edges(step_type): %v", err)
	}
	if len(sets) == 0 {
		t.Fatal("expected step_type edges")
	}
	for _, es := range sets {
		for _, c := range es.Children {
			if graph.StepType(c.Weight) != graph.None {
				t.Errorf("flat-plane step type = %v, want None", graph.StepType(c.Weight))
			}
		}
	}
}

func TestDeriveStepTypeIdempotent(t *testing.T) {
	g, rt := flatGraph(t)
	if err := DeriveStepType(g, rt, 0.01, 0.5, 0.5, nil); err != nil {
		t.Fatal(err)
	}
	first, _ := g.Edges(StepTypeLayerName)
	if err := DeriveStepType(g, rt, 0.01, 0.5, 0.5, nil); err != nil {
		t.Fatal(err)
	}
	second, _ := g.Edges(StepTypeLayerName)
	if len(first) != len(second) {
		t.Fatalf("edge-set count changed across reruns: %d vs %d", len(first), len(second))
	}
}

func TestDeriveEnergyCostFlatIsNonNegative(t *testing.T) {
	g, _ := flatGraph(t)
	if err := DeriveEnergyCost(g); err != nil {
		t.Fatalf("DeriveEnergyCost: %v", err)
	}
	sets, err := g.Edges(EnergyLayerName)
	if err != nil {
		t.Fatalf("Edges(energy_cost): %v", err)
	}
	for _, es := range sets {
		for _, c := range es.Children {
			if c.Weight < 0 {
				t.Errorf("negative energy cost %v on a flat edge", c.Weight)
			}
		}
	}
}
