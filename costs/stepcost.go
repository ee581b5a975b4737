// Package costs derives alternate cost layers over an already-compressed
// Graph by replaying the graph generator's occlusion classifier (or an
// energy model) across every existing edge.
package costs

import (
	"github.com/cadop/dhart-sub001/graph"
	"github.com/cadop/dhart-sub001/graphgen"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// StepTypeLayerName is the fixed alternate-layer name the step-type
// derivation writes to.
const StepTypeLayerName = "step_type"

func toVec(n graph.Node) r3.Vec {
	return r3.Vec{X: float64(n.X), Y: float64(n.Y), Z: float64(n.Z)}
}

// DeriveStepType walks every (parent, child) edge of g's primary layer,
// re-classifies it with the two-offset occlusion test (skipping the
// slope re-check, since a primary-layer edge is traversable by
// construction), and writes the numeric step type into the "step_type"
// alternate layer. Idempotent: re-running it recomputes the same values.
func DeriveStepType(g *graph.Graph, rt *raytracer.RayTracer, groundOffset, upStep, downStep float64, obstacleFilter func(int32) bool) error {
	sets, err := g.Edges("")
	if err != nil {
		return err
	}
	out := make([]graph.EdgeSet, 0, len(sets))
	for _, es := range sets {
		parent := toVec(g.NodeOf(es.ParentID))
		children := make([]graph.IntEdge, 0, len(es.Children))
		for _, c := range es.Children {
			child := toVec(g.NodeOf(c.ChildID))
			st := graphgen.ClassifyExistingEdge(rt, parent, child, groundOffset, upStep, downStep, obstacleFilter)
			children = append(children, graph.IntEdge{ChildID: c.ChildID, Weight: float32(st)})
		}
		out = append(out, graph.EdgeSet{ParentID: es.ParentID, Children: children})
	}
	return g.AddEdges(out, StepTypeLayerName)
}
