package costs

import (
	"math"

	"github.com/cadop/dhart-sub001/graph"
)

// EnergyLayerName is the alternate-layer name the energy-cost derivation
// writes to.
const EnergyLayerName = "energy_cost"

// minettiCost is Minetti et al.'s (2002) empirical metabolic cost of
// walking, in J/(kg*m), as a function of terrain gradient i (rise/run,
// signed). Offered alongside the step-type classification as an
// energy-expenditure cost variant.
func minettiCost(i float64) float64 {
	return 280.5*math.Pow(i, 6) - 58.7*math.Pow(i, 5) - 76.8*math.Pow(i, 4) +
		51.9*math.Pow(i, 3) + 19.6*i*i + 2.5*i + 3.6
}

// DeriveEnergyCost walks every (parent, child) edge of g's primary layer
// and writes each edge's Minetti metabolic cost (J/kg, scaled by the edge's
// horizontal run) into the "energy_cost" alternate layer.
func DeriveEnergyCost(g *graph.Graph) error {
	sets, err := g.Edges("")
	if err != nil {
		return err
	}
	out := make([]graph.EdgeSet, 0, len(sets))
	for _, es := range sets {
		parent := g.NodeOf(es.ParentID)
		children := make([]graph.IntEdge, 0, len(es.Children))
		for _, c := range es.Children {
			child := g.NodeOf(c.ChildID)
			dz := float64(child.Z - parent.Z)
			dx := float64(child.X - parent.X)
			dy := float64(child.Y - parent.Y)
			horiz := math.Hypot(dx, dy)
			var grade float64
			if horiz > 0 {
				grade = dz / horiz
			}
			cost := minettiCost(grade) * horiz
			children = append(children, graph.IntEdge{ChildID: c.ChildID, Weight: float32(cost)})
		}
		out = append(out, graph.EdgeSet{ParentID: es.ParentID, Children: children})
	}
	return g.AddEdges(out, EnergyLayerName)
}
