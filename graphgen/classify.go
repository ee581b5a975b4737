package graphgen

import (
	"math"

	"github.com/cadop/dhart-sub001/graph"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

func roundTo(v, precision float64) float64 {
	if precision == 0 {
		return v
	}
	return math.Round(v/precision) * precision
}

// meshFilter builds the hit-acceptance predicate for a probe cast with the
// given goal and filter mode.
func meshFilter(mode FilterMode, goal GoalFlag, obstacleIDs, floorIDs map[int32]bool) func(int32) bool {
	switch mode {
	case AllIntersections:
		return nil
	case ObstaclesOnly:
		if goal == Obstacles {
			return func(id int32) bool { return obstacleIDs[id] }
		}
		return func(id int32) bool { return !obstacleIDs[id] }
	case ObstaclesAndFloors:
		if goal == Obstacles {
			return func(id int32) bool { return obstacleIDs[id] }
		}
		return func(id int32) bool { return floorIDs[id] }
	default:
		return nil
	}
}

func effectiveGoal(mode FilterMode, goal GoalFlag) GoalFlag {
	if mode == AllIntersections {
		return Both
	}
	return goal
}

// CheckConnection is the two-offset occlusion classifier used by the
// crawl's pass-2 child validation: it offsets both endpoints up by
// groundOffset, tests occlusion, and when blocked retries once with an
// endpoint re-offset by the traversal's step height before giving up.
func CheckConnection(rt *raytracer.RayTracer, parent, child r3.Vec, groundOffset, upStep, downStep, upSlope, downSlope float64, filter func(int32) bool) graph.StepType {
	return checkConnection(rt, parent, child, groundOffset, upStep, downStep, upSlope, downSlope, filter, true)
}

// ClassifyExistingEdge re-derives an already-traversable edge's step type
// for a cost-layer derivation pass, skipping the slope-range
// rejection that CheckConnection applies when deciding whether a clear
// line of sight is traversable at all: the edge already survived that
// decision when the graph was built.
func ClassifyExistingEdge(rt *raytracer.RayTracer, parent, child r3.Vec, groundOffset, upStep, downStep float64, filter func(int32) bool) graph.StepType {
	return checkConnection(rt, parent, child, groundOffset, upStep, downStep, 0, 0, filter, false)
}

func checkConnection(rt *raytracer.RayTracer, parent, child r3.Vec, groundOffset, upStep, downStep, upSlope, downSlope float64, filter func(int32) bool, checkSlope bool) graph.StepType {
	dz := child.Z - parent.Z

	p1 := parent
	p1.Z += groundOffset
	c1 := child
	c1.Z += groundOffset
	dist := r3.Distance(p1, c1)
	if dist == 0 {
		return graph.None
	}
	dir := r3.Normalize(r3.Sub(c1, p1))

	if !rt.OccludedFiltered(p1, dir, dist, filter) {
		if math.Abs(dz) < groundOffset {
			return graph.None
		}
		if !checkSlope {
			return graph.None
		}
		horiz := math.Hypot(child.X-parent.X, child.Y-parent.Y)
		slopeDeg := math.Atan2(dz, horiz) * 180 / math.Pi
		if slopeDeg > -downSlope && slopeDeg < upSlope {
			return graph.None
		}
		return graph.NotConnected
	}

	var tentative graph.StepType
	switch {
	case dz > 0:
		tentative = graph.Up
	case dz < 0:
		tentative = graph.Down
	default:
		tentative = graph.Over
	}

	lowerIsParent := parent.Z <= child.Z
	lo, hi := parent, child
	if !lowerIsParent {
		lo, hi = child, parent
	}
	switch tentative {
	case graph.Up, graph.Over:
		lo.Z += upStep
		hi.Z += groundOffset
	case graph.Down:
		hi.Z += downStep + groundOffset
		lo.Z += groundOffset
	}
	var p2, c2 r3.Vec
	if lowerIsParent {
		p2, c2 = lo, hi
	} else {
		p2, c2 = hi, lo
	}

	dist2 := r3.Distance(p2, c2)
	if dist2 == 0 {
		return graph.NotConnected
	}
	if !rt.OccludedFiltered(p2, r3.Normalize(r3.Sub(c2, p2)), dist2, filter) {
		return tentative
	}
	return graph.NotConnected
}
