package graphgen

import (
	"golang.org/x/sync/errgroup"

	"github.com/cadop/dhart-sub001/graph"
	"github.com/cadop/dhart-sub001/queue"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// Generator crawls a RayTracer's geometry to build an accessibility Graph.
type Generator struct {
	rt          *raytracer.RayTracer
	obstacleIDs map[int32]bool
	floorIDs    map[int32]bool
	mode        FilterMode
}

// New returns a Generator over rt, with the given obstacle/walkable mesh
// id sets and hit-filter mode.
func New(rt *raytracer.RayTracer, obstacleIDs, walkableIDs []int32, mode FilterMode) *Generator {
	g := &Generator{rt: rt, mode: mode, obstacleIDs: map[int32]bool{}, floorIDs: map[int32]bool{}}
	for _, id := range obstacleIDs {
		g.obstacleIDs[id] = true
	}
	for _, id := range walkableIDs {
		g.floorIDs[id] = true
	}
	return g
}

func (g *Generator) filterFor(goal GoalFlag) func(int32) bool {
	return meshFilter(g.mode, effectiveGoal(g.mode, goal), g.obstacleIDs, g.floorIDs)
}

func toNode(v r3.Vec) graph.Node {
	return graph.Node{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z), Type: graph.GraphNode}
}

func toVec(n graph.Node) r3.Vec {
	return r3.Vec{X: float64(n.X), Y: float64(n.Y), Z: float64(n.Z)}
}

// childEdge is one validated, classified candidate produced for a parent.
type childEdge struct {
	child    r3.Vec
	score    float32
	stepType graph.StepType
}

// Generate runs the full crawl and returns the resulting Graph. An empty
// (but non-nil) Graph is returned if the start point does not snap to
// walkable geometry.
func (g *Generator) Generate(p Params) *graph.Graph {
	gr := graph.New()

	start, ok := g.validateStart(p)
	if !ok {
		return gr
	}

	q := queue.New()
	q.Push(toNode(start))

	dirs := directionLattice(p.MaxStepConnection)
	numNodes := int32(0)
	unlimited := p.MaxNodes < 0

	serial := p.CoreCount == 0 || p.CoreCount == 1

	for !q.Empty() {
		if !unlimited && numNodes >= p.MaxNodes {
			break
		}
		budget := p.MaxNodes - numNodes
		if unlimited || budget > int32(q.Size()) {
			budget = int32(q.Size())
		}
		if budget <= 0 {
			break
		}
		batch := q.PopMany(int(budget))

		results := make([][]childEdge, len(batch))
		if serial {
			for i, parentNode := range batch {
				results[i] = g.childEdges(toVec(parentNode), dirs, p)
			}
		} else {
			var eg errgroup.Group
			for i, parentNode := range batch {
				i, parentNode := i, parentNode
				eg.Go(func() error {
					results[i] = g.childEdges(toVec(parentNode), dirs, p)
					return nil
				})
			}
			_ = eg.Wait()
		}

		for i, parentNode := range batch {
			edges := results[i]
			if int32(len(edges)) < p.MinConnections {
				continue
			}
			for _, e := range edges {
				childNode := toNode(e.child)
				gr.AddEdge(parentNode, childNode, e.score, "")
				q.Push(childNode)
			}
			numNodes++
			if !unlimited && numNodes >= p.MaxNodes {
				break
			}
		}
	}

	gr.Compress()
	return gr
}

// validateStart snaps StartPoint onto walkable geometry below it, or
// reports failure if nothing is hit.
func (g *Generator) validateStart(p Params) (r3.Vec, bool) {
	start := r3.Vec{
		X: roundTo(p.StartPoint.X, p.Precision.NodeSpacing),
		Y: roundTo(p.StartPoint.Y, p.Precision.NodeSpacing),
		Z: roundTo(p.StartPoint.Z, p.Precision.NodeZ),
	}
	hit := g.rt.IntersectFiltered(start, r3.Vec{X: 0, Y: 0, Z: -1}, g.filterFor(Floors))
	if !hit.DidHit() {
		return r3.Vec{}, false
	}
	start.Z = roundTo(start.Z-hit.Distance, p.Precision.NodeZ)
	return start, true
}

// childEdges generates, validates, and classifies every lattice neighbor
// of parent, returning the edges that survive both passes.
func (g *Generator) childEdges(parent r3.Vec, dirs []direction, p Params) []childEdge {
	var out []childEdge
	floorFilter := g.filterFor(Floors)
	for _, d := range dirs {
		candidate := r3.Vec{
			X: roundTo(parent.X+float64(d.dx)*p.Spacing.X, p.Precision.NodeSpacing),
			Y: roundTo(parent.Y+float64(d.dy)*p.Spacing.Y, p.Precision.NodeSpacing),
			Z: roundTo(parent.Z+p.Spacing.Z, p.Precision.NodeZ),
		}

		hit := g.rt.IntersectFiltered(candidate, r3.Vec{X: 0, Y: 0, Z: -1}, floorFilter)
		if !hit.DidHit() {
			continue
		}
		candidate.Z = roundTo(candidate.Z-hit.Distance, p.Precision.NodeZ)

		dz := candidate.Z - parent.Z
		if dz > 0 && dz >= p.UpStep {
			continue
		}
		if dz < 0 && -dz >= p.DownStep {
			continue
		}

		stepType := CheckConnection(g.rt, parent, candidate,
			p.Precision.GroundOffset, p.UpStep, p.DownStep, p.UpSlope, p.DownSlope,
			g.filterFor(Obstacles))
		if stepType == graph.NotConnected {
			continue
		}

		out = append(out, childEdge{
			child:    candidate,
			score:    float32(r3.Distance(parent, candidate)),
			stepType: stepType,
		})
	}
	return out
}
