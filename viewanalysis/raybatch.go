package viewanalysis

import (
	"math"

	"github.com/cadop/dhart-sub001/graph"
	"github.com/cadop/dhart-sub001/raytracer"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// observerOrigin offsets a node's position upward by height before its ray
// batch is cast.
func observerOrigin(node r3.Vec, height float64) r3.Vec {
	return r3.Vec{X: node.X, Y: node.Y, Z: node.Z + height}
}

// NoAggregate casts directions from every node (each offset by height) and
// returns the flat per-ray hit array: record i*K+k is node i's hit along
// directions[k], or the miss sentinel.
func NoAggregate(rt *raytracer.RayTracer, nodes []r3.Vec, height float64, directions []r3.Vec, maxDistance float64, meshFilter func(int32) bool) []raytracer.HitStruct {
	k := len(directions)
	out := make([]raytracer.HitStruct, len(nodes)*k)
	for i, node := range nodes {
		origin := observerOrigin(node, height)
		for j, dir := range directions {
			hit := rt.IntersectFiltered(origin, dir, meshFilter)
			if hit.DidHit() && hit.Distance > maxDistance {
				hit = raytracer.HitStruct{Distance: -1, MeshID: raytracer.FAIL}
			}
			out[i*k+j] = hit
		}
	}
	return out
}

// Aggregate casts directions from every node and reduces the per-node hit
// set to a single score per the given reduction kind.
func Aggregate(rt *raytracer.RayTracer, nodes []r3.Vec, height float64, directions []r3.Vec, kind graph.AggregateKind, maxDistance float64, meshFilter func(int32) bool) []float32 {
	out := make([]float32, len(nodes))
	for i, node := range nodes {
		origin := observerOrigin(node, height)
		var sum float64
		var count int
		max := float32(0)
		min := float32(math.Inf(1))
		for _, dir := range directions {
			hit := rt.IntersectFiltered(origin, dir, meshFilter)
			if !hit.DidHit() || hit.Distance > maxDistance {
				continue
			}
			count++
			sum += hit.Distance
			d := float32(hit.Distance)
			if d > max {
				max = d
			}
			if d < min {
				min = d
			}
		}
		switch kind {
		case graph.Count:
			out[i] = float32(count)
		case graph.Sum:
			out[i] = float32(sum)
		case graph.Average:
			if count > 0 {
				out[i] = float32(sum / float64(count))
			}
		case graph.Max:
			out[i] = max
		case graph.Min:
			if count > 0 {
				out[i] = min
			}
		}
	}
	return out
}
