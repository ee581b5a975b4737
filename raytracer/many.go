package raytracer

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cadop/dhart-sub001/dherr"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// IntersectFiltered is Intersect restricted to triangles whose mesh id
// satisfies filter (nil means unfiltered).
func (rt *RayTracer) IntersectFiltered(origin, direction r3.Vec, filter func(int32) bool) HitStruct {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.nearestHit(origin, direction, math.Inf(1), filter)
}

// OccludedFiltered is Occluded restricted to triangles whose mesh id
// satisfies filter (nil means unfiltered).
func (rt *RayTracer) OccludedFiltered(origin, direction r3.Vec, maxDistance float64, filter func(int32) bool) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.anyHit(origin, direction, maxDistance, filter)
}

// IntersectMany accepts one of three (origins, directions) shapes: equal
// length and paired index-for-index, a single origin against many
// directions, or many origins against a single direction. Any other shape
// fails with dherr.ErrInvalidArgument. When useParallel is true, rays are
// dispatched across goroutines; results are still written at the
// corresponding index regardless.
func (rt *RayTracer) IntersectMany(origins, directions []r3.Vec, useParallel bool, maxDistance float64, meshIDFilter func(int32) bool) ([]HitStruct, error) {
	n, err := manyShapeLen(origins, directions)
	if err != nil {
		return nil, err
	}
	out := make([]HitStruct, n)
	work := func(i int) {
		o := pick(origins, i)
		d := pick(directions, i)
		out[i] = rt.IntersectFiltered(o, d, meshIDFilter)
		if out[i].DidHit() && out[i].Distance > maxDistance {
			out[i] = HitStruct{Distance: -1, MeshID: FAIL}
		}
	}
	if !useParallel || n < 2 {
		for i := 0; i < n; i++ {
			work(i)
		}
		return out, nil
	}
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			work(i)
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

func manyShapeLen(origins, directions []r3.Vec) (int, error) {
	switch {
	case len(origins) == len(directions):
		return len(origins), nil
	case len(origins) == 1 && len(directions) > 1:
		return len(directions), nil
	case len(directions) == 1 && len(origins) > 1:
		return len(origins), nil
	default:
		return 0, dherr.ErrInvalidArgument
	}
}

func pick(vs []r3.Vec, i int) r3.Vec {
	if len(vs) == 1 {
		return vs[0]
	}
	return vs[i]
}
