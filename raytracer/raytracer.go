package raytracer

import (
	"math"
	"sync"

	"github.com/cadop/dhart-sub001/dherr"
	"github.com/cadop/dhart-sub001/mesh"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// FAIL is the sentinel mesh id of a missed query.
const FAIL int32 = -1

// nearRayOffset is the minimum accepted hit distance: any intersection
// closer than this along the ray is rejected, so a ray cast from a
// surface does not immediately re-hit it. Applied as a tnear cutoff
// rather than an origin shift, so reported distances and hit points stay
// measured from the ray's true, unbiased origin.
const nearRayOffset = 1e-5

// mollerEps is the minimum |det| accepted before a ray is treated as
// parallel to a triangle's plane.
const mollerEps = 1e-7

// HitStruct is the result of a nearest-hit query.
type HitStruct struct {
	Distance float64
	MeshID   int32
}

// DidHit reports whether the query found an intersection.
func (h HitStruct) DidHit() bool { return h.MeshID != FAIL }

// RayTracer owns a BVH and the triangle/vertex buffers backing it, built
// from one or more Meshes. Query methods are safe for concurrent use by
// multiple readers; AddMesh/AddMeshes require exclusive access, enforced
// here with a RWMutex.
type RayTracer struct {
	mu         sync.RWMutex
	tris       []tri
	tree       *bvh
	usePrecise bool
	usedIDs    map[int32]bool
	nextID     int32
}

// New returns an empty RayTracer. usePrecise is stored but does not change
// any result: every hit distance already comes from the double-precision
// Möller-Trumbore test against the winning triangle.
func New(usePrecise bool) *RayTracer {
	return &RayTracer{usePrecise: usePrecise, usedIDs: make(map[int32]bool)}
}

// AddMesh copies m's triangles into the backend buffers under m's id, or
// under a fresh id if m's id is negative or already taken, and returns the
// id used; m itself is not modified. If commit is true, the BVH is rebuilt
// immediately.
func (rt *RayTracer) AddMesh(m *mesh.Mesh, commit bool) int32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	id := rt.reserveID(m.ID())
	rt.appendTriangles(m, id)
	if commit {
		rt.tree = buildBVH(rt.tris)
	}
	return id
}

// AddMeshes copies every mesh's triangles in, deferring a single BVH
// rebuild until all have been added. If commit is false, the caller must
// call Commit before querying.
func (rt *RayTracer) AddMeshes(meshes []*mesh.Mesh, commit bool) []int32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	ids := make([]int32, len(meshes))
	for i, m := range meshes {
		id := rt.reserveID(m.ID())
		rt.appendTriangles(m, id)
		ids[i] = id
	}
	if commit {
		rt.tree = buildBVH(rt.tris)
	}
	return ids
}

// Commit (re)builds the BVH over the current triangle set. Returns
// dherr.ErrMissingDependency if there is nothing to build from.
func (rt *RayTracer) Commit() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if len(rt.tris) == 0 {
		return dherr.ErrMissingDependency
	}
	rt.tree = buildBVH(rt.tris)
	return nil
}

func (rt *RayTracer) reserveID(wanted int32) int32 {
	if wanted >= 0 && !rt.usedIDs[wanted] {
		rt.usedIDs[wanted] = true
		if wanted >= rt.nextID {
			rt.nextID = wanted + 1
		}
		return wanted
	}
	for rt.usedIDs[rt.nextID] {
		rt.nextID++
	}
	id := rt.nextID
	rt.usedIDs[id] = true
	rt.nextID++
	return id
}

func (rt *RayTracer) appendTriangles(m *mesh.Mesh, id int32) {
	for i := 0; i < m.NumTris(); i++ {
		t := m.Triangle(i)
		rt.tris = append(rt.tris, tri{v0: t[0], v1: t[1], v2: t[2], meshID: id})
	}
}

// Intersect returns the closest intersection along the ray from origin in
// direction, or a miss sentinel (MeshID = FAIL, Distance = -1) if nothing
// is hit or the BVH is empty.
func (rt *RayTracer) Intersect(origin, direction r3.Vec) HitStruct {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.nearestHit(origin, direction, math.Inf(1), nil)
}

// Occluded reports whether any triangle is hit within maxDistance along
// the ray from origin in direction.
func (rt *RayTracer) Occluded(origin, direction r3.Vec, maxDistance float64) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.anyHit(origin, direction, maxDistance, nil)
}

// PointIntersection mutates *origin to the hit point on success and
// leaves it unchanged on miss. It returns whether a hit occurred.
func (rt *RayTracer) PointIntersection(origin *r3.Vec, direction r3.Vec) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	hit := rt.nearestHit(*origin, direction, math.Inf(1), nil)
	if !hit.DidHit() {
		return false
	}
	*origin = r3.Add(*origin, r3.Scale(hit.Distance, direction))
	return true
}

// nearestHit walks the BVH for the closest triangle hit, optionally
// restricted to meshFilter (nil means no filter).
func (rt *RayTracer) nearestHit(origin, direction r3.Vec, maxDistance float64, meshFilter func(int32) bool) HitStruct {
	if rt.tree == nil || rt.tree.root < 0 {
		return HitStruct{Distance: -1, MeshID: FAIL}
	}
	invDir := r3.Vec{X: 1 / direction.X, Y: 1 / direction.Y, Z: 1 / direction.Z}

	best := HitStruct{Distance: -1, MeshID: FAIL}
	bestT := maxDistance
	var stack [64]int32
	sp := 0
	stack[sp] = rt.tree.root
	sp++
	for sp > 0 {
		sp--
		idx := stack[sp]
		if idx < 0 {
			continue
		}
		node := rt.tree.nodes[idx]
		if !slabHit(node.bounds, origin, invDir, nearRayOffset, bestT) {
			continue
		}
		if node.isLeaf() {
			for i := node.firstPrimitive; i < node.firstPrimitive+node.primCount; i++ {
				t := rt.tris[rt.tree.prims[i]]
				if meshFilter != nil && !meshFilter(t.meshID) {
					continue
				}
				if d, ok := intersectTriangle(origin, direction, t); ok && d >= nearRayOffset && d < bestT {
					bestT = d
					best = HitStruct{Distance: d, MeshID: t.meshID}
				}
			}
			continue
		}
		stack[sp] = node.leftChild
		sp++
		stack[sp] = node.rightChild
		sp++
	}
	if !best.DidHit() {
		return HitStruct{Distance: -1, MeshID: FAIL}
	}
	if rt.usePrecise {
		// The Möller-Trumbore distance above is already a bit-stable
		// double-precision recomputation from the ray and the winning
		// triangle's vertices, so precise mode needs no further work;
		// this branch exists to keep the precise/fast-path distinction
		// visible at the call site.
		return best
	}
	return best
}

func (rt *RayTracer) anyHit(origin, direction r3.Vec, maxDistance float64, meshFilter func(int32) bool) bool {
	if rt.tree == nil || rt.tree.root < 0 {
		return false
	}
	invDir := r3.Vec{X: 1 / direction.X, Y: 1 / direction.Y, Z: 1 / direction.Z}
	var stack [64]int32
	sp := 0
	stack[sp] = rt.tree.root
	sp++
	for sp > 0 {
		sp--
		idx := stack[sp]
		if idx < 0 {
			continue
		}
		node := rt.tree.nodes[idx]
		if !slabHit(node.bounds, origin, invDir, nearRayOffset, maxDistance) {
			continue
		}
		if node.isLeaf() {
			for i := node.firstPrimitive; i < node.firstPrimitive+node.primCount; i++ {
				t := rt.tris[rt.tree.prims[i]]
				if meshFilter != nil && !meshFilter(t.meshID) {
					continue
				}
				if d, ok := intersectTriangle(origin, direction, t); ok && d >= nearRayOffset && d <= maxDistance {
					return true
				}
			}
			continue
		}
		stack[sp] = node.leftChild
		sp++
		stack[sp] = node.rightChild
		sp++
	}
	return false
}

// intersectTriangle is the Möller-Trumbore ray/triangle test.
func intersectTriangle(origin, dir r3.Vec, t tri) (float64, bool) {
	e1 := r3.Sub(t.v1, t.v0)
	e2 := r3.Sub(t.v2, t.v0)
	h := r3.Cross(dir, e2)
	a := r3.Dot(e1, h)
	if math.Abs(a) < mollerEps {
		return 0, false
	}
	f := 1 / a
	s := r3.Sub(origin, t.v0)
	u := f * r3.Dot(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := f * r3.Dot(dir, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	return f * r3.Dot(e2, q), true
}
