// Package raytracer builds a BVH over one or more meshes and answers
// nearest-hit and occlusion ray queries, with hit distances computed by a
// double-precision Möller-Trumbore test.
//
// Grounded on the array-of-nodes BVH layout (BoundsMin/BoundsMax,
// LeftChild/RightChild, FirstPrimitive/PrimitiveCount, median-split build
// by recursively sorting primitive indices along an axis) found in the
// cubetopia-voxel-game raytracing renderer, generalized from per-chunk AABBs
// to per-triangle AABBs and from round-robin axis selection to
// largest-extent axis selection.
package raytracer

import (
	"math"
	"sort"

	"github.com/cadop/dhart-sub001/spatial/r3"
)

// tri is one backend triangle: its three vertices plus the owning mesh id.
type tri struct {
	v0, v1, v2 r3.Vec
	meshID     int32
}

func (t tri) bounds() r3.Box {
	return r3.NewBox(
		minOf3(t.v0.X, t.v1.X, t.v2.X), minOf3(t.v0.Y, t.v1.Y, t.v2.Y), minOf3(t.v0.Z, t.v1.Z, t.v2.Z),
		maxOf3(t.v0.X, t.v1.X, t.v2.X), maxOf3(t.v0.Y, t.v1.Y, t.v2.Y), maxOf3(t.v0.Z, t.v1.Z, t.v2.Z),
	)
}

func minOf3(a, b, c float64) float64 { return minF(minF(a, b), c) }
func maxOf3(a, b, c float64) float64 { return maxF(maxF(a, b), c) }

// emptyBox returns a degenerate box suitable as the identity element for
// repeated Union accumulation.
func emptyBox() r3.Box {
	inf := math.Inf(1)
	return r3.Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

func (t tri) centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(r3.Add(t.v0, t.v1), t.v2))
}

// bvhNode is one node of the flattened BVH array. LeftChild/RightChild are
// -1 for leaves; leaves instead carry FirstPrimitive/PrimitiveCount.
type bvhNode struct {
	bounds                     r3.Box
	leftChild, rightChild      int32
	firstPrimitive, primCount  int32
}

func (n bvhNode) isLeaf() bool { return n.leftChild < 0 && n.rightChild < 0 }

// bvh is the flattened bounding volume hierarchy over a triangle set.
type bvh struct {
	nodes []bvhNode
	root  int32
	// prims maps leaf-local primitive slots back into the triangle slice.
	prims []int32
}

const leafThreshold = 4

func buildBVH(tris []tri) *bvh {
	if len(tris) == 0 {
		return &bvh{root: -1}
	}
	b := &bvh{
		nodes: make([]bvhNode, 0, 2*len(tris)),
		prims: make([]int32, len(tris)),
	}
	for i := range b.prims {
		b.prims[i] = int32(i)
	}
	b.root = b.build(tris, 0, int32(len(tris)))
	return b
}

// build recursively partitions prims[lo:hi] and returns the index of the
// node covering that range.
func (b *bvh) build(tris []tri, lo, hi int32) int32 {
	bounds := emptyBox()
	for i := lo; i < hi; i++ {
		bounds = bounds.Union(tris[b.prims[i]].bounds())
	}

	if hi-lo <= leafThreshold {
		idx := int32(len(b.nodes))
		b.nodes = append(b.nodes, bvhNode{
			bounds:         bounds,
			leftChild:      -1,
			rightChild:     -1,
			firstPrimitive: lo,
			primCount:      hi - lo,
		})
		return idx
	}

	axis := longestAxis(bounds)
	slice := b.prims[lo:hi]
	sort.Slice(slice, func(i, j int) bool {
		return axisValue(tris[slice[i]].centroid(), axis) < axisValue(tris[slice[j]].centroid(), axis)
	})
	mid := lo + (hi-lo)/2

	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{bounds: bounds})
	left := b.build(tris, lo, mid)
	right := b.build(tris, mid, hi)
	b.nodes[idx].leftChild = left
	b.nodes[idx].rightChild = right
	return idx
}

func longestAxis(b r3.Box) int {
	size := b.Size()
	axis := 0
	longest := size.X
	if size.Y > longest {
		longest = size.Y
		axis = 1
	}
	if size.Z > longest {
		axis = 2
	}
	return axis
}

func axisValue(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// slabHit reports whether the ray (origin, invDir) intersects b within
// [tmin, tmax].
func slabHit(b r3.Box, origin, invDir r3.Vec, tmin, tmax float64) bool {
	t1 := (b.Min.X - origin.X) * invDir.X
	t2 := (b.Max.X - origin.X) * invDir.X
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tmin = maxF(tmin, t1)
	tmax = minF(tmax, t2)

	t1 = (b.Min.Y - origin.Y) * invDir.Y
	t2 = (b.Max.Y - origin.Y) * invDir.Y
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tmin = maxF(tmin, t1)
	tmax = minF(tmax, t2)

	t1 = (b.Min.Z - origin.Z) * invDir.Z
	t2 = (b.Max.Z - origin.Z) * invDir.Z
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tmin = maxF(tmin, t1)
	tmax = minF(tmax, t2)

	return tmax >= tmin && tmax >= 0
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
