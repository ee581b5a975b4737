// Package graph implements a sparse directed multi-cost graph: a dense-id
// node set, a primary CSR cost layer, and zero or more named alternate CSR
// cost-layer overlays. It is grounded on
// gonum's graph/simple adjacency-map-before-compress pattern: edges
// accumulate into a map and are sorted into compact row slices on
// Compress, rather than maintaining sorted order incrementally.
package graph

import "math"

// NodeType classifies what kind of walkable position a Node represents.
// GraphNode is the only populated kind today; the enum exists so future node
// kinds can be added without breaking the wire format.
type NodeType uint8

const (
	// GraphNode marks a node produced by the accessibility-graph crawl.
	GraphNode NodeType = iota
)

func (t NodeType) String() string {
	switch t {
	case GraphNode:
		return "Graph"
	default:
		return "Unknown"
	}
}

// nodeEqualityTol is the fixed rounding precision: two nodes are equal
// when their Euclidean distance is strictly less than this value.
const nodeEqualityTol = 0.0001

// Node is a walkable position: a 3D coordinate, a dense identity, and a
// type tag. Two nodes are "equal" (see Equal) when their Euclidean
// distance is below the fixed node-equality tolerance; node identity for
// graph/map-keying purposes is always by ID, never by Equal.
type Node struct {
	X, Y, Z float32
	ID      int32
	Type    NodeType
}

// Equal reports whether n and o represent the same physical position,
// within the fixed 0.0001 node-equality tolerance. This is a coordinate
// predicate, independent of ID.
func (n Node) Equal(o Node) bool {
	dx := float64(n.X - o.X)
	dy := float64(n.Y - o.Y)
	dz := float64(n.Z - o.Z)
	return math.Sqrt(dx*dx+dy*dy+dz*dz) < nodeEqualityTol
}

// Less orders nodes by ID, for sorting.
func (n Node) Less(o Node) bool { return n.ID < o.ID }
