package graph

import (
	"math"
	"sort"

	"github.com/cadop/dhart-sub001/dherr"
)

// coordKey is the exact-bit-pattern key used to assign dense ids to nodes
// added by coordinate (add_edge with raw Node arguments), mirroring
// mesh's triangle-soup vertex deduplication.
type coordKey struct{ x, y, z uint32 }

func keyOf(n Node) coordKey {
	return coordKey{math.Float32bits(n.X), math.Float32bits(n.Y), math.Float32bits(n.Z)}
}

// costLayer is one CSR cost overlay: an "uncompressed" adjacency map that
// is the single source of truth, plus a cached sorted CSR view built by
// compress. Adding an edge invalidates the cache; compress rebuilds it.
// This mirrors graph/simple's map-of-maps adjacency representation, with
// the CSR arrays added as a read-only zero-copy view for bulk consumers.
type costLayer struct {
	adj      map[int32]map[int32]float32
	outer    []int32
	inner    []int32
	data     []float32
	dirty    bool
	compiled bool
}

func newCostLayer() *costLayer {
	return &costLayer{adj: make(map[int32]map[int32]float32)}
}

func (l *costLayer) add(parent, child int32, score float32) {
	row, ok := l.adj[parent]
	if !ok {
		row = make(map[int32]float32)
		l.adj[parent] = row
	}
	row[child] = score
	l.dirty = true
}

// compress sorts and finalizes the CSR view over n dense node ids. It is
// idempotent: calling it again with nothing added since the last call
// leaves the CSR arrays unchanged.
func (l *costLayer) compress(n int) {
	if l.compiled && !l.dirty {
		return
	}
	outer := make([]int32, n+1)
	type colVal struct {
		col int32
		val float32
	}
	rows := make([][]colVal, n)
	nnz := 0
	for parent, children := range l.adj {
		row := make([]colVal, 0, len(children))
		for child, w := range children {
			row = append(row, colVal{child, w})
		}
		sort.Slice(row, func(i, j int) bool { return row[i].col < row[j].col })
		rows[parent] = row
		nnz += len(row)
	}
	inner := make([]int32, 0, nnz)
	data := make([]float32, 0, nnz)
	for i := 0; i < n; i++ {
		outer[i] = int32(len(inner))
		for _, cv := range rows[i] {
			inner = append(inner, cv.col)
			data = append(data, cv.val)
		}
	}
	outer[n] = int32(len(inner))
	l.outer, l.inner, l.data = outer, inner, data
	l.compiled = true
	l.dirty = false
}

func (l *costLayer) edgesOf(parent int32) []IntEdge {
	if l.compiled && !l.dirty {
		start, end := l.outer[parent], l.outer[parent+1]
		out := make([]IntEdge, end-start)
		for i := start; i < end; i++ {
			out[i-start] = IntEdge{ChildID: l.inner[i], Weight: l.data[i]}
		}
		return out
	}
	row := l.adj[parent]
	out := make([]IntEdge, 0, len(row))
	for c, w := range row {
		out = append(out, IntEdge{ChildID: c, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChildID < out[j].ChildID })
	return out
}

// AggregateKind selects the per-node reduction kind for Graph.Aggregate.
type AggregateKind int

const (
	Count AggregateKind = iota
	Sum
	Average
	Max
	Min
)

// Graph is a sparse directed multi-cost graph: a dense node set, a
// primary CSR cost layer, and zero or more named alternate CSR
// cost-layer overlays whose sparsity pattern is a subset of the primary's.
type Graph struct {
	nodes    []Node
	coordIdx map[coordKey]int32
	primary  *costLayer
	alt      map[string]*costLayer
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		coordIdx: make(map[coordKey]int32),
		primary:  newCostLayer(),
		alt:      make(map[string]*costLayer),
	}
}

// idFor returns the dense id for n, assigning a fresh one (and recording
// n in the node set) if n has not been seen by coordinate before.
func (g *Graph) idFor(n Node) int32 {
	k := keyOf(n)
	if id, ok := g.coordIdx[k]; ok {
		return id
	}
	id := int32(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	g.coordIdx[k] = id
	return id
}

// AddEdge inserts or updates the primary-layer edge parent->child with the
// given score, assigning dense ids to either endpoint if new. If costName
// is non-empty, the edge is added to that named alternate layer instead
// (the caller is responsible for having compressed the primary first).
func (g *Graph) AddEdge(parent, child Node, score float32, costName string) {
	pid := g.idFor(parent)
	cid := g.idFor(child)
	g.AddEdgeByID(pid, cid, score, costName)
}

// AddEdgeByID is the id-keyed form of AddEdge. Either id may name a node
// not yet present; the node set grows to cover it, with placeholder Node
// entries for ids that were never given coordinates.
func (g *Graph) AddEdgeByID(parentID, childID int32, score float32, costName string) {
	g.ensureNode(parentID)
	g.ensureNode(childID)
	layer := g.primary
	if costName != "" {
		layer = g.layer(costName)
	}
	layer.add(parentID, childID, score)
}

// ensureNode grows the dense node set so that id is a valid index.
func (g *Graph) ensureNode(id int32) {
	for int32(len(g.nodes)) <= id {
		idx := int32(len(g.nodes))
		g.nodes = append(g.nodes, Node{ID: idx})
	}
}

func (g *Graph) layer(name string) *costLayer {
	l, ok := g.alt[name]
	if !ok {
		l = newCostLayer()
		g.alt[name] = l
	}
	return l
}

// AddEdges bulk-adds EdgeSets to the named cost layer (empty name means
// the primary layer). It requires the primary layer already be compressed,
// and every added edge's (parent, child) pair must already exist in the
// primary layer's pattern; otherwise dherr.ErrInvalidArgument is returned.
func (g *Graph) AddEdges(sets []EdgeSet, costName string) error {
	if !g.primary.compiled || g.primary.dirty {
		return dherr.ErrInvalidArgument
	}
	for _, es := range sets {
		for _, c := range es.Children {
			if !g.primaryHasEdge(es.ParentID, c.ChildID) {
				return dherr.ErrInvalidArgument
			}
		}
	}
	layer := g.primary
	if costName != "" {
		layer = g.layer(costName)
	}
	for _, es := range sets {
		for _, c := range es.Children {
			layer.add(es.ParentID, c.ChildID, c.Weight)
		}
	}
	return nil
}

func (g *Graph) primaryHasEdge(parent, child int32) bool {
	if !g.primary.compiled || g.primary.dirty {
		return false
	}
	start, end := g.primary.outer[parent], g.primary.outer[parent+1]
	for i := start; i < end; i++ {
		if g.primary.inner[i] == child {
			return true
		}
	}
	return false
}

// Compress sorts and finalizes the primary layer's CSR view. It is
// idempotent.
func (g *Graph) Compress() {
	g.primary.compress(len(g.nodes))
}

// Clear empties the graph entirely.
func (g *Graph) Clear() {
	g.nodes = nil
	g.coordIdx = make(map[coordKey]int32)
	g.primary = newCostLayer()
	g.alt = make(map[string]*costLayer)
}

// Nodes returns the graph's dense node set, indexed by id.
func (g *Graph) Nodes() []Node { return g.nodes }

// Size returns the number of nodes in the graph.
func (g *Graph) Size() int { return len(g.nodes) }

// MaxID returns the highest assigned node id, or -1 if the graph is empty.
func (g *Graph) MaxID() int32 { return int32(len(g.nodes)) - 1 }

// IDOf returns the dense id of a node with the same coordinates as n, or
// -1 if no such node has been added.
func (g *Graph) IDOf(n Node) int32 {
	if id, ok := g.coordIdx[keyOf(n)]; ok {
		return id
	}
	return -1
}

// NodeOf returns the node with the given id.
func (g *Graph) NodeOf(id int32) Node { return g.nodes[id] }

// HasKey reports whether a node with n's coordinates has been added.
func (g *Graph) HasKey(n Node) bool {
	_, ok := g.coordIdx[keyOf(n)]
	return ok
}

// Subgraph returns a node and its outgoing edges in the current primary
// cost layer.
func (g *Graph) Subgraph(id int32) (Node, []Edge) {
	ints := g.primary.edgesOf(id)
	out := make([]Edge, len(ints))
	for i, e := range ints {
		out[i] = Edge{Child: g.nodes[e.ChildID], Score: e.Weight, StepType: None}
	}
	return g.nodes[id], out
}

// Edges returns all outgoing edges for the named cost layer (or the
// primary layer if costName is empty), one EdgeSet per node with at least
// one outgoing edge. It fails with dherr.ErrNoCost if costName names an
// unregistered layer.
func (g *Graph) Edges(costName string) ([]EdgeSet, error) {
	layer := g.primary
	if costName != "" {
		var ok bool
		layer, ok = g.alt[costName]
		if !ok {
			return nil, dherr.ErrNoCost
		}
	}
	var out []EdgeSet
	for id := 0; id < len(g.nodes); id++ {
		children := layer.edgesOf(int32(id))
		if len(children) > 0 {
			out = append(out, EdgeSet{ParentID: int32(id), Children: children})
		}
	}
	return out, nil
}

// EdgeCost looks up the single-edge cost of parent->child in the named
// cost layer (or the primary layer if costName is empty). The second
// return reports whether the edge exists: a binary search over the row's
// sorted CSR column indices when compiled, a map lookup otherwise.
func (g *Graph) EdgeCost(parent, child int32, costName string) (float32, bool) {
	layer := g.primary
	if costName != "" {
		var ok bool
		layer, ok = g.alt[costName]
		if !ok {
			return 0, false
		}
	}
	if !layer.compiled || layer.dirty {
		w, ok := layer.adj[parent][child]
		return w, ok
	}
	start, end := layer.outer[parent], layer.outer[parent+1]
	lo, hi := int(start), int(end)
	for lo < hi {
		mid := (lo + hi) / 2
		if layer.inner[mid] < child {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < int(end) && layer.inner[lo] == child {
		return layer.data[lo], true
	}
	return 0, false
}

// OutEdges returns id's outgoing edges in the named cost layer (or the
// primary layer if costName is empty). It fails with dherr.ErrNoCost if
// costName names an unregistered layer.
func (g *Graph) OutEdges(id int32, costName string) ([]IntEdge, error) {
	layer := g.primary
	if costName != "" {
		var ok bool
		layer, ok = g.alt[costName]
		if !ok {
			return nil, dherr.ErrNoCost
		}
	}
	return layer.edgesOf(id), nil
}

// CSRPointers is the read-only zero-copy view of the primary layer's CSR
// storage. The primary layer must already be compressed.
type CSRPointers struct {
	NNZ   int
	Rows  int
	Cols  int
	Data  []float32
	Inner []int32
	Outer []int32
}

// CSRPointers returns the current primary-layer CSR view.
func (g *Graph) CSRPointers() CSRPointers {
	return CSRPointers{
		NNZ:   len(g.primary.data),
		Rows:  len(g.nodes),
		Cols:  len(g.nodes),
		Data:  g.primary.data,
		Inner: g.primary.inner,
		Outer: g.primary.outer,
	}
}

// Aggregate computes a per-node reduction of kind over outgoing edge
// costs in the primary layer (and, if directed is false, also incoming
// edge costs).
func (g *Graph) Aggregate(kind AggregateKind, directed bool) []float32 {
	n := len(g.nodes)
	out := make([]float32, n)
	count := make([]int, n)
	switch kind {
	case Max:
		for i := range out {
			out[i] = float32(math.Inf(-1))
		}
	case Min:
		for i := range out {
			out[i] = float32(math.Inf(1))
		}
	}
	apply := func(id int32, w float32) {
		count[id]++
		switch kind {
		case Sum, Average:
			out[id] += w
		case Max:
			if w > out[id] {
				out[id] = w
			}
		case Min:
			if w < out[id] {
				out[id] = w
			}
		}
	}
	for id := 0; id < n; id++ {
		for _, e := range g.primary.edgesOf(int32(id)) {
			apply(int32(id), e.Weight)
			if !directed {
				apply(e.ChildID, e.Weight)
			}
		}
	}
	for i := 0; i < n; i++ {
		switch kind {
		case Count:
			out[i] = float32(count[i])
		case Average:
			if count[i] > 0 {
				out[i] /= float32(count[i])
			}
		case Max:
			if count[i] == 0 {
				out[i] = 0
			}
		case Min:
			if count[i] == 0 {
				out[i] = 0
			}
		}
	}
	return out
}
