// Package pathfinder runs Dijkstra over a graph.Graph's CSR cost layers:
// single-pair, multi-pair, all-pairs, and dense distance/predecessor
// matrix queries. The search itself is adapted from gonum's graph/path
// Dijkstra (heap + priorityQueue + distanceNode), generalized to read
// directly from the CSR adjacency instead of through a graph.Graph
// interface, since this module's Graph is not interface-shaped the way
// gonum's is.
package pathfinder

import (
	"golang.org/x/sync/errgroup"

	"github.com/cadop/dhart-sub001/dherr"
	"github.com/cadop/dhart-sub001/graph"
)

// Pathfinder answers shortest-path queries over a fixed Graph snapshot.
type Pathfinder struct {
	g *graph.Graph
}

// New returns a Pathfinder over g. g should already be compressed.
func New(g *graph.Graph) *Pathfinder {
	return &Pathfinder{g: g}
}

func (pf *Pathfinder) neighbors(costName string) (func(int32) []edgeView, error) {
	// Validate the cost layer up front so callers get NoCost immediately
	// rather than after paying for a full Dijkstra run.
	if pf.g.Size() > 0 {
		if _, err := pf.g.OutEdges(0, costName); err != nil {
			return nil, err
		}
	}
	return func(id int32) []edgeView {
		edges, _ := pf.g.OutEdges(id, costName)
		out := make([]edgeView, len(edges))
		for i, e := range edges {
			out[i] = edgeView{id: e.ChildID, weight: e.Weight}
		}
		return out
	}, nil
}

func (pf *Pathfinder) checkID(id int32) error {
	if id < 0 || int(id) >= pf.g.Size() {
		return dherr.ErrOutOfRange
	}
	return nil
}

func (pf *Pathfinder) dijkstra(start int32, costName string) (*searchResult, error) {
	if err := pf.checkID(start); err != nil {
		return nil, err
	}
	neighbors, err := pf.neighbors(costName)
	if err != nil {
		return nil, err
	}
	return dijkstraFrom(start, pf.g.Size(), neighbors), nil
}

// reconstruct walks the predecessor chain from end back to the search's
// start, reading each edge's cost as the difference of successive
// distance-array entries so the result is correct under any cost layer.
func reconstruct(res *searchResult, start, end int32) Path {
	if end == start {
		return Path{Nodes: []int32{start}}
	}
	if res.predecessor[end] == end {
		return Path{}
	}
	n := len(res.distance)
	var nodes []int32
	cur := end
	for steps := 0; ; steps++ {
		if steps > n {
			panic("pathfinder: predecessor chain exceeds graph size, corrupted search structure")
		}
		nodes = append(nodes, cur)
		if cur == start {
			break
		}
		cur = res.predecessor[cur]
	}
	// nodes currently runs end -> start; reverse it.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	costs := make([]float32, len(nodes)-1)
	for i := 0; i < len(costs); i++ {
		costs[i] = res.distance[nodes[i+1]] - res.distance[nodes[i]]
	}
	return Path{Nodes: nodes, Costs: costs}
}

// FindPath runs Dijkstra from start and reconstructs the path to end.
// Returns an empty Path if end is unreachable from start.
func (pf *Pathfinder) FindPath(start, end int32, costName string) (Path, error) {
	if err := pf.checkID(end); err != nil {
		return Path{}, err
	}
	res, err := pf.dijkstra(start, costName)
	if err != nil {
		return Path{}, err
	}
	return reconstruct(res, start, end), nil
}

// FindPaths runs Dijkstra once per distinct start and reconstructs every
// (starts[i], ends[i]) pair. len(starts) must equal len(ends).
func (pf *Pathfinder) FindPaths(starts, ends []int32, costName string) ([]Path, error) {
	if len(starts) != len(ends) {
		return nil, dherr.ErrInvalidArgument
	}
	cache := make(map[int32]*searchResult)
	out := make([]Path, len(starts))
	for i := range starts {
		if err := pf.checkID(ends[i]); err != nil {
			return nil, err
		}
		res, ok := cache[starts[i]]
		if !ok {
			var err error
			res, err = pf.dijkstra(starts[i], costName)
			if err != nil {
				return nil, err
			}
			cache[starts[i]] = res
		}
		out[i] = reconstruct(res, starts[i], ends[i])
	}
	return out, nil
}

// AllToAllPaths is FindPaths over every ordered pair (i, j), i, j in
// [0, N), in row-major order.
func (pf *Pathfinder) AllToAllPaths(costName string) ([]Path, error) {
	n := pf.g.Size()
	starts := make([]int32, 0, n*n)
	ends := make([]int32, 0, n*n)
	for i := int32(0); i < int32(n); i++ {
		for j := int32(0); j < int32(n); j++ {
			starts = append(starts, i)
			ends = append(ends, j)
		}
	}
	return pf.FindPaths(starts, ends, costName)
}

// DistanceAndPredecessorMatrix runs one Dijkstra per row, in parallel, and
// flattens the results row-major. Unreachable cells are mapped to -1/-1.
func (pf *Pathfinder) DistanceAndPredecessorMatrix(costName string) ([]float32, []int32, error) {
	n := pf.g.Size()
	if _, err := pf.neighbors(costName); err != nil {
		return nil, nil, err
	}
	dist := make([]float32, n*n)
	pred := make([]int32, n*n)

	var eg errgroup.Group
	for row := 0; row < n; row++ {
		row := row
		eg.Go(func() error {
			res, err := pf.dijkstra(int32(row), costName)
			if err != nil {
				return err
			}
			base := row * n
			for j := 0; j < n; j++ {
				if res.predecessor[j] == int32(j) && j != row {
					dist[base+j] = -1
					pred[base+j] = -1
					continue
				}
				dist[base+j] = res.distance[j]
				pred[base+j] = res.predecessor[j]
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return dist, pred, nil
}

// AllPredToPath emits every (i, j) path concatenated into a flat node
// array, alongside a row-major lengths array (0 meaning unreachable or
// i == j).
func (pf *Pathfinder) AllPredToPath(costName string) ([]int32, []int32, error) {
	n := pf.g.Size()
	lengths := make([]int32, n*n)
	var nodesFlat []int32

	cache := make(map[int32]*searchResult)
	for i := 0; i < n; i++ {
		res, err := pf.dijkstra(int32(i), costName)
		if err != nil {
			return nil, nil, err
		}
		cache[int32(i)] = res
		for j := 0; j < n; j++ {
			p := reconstruct(res, int32(i), int32(j))
			if i == j || p.Empty() {
				continue
			}
			nodesFlat = append(nodesFlat, p.Nodes...)
			lengths[i*n+j] = int32(len(p.Nodes))
		}
	}
	return nodesFlat, lengths, nil
}
