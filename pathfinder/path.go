package pathfinder

// Path is an owned sequence of node ids from some start to some end, with
// the per-edge cost under whichever layer it was computed. An unreachable
// query yields an empty Path; a query with start==end yields a one-node
// Path with no costs.
type Path struct {
	Nodes []int32
	Costs []float32
}

// Length returns the number of nodes in the path.
func (p Path) Length() int { return len(p.Nodes) }

// Empty reports whether the path carries no nodes.
func (p Path) Empty() bool { return len(p.Nodes) == 0 }

// TotalCost sums the path's per-edge costs.
func (p Path) TotalCost() float32 {
	var total float32
	for _, c := range p.Costs {
		total += c
	}
	return total
}
