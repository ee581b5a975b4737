package graph

import "testing"

func n(x, y, z float32) Node { return Node{X: x, Y: y, Z: z} }

func TestAddEdgeAssignsDenseIDs(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 1, "")
	g.AddEdge(n(0, 0, 0), n(0, 1, 0), 1, "")
	if g.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", g.Size())
	}
	if id := g.IDOf(n(0, 0, 0)); id != 0 {
		t.Errorf("IDOf(origin) = %d, want 0", id)
	}
}

func TestCompressCSRInvariants(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 1, "")
	g.AddEdge(n(0, 0, 0), n(0, 1, 0), 2, "")
	g.AddEdge(n(1, 0, 0), n(0, 1, 0), 3, "")
	g.Compress()

	csr := g.CSRPointers()
	if len(csr.Outer) != g.Size()+1 {
		t.Fatalf("len(Outer) = %d, want %d", len(csr.Outer), g.Size()+1)
	}
	for i := 1; i < len(csr.Outer); i++ {
		if csr.Outer[i] < csr.Outer[i-1] {
			t.Fatalf("Outer not non-decreasing at %d", i)
		}
	}
	if int(csr.Outer[len(csr.Outer)-1]) != csr.NNZ {
		t.Fatalf("Outer[n] = %d, want NNZ %d", csr.Outer[len(csr.Outer)-1], csr.NNZ)
	}
	for row := 0; row < g.Size(); row++ {
		seen := map[int32]bool{}
		start, end := csr.Outer[row], csr.Outer[row+1]
		prev := int32(-1)
		for i := start; i < end; i++ {
			col := csr.Inner[i]
			if col <= prev && i > start {
				t.Fatalf("row %d: columns not strictly increasing", row)
			}
			if seen[col] {
				t.Fatalf("row %d: duplicate column %d", row, col)
			}
			seen[col] = true
			prev = col
		}
	}
}

func TestCompressIdempotent(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 1, "")
	g.Compress()
	first := g.CSRPointers()
	g.Compress()
	second := g.CSRPointers()
	if len(first.Inner) != len(second.Inner) || len(first.Outer) != len(second.Outer) {
		t.Fatal("compress() not idempotent")
	}
}

func TestAddEdgesAltLayerRequiresSubsetOfPrimary(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 1, "")
	g.Compress()

	pid := g.IDOf(n(0, 0, 0))
	cid := g.IDOf(n(1, 0, 0))

	ok := []EdgeSet{{ParentID: pid, Children: []IntEdge{{ChildID: cid, Weight: 9}}}}
	if err := g.AddEdges(ok, "step_type"); err != nil {
		t.Fatalf("AddEdges subset: %v", err)
	}

	bad := []EdgeSet{{ParentID: pid, Children: []IntEdge{{ChildID: 99, Weight: 1}}}}
	if err := g.AddEdges(bad, "step_type"); err == nil {
		t.Fatal("AddEdges: expected error for edge not in primary pattern")
	}
}

func TestEdgesUnknownCostName(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 1, "")
	g.Compress()
	if _, err := g.Edges("nonexistent"); err == nil {
		t.Fatal("Edges: expected error for unknown cost layer")
	}
}

func TestEdgeCostLookup(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 5, "")
	g.Compress()
	pid := g.IDOf(n(0, 0, 0))
	cid := g.IDOf(n(1, 0, 0))
	w, ok := g.EdgeCost(pid, cid, "")
	if !ok || w != 5 {
		t.Fatalf("EdgeCost = %v, %v, want 5, true", w, ok)
	}
	if _, ok := g.EdgeCost(pid, 42, ""); ok {
		t.Fatal("EdgeCost: expected missing edge to report false")
	}
}

func TestAggregateCount(t *testing.T) {
	g := New()
	g.AddEdge(n(0, 0, 0), n(1, 0, 0), 1, "")
	g.AddEdge(n(0, 0, 0), n(0, 1, 0), 1, "")
	g.Compress()
	counts := g.Aggregate(Count, true)
	pid := g.IDOf(n(0, 0, 0))
	if counts[pid] != 2 {
		t.Errorf("Aggregate(Count)[origin] = %v, want 2", counts[pid])
	}
}
