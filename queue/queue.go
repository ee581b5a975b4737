// Package queue implements UniqueQueue, a FIFO queue over graph.Node that
// remembers every node ever enqueued and refuses re-admission, driving the
// accessibility-graph crawl's node frontier.
package queue

import "github.com/cadop/dhart-sub001/graph"

// nodeKey is the coordinate-quantized key nodes are deduplicated by: two
// nodes are "the same" for seen-set purposes when their coordinates match
// once rounded to the node-equality tolerance bucket (node equality is
// defined by an L2 distance threshold; an exact-match grid bucket keyed
// by rounded coordinates applies that tolerance with a plain hash map).
type nodeKey struct{ x, y, z int64 }

const bucket = 1.0 / 0.0001 // inverse of the node-equality tolerance

func keyOf(n graph.Node) nodeKey {
	return nodeKey{
		x: int64(float64(n.X) * bucket),
		y: int64(float64(n.Y) * bucket),
		z: int64(float64(n.Z) * bucket),
	}
}

// UniqueQueue is a FIFO-ordered queue over graph.Node with a monotone
// "seen" set: once a node has been pushed, it can never be pushed again
// (outside of ForcePush), even after being popped.
//
// Adapted from gonum/graph/traverse's breadth-first nodeQueue+intSet
// pattern, generalized from an int64-id seen-set to a coordinate-bucket
// seen-set since UniqueQueue's uniqueness is defined by node geometry, not
// by a pre-assigned id.
type UniqueQueue struct {
	head int
	data []graph.Node
	seen map[nodeKey]struct{}
}

// New returns an empty UniqueQueue.
func New() *UniqueQueue {
	return &UniqueQueue{seen: make(map[nodeKey]struct{})}
}

// Push inserts n iff it has never been pushed before. It reports whether
// the insertion happened.
func (q *UniqueQueue) Push(n graph.Node) bool {
	k := keyOf(n)
	if _, ok := q.seen[k]; ok {
		return false
	}
	q.seen[k] = struct{}{}
	q.enqueue(n)
	return true
}

// ForcePush inserts n without the uniqueness check.
func (q *UniqueQueue) ForcePush(n graph.Node) {
	q.seen[keyOf(n)] = struct{}{}
	q.enqueue(n)
}

// Pop removes and returns the front element. The "seen" marker for that
// node is retained, so it can never be pushed again. Pop panics if the
// queue is empty; callers must check Empty first.
func (q *UniqueQueue) Pop() graph.Node {
	return q.dequeue()
}

// PopForget removes and returns the front element, clearing its "seen"
// marker so it may be pushed again later.
func (q *UniqueQueue) PopForget() graph.Node {
	n := q.dequeue()
	delete(q.seen, keyOf(n))
	return n
}

// PopMany removes and returns up to max elements from the front of the
// queue; each advances the seen marker exactly as Pop does.
func (q *UniqueQueue) PopMany(max int) []graph.Node {
	n := q.Size()
	if max < n {
		n = max
	}
	out := make([]graph.Node, n)
	for i := range out {
		out[i] = q.dequeue()
	}
	return out
}

// Size returns the number of elements currently queued.
func (q *UniqueQueue) Size() int { return len(q.data) - q.head }

// Empty reports whether the queue currently holds no elements.
func (q *UniqueQueue) Empty() bool { return q.Size() == 0 }

// Has reports whether n has ever been pushed (and not subsequently
// forgotten via PopForget).
func (q *UniqueQueue) Has(n graph.Node) bool {
	_, ok := q.seen[keyOf(n)]
	return ok
}

// ClearQueueOnly empties the pending queue but preserves the seen-set
// memory, so previously pushed nodes remain blocked from re-admission.
func (q *UniqueQueue) ClearQueueOnly() {
	q.head = 0
	q.data = q.data[:0]
}

func (q *UniqueQueue) enqueue(n graph.Node) {
	if len(q.data) == cap(q.data) && q.head > 0 {
		l := q.Size()
		copy(q.data, q.data[q.head:])
		q.head = 0
		q.data = append(q.data[:l], n)
	} else {
		q.data = append(q.data, n)
	}
}

func (q *UniqueQueue) dequeue() graph.Node {
	if q.Size() == 0 {
		panic("queue: empty queue")
	}
	n := q.data[q.head]
	q.head++
	if q.Size() == 0 {
		q.head = 0
		q.data = q.data[:0]
	}
	return n
}
