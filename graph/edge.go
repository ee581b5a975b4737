package graph

// StepType classifies how a traversal between two adjacent nodes crosses
// the terrain.
type StepType int8

const (
	// NotConnected is used only during construction; it is never stored
	// in a finished graph.
	NotConnected StepType = iota
	// None means flat, or on a slope within the traversable limits.
	None
	// Up is a traversable upward step.
	Up
	// Down is a traversable downward step.
	Down
	// Over is a traversable step-over of roughly equal height.
	Over
)

func (s StepType) String() string {
	switch s {
	case NotConnected:
		return "NotConnected"
	case None:
		return "None"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Over:
		return "Over"
	default:
		return "Unknown"
	}
}

// Edge is one outgoing connection from an (implicit) parent node to child,
// carrying a primary-layer score and the step classification it was
// produced under.
type Edge struct {
	Child    Node
	Score    float32
	StepType StepType
}

// IntEdge is the lightweight bulk-cost-array form of an edge: just the
// child's dense id and a weight, used by EdgeSet and by CSR storage.
type IntEdge struct {
	ChildID int32
	Weight  float32
}

// EdgeSet is one node's out-edges for a single cost layer.
type EdgeSet struct {
	ParentID int32
	Children []IntEdge
}
