// Package graphgen crawls a mesh surface with a RayTracer to build an
// accessibility Graph: starting from a seed point, it generates candidate
// neighbors on a lattice, validates each by ground height and occlusion,
// classifies the traversal step type, and emits edges.
package graphgen

import "github.com/cadop/dhart-sub001/spatial/r3"

// GoalFlag tags what kind of geometry a downward probe ray is looking for.
type GoalFlag int

const (
	Floors GoalFlag = iota
	Obstacles
	Both
)

// FilterMode selects how obstacle/walkable mesh-id sets are applied to a
// ray hit to decide whether it counts for a given GoalFlag.
type FilterMode int

const (
	AllIntersections FilterMode = iota
	ObstaclesOnly
	ObstaclesAndFloors
)

// Precision bundles the rounding and ray-bias precisions the crawl uses.
type Precision struct {
	NodeZ        float64
	NodeSpacing  float64
	GroundOffset float64
}

// Params configures a single crawl.
type Params struct {
	StartPoint        r3.Vec
	Spacing           r3.Vec
	MaxNodes          int32 // < 0 means unlimited
	UpStep, DownStep  float64
	UpSlope, DownSlope float64 // degrees
	MaxStepConnection int32
	MinConnections    int32
	Precision         Precision
	CoreCount         int32 // -1 = all cores, 0/1 = serial
}
