// Copyright ©2019 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package r3 provides 3D vector, triangle and axis-aligned bounding box
// arithmetic shared by the mesh, ray-tracing and view-analysis packages.
package r3

import "math"

// Vec is a 3D vector, the sole real-number position/direction type used
// throughout this module.
type Vec struct {
	X, Y, Z float64
}

// Add returns the vector sum of p and q.
func Add(p, q Vec) Vec {
	return Vec{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns the vector sum of p and -q.
func Sub(p, q Vec) Vec {
	return Vec{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns the vector p scaled by f.
func Scale(f float64, p Vec) Vec {
	return Vec{f * p.X, f * p.Y, f * p.Z}
}

// Dot returns the dot product p·q.
func Dot(p, q Vec) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p×q.
func Cross(p, q Vec) Vec {
	return Vec{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Norm2 returns the squared Euclidean length of p.
func Norm2(p Vec) float64 {
	return Dot(p, p)
}

// Norm returns the Euclidean length of p.
func Norm(p Vec) float64 {
	return math.Sqrt(Norm2(p))
}

// Normalize returns p scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(p Vec) Vec {
	n := Norm(p)
	if n == 0 {
		return p
	}
	return Scale(1/n, p)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Vec) float64 {
	return Norm(Sub(p, q))
}

// IsFinite reports whether every component of p is neither NaN nor ±Inf.
func IsFinite(p Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

func minElem(p, q Vec) Vec {
	return Vec{math.Min(p.X, q.X), math.Min(p.Y, q.Y), math.Min(p.Z, q.Z)}
}

func maxElem(p, q Vec) Vec {
	return Vec{math.Max(p.X, q.X), math.Max(p.Y, q.Y), math.Max(p.Z, q.Z)}
}
