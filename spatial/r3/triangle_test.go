// Copyright ©2022 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package r3

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	tr := Triangle{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	if got, want := tr.Area(), 0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}

func TestTriangleNormal(t *testing.T) {
	tr := Triangle{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	n := tr.Normal()
	want := Vec{0, 0, 1}
	if !approxEqual(n, want, 1e-12) {
		t.Errorf("Normal() = %v, want %v", n, want)
	}
}

func TestTriangleCentroid(t *testing.T) {
	tr := Triangle{{0, 0, 0}, {3, 0, 0}, {0, 3, 0}}
	want := Vec{1, 1, 0}
	if got := tr.Centroid(); !approxEqual(got, want, 1e-12) {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
}
