// Copyright ©2019 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package r3

import (
	"math"
	"testing"
)

const tol = 1e-12

func approxEqual(a, b Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestAddSubScale(t *testing.T) {
	a := Vec{1, 2, 3}
	b := Vec{4, -1, 2}
	if got, want := Add(a, b), (Vec{5, 1, 5}); got != want {
		t.Errorf("Add(%v, %v) = %v, want %v", a, b, got, want)
	}
	if got, want := Sub(a, b), (Vec{-3, 3, 1}); got != want {
		t.Errorf("Sub(%v, %v) = %v, want %v", a, b, got, want)
	}
	if got, want := Scale(2, a), (Vec{2, 4, 6}); got != want {
		t.Errorf("Scale(2, %v) = %v, want %v", a, got, want)
	}
}

func TestCrossDot(t *testing.T) {
	x := Vec{1, 0, 0}
	y := Vec{0, 1, 0}
	if got, want := Cross(x, y), (Vec{0, 0, 1}); got != want {
		t.Errorf("Cross(x, y) = %v, want %v", got, want)
	}
	if got, want := Dot(x, y), 0.0; got != want {
		t.Errorf("Dot(x, y) = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize(Vec{3, 4, 0})
	if math.Abs(Norm(v)-1) > tol {
		t.Errorf("Norm(Normalize(v)) = %v, want 1", Norm(v))
	}
	if z := Normalize(Vec{}); z != (Vec{}) {
		t.Errorf("Normalize(zero vector) = %v, want zero vector", z)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(Vec{1, 2, 3}) {
		t.Error("IsFinite(finite vector) = false, want true")
	}
	if IsFinite(Vec{math.NaN(), 0, 0}) {
		t.Error("IsFinite(NaN vector) = true, want false")
	}
	if IsFinite(Vec{math.Inf(1), 0, 0}) {
		t.Error("IsFinite(Inf vector) = true, want false")
	}
}
