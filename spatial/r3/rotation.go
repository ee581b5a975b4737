// Copyright ©2019 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package r3

import "math"

// Mat3 is a 3x3 matrix stored in row-major order. It backs the small
// rotation computations used by Mesh.Rotate; it is not a general-purpose
// linear-algebra type.
type Mat3 [9]float64

// MulVec returns m applied to v.
func (m Mat3) MulVec(v Vec) Vec {
	return Vec{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Mul returns the matrix product a*b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			m[row*3+col] = sum
		}
	}
	return m
}

// rotationX returns the rotation matrix for a right-handed rotation of
// theta radians about the X axis.
func rotationX(theta float64) Mat3 {
	s, c := math.Sincos(theta)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// rotationY returns the rotation matrix for a right-handed rotation of
// theta radians about the Y axis.
func rotationY(theta float64) Mat3 {
	s, c := math.Sincos(theta)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// rotationZ returns the rotation matrix for a right-handed rotation of
// theta radians about the Z axis.
func rotationZ(theta float64) Mat3 {
	s, c := math.Sincos(theta)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// EulerZYX builds the intrinsic Z·Y·X rotation matrix (roll about Z, then
// yaw about Y, then pitch about X, composed as rollZ·yawY·pitchX) from
// angles given in degrees, matching the convention a mesh's (rx, ry, rz)
// Euler rotation is specified in.
func EulerZYX(rxDeg, ryDeg, rzDeg float64) Mat3 {
	rx := rxDeg * math.Pi / 180
	ry := ryDeg * math.Pi / 180
	rz := rzDeg * math.Pi / 180
	return rotationZ(rz).Mul(rotationY(ry)).Mul(rotationX(rx))
}

// ObjToZUp is the fixed +90° rotation about X that converts OBJ-standard
// Y-up geometry to the Z-up basis the accessibility crawl assumes.
var ObjToZUp = rotationX(math.Pi / 2)

// ZUpToObj is the inverse of ObjToZUp.
var ZUpToObj = rotationX(-math.Pi / 2)
