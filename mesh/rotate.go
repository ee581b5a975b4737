package mesh

import (
	"github.com/cadop/dhart-sub001/dherr"
	"github.com/cadop/dhart-sub001/spatial/r3"
)

// Rotate applies, in place, the rotation matrix built from (rx, ry, rz)
// Euler angles in degrees as the intrinsic rollZ·yawY·pitchX composition.
// It fails with dherr.ErrNumeric, leaving the vertices unchanged, if any
// resulting vertex component is NaN or infinite.
func (m *Mesh) Rotate(rx, ry, rz float64) error {
	return m.applyRotation(r3.EulerZYX(rx, ry, rz))
}

// ConvertOBJToZUp applies the fixed +90° rotation about X that converts
// OBJ-standard Y-up geometry to the Z-up basis the accessibility crawl
// assumes.
func (m *Mesh) ConvertOBJToZUp() error {
	return m.applyRotation(r3.ObjToZUp)
}

// ConvertZUpToOBJ is the inverse of ConvertOBJToZUp.
func (m *Mesh) ConvertZUpToOBJ() error {
	return m.applyRotation(r3.ZUpToObj)
}

func (m *Mesh) applyRotation(rot r3.Mat3) error {
	rotated := make([]r3.Vec, len(m.vertices))
	for i, v := range m.vertices {
		rv := rot.MulVec(v)
		if !r3.IsFinite(rv) {
			return dherr.ErrNumeric
		}
		rotated[i] = rv
	}
	m.vertices = rotated
	return nil
}
