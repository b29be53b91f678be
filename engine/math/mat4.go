package math

import (
	"encoding/binary"

	"github.com/chewxy/math32"
)

// NewMat4Identity creates an identity matrix.
func NewMat4Identity() Mat4 {
	out := Mat4{}
	out.Data[0] = 1.0
	out.Data[5] = 1.0
	out.Data[10] = 1.0
	out.Data[15] = 1.0
	return out
}

// NewMat4Translation creates a translation matrix from the given position.
func NewMat4Translation(position Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[12] = position.X
	out.Data[13] = position.Y
	out.Data[14] = position.Z
	return out
}

// NewMat4Scale creates a scale matrix from the given scale factors.
func NewMat4Scale(scale Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[0] = scale.X
	out.Data[5] = scale.Y
	out.Data[10] = scale.Z
	return out
}

// NewMat4Orthographic creates an orthographic projection matrix, typically
// used for 2D or UI rendering.
func NewMat4Orthographic(left, right, bottom, top, nearClip, farClip float32) Mat4 {
	out := NewMat4Identity()

	lr := 1.0 / (left - right)
	bt := 1.0 / (bottom - top)
	nf := 1.0 / (nearClip - farClip)

	out.Data[0] = -2.0 * lr
	out.Data[5] = -2.0 * bt
	out.Data[10] = 2.0 * nf

	out.Data[12] = (left + right) * lr
	out.Data[13] = (top + bottom) * bt
	out.Data[14] = (farClip + nearClip) * nf
	return out
}

// NewMat4Perspective creates a right-handed perspective projection matrix.
// fovRadians is the vertical field of view. The depth terms follow the
// OpenGL convention: Data[10] = -(far+near)/(far-near), Data[11] = -1,
// Data[14] = -2*far*near/(far-near).
func NewMat4Perspective(fovRadians, aspectRatio, nearClip, farClip float32) Mat4 {
	halfTanFov := math32.Tan(fovRadians * 0.5)
	out := Mat4{}
	out.Data[0] = 1.0 / (aspectRatio * halfTanFov)
	out.Data[5] = 1.0 / halfTanFov
	out.Data[10] = -((farClip + nearClip) / (farClip - nearClip))
	out.Data[11] = -1.0
	out.Data[14] = -((2.0 * farClip * nearClip) / (farClip - nearClip))
	return out
}

// NewMat4LookAt creates a right-handed view matrix looking at target from
// position. The basis vectors are built with Gram-Schmidt; a degenerate
// forward or side vector (zero length) is left un-normalized rather than
// divided by zero.
func NewMat4LookAt(position, target, up Vec3) Mat4 {
	out := Mat4{}

	zAxis := target.Sub(position).Normalized()
	xAxis := up.Cross(zAxis).Normalized()
	yAxis := zAxis.Cross(xAxis)

	out.Data[0] = xAxis.X
	out.Data[1] = yAxis.X
	out.Data[2] = -zAxis.X
	out.Data[3] = 0
	out.Data[4] = xAxis.Y
	out.Data[5] = yAxis.Y
	out.Data[6] = -zAxis.Y
	out.Data[7] = 0
	out.Data[8] = xAxis.Z
	out.Data[9] = yAxis.Z
	out.Data[10] = -zAxis.Z
	out.Data[11] = 0
	out.Data[12] = -xAxis.Dot(position)
	out.Data[13] = -yAxis.Dot(position)
	out.Data[14] = zAxis.Dot(position)
	out.Data[15] = 1.0

	return out
}

// NewMat4RotationX creates a rotation matrix around the X axis.
func NewMat4RotationX(radians float32) Mat4 {
	out := NewMat4Identity()
	c := math32.Cos(radians)
	s := math32.Sin(radians)
	out.Data[5] = c
	out.Data[6] = s
	out.Data[9] = -s
	out.Data[10] = c
	return out
}

// NewMat4RotationY creates a rotation matrix around the Y axis.
func NewMat4RotationY(radians float32) Mat4 {
	out := NewMat4Identity()
	c := math32.Cos(radians)
	s := math32.Sin(radians)
	out.Data[0] = c
	out.Data[2] = -s
	out.Data[8] = s
	out.Data[10] = c
	return out
}

// NewMat4RotationZ creates a rotation matrix around the Z axis.
func NewMat4RotationZ(radians float32) Mat4 {
	out := NewMat4Identity()
	c := math32.Cos(radians)
	s := math32.Sin(radians)
	out.Data[0] = c
	out.Data[1] = s
	out.Data[4] = -s
	out.Data[5] = c
	return out
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	out := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.Data[k*4+row] * o.Data[col*4+k]
			}
			out.Data[col*4+row] = sum
		}
	}
	return out
}

// Transposed returns a transposed copy of the matrix (rows become columns).
func (m Mat4) Transposed() Mat4 {
	out := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out.Data[row*4+col] = m.Data[col*4+row]
		}
	}
	return out
}

// Translation returns the translation component of the matrix.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m.Data[12], Y: m.Data[13], Z: m.Data[14]}
}

// MulVec4 transforms v by m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.Data[0]*v.X + m.Data[4]*v.Y + m.Data[8]*v.Z + m.Data[12]*v.W,
		Y: m.Data[1]*v.X + m.Data[5]*v.Y + m.Data[9]*v.Z + m.Data[13]*v.W,
		Z: m.Data[2]*v.X + m.Data[6]*v.Y + m.Data[10]*v.Z + m.Data[14]*v.W,
		W: m.Data[3]*v.X + m.Data[7]*v.Y + m.Data[11]*v.Z + m.Data[15]*v.W,
	}
}

// Bytes returns the matrix as 64 bytes of little-endian float32 in
// column-major order, the layout GPU constant uploads expect.
func (m Mat4) Bytes() []byte {
	out := make([]byte, 64)
	for i, f := range m.Data {
		binary.LittleEndian.PutUint32(out[i*4:], math32.Float32bits(f))
	}
	return out
}
