package renderer

import (
	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// Camera describes a right-handed perspective view. Aspect <= 0 means
// "use the swapchain aspect ratio".
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
	FovY     float32 // radians
	Near     float32
	Far      float32
	Aspect   float32
}

// DefaultCamera looks down -Z from five units out with a 45 degree
// vertical field of view.
func DefaultCamera() Camera {
	return Camera{
		Position: math.NewVec3(0, 0, 5),
		Target:   math.NewVec3(0, 0, 0),
		Up:       math.NewVec3(0, 1, 0),
		FovY:     math.Pi / 4.0,
		Near:     0.1,
		Far:      100.0,
	}
}

// SetCamera replaces the view and projection matrices from a camera
// description. Degenerate cameras (zero direction, up parallel to
// direction) are not rejected; the matrices simply come out degenerate.
func (r *Renderer) SetCamera(cam *Camera) error {
	if r == nil || cam == nil {
		return metadata.ErrInvalidArgument
	}
	aspect := cam.Aspect
	if aspect <= 0 {
		if r.height == 0 {
			aspect = 1
		} else {
			aspect = float32(r.width) / float32(r.height)
		}
	}
	r.view = math.NewMat4LookAt(cam.Position, cam.Target, cam.Up)
	r.projection = math.NewMat4Perspective(cam.FovY, aspect, cam.Near, cam.Far)
	return nil
}

// SetViewProjection overwrites both matrices directly. No validation;
// the last writer wins against SetCamera and vice versa.
func (r *Renderer) SetViewProjection(view, projection math.Mat4) {
	if r == nil {
		return
	}
	r.view = view
	r.projection = projection
}

// ViewProjection returns projection * view, the matrix the draw path
// pushes to shaders.
func (r *Renderer) ViewProjection() math.Mat4 {
	return r.projection.Mul(r.view)
}
