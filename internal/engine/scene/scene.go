// Package scene composes the per-frame render requests handed to the renderer.
package scene

import (
	gomath "math"

	"github.com/Faultbox/walkabout/internal/sim"
	"github.com/Faultbox/walkabout/pkg/formats"
	"github.com/Faultbox/walkabout/pkg/math"
)

// Fixed projection parameters.
const (
	fovY = 0.785398 // 45 degrees
	near = 0.1
	far  = 1000.0
)

// RenderRequest bundles everything the renderer needs to draw the world for
// one frame: geometry, texture, and the camera, projection, and placement
// matrices.
type RenderRequest struct {
	Mesh    formats.Mesh
	Texture uint32
	View    math.Mat4
	Proj    math.Mat4
	Model   math.Mat4
}

// Composer turns the loaded mesh, the texture handle, and the walker's pose
// into render requests.
type Composer struct {
	aspect float32
}

// NewComposer creates a composer for the given viewport size.
func NewComposer(width, height int) *Composer {
	c := &Composer{}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio after a window resize.
func (c *Composer) SetViewport(width, height int) {
	if height <= 0 {
		height = 1
	}
	c.aspect = float32(width) / float32(height)
}

// Compose returns the frame's render requests: one when a texture is
// available, none while assets are still loading. An empty mesh is fine to
// draw; a missing texture is not, so it degrades to drawing nothing.
func (c *Composer) Compose(mesh formats.Mesh, texture uint32, textureReady bool, pose sim.Pose) []RenderRequest {
	if !textureReady {
		return nil
	}

	return []RenderRequest{{
		Mesh:    mesh,
		Texture: texture,
		View:    ViewMatrix(pose),
		Proj:    math.Perspective(fovY, c.aspect, near, far),
		Model:   math.Identity(),
	}}
}

// ViewMatrix builds the camera matrix for a pose: looking from the position
// toward the position plus the facing direction, with the facing pitched by
// the head tilt around the walker's right axis.
func ViewMatrix(pose sim.Pose) math.Mat4 {
	right := pose.Facing.Cross(math.Up).Normalize()
	tiltRad := pose.Tilt * gomath.Pi / 180
	look := math.RotateAxis(right, tiltRad).TransformVec3(pose.Facing)
	return math.LookAt(pose.Position, pose.Position.Add(look), math.Up)
}
