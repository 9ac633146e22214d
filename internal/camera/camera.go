// Package camera owns the two viewport projections (perspective 3D and orthographic plan),
// their fit-to-bounds framing, damped orbit controls, and the Rig that switches between them
// without losing either camera's framing.
package camera

import (
	"drillview/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// State is a snapshot sufficient to restore a camera's framing.
type State struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Zoom     float32
}

// Camera is what picking and drawing need from either projection.
type Camera interface {
	// ViewMatrix returns the world-to-camera transform.
	ViewMatrix() mgl32.Mat4
	// ProjectionMatrix returns the camera-to-clip transform.
	ProjectionMatrix() mgl32.Mat4
	// Ray returns the world-space pick ray through a point in normalized device coordinates.
	Ray(ndc mgl32.Vec2) geom.Ray
	// Eye returns the camera position.
	Eye() mgl32.Vec3
	// Forward returns the unit view direction.
	Forward() mgl32.Vec3
	Snapshot() State
	Restore(State)
}

var (
	worldUp = mgl32.Vec3{0, 1, 0}
	north   = mgl32.Vec3{0, 0, 1}
)

// Perspective is the free-orbiting 3D camera. FovY is the vertical field of view in degrees.
type Perspective struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32
	Aspect   float32
	Near     float32
	Far      float32
}

// NewPerspective returns a perspective camera at (10,10,10) looking at the origin, fovy 45°.
func NewPerspective(aspect float32) *Perspective {
	if aspect <= 0 {
		aspect = 1
	}
	return &Perspective{
		Position: mgl32.Vec3{10, 10, 10},
		Target:   mgl32.Vec3{},
		Up:       worldUp,
		FovY:     45,
		Aspect:   aspect,
		Near:     0.1,
		Far:      10000,
	}
}

func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// Ray casts from the eye through the unprojected point.
func (c *Perspective) Ray(ndc mgl32.Vec2) geom.Ray {
	p := unproject(c, ndc, 0.5)
	return geom.NewRay(c.Position, p.Sub(c.Position))
}

func (c *Perspective) Eye() mgl32.Vec3 { return c.Position }

func (c *Perspective) Forward() mgl32.Vec3 { return forward(c.Position, c.Target) }

// Snapshot records position and target. Perspective zoom is always 1.
func (c *Perspective) Snapshot() State {
	return State{Position: c.Position, Target: c.Target, Zoom: 1}
}

func (c *Perspective) Restore(s State) {
	c.Position = s.Position
	c.Target = s.Target
}

// Orthographic is the locked overhead plan camera. The visible half-height in world units is
// HalfHeight/Zoom; the half-width follows from Aspect.
type Orthographic struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	HalfHeight float32
	Aspect     float32
	Near       float32
	Far        float32
	Zoom       float32
}

// NewOrthographic returns a plan camera 100 units above the origin looking down, north up.
func NewOrthographic(aspect float32) *Orthographic {
	if aspect <= 0 {
		aspect = 1
	}
	return &Orthographic{
		Position:   mgl32.Vec3{0, 100, 0},
		Target:     mgl32.Vec3{},
		Up:         north,
		HalfHeight: 50,
		Aspect:     aspect,
		Near:       0.1,
		Far:        1000,
		Zoom:       1,
	}
}

// Frustum returns the left, right, bottom and top planes with zoom applied.
func (c *Orthographic) Frustum() (left, right, bottom, top float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	hh := c.HalfHeight / zoom
	hw := hh * c.Aspect
	return -hw, hw, -hh, hh
}

func (c *Orthographic) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Orthographic) ProjectionMatrix() mgl32.Mat4 {
	l, r, b, t := c.Frustum()
	return mgl32.Ortho(l, r, b, t, c.Near, c.Far)
}

// Ray starts on the near plane under the pointer and runs along the view direction.
func (c *Orthographic) Ray(ndc mgl32.Vec2) geom.Ray {
	return geom.NewRay(unproject(c, ndc, -1), c.Forward())
}

func (c *Orthographic) Eye() mgl32.Vec3 { return c.Position }

func (c *Orthographic) Forward() mgl32.Vec3 { return forward(c.Position, c.Target) }

func (c *Orthographic) Snapshot() State {
	return State{Position: c.Position, Target: c.Target, Zoom: c.Zoom}
}

// Restore applies a snapshot. A missing zoom keeps the current one.
func (c *Orthographic) Restore(s State) {
	c.Position = s.Position
	c.Target = s.Target
	if s.Zoom > 0 {
		c.Zoom = s.Zoom
	}
}

// Project maps a world point into normalized device coordinates (z in [-1, 1] inside the frustum).
func Project(c Camera, p mgl32.Vec3) mgl32.Vec3 {
	clip := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip.W() == 0 {
		return clip.Vec3()
	}
	return clip.Vec3().Mul(1 / clip.W())
}

func unproject(c Camera, ndc mgl32.Vec2, z float32) mgl32.Vec3 {
	inv := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Inv()
	v := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), z, 1})
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

func forward(position, target mgl32.Vec3) mgl32.Vec3 {
	d := target.Sub(position)
	if d.Len() < 1e-9 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// basis returns the camera's right and up unit vectors.
func basis(position, target, up mgl32.Vec3) (right, camUp mgl32.Vec3) {
	f := forward(position, target)
	right = f.Cross(up)
	if right.Len() < 1e-9 {
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	return right, right.Cross(f)
}
