package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Damping3D is the damping factor of the perspective controls.
	Damping3D = 0.08
	// DampingPlan is the damping factor of the plan controls, a little stiffer than 3D.
	DampingPlan = 0.12

	polarEpsilon  = 1e-4
	settleEpsilon = 1e-6
)

// Orbit is a damped orbit/pan/zoom controller for one camera. Input methods only accumulate
// deltas; Update applies a damped fraction of them each frame and decays the rest.
type Orbit struct {
	EnableRotate       bool
	EnablePan          bool
	EnableZoom         bool
	ScreenSpacePanning bool
	EnableDamping      bool
	DampingFactor      float32
	RotateSpeed        float32
	PanSpeed           float32
	ZoomSpeed          float32
	MinDistance        float32
	MaxDistance        float32
	MinZoom            float32
	MaxZoom            float32

	cam      Camera
	viewW    float32
	viewH    float32
	theta    float32
	phi      float32
	pan      mgl32.Vec3
	scale    float32
	disposed bool
}

// NewOrbit returns controls for cam with damping enabled at the given factor.
func NewOrbit(cam Camera, damping float32) *Orbit {
	if damping <= 0 || damping > 1 {
		damping = Damping3D
	}
	return &Orbit{
		EnableRotate:  true,
		EnablePan:     true,
		EnableZoom:    true,
		EnableDamping: true,
		DampingFactor: damping,
		RotateSpeed:   1,
		PanSpeed:      1,
		ZoomSpeed:     1,
		MinDistance:   0.5,
		MaxDistance:   1e6,
		MinZoom:       0.01,
		MaxZoom:       1000,
		cam:           cam,
		viewW:         1,
		viewH:         1,
		scale:         1,
	}
}

// SetViewport sets the pixel size used to convert pointer deltas into angles and distances.
func (o *Orbit) SetViewport(w, h float32) {
	if w > 0 && h > 0 {
		o.viewW, o.viewH = w, h
	}
}

// Rotate accumulates an orbit by a pointer delta in pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	if o.disposed || !o.EnableRotate {
		return
	}
	o.theta -= 2 * math32.Pi * dx / o.viewH * o.RotateSpeed
	o.phi -= 2 * math32.Pi * dy / o.viewH * o.RotateSpeed
}

// Pan accumulates a target translation by a pointer delta in pixels.
func (o *Orbit) Pan(dx, dy float32) {
	if o.disposed || !o.EnablePan {
		return
	}
	var left, up float32
	var position, target, camUpRef mgl32.Vec3
	switch c := o.cam.(type) {
	case *Perspective:
		position, target, camUpRef = c.Position, c.Target, c.Up
		dist := c.Position.Sub(c.Target).Len() * math32.Tan(mgl32.DegToRad(c.FovY)/2)
		left = 2 * dx * dist / o.viewH
		up = 2 * dy * dist / o.viewH
	case *Orthographic:
		position, target, camUpRef = c.Position, c.Target, c.Up
		l, r, b, t := c.Frustum()
		left = dx * (r - l) / o.viewW
		up = dy * (t - b) / o.viewH
	default:
		return
	}
	right, camUp := basis(position, target, camUpRef)
	v := camUp
	if !o.ScreenSpacePanning {
		// Move along the ground plane instead of the screen plane.
		v = camUpRef.Cross(right)
		if v.Len() > 0 {
			v = v.Normalize()
		}
	}
	o.pan = o.pan.Add(right.Mul(-left * o.PanSpeed)).Add(v.Mul(up * o.PanSpeed))
}

// Dolly accumulates a zoom step. Positive wheel values zoom in.
func (o *Orbit) Dolly(wheel float32) {
	if o.disposed || !o.EnableZoom || wheel == 0 {
		return
	}
	step := math32.Pow(0.95, o.ZoomSpeed*math32.Abs(wheel))
	if wheel > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// Stop drops any pending motion so the camera stays exactly where it is.
func (o *Orbit) Stop() {
	o.theta, o.phi = 0, 0
	o.pan = mgl32.Vec3{}
	o.scale = 1
}

// Moving reports whether deltas are still being applied.
func (o *Orbit) Moving() bool {
	return o.theta != 0 || o.phi != 0 || o.pan != (mgl32.Vec3{}) || o.scale != 1
}

// Dispose detaches the controls; later input and updates are ignored.
func (o *Orbit) Dispose() {
	o.Stop()
	o.disposed = true
	o.cam = nil
}

// Update applies pending motion to the camera and reports whether it moved.
func (o *Orbit) Update() bool {
	if o.disposed || o.cam == nil || !o.Moving() {
		return false
	}
	f := float32(1)
	if o.EnableDamping {
		f = o.DampingFactor
	}

	var position, target mgl32.Vec3
	zoom := float32(1)
	switch c := o.cam.(type) {
	case *Perspective:
		position, target = c.Position, c.Target
	case *Orthographic:
		position, target, zoom = c.Position, c.Target, c.Zoom
	default:
		return false
	}
	before := State{Position: position, Target: target, Zoom: zoom}

	offset := position.Sub(target)
	if o.EnableRotate && (o.theta != 0 || o.phi != 0) {
		offset = rotateSpherical(offset, o.theta*f, o.phi*f)
	}

	if o.scale != 1 {
		if _, ok := o.cam.(*Orthographic); ok {
			zoom = mgl32.Clamp(zoom/o.scale, o.MinZoom, o.MaxZoom)
		} else {
			r := mgl32.Clamp(offset.Len()*o.scale, o.MinDistance, o.MaxDistance)
			if l := offset.Len(); l > 0 {
				offset = offset.Mul(r / l)
			}
		}
		o.scale = 1
	}

	target = target.Add(o.pan.Mul(f))
	position = target.Add(offset)

	switch c := o.cam.(type) {
	case *Perspective:
		c.Position, c.Target = position, target
	case *Orthographic:
		c.Position, c.Target, c.Zoom = position, target, zoom
	}

	if o.EnableDamping {
		o.theta = settle(o.theta * (1 - f))
		o.phi = settle(o.phi * (1 - f))
		o.pan = o.pan.Mul(1 - f)
		if o.pan.Len() < settleEpsilon {
			o.pan = mgl32.Vec3{}
		}
	} else {
		o.theta, o.phi = 0, 0
		o.pan = mgl32.Vec3{}
	}

	after := State{Position: position, Target: target, Zoom: zoom}
	return after != before
}

// rotateSpherical rotates offset around the Y axis by dTheta and away from it by dPhi,
// keeping the polar angle strictly inside (0, pi).
func rotateSpherical(offset mgl32.Vec3, dTheta, dPhi float32) mgl32.Vec3 {
	radius := offset.Len()
	if radius == 0 {
		return offset
	}
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))

	theta += dTheta
	phi = mgl32.Clamp(phi+dPhi, polarEpsilon, math32.Pi-polarEpsilon)

	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
}

func settle(v float32) float32 {
	if math32.Abs(v) < settleEpsilon {
		return 0
	}
	return v
}
