package camera

import (
	"drillview/internal/geom"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FitMargin scales the perspective fit distance so the data does not touch the frame edge.
	FitMargin = 1.35
	// PlanPadding scales the plan half-height.
	PlanPadding = 1.25
	// MinSpan is the smallest extent a fit will frame, so single points and short holes stay readable.
	MinSpan = 10
)

// fitElevation is the fixed diagonal the perspective camera is placed along after a fit.
var fitElevation = mgl32.Vec3{1, 0.8, 1}.Normalize()

// FitPerspective frames box in a perspective camera and points it at the box center.
func FitPerspective(c *Perspective, b geom.Box) {
	if c == nil || b.Empty() {
		return
	}
	center := b.Center()
	size := b.Size()

	horizontal := max(size.X(), size.Z())
	span := max(horizontal, size.Y(), MinSpan)

	vfov := mgl32.DegToRad(c.FovY)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	hfov := 2 * math32.Atan(math32.Tan(vfov/2)*aspect)

	distV := (span / 2) / math32.Tan(vfov/2)
	distH := (span / 2) / math32.Tan(hfov/2)
	dist := max(distV, distH) * FitMargin

	c.Target = center
	c.Position = center.Add(fitElevation.Mul(dist))
	c.Up = worldUp
	c.Near = max(dist/1000, 0.01)
	c.Far = dist * 100
}

// FitOrthographic frames box in the plan camera: directly above the center, looking down,
// north up, zoom reset to 1. The half-height is half the north-south span, or half the
// east-west span divided by the aspect ratio when that is larger, so wide data stays on
// screen. Either way it is at least MinSpan/2 and is then scaled by PlanPadding.
func FitOrthographic(c *Orthographic, b geom.Box) {
	if c == nil || b.Empty() {
		return
	}
	center := b.Center()
	size := b.Size()
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}

	half := max(size.Z()/2, size.X()/2/aspect, MinSpan/2)
	c.HalfHeight = half * PlanPadding
	c.Zoom = 1

	height := max(size.Y(), MinSpan)
	c.Target = center
	c.Position = mgl32.Vec3{center.X(), b.Max.Y() + height, center.Z()}
	c.Up = north
	c.Near = 0.1
	c.Far = c.Position.Y() - b.Min.Y() + height
}
