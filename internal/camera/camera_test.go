package camera

import (
	"testing"

	"drillview/internal/geom"
	"drillview/internal/project"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

func assertVec(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v, want %v", i, got, want)
	}
}

func sampleBox() geom.Box {
	return geom.Box{Min: mgl32.Vec3{-100, -300, -50}, Max: mgl32.Vec3{200, 20, 150}}
}

func corners(b geom.Box) []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, x := range []float32{b.Min.X(), b.Max.X()} {
		for _, y := range []float32{b.Min.Y(), b.Max.Y()} {
			for _, z := range []float32{b.Min.Z(), b.Max.Z()} {
				out = append(out, mgl32.Vec3{x, y, z})
			}
		}
	}
	return out
}

func faceCenters(b geom.Box) []mgl32.Vec3 {
	c := b.Center()
	out := []mgl32.Vec3{c}
	for i := 0; i < 3; i++ {
		lo, hi := c, c
		lo[i], hi[i] = b.Min[i], b.Max[i]
		out = append(out, lo, hi)
	}
	return out
}

func assertInFrame(t *testing.T, c Camera, points []mgl32.Vec3) {
	t.Helper()
	for _, p := range points {
		ndc := Project(c, p)
		assert.True(t, ndc.X() >= -1 && ndc.X() <= 1, "x of %v -> %v", p, ndc)
		assert.True(t, ndc.Y() >= -1 && ndc.Y() <= 1, "y of %v -> %v", p, ndc)
		assert.True(t, ndc.Z() >= -1 && ndc.Z() <= 1, "z of %v -> %v", p, ndc)
	}
}

func TestFitPerspectiveFramesBox(t *testing.T) {
	for _, aspect := range []float32{0.5, 1, 16.0 / 9, 3} {
		c := NewPerspective(aspect)
		b := sampleBox()
		FitPerspective(c, b)
		assertVec(t, b.Center(), c.Target, tol)
		assert.Greater(t, c.Position.Y(), c.Target.Y())
		assert.Less(t, c.Near, c.Far)
		assertInFrame(t, c, faceCenters(b))
	}
}

func TestFitPerspectiveMinimumSpan(t *testing.T) {
	c := NewPerspective(1)
	b := geom.Box{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{1, 1, 1}}
	FitPerspective(c, b)
	// A point is framed as if it spanned MinSpan, so the camera never collapses onto it.
	assert.Greater(t, c.Position.Sub(c.Target).Len(), float32(MinSpan))
}

func TestFitOrthographicLooksDown(t *testing.T) {
	c := NewOrthographic(2)
	c.Zoom = 4
	b := sampleBox()
	FitOrthographic(c, b)

	assert.Equal(t, float32(1), c.Zoom)
	assertVec(t, mgl32.Vec3{0, -1, 0}, c.Forward(), 1e-6)
	assertVec(t, mgl32.Vec3{0, 0, 1}, c.Up, 0)
	assert.InDelta(t, b.Center().X(), c.Position.X(), tol)
	assert.InDelta(t, b.Center().Z(), c.Position.Z(), tol)
	assert.InDelta(t, 100*PlanPadding, c.HalfHeight, tol)
	assertInFrame(t, c, corners(b))
}

func TestFitOrthographicWideData(t *testing.T) {
	c := NewOrthographic(1)
	b := geom.Box{Min: mgl32.Vec3{-500, 0, -10}, Max: mgl32.Vec3{500, 10, 10}}
	FitOrthographic(c, b)
	assertInFrame(t, c, corners(b))
	assert.InDelta(t, 500*PlanPadding, c.HalfHeight, 1e-3, "east-west span over aspect wins")

	c = NewOrthographic(2)
	FitOrthographic(c, b)
	assert.InDelta(t, 250*PlanPadding, c.HalfHeight, 1e-3)

	tall := geom.Box{Min: mgl32.Vec3{-10, 0, -400}, Max: mgl32.Vec3{10, 10, 400}}
	FitOrthographic(c, tall)
	assert.InDelta(t, 400*PlanPadding, c.HalfHeight, 1e-3, "north-south span wins")
}

func TestPerspectiveCenterRay(t *testing.T) {
	c := NewPerspective(1.5)
	FitPerspective(c, sampleBox())
	r := c.Ray(mgl32.Vec2{0, 0})
	assertVec(t, c.Position, r.Origin, tol)
	assertVec(t, c.Forward(), r.Dir, 1e-4)
}

func TestOrthographicRayIsVertical(t *testing.T) {
	c := NewOrthographic(1)
	FitOrthographic(c, sampleBox())
	r := c.Ray(mgl32.Vec2{0.5, -0.25})
	assertVec(t, mgl32.Vec3{0, -1, 0}, r.Dir, 1e-6)
	l, right, b, top := c.Frustum()
	// Screen right points west when looking down with north up in this X-east, Z-north frame.
	assert.InDelta(t, (right-l)/2*0.5, mgl32.Abs(r.Origin.X()-c.Position.X()), 0.05)
	assert.InDelta(t, (top-b)/2*0.25, mgl32.Abs(r.Origin.Z()-c.Position.Z()), 0.05)
}

func TestOrbitRotateKeepsDistance(t *testing.T) {
	c := NewPerspective(1)
	o := NewOrbit(c, 1)
	o.SetViewport(800, 600)
	d0 := c.Position.Sub(c.Target).Len()
	o.Rotate(120, 40)
	require.True(t, o.Update())
	assert.InDelta(t, d0, c.Position.Sub(c.Target).Len(), tol)
	assert.False(t, o.Moving())
}

func TestOrbitDampingConverges(t *testing.T) {
	c := NewPerspective(1)
	o := NewOrbit(c, Damping3D)
	o.SetViewport(800, 600)
	o.Rotate(200, 0)
	frames := 0
	for o.Moving() {
		o.Update()
		frames++
		require.Less(t, frames, 2000)
	}
	assert.Greater(t, frames, 10)
	assert.False(t, o.Moving())
}

func TestOrbitPlanRotationDisabled(t *testing.T) {
	rig := NewRig(800, 600, DefaultOptions())
	rig.SetView(Plan2D)
	before := rig.Plan.Snapshot()
	rig.Controls().Rotate(300, 300)
	assert.False(t, rig.Update())
	assert.Equal(t, before, rig.Plan.Snapshot())
}

func TestOrbitPlanPanAndZoom(t *testing.T) {
	c := NewOrthographic(1)
	o := NewOrbit(c, 1)
	o.EnableRotate = false
	o.ScreenSpacePanning = true
	o.SetViewport(100, 100)

	o.Pan(10, 0)
	require.True(t, o.Update())
	assert.InDelta(t, 0, c.Target.Y(), tol)
	assert.InDelta(t, 10, mgl32.Abs(c.Target.X()), tol)
	assertVec(t, mgl32.Vec3{0, -1, 0}, c.Forward(), 1e-6)

	o.Dolly(1)
	require.True(t, o.Update())
	assert.Greater(t, c.Zoom, float32(1))
}

func TestRigViewSwitchRoundTrip(t *testing.T) {
	rig := NewRig(1024, 768, DefaultOptions())
	rig.Fit(sampleBox())

	rig.Controls().Rotate(150, -60)
	rig.Controls().Pan(20, 5)
	for i := 0; i < 5; i++ {
		rig.Update()
	}
	manual := rig.Perspective.Snapshot()

	require.True(t, rig.SetView(Plan2D))
	assert.Equal(t, Plan2D, rig.View())
	assert.Same(t, rig.Plan, rig.Active())
	saved, ok := rig.Saved(View3D)
	require.True(t, ok)
	assert.Equal(t, manual, saved)

	// Plan interaction does not leak into the perspective camera.
	rig.Controls().Pan(50, 50)
	rig.Update()

	require.True(t, rig.SetView(View3D))
	assertVec(t, manual.Position, rig.Perspective.Position, 1e-4)
	assertVec(t, manual.Target, rig.Perspective.Target, 1e-4)
	assert.True(t, rig.Controls().EnableRotate)

	// Pending damped motion was dropped at the switch.
	assert.False(t, rig.Update())
}

func TestRigSetViewIgnoresNoop(t *testing.T) {
	rig := NewRig(100, 100, DefaultOptions())
	assert.False(t, rig.SetView(View3D))
	assert.False(t, rig.SetView("sideways"))
	_, ok := rig.Saved(View3D)
	assert.False(t, ok)
}

func TestRigResizeKeepsZoom(t *testing.T) {
	rig := NewRig(800, 800, DefaultOptions())
	rig.Fit(sampleBox())
	rig.SetView(Plan2D)
	rig.Plan.Zoom = 2
	hh := rig.Plan.HalfHeight

	rig.Resize(1600, 800)
	assert.Equal(t, float32(2), rig.Plan.Zoom)
	assert.Equal(t, hh, rig.Plan.HalfHeight)
	assert.Equal(t, float32(2), rig.Perspective.Aspect)
	l, r, b, top := rig.Plan.Frustum()
	assert.InDelta(t, hh/2, top, tol)
	assert.InDelta(t, -hh/2, b, tol)
	assert.InDelta(t, hh, r, tol)
	assert.InDelta(t, -hh, l, tol)

	rig.Resize(0, 10)
	assert.Equal(t, float32(2), rig.Perspective.Aspect)
}

func TestRigFocusHole(t *testing.T) {
	rig := NewRig(800, 600, DefaultOptions())
	h := project.Drillhole{ID: "F", Collar: project.Vec3{X: 1000, Y: 50, Z: -2000}, Depth: 200}
	require.True(t, rig.FocusHole(h))

	box, _ := geom.Bounds([]project.Drillhole{h})
	s3, ok := rig.Saved(View3D)
	require.True(t, ok)
	assertVec(t, box.Center(), s3.Target, tol)
	sp, ok := rig.Saved(Plan2D)
	require.True(t, ok)
	assertVec(t, box.Center(), sp.Target, tol)
	assert.Equal(t, float32(1), sp.Zoom)
}

func TestRigDisposed(t *testing.T) {
	rig := NewRig(800, 600, DefaultOptions())
	rig.Dispose()
	assert.False(t, rig.SetView(Plan2D))
	assert.False(t, rig.Update())
	rig.Fit(sampleBox())
	_, ok := rig.Saved(View3D)
	assert.False(t, ok)

	var nilRig *Rig
	assert.Nil(t, nilRig.Active())
	assert.Equal(t, View3D, nilRig.View())
	nilRig.Resize(10, 10)
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("plan")
	assert.True(t, ok)
	assert.Equal(t, Plan2D, v)
	v, ok = ParseView("view3d")
	assert.True(t, ok)
	assert.Equal(t, View3D, v)
	_, ok = ParseView("iso")
	assert.False(t, ok)
}
