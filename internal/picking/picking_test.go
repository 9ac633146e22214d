package picking

import (
	"testing"

	"drillview/internal/camera"
	"drillview/internal/frame"
	"drillview/internal/geom"
	"drillview/internal/project"
	"drillview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHoles() []project.Drillhole {
	return []project.Drillhole{
		{ID: "A", Depth: 100},
		{ID: "B", Collar: project.Vec3{X: 200}, Depth: 100, Azimuth: project.Float(45), Inclination: project.Float(-60),
			Intervals: []project.Interval{{From: 0, To: 10, Lithology: "clay"}, {From: 10, To: 100, Lithology: "granite"}}},
	}
}

func sampleScene(t *testing.T) (*scene.Builder, geom.Box) {
	t.Helper()
	b := scene.NewBuilder()
	holes := sampleHoles()
	b.Sync(holes, scene.Options{ShowGrid: true})
	box, ok := geom.Bounds(holes)
	require.True(t, ok)
	return b, box
}

// clientOf maps a world point to client pixels on r, the inverse of NDC.
func clientOf(c camera.Camera, p mgl32.Vec3, r Rect) (float32, float32) {
	ndc := camera.Project(c, p)
	return r.X + (ndc.X()+1)/2*r.W, r.Y + (1-ndc.Y())/2*r.H
}

func TestNDC(t *testing.T) {
	r := Rect{X: 100, Y: 50, W: 800, H: 600}
	tests := []struct {
		name string
		x, y float32
		want mgl32.Vec2
	}{
		{"top left", 100, 50, mgl32.Vec2{-1, 1}},
		{"center", 500, 350, mgl32.Vec2{0, 0}},
		{"bottom right", 900, 650, mgl32.Vec2{1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NDC(tt.x, tt.y, r)
			require.True(t, ok)
			assert.InDelta(t, tt.want.X(), got.X(), 1e-6)
			assert.InDelta(t, tt.want.Y(), got.Y(), 1e-6)
		})
	}
	_, ok := NDC(1, 1, Rect{W: 0, H: 10})
	assert.False(t, ok)
	assert.True(t, r.Contains(500, 350))
	assert.False(t, r.Contains(10, 10))
}

func TestPickPerspectiveResolvesHole(t *testing.T) {
	b, box := sampleScene(t)
	r := Rect{W: 1024, H: 768}
	cam := camera.NewPerspective(r.W / r.H)
	camera.FitPerspective(cam, box)

	for _, h := range sampleHoles() {
		top, bottom := geom.Trace(h)
		mid := top.Add(bottom).Mul(0.5)
		x, y := clientOf(cam, mid, r)
		ndc, _ := NDC(x, y, r)
		id, ok := Pick(cam, b.Drillholes, ndc)
		require.True(t, ok, h.ID)
		assert.Equal(t, h.ID, id)
	}
}

func TestPickPlanResolvesCollar(t *testing.T) {
	b, box := sampleScene(t)
	r := Rect{W: 800, H: 800}
	cam := camera.NewOrthographic(1)
	camera.FitOrthographic(cam, box)

	x, y := clientOf(cam, mgl32.Vec3{200, 0, 0}, r)
	ndc, _ := NDC(x, y, r)
	id, ok := Pick(cam, b.Drillholes, ndc)
	require.True(t, ok)
	assert.Equal(t, "B", id)
}

func TestPickEmptySpace(t *testing.T) {
	b, box := sampleScene(t)
	cam := camera.NewOrthographic(1)
	camera.FitOrthographic(cam, box)

	// Halfway between the two collars, above ground. The grid is not part of the pick set.
	ndc := camera.Project(cam, mgl32.Vec3{100, 0, 60})
	_, ok := Pick(cam, b.Drillholes, mgl32.Vec2{ndc.X(), ndc.Y()})
	assert.False(t, ok)

	_, ok = Pick(nil, b.Drillholes, mgl32.Vec2{})
	assert.False(t, ok)
	_, ok = Pick(cam, nil, mgl32.Vec2{})
	assert.False(t, ok)
}

func TestTooltipLines(t *testing.T) {
	lines := TooltipLines(sampleHoles()[1])
	assert.Equal(t, []string{
		"B",
		"Depth: 100.00 m",
		"Collar: 200.00, 0.00, 0.00",
		"Azimuth: 45.000°",
		"Inclination: -60.000°",
		"Intervals: 2",
	}, lines)

	defaults := TooltipLines(project.Drillhole{ID: "X", Azimuth: project.Float(-10), Inclination: project.Float(15), Depth: -3})
	assert.Equal(t, "Depth: 0.00 m", defaults[1])
	assert.Equal(t, "Azimuth: 350.000°", defaults[3])
	assert.Equal(t, "Inclination: 0.000°", defaults[4])

	missing := TooltipLines(project.Drillhole{ID: "Y"})
	assert.Equal(t, "Azimuth: 0.000°", missing[3])
	assert.Equal(t, "Inclination: -90.000°", missing[4])
}

type fakeResolver struct {
	calls int
	hits  map[[2]float32]string
}

func (f *fakeResolver) resolve(x, y float32) (string, bool) {
	f.calls++
	id, ok := f.hits[[2]float32{x, y}]
	return id, ok
}

func lookup(id string) (project.Drillhole, bool) {
	for _, h := range sampleHoles() {
		if h.ID == id {
			return h, true
		}
	}
	return project.Drillhole{}, false
}

func TestHoverThrottlesToOneResolvePerFrame(t *testing.T) {
	q := frame.NewQueue()
	f := &fakeResolver{hits: map[[2]float32]string{{10, 10}: "A"}}
	h := NewHover(q, f.resolve, lookup)

	for i := 0; i < 50; i++ {
		h.Move(float32(i), 3)
	}
	h.Move(10, 10)
	assert.Equal(t, 1, q.Len())
	assert.True(t, h.Pending())

	q.Flush()
	assert.Equal(t, 1, f.calls)
	tip := h.Tooltip()
	require.True(t, tip.Visible)
	assert.Equal(t, "A", tip.ID)
	assert.Equal(t, float32(10)+TooltipOffset.X(), tip.X)
	assert.False(t, h.Pending())
}

func TestHoverRebuildsOnlyOnIDChange(t *testing.T) {
	q := frame.NewQueue()
	f := &fakeResolver{hits: map[[2]float32]string{{1, 1}: "A", {2, 2}: "A", {3, 3}: "B"}}
	h := NewHover(q, f.resolve, lookup)

	h.Move(1, 1)
	q.Flush()
	h.Move(2, 2)
	q.Flush()
	assert.Equal(t, 1, h.rebuilds)
	assert.Equal(t, float32(2)+TooltipOffset.Y(), h.Tooltip().Y)

	h.Move(3, 3)
	q.Flush()
	assert.Equal(t, 2, h.rebuilds)
	assert.Equal(t, "B", h.Tooltip().ID)
	assert.Equal(t, "Intervals: 2", h.Tooltip().Lines[5])

	h.Invalidate()
	h.Move(3, 3)
	q.Flush()
	assert.Equal(t, 3, h.rebuilds)
}

func TestHoverInvalidateHidesStaleTooltip(t *testing.T) {
	q := frame.NewQueue()
	f := &fakeResolver{hits: map[[2]float32]string{{1, 1}: "A"}}
	h := NewHover(q, f.resolve, lookup)

	h.Move(1, 1)
	q.Flush()
	require.True(t, h.Tooltip().Visible)

	// The hole is still under the pointer: hidden now, back after one frame.
	h.Invalidate()
	assert.False(t, h.Tooltip().Visible)
	assert.Empty(t, h.Tooltip().Lines)
	require.True(t, h.Pending())
	q.Flush()
	assert.True(t, h.Tooltip().Visible)
	assert.Equal(t, 2, h.rebuilds)

	// The hole went away: the tooltip stays hidden.
	f.hits = map[[2]float32]string{}
	h.Invalidate()
	q.Flush()
	assert.False(t, h.Tooltip().Visible)

	// Nothing showing means nothing to resolve.
	h.Invalidate()
	assert.False(t, h.Pending())
	assert.Equal(t, 0, q.Len())
}

func TestHoverHidesOnMissAndLeave(t *testing.T) {
	q := frame.NewQueue()
	f := &fakeResolver{hits: map[[2]float32]string{{1, 1}: "A", {5, 5}: "gone"}}
	h := NewHover(q, f.resolve, lookup)

	h.Move(1, 1)
	q.Flush()
	require.True(t, h.Tooltip().Visible)

	h.Move(9, 9)
	q.Flush()
	assert.False(t, h.Tooltip().Visible)

	h.Move(1, 1)
	q.Flush()
	h.Move(1, 1)
	h.Leave()
	assert.False(t, h.Tooltip().Visible)
	assert.Equal(t, 0, q.Len())

	// An id that no longer has a hole hides the tooltip.
	h.Move(5, 5)
	q.Flush()
	assert.False(t, h.Tooltip().Visible)
}
