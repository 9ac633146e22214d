// Package picking resolves pointer positions to drillhole identifiers and keeps the hover
// tooltip state. It has no rendering dependencies; the viewport draws what Hover exposes.
package picking

import (
	"fmt"
	"math"

	"drillview/internal/camera"
	"drillview/internal/frame"
	"drillview/internal/geom"
	"drillview/internal/project"
	"drillview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is the render surface's rectangle in client pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the client point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x <= r.X+r.W && y <= r.Y+r.H
}

// NDC converts client coordinates to normalized device coordinates against r: x to the right
// and y up, both in [-1, 1] inside the rect. It reports false for an empty rect.
func NDC(x, y float32, r Rect) (mgl32.Vec2, bool) {
	if r.W <= 0 || r.H <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		(x-r.X)/r.W*2 - 1,
		-((y-r.Y)/r.H*2 - 1),
	}, true
}

// Pick casts a ray from cam through ndc against root and returns the identifier of the nearest
// tagged hit. Callers pass the drillhole group so grid and terrain never take part.
func Pick(cam camera.Camera, root *scene.Node, ndc mgl32.Vec2) (string, bool) {
	if cam == nil || root == nil {
		return "", false
	}
	for _, hit := range scene.Intersect(root, cam.Ray(ndc)) {
		if tag, ok := scene.FindTag(hit.Node); ok {
			return tag.ID, true
		}
	}
	return "", false
}

// TooltipLines formats the hover tooltip for h. Angles are normalised first, so missing or
// malformed values show the defaults.
func TooltipLines(h project.Drillhole) []string {
	depth := h.Depth
	if math.IsNaN(depth) || math.IsInf(depth, 0) || depth < 0 {
		depth = 0
	}
	return []string{
		h.ID,
		fmt.Sprintf("Depth: %.2f m", depth),
		fmt.Sprintf("Collar: %.2f, %.2f, %.2f", h.Collar.X, h.Collar.Y, h.Collar.Z),
		fmt.Sprintf("Azimuth: %.3f°", geom.NormalizeAzimuth(h.Azimuth)),
		fmt.Sprintf("Inclination: %.3f°", geom.ClampInclination(h.Inclination)),
		fmt.Sprintf("Intervals: %d", len(h.Intervals)),
	}
}

// Tooltip is what the viewport draws next to the pointer.
type Tooltip struct {
	Visible bool
	ID      string
	Lines   []string
	X, Y    float32
}

// TooltipOffset is the distance from the pointer to the tooltip's top-left corner.
var TooltipOffset = mgl32.Vec2{14, 14}

// Hover tracks the pointer over the surface and resolves it at most once per frame.
// Move only records the position; the resolution runs on the next frame of the scheduler.
type Hover struct {
	sched   frame.Scheduler
	resolve func(x, y float32) (string, bool)
	lookup  func(id string) (project.Drillhole, bool)

	pending  frame.ID
	x, y     float32
	tooltip  Tooltip
	resolves int
	rebuilds int
}

// NewHover returns a hover tracker. resolve maps client coordinates to an identifier;
// lookup returns the hole for an identifier.
func NewHover(sched frame.Scheduler, resolve func(x, y float32) (string, bool), lookup func(id string) (project.Drillhole, bool)) *Hover {
	return &Hover{sched: sched, resolve: resolve, lookup: lookup}
}

// Move records the pointer position and schedules one resolution if none is pending.
func (h *Hover) Move(x, y float32) {
	if h == nil || h.sched == nil {
		return
	}
	h.x, h.y = x, y
	if h.pending != 0 {
		return
	}
	h.pending = h.sched.RequestFrame(h.frame)
}

// Leave hides the tooltip and drops any pending resolution.
func (h *Hover) Leave() {
	if h == nil {
		return
	}
	h.Cancel()
	h.tooltip = Tooltip{}
}

// Cancel drops a pending resolution without touching the tooltip.
func (h *Hover) Cancel() {
	if h == nil || h.pending == 0 {
		return
	}
	h.sched.CancelFrame(h.pending)
	h.pending = 0
}

// Invalidate hides the tooltip because the holes or the camera under it changed. A tooltip that
// was showing is resolved again at the last pointer position on the next frame, so it comes
// back with fresh content only if a hole is still there.
func (h *Hover) Invalidate() {
	if h == nil {
		return
	}
	showing := h.tooltip.Visible
	h.tooltip = Tooltip{}
	if showing && h.pending == 0 && h.sched != nil {
		h.pending = h.sched.RequestFrame(h.frame)
	}
}

// Tooltip returns the current tooltip state.
func (h *Hover) Tooltip() Tooltip {
	if h == nil {
		return Tooltip{}
	}
	return h.tooltip
}

// Pending reports whether a resolution is scheduled.
func (h *Hover) Pending() bool {
	return h != nil && h.pending != 0
}

func (h *Hover) frame() {
	h.pending = 0
	h.resolves++
	id, ok := "", false
	if h.resolve != nil {
		id, ok = h.resolve(h.x, h.y)
	}
	if !ok {
		h.tooltip = Tooltip{}
		return
	}
	if id != h.tooltip.ID || !h.tooltip.Visible {
		hole, found := project.Drillhole{}, false
		if h.lookup != nil {
			hole, found = h.lookup(id)
		}
		if !found {
			h.tooltip = Tooltip{}
			return
		}
		h.tooltip.ID = id
		h.tooltip.Lines = TooltipLines(hole)
		h.rebuilds++
	}
	h.tooltip.Visible = true
	h.tooltip.X = h.x + TooltipOffset.X()
	h.tooltip.Y = h.y + TooltipOffset.Y()
}
