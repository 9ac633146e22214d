package camera

import (
	"drillview/internal/geom"
	"drillview/internal/project"
)

// View is the viewport mode.
type View string

const (
	// View3D is the free-orbiting perspective view.
	View3D View = "view3d"
	// Plan2D is the locked overhead orthographic view.
	Plan2D View = "plan2d"
)

// ParseView accepts "view3d"/"3d" and "plan2d"/"plan"/"2d".
func ParseView(s string) (View, bool) {
	switch s {
	case "view3d", "3d":
		return View3D, true
	case "plan2d", "plan", "2d":
		return Plan2D, true
	}
	return "", false
}

// Options tunes the Rig's controls.
type Options struct {
	Damping3D   float32
	DampingPlan float32
}

// DefaultOptions returns the standard damping factors.
func DefaultOptions() Options {
	return Options{Damping3D: Damping3D, DampingPlan: DampingPlan}
}

// Rig keeps both projections alive and one of them active. Switching views snapshots the
// outgoing camera into its saved State and restores the incoming camera from its own,
// so neither view loses its framing.
type Rig struct {
	Perspective *Perspective
	Plan        *Orthographic

	orbit3D   *Orbit
	orbitPlan *Orbit
	view      View
	saved3D   *State
	savedPlan *State
	width     float32
	height    float32
	disposed  bool
}

// NewRig creates both cameras for a viewport of the given pixel size, starting in 3D.
func NewRig(width, height float32, opts Options) *Rig {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = width / height
	}
	r := &Rig{
		Perspective: NewPerspective(aspect),
		Plan:        NewOrthographic(aspect),
		view:        View3D,
		width:       width,
		height:      height,
	}
	r.orbit3D = NewOrbit(r.Perspective, opts.Damping3D)
	r.orbitPlan = NewOrbit(r.Plan, opts.DampingPlan)
	r.orbitPlan.EnableRotate = false
	r.orbitPlan.ScreenSpacePanning = true
	r.orbit3D.SetViewport(width, height)
	r.orbitPlan.SetViewport(width, height)
	return r
}

// View returns the active view.
func (r *Rig) View() View {
	if r == nil {
		return View3D
	}
	return r.view
}

// Active returns the camera used for drawing and picking.
func (r *Rig) Active() Camera {
	if r == nil {
		return nil
	}
	if r.view == Plan2D {
		return r.Plan
	}
	return r.Perspective
}

// Controls returns the active camera's controls.
func (r *Rig) Controls() *Orbit {
	if r == nil {
		return nil
	}
	return r.controlsFor(r.view)
}

func (r *Rig) controlsFor(v View) *Orbit {
	if v == Plan2D {
		return r.orbitPlan
	}
	return r.orbit3D
}

func (r *Rig) cameraFor(v View) Camera {
	if v == Plan2D {
		return r.Plan
	}
	return r.Perspective
}

func (r *Rig) savedFor(v View) **State {
	if v == Plan2D {
		return &r.savedPlan
	}
	return &r.saved3D
}

// Saved returns the stored State of a view's camera, if one has been recorded.
func (r *Rig) Saved(v View) (State, bool) {
	if r == nil {
		return State{}, false
	}
	s := *r.savedFor(v)
	if s == nil {
		return State{}, false
	}
	return *s, true
}

// SetView makes v the active view. It reports false when v is unknown or already active.
func (r *Rig) SetView(v View) bool {
	if r == nil || r.disposed || (v != View3D && v != Plan2D) || v == r.view {
		return false
	}
	out := r.view
	r.controlsFor(out).Stop()
	snap := r.cameraFor(out).Snapshot()
	*r.savedFor(out) = &snap

	r.view = v
	if s := *r.savedFor(v); s != nil {
		r.cameraFor(v).Restore(*s)
	}
	r.controlsFor(v).Stop()
	r.orbit3D.EnableRotate = v == View3D
	r.orbitPlan.EnableRotate = false
	return true
}

// Resize updates both projections for a new viewport size. The plan frustum is rebuilt from the
// persisted half-height and the new aspect; zoom is kept.
func (r *Rig) Resize(width, height float32) {
	if r == nil || width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	aspect := width / height
	r.Perspective.Aspect = aspect
	r.Plan.Aspect = aspect
	r.orbit3D.SetViewport(width, height)
	r.orbitPlan.SetViewport(width, height)
}

// Size returns the viewport size in pixels.
func (r *Rig) Size() (width, height float32) {
	if r == nil {
		return 0, 0
	}
	return r.width, r.height
}

// Fit frames box in both cameras and records both as their saved States.
func (r *Rig) Fit(box geom.Box) {
	if r == nil || r.disposed || box.Empty() {
		return
	}
	FitPerspective(r.Perspective, box)
	FitOrthographic(r.Plan, box)
	r.orbit3D.Stop()
	r.orbitPlan.Stop()
	s3 := r.Perspective.Snapshot()
	sp := r.Plan.Snapshot()
	r.saved3D, r.savedPlan = &s3, &sp
}

// FocusHole fits both cameras to a single hole.
func (r *Rig) FocusHole(h project.Drillhole) bool {
	box, ok := geom.Bounds([]project.Drillhole{h})
	if !ok || r == nil || r.disposed {
		return false
	}
	r.Fit(box)
	return true
}

// Update advances the active controls one frame and reports whether the camera moved.
func (r *Rig) Update() bool {
	if r == nil || r.disposed {
		return false
	}
	return r.Controls().Update()
}

// Dispose releases both controllers. The Rig ignores all later calls.
func (r *Rig) Dispose() {
	if r == nil || r.disposed {
		return
	}
	r.orbit3D.Dispose()
	r.orbitPlan.Dispose()
	r.disposed = true
}
