// Package viewer is the drillhole viewport controller. It owns the camera rig, the scene builder,
// hover state and the render loop, turns bus events into camera motion and selection, and calls a
// Renderer once per frame. Nothing here depends on the graphics backend.
package viewer

import (
	"log/slog"

	"drillview/internal/camera"
	"drillview/internal/frame"
	"drillview/internal/geom"
	"drillview/internal/picking"
	"drillview/internal/project"
	"drillview/internal/scene"
	"drillview/internal/terrain"
	"drillview/internal/theme"

	"github.com/chewxy/math32"
)

// DragThreshold is how far in pixels the pointer must move with a button held before the
// gesture counts as a drag rather than a click.
const DragThreshold = 4

// Renderer draws one frame. The viewport's raylib adapter implements it.
type Renderer interface {
	DrawScene(cam camera.Camera, root *scene.Node)
	DrawAxes(cam camera.Camera)
}

// Toggles are the display switches supplied by the surrounding UI.
type Toggles struct {
	ShowGrid    bool
	ShowTerrain bool
}

// Options configures a Controller.
type Options struct {
	Width, Height float32
	View          camera.View
	Camera        camera.Options
	Toggles       Toggles
	Theme         theme.Theme
	Terrain       terrain.Options
	DragThreshold float32
	Logger        *slog.Logger
}

// DefaultOptions returns a light-themed 3D viewport with the grid on.
func DefaultOptions() Options {
	return Options{
		Width:         1280,
		Height:        720,
		View:          camera.View3D,
		Camera:        camera.DefaultOptions(),
		Toggles:       Toggles{ShowGrid: true},
		Theme:         theme.Light(),
		Terrain:       terrain.DefaultOptions(),
		DragThreshold: DragThreshold,
	}
}

type pointer struct {
	down     bool
	button   Button
	startX   float32
	startY   float32
	lastX    float32
	lastY    float32
	dragging bool
}

// Controller is the viewport. Collaborators push state in through the Set methods and hear back
// through OnSelect and OnViewChange.
type Controller struct {
	// OnSelect is called with the identifier of a clicked drillhole. It is never called to clear.
	OnSelect func(id string)
	// OnViewChange is called when the viewport itself switches view, e.g. from the keyboard.
	OnViewChange func(v camera.View)

	bus      *Bus
	sched    frame.Scheduler
	renderer Renderer
	opts     Options
	log      *slog.Logger

	rig     *camera.Rig
	builder *scene.Builder
	hover   *picking.Hover
	loop    *frame.Loop
	unsubs  []func()
	mounted bool

	holes     []project.Drillhole
	index     map[string]project.Drillhole
	selected  string
	view      camera.View
	theme     theme.Theme
	toggles   Toggles
	textFocus bool
	rect      picking.Rect
	origin    project.Vec3
	fitKey    geom.Box
	fitted    bool
	ptr       pointer
}

// New returns an unmounted controller.
func New(bus *Bus, sched frame.Scheduler, renderer Renderer, opts Options) *Controller {
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = DragThreshold
	}
	if opts.View == "" {
		opts.View = camera.View3D
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		bus:      bus,
		sched:    sched,
		renderer: renderer,
		opts:     opts,
		log:      log,
		view:     opts.View,
		theme:    opts.Theme,
		toggles:  opts.Toggles,
		index:    map[string]project.Drillhole{},
		rect:     picking.Rect{W: opts.Width, H: opts.Height},
	}
}

// Mount creates the cameras, scene and hover state, subscribes to the bus and starts the loop.
// Mounting a mounted controller does nothing.
func (c *Controller) Mount() {
	if c == nil || c.mounted || c.bus == nil || c.sched == nil {
		return
	}
	c.rig = camera.NewRig(c.rect.W, c.rect.H, c.opts.Camera)
	c.builder = scene.NewBuilder()
	c.hover = picking.NewHover(c.sched, c.Pick, c.Hole)
	c.loop = frame.NewLoop(c.sched, c.Tick)
	c.fitted = false
	c.ptr = pointer{}

	c.unsubs = []func(){
		c.bus.Subscribe(EventResize, c.onResize),
		c.bus.Subscribe(EventKey, c.onKey),
		c.bus.Subscribe(EventPointerDown, c.onPointerDown),
		c.bus.Subscribe(EventPointerMove, c.onPointerMove),
		c.bus.Subscribe(EventPointerUp, c.onPointerUp),
		c.bus.Subscribe(EventPointerLeave, c.onPointerLeave),
		c.bus.Subscribe(EventWheel, c.onWheel),
	}
	c.mounted = true

	c.sync()
	c.rig.SetView(c.view)
	c.loop.Start()
	c.log.Debug("viewport mounted", "width", c.rect.W, "height", c.rect.H, "view", c.view)
}

// Teardown unsubscribes from the bus, stops the loop, drops pending hover work and disposes
// the cameras. The controller can be mounted again afterwards.
func (c *Controller) Teardown() {
	if c == nil || !c.mounted {
		return
	}
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
	c.loop.Stop()
	c.hover.Leave()
	c.rig.Dispose()
	c.mounted = false
	c.log.Debug("viewport torn down")
}

// Mounted reports whether the controller is live.
func (c *Controller) Mounted() bool {
	return c != nil && c.mounted
}

// SetHoles replaces the drillhole list. The scene is rebuilt when its signature changes and the
// cameras are refitted only when the data bounds change.
func (c *Controller) SetHoles(holes []project.Drillhole) {
	if c == nil {
		return
	}
	c.holes = holes
	c.index = project.Index(holes)
	if c.hover != nil {
		c.hover.Invalidate()
	}
	c.sync()
}

// SetSelected sets the highlighted hole. An empty id clears the highlight.
func (c *Controller) SetSelected(id string) {
	if c == nil {
		return
	}
	c.selected = id
}

// SetView switches the active view on behalf of the surrounding UI. OnViewChange is not called.
func (c *Controller) SetView(v camera.View) {
	if c == nil || (v != camera.View3D && v != camera.Plan2D) {
		return
	}
	c.view = v
	if c.mounted {
		c.ptr = pointer{}
		if c.rig.SetView(v) {
			c.hover.Invalidate()
		}
	}
}

// SetTheme replaces the theme tokens. A change of the dark flag rebuilds the scene.
func (c *Controller) SetTheme(t theme.Theme) {
	if c == nil {
		return
	}
	c.theme = t
	c.sync()
}

// SetToggles replaces the display toggles.
func (c *Controller) SetToggles(t Toggles) {
	if c == nil {
		return
	}
	c.toggles = t
	c.sync()
}

// SetTextInputFocused disables the keyboard shortcuts while a text field has focus.
func (c *Controller) SetTextInputFocused(focused bool) {
	if c == nil {
		return
	}
	c.textFocus = focused
}

// Focus frames the selected hole in both cameras. It reports false when nothing is selected or
// the selection is not in the current data.
func (c *Controller) Focus() bool {
	if c == nil || !c.mounted || c.selected == "" {
		return false
	}
	h, ok := c.index[c.selected]
	if !ok {
		return false
	}
	if !c.rig.FocusHole(project.Shift([]project.Drillhole{h}, c.origin)[0]) {
		return false
	}
	c.log.Info("focused drillhole", "id", h.ID)
	return true
}

// Tick advances the damped controls and draws one frame.
func (c *Controller) Tick() {
	if c == nil || !c.mounted {
		return
	}
	c.rig.Update()
	if c.renderer == nil {
		return
	}
	cam := c.rig.Active()
	c.renderer.DrawScene(cam, c.builder.Root)
	c.renderer.DrawAxes(cam)
}

// Pick resolves client coordinates to the identifier of the drillhole under them.
func (c *Controller) Pick(x, y float32) (string, bool) {
	if c == nil || !c.mounted || !c.rect.Contains(x, y) {
		return "", false
	}
	ndc, ok := picking.NDC(x, y, c.rect)
	if !ok {
		return "", false
	}
	return picking.Pick(c.rig.Active(), c.builder.Drillholes, ndc)
}

// Hole returns the drillhole with the given id from the current data.
func (c *Controller) Hole(id string) (project.Drillhole, bool) {
	if c == nil {
		return project.Drillhole{}, false
	}
	h, ok := c.index[id]
	return h, ok
}

// Accessors used by the renderer and overlays.

func (c *Controller) Rig() *camera.Rig { return c.rig }
func (c *Controller) Scene() *scene.Builder { return c.builder }
func (c *Controller) Holes() []project.Drillhole { return c.holes }
func (c *Controller) Selected() string { return c.selected }
func (c *Controller) Theme() theme.Theme { return c.theme }
func (c *Controller) Toggles() Toggles { return c.toggles }
func (c *Controller) Rect() picking.Rect { return c.rect }
func (c *Controller) View() camera.View { return c.view }
func (c *Controller) Dragging() bool { return c.ptr.dragging }
func (c *Controller) Tooltip() picking.Tooltip { return c.hover.Tooltip() }
func (c *Controller) SelectedHole() (project.Drillhole, bool) { return c.Hole(c.selected) }

// Origin is the world position of the scene's zero. Scene nodes and cameras are relative to it;
// holes, tooltips and the inspector keep world coordinates.
func (c *Controller) Origin() project.Vec3 { return c.origin }

func (c *Controller) sceneOptions() scene.Options {
	return scene.Options{
		ShowGrid:    c.toggles.ShowGrid,
		ShowTerrain: c.toggles.ShowTerrain,
		Dark:        c.theme.Dark,
		Terrain:     c.opts.Terrain,
	}
}

// sync rebuilds the scene if needed and refits when the data bounds moved. The local origin is
// chosen again only on a refit so that cameras never jump under unchanged bounds.
func (c *Controller) sync() {
	if !c.mounted {
		return
	}
	local := project.Shift(c.holes, c.origin)
	if box, ok := geom.Bounds(local); ok && (!c.fitted || box != c.fitKey) {
		if o := project.Origin(c.holes); o != c.origin {
			c.origin = o
			local = project.Shift(c.holes, o)
			box, _ = geom.Bounds(local)
			c.log.Debug("local origin moved", "x", o.X, "y", o.Y, "z", o.Z)
		}
		c.rig.Fit(box)
		c.fitKey, c.fitted = box, true
		c.log.Info("fitted cameras to data", "min", box.Min, "max", box.Max)
	}
	if c.builder.Sync(local, c.sceneOptions()) {
		c.log.Debug("scene rebuilt", "holes", len(c.holes))
	}
}

func (c *Controller) switchView(v camera.View) {
	if !c.rig.SetView(v) {
		return
	}
	c.view = v
	c.ptr = pointer{}
	c.hover.Invalidate()
	c.log.Info("view changed", "view", v)
	if c.OnViewChange != nil {
		c.OnViewChange(v)
	}
}

func (c *Controller) onResize(e Event) {
	if e.Width <= 0 || e.Height <= 0 {
		return
	}
	c.rect = picking.Rect{W: e.Width, H: e.Height}
	c.rig.Resize(e.Width, e.Height)
}

func (c *Controller) onKey(e Event) {
	if c.textFocus {
		return
	}
	switch e.Key {
	case KeyFocus:
		c.Focus()
	case KeyView3D:
		c.switchView(camera.View3D)
	case KeyPlan:
		c.switchView(camera.Plan2D)
	}
}

func (c *Controller) onPointerDown(e Event) {
	c.ptr = pointer{down: true, button: e.Button, startX: e.X, startY: e.Y, lastX: e.X, lastY: e.Y}
}

func (c *Controller) onPointerMove(e Event) {
	if !c.ptr.down {
		c.hover.Move(e.X, e.Y)
		return
	}
	if !c.ptr.dragging {
		dx, dy := e.X-c.ptr.startX, e.Y-c.ptr.startY
		if math32.Sqrt(dx*dx+dy*dy) < c.opts.DragThreshold {
			return
		}
		c.ptr.dragging = true
		c.hover.Leave()
	}
	dx, dy := e.X-c.ptr.lastX, e.Y-c.ptr.lastY
	c.ptr.lastX, c.ptr.lastY = e.X, e.Y

	controls := c.rig.Controls()
	if c.ptr.button == ButtonLeft && c.rig.View() == camera.View3D {
		controls.Rotate(dx, dy)
	} else {
		controls.Pan(dx, dy)
	}
}

func (c *Controller) onPointerUp(e Event) {
	p := c.ptr
	c.ptr = pointer{}
	if !p.down || p.dragging || p.button != ButtonLeft {
		return
	}
	id, ok := c.Pick(e.X, e.Y)
	if !ok {
		return
	}
	c.log.Info("drillhole picked", "id", id)
	if c.OnSelect != nil {
		c.OnSelect(id)
	}
}

func (c *Controller) onPointerLeave(Event) {
	c.ptr = pointer{}
	c.hover.Leave()
}

func (c *Controller) onWheel(e Event) {
	c.rig.Controls().Dolly(e.Wheel)
}
