// Package viewport is the raylib side of the viewer: it draws the scene graph with the shared
// primitive meshes, draws the orientation gizmo and the overlays, and feeds window input to the
// viewer's event bus.
package viewport

import (
	"drillview/internal/camera"
	"drillview/internal/picking"
	"drillview/internal/primitives"
	"drillview/internal/project"
	"drillview/internal/scene"
	"drillview/internal/theme"
	"drillview/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// State is what the renderer reads from the viewer each frame. viewer.Controller satisfies it.
type State interface {
	Selected() string
	Theme() theme.Theme
	Tooltip() picking.Tooltip
	SelectedHole() (project.Drillhole, bool)
	Rect() picking.Rect
}

// lightDir is the direction to the light: high and from the south-east.
var lightDir = [3]float32{0.4, 1, -0.3}

// Renderer implements viewer.Renderer with raylib.
type Renderer struct {
	reg         *primitives.Registry
	state       State
	axes        *Axes
	translucent []*scene.Node
}

// NewRenderer returns a renderer drawing with reg. Attach the viewer state before the first frame.
func NewRenderer(reg *primitives.Registry) *Renderer {
	return &Renderer{reg: reg, axes: NewAxes(AxesSize)}
}

// Attach sets where selection and theme are read from.
func (r *Renderer) Attach(state State) {
	r.state = state
}

func (r *Renderer) current() (theme.Theme, string) {
	if r.state == nil {
		return theme.Light(), ""
	}
	return r.state.Theme(), r.state.Selected()
}

// Camera3D converts a viewer camera to raylib's camera. The orthographic plan camera maps its
// zoomed half-height onto Fovy, which raylib uses as the frustum height.
func Camera3D(cam camera.Camera) rl.Camera3D {
	switch c := cam.(type) {
	case *camera.Perspective:
		return rl.Camera3D{
			Position:   vec(c.Position),
			Target:     vec(c.Target),
			Up:         vec(c.Up),
			Fovy:       c.FovY,
			Projection: rl.CameraPerspective,
		}
	case *camera.Orthographic:
		_, _, bottom, top := c.Frustum()
		return rl.Camera3D{
			Position:   vec(c.Position),
			Target:     vec(c.Target),
			Up:         vec(c.Up),
			Fovy:       top - bottom,
			Projection: rl.CameraOrthographic,
		}
	}
	eye := cam.Eye()
	return rl.Camera3D{
		Position:   vec(eye),
		Target:     vec(eye.Add(cam.Forward())),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// clipPlanes returns the camera's near and far distances.
func clipPlanes(cam camera.Camera) (float32, float32) {
	switch c := cam.(type) {
	case *camera.Perspective:
		return c.Near, c.Far
	case *camera.Orthographic:
		return c.Near, c.Far
	}
	return 0.1, 10000
}

// DrawScene clears to the theme background and draws every visible leaf under root. Opaque
// shapes go first; translucent ones follow without writing depth so that discs and terrain
// never hide holes drawn after them.
func (r *Renderer) DrawScene(cam camera.Camera, root *scene.Node) {
	th, selected := r.current()
	rl.ClearBackground(ui.Color(th.Background))

	near, far := clipPlanes(cam)
	rl.SetClipPlanes(float64(near), float64(far))
	eye := cam.Eye()
	r.reg.SetView([3]float32{eye.X(), eye.Y(), eye.Z()}, lightDir)

	rl.BeginMode3D(Camera3D(cam))
	r.translucent = r.translucent[:0]
	root.Walk(func(n *scene.Node) bool {
		if n.Hidden {
			return false
		}
		if n.Shape.Kind == scene.ShapeGroup {
			return true
		}
		if n.Opacity < 1 {
			r.translucent = append(r.translucent, n)
			return true
		}
		r.drawNode(n, th, selected)
		return true
	})
	if len(r.translucent) > 0 {
		rl.DisableDepthMask()
		for _, n := range r.translucent {
			r.drawNode(n, th, selected)
		}
		rl.EnableDepthMask()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawNode(n *scene.Node, th theme.Theme, selected string) {
	isSelected := false
	if selected != "" {
		if tag, ok := scene.FindTag(n); ok && tag.ID == selected {
			isSelected = true
		}
	}
	col := ui.Color(th.Color(n.Role, isSelected).WithOpacity(n.Opacity))
	s := n.Shape
	switch s.Kind {
	case scene.ShapeCylinder:
		r.reg.DrawCylinder(s.A, s.B, s.Radius, col)
	case scene.ShapeSphere:
		r.reg.DrawSphere(s.A, s.Radius, col)
	case scene.ShapeDisc:
		r.reg.DrawDisc(s.A, s.Normal, s.Radius, col)
	case scene.ShapeLines:
		for _, seg := range s.Lines {
			rl.DrawLine3D(vec(seg.A), vec(seg.B), col)
		}
	case scene.ShapeTriangles:
		rl.DisableBackfaceCulling()
		for _, tri := range s.Triangles {
			rl.DrawTriangle3D(vec(tri[0]), vec(tri[1]), vec(tri[2]), col)
		}
		rl.EnableBackfaceCulling()
	}
}

// DrawAxes draws the orientation gizmo in the bottom-left corner.
func (r *Renderer) DrawAxes(cam camera.Camera) {
	r.axes.Draw(cam, rl.GetScreenHeight())
}

// Unload releases the gizmo target and the primitive meshes.
func (r *Renderer) Unload() {
	r.axes.Unload()
	r.reg.Unload()
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
