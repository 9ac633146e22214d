package viewport

import (
	"drillview/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// AxesSize is the side of the gizmo in pixels.
const AxesSize = 110

const (
	axesMargin    = 8
	axesDistance  = 3.2
	axesTip       = 0.12
	axesLabelSize = 14
	axisLineAlpha = 220
)

var axisColors = [3]rl.Color{
	rl.NewColor(220, 80, 80, axisLineAlpha),
	rl.NewColor(80, 220, 80, axisLineAlpha),
	rl.NewColor(80, 80, 220, axisLineAlpha),
}

// axisLabels name the world axes: X east, Y up, Z north.
var axisLabels = [3]string{"E", "U", "N"}

// Axes draws a small orientation gizmo into its own render target and blits it to the screen.
// The target is created on first draw so that it exists after the window/OpenGL context.
type Axes struct {
	size   int32
	target rl.RenderTexture2D
	loaded bool
}

// NewAxes returns a gizmo of size by size pixels.
func NewAxes(size int32) *Axes {
	return &Axes{size: size}
}

// Draw renders the gizmo with the rotation of cam and places it in the bottom-left corner.
func (a *Axes) Draw(cam camera.Camera, screenH int) {
	if !a.loaded {
		a.target = rl.LoadRenderTexture(a.size, a.size)
		if !rl.IsRenderTextureValid(a.target) {
			return
		}
		a.loaded = true
	}

	// Row 1 of the view matrix is the camera's up vector in world space.
	up := cam.ViewMatrix().Row(1).Vec3()
	gizmo := rl.Camera3D{
		Position:   vec(cam.Forward().Mul(-axesDistance)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         vec(up),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	rl.BeginTextureMode(a.target)
	rl.ClearBackground(rl.Blank)
	rl.SetClipPlanes(0.01, 100)
	rl.BeginMode3D(gizmo)
	for i, ax := range axes {
		rl.DrawLine3D(rl.NewVector3(0, 0, 0), vec(ax), axisColors[i])
		rl.DrawSphere(vec(ax), axesTip, axisColors[i])
	}
	rl.EndMode3D()
	for i, ax := range axes {
		p := rl.GetWorldToScreenEx(vec(ax.Mul(1.3)), gizmo, a.size, a.size)
		rl.DrawText(axisLabels[i], int32(p.X)-axesLabelSize/4, int32(p.Y)-axesLabelSize/2, axesLabelSize, axisColors[i])
	}
	rl.EndTextureMode()

	// Render textures are stored upside down; a negative source height flips them back.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(a.size), Height: -float32(a.size)}
	pos := rl.NewVector2(axesMargin, float32(screenH)-float32(a.size)-axesMargin)
	rl.DrawTextureRec(a.target.Texture, src, pos, rl.White)
}

// Unload releases the render target.
func (a *Axes) Unload() {
	if a.loaded {
		rl.UnloadRenderTexture(a.target)
		a.loaded = false
	}
}
