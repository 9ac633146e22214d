package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime debugging features (FPS, heap, viewer status). All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// Status, when set, returns a one-line summary of the viewer drawn under the counters.
	Status       func() string
	// Tail, when set, returns recent log lines drawn under the status line.
	Tail         func() []string
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	color        rl.Color
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStatus   string
	lastTail     []string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{color: rl.Green}
}

// SetColor sets the text color, e.g. to stay readable on a light background.
func (d *Debug) SetColor(c rl.Color) {
	d.color = c
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetFont sets the font used to draw FPS/Mem (e.g. same as UI). Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders any enabled debug overlays. Call after the scene and overlays in the draw loop.
// FPS is drawn at the top-right when ShowFPS is true, memory (heap alloc) under it when
// ShowMemAlloc is true, then the Status line.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	if d.Status != nil && d.lastStatus == "" {
		update = true
	}

	y := int32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, y)
		y += fpsLineHeight
	}
	if d.Status != nil {
		if update {
			d.lastStatus = d.Status()
		}
		d.drawRight(d.lastStatus, y)
		y += fpsLineHeight
	}
	if d.Tail != nil {
		if update {
			d.lastTail = d.Tail()
		}
		for _, line := range d.lastTail {
			d.drawRight(line, y)
			y += fpsLineHeight
		}
	}
}

// drawRight draws text right-aligned at row y.
func (d *Debug) drawRight(text string, y int32) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(fpsPadding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, d.color)
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, d.color)
}
