package viewport

import (
	"drillview/internal/viewer"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var buttons = []struct {
	rl  rl.MouseButton
	btn viewer.Button
}{
	{rl.MouseButtonLeft, viewer.ButtonLeft},
	{rl.MouseButtonRight, viewer.ButtonRight},
	{rl.MouseButtonMiddle, viewer.ButtonMiddle},
}

var keys = []struct {
	rl  int32
	key viewer.Key
}{
	{rl.KeyF, viewer.KeyFocus},
	{rl.KeyOne, viewer.KeyView3D},
	{rl.KeyKp1, viewer.KeyView3D},
	{rl.KeyTwo, viewer.KeyPlan},
	{rl.KeyKp2, viewer.KeyPlan},
}

// Input polls raylib once per frame and publishes what changed as viewer events.
type Input struct {
	bus      *viewer.Bus
	width    int
	height   int
	x, y     float32
	onScreen bool
}

// NewInput returns a poller that publishes to bus.
func NewInput(bus *viewer.Bus) *Input {
	return &Input{bus: bus}
}

// Poll publishes resize, pointer, wheel and key events for this frame. Call before the frame
// queue is flushed so handlers see the input before the frame draws.
func (in *Input) Poll() {
	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w != in.width || h != in.height || rl.IsWindowResized() {
		in.width, in.height = w, h
		in.bus.Publish(viewer.Event{Kind: viewer.EventResize, Width: float32(w), Height: float32(h)})
	}

	pos := rl.GetMousePosition()
	onScreen := rl.IsCursorOnScreen()
	switch {
	case !onScreen && in.onScreen:
		in.bus.Publish(viewer.Event{Kind: viewer.EventPointerLeave, X: pos.X, Y: pos.Y})
	case onScreen && (pos.X != in.x || pos.Y != in.y):
		in.bus.Publish(viewer.Event{Kind: viewer.EventPointerMove, X: pos.X, Y: pos.Y})
	}
	in.x, in.y, in.onScreen = pos.X, pos.Y, onScreen

	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.rl) && onScreen {
			in.bus.Publish(viewer.Event{Kind: viewer.EventPointerDown, X: pos.X, Y: pos.Y, Button: b.btn})
		}
		if rl.IsMouseButtonReleased(b.rl) {
			in.bus.Publish(viewer.Event{Kind: viewer.EventPointerUp, X: pos.X, Y: pos.Y, Button: b.btn})
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && onScreen {
		in.bus.Publish(viewer.Event{Kind: viewer.EventWheel, X: pos.X, Y: pos.Y, Wheel: wheel})
	}

	for _, k := range keys {
		if rl.IsKeyPressed(k.rl) {
			in.bus.Publish(viewer.Event{Kind: viewer.EventKey, Key: k.key})
		}
	}
}
