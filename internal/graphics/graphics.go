// Package graphics owns the raylib window and the per-frame loop that drives the viewer's frame
// queue.
package graphics

import (
	"context"
	"log/slog"

	"drillview/internal/config"
	"drillview/internal/frame"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window is an open raylib window.
type Window struct {
	cfg  config.Window
	open bool
}

// Open creates the window. A fullscreen window takes the size of the primary monitor.
// ESC does not quit; close via the window button or by cancelling the Run context.
func Open(title string, cfg config.Window, log *slog.Logger) *Window {
	if log != nil {
		rl.SetTraceLogCallback(func(level int, msg string) {
			log.Log(context.Background(), traceLevel(rl.TraceLogLevel(level)), msg, "source", "raylib")
		})
	}
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = rl.GetMonitorWidth(0), rl.GetMonitorHeight(0)
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	return &Window{cfg: cfg, open: true}
}

// traceLevel maps raylib's trace levels onto slog levels.
func traceLevel(l rl.TraceLogLevel) slog.Level {
	switch {
	case l >= rl.LogError:
		return slog.LevelError
	case l == rl.LogWarning:
		return slog.LevelWarn
	case l == rl.LogInfo:
		return slog.LevelDebug
	}
	return slog.LevelDebug - 4
}

// Run is the main loop. Each frame it calls update (input, reloads), then inside the drawing
// pass flushes queue, which runs the viewer's frame callbacks, and finally calls overlay (2D
// on top). It returns when the window is closed or ctx is done.
func (w *Window) Run(ctx context.Context, queue *frame.Queue, update, overlay func()) {
	for w.open && !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		if update != nil {
			update()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		queue.Flush()
		if overlay != nil {
			overlay()
		}
		rl.EndDrawing()
	}
}

// Close closes the window. Calling it twice is safe.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.open = false
	rl.CloseWindow()
}
