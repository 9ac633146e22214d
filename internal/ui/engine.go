package ui

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fontLoadSize is the size glyphs are rasterised at; drawing scales from it.
const fontLoadSize = 32

// Engine holds the current style and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// If font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default font is used.
type Engine struct {
	style Style
	nodes []*Node
	font  rl.Font
}

// New creates an engine with the default style and no nodes.
func New() *Engine {
	return &Engine{style: DefaultStyle()}
}

// SetStyle replaces the style, e.g. after a theme change.
func (e *Engine) SetStyle(s Style) {
	e.style = s
}

// Style returns the current style.
func (e *Engine) Style() Style {
	return e.style
}

// glyphs are the codepoints loaded from a TTF: printable ASCII plus the degree sign used by
// the angle readouts.
func glyphs() []rune {
	out := make([]rune, 0, 96)
	for r := rune(32); r < 127; r++ {
		out = append(out, r)
	}
	return append(out, '°', '·')
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, fontLoadSize, glyphs())
	if !rl.IsFontValid(f) || f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	e.Unload()
	e.font = f
	return nil
}

// Unload releases the loaded font, if any.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = rl.Font{}
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
}

// Measure returns the width and height of text in the current style.
func (e *Engine) Measure(text string) (float32, float32) {
	if e.font.Texture.ID != 0 {
		v := rl.MeasureTextEx(e.font, text, e.style.FontSize, e.style.Spacing)
		return v.X, v.Y
	}
	return float32(rl.MeasureText(text, int32(e.style.FontSize))), e.style.FontSize
}

// Draw draws all nodes: panels as a filled rectangle with a 1px border, labels and titles as text.
func (e *Engine) Draw() {
	for _, n := range e.nodes {
		switch n.Type {
		case TypePanel:
			if e.style.Background.A > 0 {
				rl.DrawRectangleRec(n.Bounds, e.style.Background)
			}
			if e.style.Border.A > 0 {
				rl.DrawRectangleLinesEx(n.Bounds, 1, e.style.Border)
			}
		case TypeLabel, TypeTitle:
			if n.Text == "" {
				continue
			}
			c := e.style.Text
			if n.Type == TypeTitle {
				c = e.style.Title
			}
			e.drawText(n.Text, n.Bounds.X, n.Bounds.Y, c)
		}
	}
}

func (e *Engine) drawText(text string, x, y float32, c rl.Color) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, text, rl.NewVector2(x, y), e.style.FontSize, e.style.Spacing, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), int32(e.style.FontSize), c)
}

// Font returns the loaded font; its texture ID is zero when the default font is in use.
func (e *Engine) Font() rl.Font {
	return e.font
}
