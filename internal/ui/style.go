package ui

import (
	"drillview/internal/theme"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Style holds resolved values used for drawing panels and their text.
type Style struct {
	Background rl.Color
	Border     rl.Color
	Text       rl.Color
	Title      rl.Color
	FontSize   float32
	LineGap    float32
	Padding    float32
	Spacing    float32
}

// DefaultStyle returns the light theme style.
func DefaultStyle() Style {
	return StyleFromTheme(theme.Light())
}

// StyleFromTheme maps the panel tokens of a theme onto a Style. Titles use the selection color.
func StyleFromTheme(t theme.Theme) Style {
	return Style{
		Background: Color(t.PanelBackground),
		Border:     Color(t.PanelBorder),
		Text:       Color(t.Text),
		Title:      Color(t.Selection),
		FontSize:   18,
		LineGap:    4,
		Padding:    10,
		Spacing:    1,
	}
}

// Color converts a theme color to a raylib color.
func Color(c theme.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
