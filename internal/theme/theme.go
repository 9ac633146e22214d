// Package theme holds the named colors the viewport draws with and resolves scene roles against
// them. Themes are plain YAML files of hex colors layered over the light or dark defaults.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"drillview/internal/scene"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGBA color. In YAML it is written as "#rrggbb" or "#rrggbbaa".
type Color struct {
	R, G, B, A uint8
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7 && len(s) != 9) {
		return Color{}, fmt.Errorf("parse color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	alpha := uint8(255)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = a
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustHex is ParseHex for literals.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithOpacity returns c with alpha set from an opacity in [0, 1].
func (c Color) WithOpacity(opacity float32) Color {
	opacity = min(max(opacity, 0), 1)
	c.A = uint8(opacity*255 + 0.5)
	return c
}

// Blend mixes c toward o by t in Lab space, keeping c's alpha.
func (c Color) Blend(o Color, t float64) Color {
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(o.R) / 255, G: float64(o.G) / 255, B: float64(o.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return Color{R: r, G: g, B: bl, A: c.A}
}

// MarshalYAML writes c as a hex string.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML reads a hex string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Theme is the set of tokens the viewport needs.
type Theme struct {
	Name            string `yaml:"name"`
	Dark            bool   `yaml:"dark"`
	Background      Color  `yaml:"background"`
	Grid            Color  `yaml:"grid"`
	GridMajor       Color  `yaml:"grid_major"`
	Body            Color  `yaml:"body"`
	Collar          Color  `yaml:"collar"`
	Disc            Color  `yaml:"disc"`
	Selection       Color  `yaml:"selection"`
	Terrain         Color  `yaml:"terrain"`
	PanelBackground Color  `yaml:"panel_background"`
	PanelBorder     Color  `yaml:"panel_border"`
	Text            Color  `yaml:"text"`
}

// Light returns the default light theme.
func Light() Theme {
	return Theme{
		Name:            "light",
		Background:      MustHex("#f4f5f7"),
		Grid:            MustHex("#c9ced6"),
		GridMajor:       MustHex("#9aa3af"),
		Body:            MustHex("#3b6ea5"),
		Collar:          MustHex("#1f2937"),
		Disc:            MustHex("#60a5fa"),
		Selection:       MustHex("#f59e0b"),
		Terrain:         MustHex("#a3b18a"),
		PanelBackground: MustHex("#ffffffee"),
		PanelBorder:     MustHex("#cbd5e1"),
		Text:            MustHex("#111827"),
	}
}

// Dark returns the default dark theme.
func Dark() Theme {
	return Theme{
		Name:            "dark",
		Dark:            true,
		Background:      MustHex("#111418"),
		Grid:            MustHex("#2a2f37"),
		GridMajor:       MustHex("#444c58"),
		Body:            MustHex("#7fb3e6"),
		Collar:          MustHex("#e5e7eb"),
		Disc:            MustHex("#3b82f6"),
		Selection:       MustHex("#fbbf24"),
		Terrain:         MustHex("#4d5c3f"),
		PanelBackground: MustHex("#1c2128ee"),
		PanelBorder:     MustHex("#3a424d"),
		Text:            MustHex("#e5e7eb"),
	}
}

// Named returns a default theme by name.
func Named(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return Light(), true
	case "dark":
		return Dark(), true
	}
	return Theme{}, false
}

// Load reads a theme file. Keys the file leaves out keep the light or dark default chosen by
// its "dark" flag. A missing file is returned as an error matching fs.ErrNotExist.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a theme document.
func Parse(data []byte) (Theme, error) {
	var probe struct {
		Dark bool `yaml:"dark"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	t := Light()
	if probe.Dark {
		t = Dark()
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	return t, nil
}

// Resolve picks a theme by name, or loads it from a file when the name is a path.
func Resolve(nameOrPath string) (Theme, error) {
	if t, ok := Named(nameOrPath); ok {
		return t, nil
	}
	t, err := Load(nameOrPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Light(), fmt.Errorf("unknown theme %q: %w", nameOrPath, err)
	}
	return t, err
}

// selectedDiscMix is how far a selected hole's disc moves toward the selection color.
const selectedDiscMix = 0.6

// Color returns the draw color of a scene role. Selected drillhole parts take the selection
// color; opacity is applied by the caller from the node.
func (t Theme) Color(role scene.Role, selected bool) Color {
	switch role {
	case scene.RoleBody:
		if selected {
			return t.Selection
		}
		return t.Body
	case scene.RoleCollar:
		if selected {
			return t.Selection
		}
		return t.Collar
	case scene.RoleDisc:
		if selected {
			return t.Disc.Blend(t.Selection, selectedDiscMix)
		}
		return t.Disc
	case scene.RoleGrid:
		return t.Grid
	case scene.RoleGridMajor:
		return t.GridMajor
	case scene.RoleTerrain:
		return t.Terrain
	}
	return t.Text
}
