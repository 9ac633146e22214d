package theme

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"drillview/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{255, 0, 0, 255}},
		{"#0f0", Color{0, 255, 0, 255}},
		{" #102030 ", Color{16, 32, 48, 255}},
		{"#10203080", Color{16, 32, 48, 128}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "red", "#zzzzzz", "#10203"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
}

func TestHexRoundTrip(t *testing.T) {
	assert.Equal(t, "#3b6ea5", Light().Body.Hex())
	assert.Equal(t, "#ffffffee", Light().PanelBackground.Hex())
}

func TestWithOpacityAndBlend(t *testing.T) {
	c := MustHex("#000000").WithOpacity(0.5)
	assert.Equal(t, uint8(128), c.A)
	assert.Equal(t, uint8(255), c.WithOpacity(7).A)

	black, white := MustHex("#000000"), MustHex("#ffffff")
	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	mid := black.Blend(white, 0.5)
	assert.Greater(t, mid.R, uint8(0))
	assert.Less(t, mid.R, uint8(255))
}

func TestParseOverlaysDefaults(t *testing.T) {
	th, err := Parse([]byte("dark: true\nselection: \"#ff00ff\"\n"))
	require.NoError(t, err)
	assert.True(t, th.Dark)
	assert.Equal(t, Color{255, 0, 255, 255}, th.Selection)
	assert.Equal(t, Dark().Body, th.Body)

	th, err = Parse([]byte("name: custom\n"))
	require.NoError(t, err)
	assert.Equal(t, "custom", th.Name)
	assert.Equal(t, Light().Grid, th.Grid)

	_, err = Parse([]byte("body: notacolor\n"))
	assert.Error(t, err)
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	data, err := yaml.Marshal(Dark())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	th, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, Dark(), th)

	th, err = Resolve("dark")
	require.NoError(t, err)
	assert.True(t, th.Dark)

	_, err = Resolve(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestColorRoles(t *testing.T) {
	th := Light()
	tests := []struct {
		role     scene.Role
		selected bool
		want     Color
	}{
		{scene.RoleBody, false, th.Body},
		{scene.RoleBody, true, th.Selection},
		{scene.RoleCollar, true, th.Selection},
		{scene.RoleGrid, true, th.Grid},
		{scene.RoleGridMajor, false, th.GridMajor},
		{scene.RoleTerrain, false, th.Terrain},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Color(tt.role, tt.selected), "role %v selected %v", tt.role, tt.selected)
	}
	assert.NotEqual(t, th.Disc, th.Color(scene.RoleDisc, true))
}
