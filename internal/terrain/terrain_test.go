package terrain

import (
	"testing"

	"drillview/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	collars := []mgl32.Vec3{{0, 10, 0}, {100, 30, 0}}
	tests := []struct {
		name string
		x, z float32
		want float32
	}{
		{"on first collar", 0, 0, 10},
		{"on second collar", 100, 0, 30},
		{"midway", 50, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Interpolate(collars, tt.x, tt.z, 2), 1e-4)
		})
	}

	// Always within the range of the inputs.
	h := Interpolate(collars, 10, 80, 2)
	assert.GreaterOrEqual(t, h, float32(10))
	assert.LessOrEqual(t, h, float32(30))
}

func TestGenerateCoversPaddedBounds(t *testing.T) {
	collars := []mgl32.Vec3{{0, 5, 0}, {200, 15, 100}}
	box := geom.Box{Min: mgl32.Vec3{0, -100, 0}, Max: mgl32.Vec3{200, 15, 100}}
	hf, ok := Generate(collars, box, DefaultOptions())
	require.True(t, ok)

	assert.Equal(t, 48, hf.Cols)
	assert.Equal(t, 30, hf.Rows)
	assert.Len(t, hf.Heights, (hf.Cols+1)*(hf.Rows+1))

	first := hf.Vertex(0, 0)
	last := hf.Vertex(hf.Cols, hf.Rows)
	assert.Less(t, first.X(), box.Min.X())
	assert.Less(t, first.Z(), box.Min.Z())
	assert.Greater(t, last.X(), box.Max.X())
	assert.Greater(t, last.Z(), box.Max.Z())

	for _, h := range hf.Heights {
		assert.GreaterOrEqual(t, h, float32(5)-1e-3)
		assert.LessOrEqual(t, h, float32(15)+1e-3)
	}
	assert.Len(t, hf.Triangles(), hf.Cols*hf.Rows*2)
}

func TestGenerateEmpty(t *testing.T) {
	_, ok := Generate(nil, geom.Box{Max: mgl32.Vec3{1, 1, 1}}, DefaultOptions())
	assert.False(t, ok)
	_, ok = Generate([]mgl32.Vec3{{}}, geom.EmptyBox(), DefaultOptions())
	assert.False(t, ok)

	var hf *Heightfield
	assert.Nil(t, hf.Triangles())
}

func TestGenerateIsDeterministic(t *testing.T) {
	collars := []mgl32.Vec3{{0, 0, 0}, {50, 0, 50}}
	box := geom.Box{Min: mgl32.Vec3{0, -10, 0}, Max: mgl32.Vec3{50, 0, 50}}
	opts := DefaultOptions()
	opts.Roughness = 2
	a, _ := Generate(collars, box, opts)
	b, _ := Generate(collars, box, opts)
	assert.Equal(t, a.Heights, b.Heights)
	for _, h := range a.Heights {
		assert.InDelta(t, 0, h, 1.0001)
	}
}
