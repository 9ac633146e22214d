// Package terrain builds the optional ground surface drawn under the drillholes. Heights come from
// the collar elevations, interpolated across a regular grid by inverse distance weighting, with a
// small amount of deterministic value noise so flat projects still read as ground.
package terrain

import (
	"drillview/internal/geom"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Options controls heightfield generation.
// Resolution is the number of cells along the longer horizontal side.
// Padding is added around the data bounds on X/Z, as a fraction of the larger horizontal span.
// Power is the inverse distance weighting exponent.
// Roughness is the amplitude of the noise layer in world units; 0 disables it.
// Octaves, Frequency, Lacunarity and Gain shape the noise.
type Options struct {
	Resolution int
	Padding    float32
	Power      float32
	Roughness  float32

	Seed       int32
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Resolution: 48,
		Padding:    0.15,
		Power:      2,
		Roughness:  0,
		Seed:       1,
		Octaves:    4,
		Frequency:  0.08,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Resolution < 2 {
		o.Resolution = d.Resolution
	}
	if o.Padding < 0 {
		o.Padding = d.Padding
	}
	if o.Power <= 0 {
		o.Power = d.Power
	}
	if o.Roughness < 0 {
		o.Roughness = 0
	}
	if o.Octaves <= 0 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	return o
}

// Heightfield is a regular grid of heights on the X/Z plane. Vertex (i, j) sits at
// (Origin.X + i*CellX, Heights[j*(Cols+1)+i], Origin.Y + j*CellZ); Origin holds X and Z.
type Heightfield struct {
	Origin  mgl32.Vec2
	CellX   float32
	CellZ   float32
	Cols    int
	Rows    int
	Heights []float32
}

// Generate builds a heightfield over box, padded on X/Z, interpolating the collar elevations.
// It reports false when there are no collars or the box is empty.
func Generate(collars []mgl32.Vec3, box geom.Box, opts Options) (*Heightfield, bool) {
	if len(collars) == 0 || box.Empty() {
		return nil, false
	}
	opts = opts.withDefaults()

	size := box.Size()
	span := max(size.X(), size.Z(), 1)
	pad := span * opts.Padding
	minX, maxX := box.Min.X()-pad, box.Max.X()+pad
	minZ, maxZ := box.Min.Z()-pad, box.Max.Z()+pad
	w, d := maxX-minX, maxZ-minZ

	cols, rows := opts.Resolution, opts.Resolution
	if w >= d {
		rows = max(1, int(math32.Ceil(float32(opts.Resolution)*d/w)))
	} else {
		cols = max(1, int(math32.Ceil(float32(opts.Resolution)*w/d)))
	}

	hf := &Heightfield{
		Origin:  mgl32.Vec2{minX, minZ},
		CellX:   w / float32(cols),
		CellZ:   d / float32(rows),
		Cols:    cols,
		Rows:    rows,
		Heights: make([]float32, (cols+1)*(rows+1)),
	}
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			x := hf.Origin.X() + float32(i)*hf.CellX
			z := hf.Origin.Y() + float32(j)*hf.CellZ
			h := Interpolate(collars, x, z, opts.Power)
			if opts.Roughness > 0 {
				n := fractalValueNoise2D(float32(i)*opts.Frequency, float32(j)*opts.Frequency, opts.Seed, opts.Octaves, opts.Lacunarity, opts.Gain)
				h += (n - 0.5) * opts.Roughness
			}
			hf.Heights[j*(cols+1)+i] = h
		}
	}
	return hf, true
}

// Interpolate returns the inverse distance weighted elevation of collars at (x, z).
// A sample that coincides with a collar takes that collar's elevation exactly.
func Interpolate(collars []mgl32.Vec3, x, z, power float32) float32 {
	var sum, weights float32
	for _, c := range collars {
		dx, dz := c.X()-x, c.Z()-z
		d2 := dx*dx + dz*dz
		if d2 < 1e-8 {
			return c.Y()
		}
		w := 1 / math32.Pow(d2, power/2)
		sum += w * c.Y()
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return sum / weights
}

// Vertex returns the world position of grid vertex (i, j).
func (hf *Heightfield) Vertex(i, j int) mgl32.Vec3 {
	return mgl32.Vec3{
		hf.Origin.X() + float32(i)*hf.CellX,
		hf.Heights[j*(hf.Cols+1)+i],
		hf.Origin.Y() + float32(j)*hf.CellZ,
	}
}

// Triangles returns two triangles per cell, wound counter-clockwise seen from above.
func (hf *Heightfield) Triangles() [][3]mgl32.Vec3 {
	if hf == nil {
		return nil
	}
	out := make([][3]mgl32.Vec3, 0, hf.Cols*hf.Rows*2)
	for j := 0; j < hf.Rows; j++ {
		for i := 0; i < hf.Cols; i++ {
			a := hf.Vertex(i, j)
			b := hf.Vertex(i+1, j)
			c := hf.Vertex(i+1, j+1)
			d := hf.Vertex(i, j+1)
			out = append(out, [3]mgl32.Vec3{a, d, c}, [3]mgl32.Vec3{a, c, b})
		}
	}
	return out
}

// fractalValueNoise2D is layered smooth value noise. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int32, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude := float32(1)
	freq := float32(1)
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, seed+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps lattice coordinates to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
