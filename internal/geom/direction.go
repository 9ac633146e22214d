// Package geom converts drillhole records into world-space geometry.
//
// World space is right-handed and Y-up: X is east, Z is north, Y is up. Direction is the single
// source of truth for hole orientation; meshes, bounds and overlays all go through it.
package geom

import (
	"math"

	"drillview/internal/project"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultAzimuth is used when a hole has no usable azimuth (due north).
	DefaultAzimuth = 0.0
	// DefaultInclination is used when a hole has no usable inclination (vertical down).
	DefaultInclination = -90.0

	degenerateLength = 1e-6
)

// Down is the fallback direction for degenerate orientations.
var Down = mgl32.Vec3{0, -1, 0}

// NormalizeAzimuthValue wraps an azimuth into [0, 360). Non-finite values become DefaultAzimuth.
func NormalizeAzimuthValue(az float64) float64 {
	if math.IsNaN(az) || math.IsInf(az, 0) {
		return DefaultAzimuth
	}
	a := math.Mod(az, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// ClampInclinationValue clamps an inclination into [-90, 0] (down-only convention).
// Non-finite values become DefaultInclination.
func ClampInclinationValue(inc float64) float64 {
	if math.IsNaN(inc) || math.IsInf(inc, 0) {
		return DefaultInclination
	}
	return math.Max(-90, math.Min(0, inc))
}

// NormalizeAzimuth is NormalizeAzimuthValue for an optional value; nil gives DefaultAzimuth.
func NormalizeAzimuth(az *float64) float64 {
	if az == nil {
		return DefaultAzimuth
	}
	return NormalizeAzimuthValue(*az)
}

// ClampInclination is ClampInclinationValue for an optional value; nil gives DefaultInclination.
func ClampInclination(inc *float64) float64 {
	if inc == nil {
		return DefaultInclination
	}
	return ClampInclinationValue(*inc)
}

// DirectionFromAngles returns the downhole unit vector for an azimuth and inclination in degrees.
// Inputs are normalised first, so any value is accepted.
func DirectionFromAngles(az, inc float64) mgl32.Vec3 {
	azRad := float32(NormalizeAzimuthValue(az) * math.Pi / 180)
	incRad := float32(ClampInclinationValue(inc) * math.Pi / 180)

	h := math32.Cos(-incRad)
	if math32.Abs(h) < degenerateLength {
		// cos(pi/2) is not exactly zero in float32; keep vertical holes exactly vertical.
		h = 0
	}
	d := mgl32.Vec3{
		h * math32.Sin(azRad),
		-math32.Sin(-incRad),
		h * math32.Cos(azRad),
	}
	l := d.Len()
	if l < degenerateLength || math32.IsNaN(l) {
		return Down
	}
	return d.Mul(1 / l)
}

// Direction returns the downhole unit vector of a hole. y is always <= 0.
func Direction(h project.Drillhole) mgl32.Vec3 {
	return DirectionFromAngles(NormalizeAzimuth(h.Azimuth), ClampInclination(h.Inclination))
}

// Collar returns the collar as a float32 world position.
func Collar(h project.Drillhole) mgl32.Vec3 {
	return mgl32.Vec3{float32(h.Collar.X), float32(h.Collar.Y), float32(h.Collar.Z)}
}

// Length returns the usable hole length: depth when positive and finite, otherwise 0.
func Length(h project.Drillhole) float32 {
	if math.IsNaN(h.Depth) || math.IsInf(h.Depth, 0) || h.Depth <= 0 {
		return 0
	}
	return float32(h.Depth)
}

// Bottom returns the end-of-hole position: collar + direction * max(0, depth).
func Bottom(h project.Drillhole) mgl32.Vec3 {
	return Collar(h).Add(Direction(h).Mul(Length(h)))
}

// Trace returns the collar and bottom of a hole.
func Trace(h project.Drillhole) (top, bottom mgl32.Vec3) {
	top = Collar(h)
	return top, top.Add(Direction(h).Mul(Length(h)))
}
