package geom

import (
	"math"

	"drillview/internal/project"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBox returns an inverted box that any Extend call will replace.
func EmptyBox() Box {
	return Box{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Empty reports whether the box contains no points.
func (b Box) Empty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows the box to include p.
func (b *Box) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Center returns the box center.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Expand returns the box grown by margin on every side.
func (b Box) Expand(margin float32) Box {
	m := mgl32.Vec3{margin, margin, margin}
	return Box{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Contains reports whether p lies inside the box (inclusive).
func (b Box) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Bounds returns the box over the top and bottom points of all holes.
// ok is false for an empty list; callers must not refit a camera in that case.
func Bounds(holes []project.Drillhole) (b Box, ok bool) {
	if len(holes) == 0 {
		return Box{}, false
	}
	b = EmptyBox()
	for _, h := range holes {
		top, bottom := Trace(h)
		b.Extend(top)
		b.Extend(bottom)
	}
	return b, true
}
