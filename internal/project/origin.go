package project

import "math"

// OriginStep is the grid the local origin snaps to. Survey coordinates (UTM eastings and
// northings in the millions) are shifted by a multiple of it so the float32 scene stays within
// a few kilometres of zero; data already near zero keeps a zero origin.
const OriginStep = 10000

// Origin returns the local origin for holes: the centre of their collar extents snapped to
// OriginStep. It is the zero vector for an empty list.
func Origin(holes []Drillhole) Vec3 {
	if len(holes) == 0 {
		return Vec3{}
	}
	low, high := holes[0].Collar, holes[0].Collar
	for _, h := range holes[1:] {
		c := h.Collar
		low = Vec3{X: math.Min(low.X, c.X), Y: math.Min(low.Y, c.Y), Z: math.Min(low.Z, c.Z)}
		high = Vec3{X: math.Max(high.X, c.X), Y: math.Max(high.Y, c.Y), Z: math.Max(high.Z, c.Z)}
	}
	return Vec3{X: snap((low.X + high.X) / 2), Y: snap((low.Y + high.Y) / 2), Z: snap((low.Z + high.Z) / 2)}
}

func snap(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v/OriginStep) * OriginStep
}

// Shift returns copies of holes with every collar moved by -origin. The subtraction happens in
// float64, before geometry code narrows positions to float32.
func Shift(holes []Drillhole, origin Vec3) []Drillhole {
	if holes == nil {
		return nil
	}
	out := make([]Drillhole, len(holes))
	for i, h := range holes {
		h.Collar = h.Collar.Sub(origin)
		out[i] = h
	}
	return out
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}
