package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const rayEpsilon = 1e-7

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay returns a ray with a normalised direction.
func NewRay(origin, dir mgl32.Vec3) Ray {
	if l := dir.Len(); l > rayEpsilon {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectSphere returns the nearest non-negative hit distance against a sphere.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	s := math32.Sqrt(disc)
	t := -b - s
	if t < 0 {
		t = -b + s
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectDisc returns the hit distance against a flat disc (two-sided).
func (r Ray) IntersectDisc(center, normal mgl32.Vec3, radius float32) (float32, bool) {
	denom := normal.Dot(r.Dir)
	if math32.Abs(denom) < rayEpsilon {
		return 0, false
	}
	t := center.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	if d := p.Sub(center); d.Dot(d) > radius*radius {
		return 0, false
	}
	return t, true
}

// IntersectCylinder returns the nearest hit distance against a capped cylinder from a to b.
// A zero-length axis is treated as a sphere of the same radius.
func (r Ray) IntersectCylinder(a, b mgl32.Vec3, radius float32) (float32, bool) {
	axis := b.Sub(a)
	length := axis.Len()
	if length < rayEpsilon {
		return r.IntersectSphere(a, radius)
	}
	u := axis.Mul(1 / length)

	best := float32(-1)
	consider := func(t float32) {
		if t >= 0 && (best < 0 || t < best) {
			best = t
		}
	}

	// Side wall: remove the axial component of direction and origin offset.
	oc := r.Origin.Sub(a)
	dPerp := r.Dir.Sub(u.Mul(r.Dir.Dot(u)))
	oPerp := oc.Sub(u.Mul(oc.Dot(u)))
	qa := dPerp.Dot(dPerp)
	if qa > rayEpsilon {
		qb := 2 * dPerp.Dot(oPerp)
		qc := oPerp.Dot(oPerp) - radius*radius
		disc := qb*qb - 4*qa*qc
		if disc >= 0 {
			s := math32.Sqrt(disc)
			for _, t := range [2]float32{(-qb - s) / (2 * qa), (-qb + s) / (2 * qa)} {
				h := r.At(t).Sub(a).Dot(u)
				if h >= 0 && h <= length {
					consider(t)
				}
			}
		}
	}

	// End caps.
	if t, ok := r.IntersectDisc(a, u, radius); ok {
		consider(t)
	}
	if t, ok := r.IntersectDisc(b, u, radius); ok {
		consider(t)
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// IntersectTriangle returns the hit distance against triangle (v0, v1, v2), two-sided
// (Moller-Trumbore).
func (r Ray) IntersectTriangle(v0, v1, v2 mgl32.Vec3) (float32, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
