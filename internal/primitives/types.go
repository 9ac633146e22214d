package primitives

// Detail controls mesh resolution of the shared primitives.
type Detail struct {
	CylinderSlices int
	SphereRings    int
	SphereSlices   int
	DiscSides      int
}

// DefaultDetail is enough for holes a few pixels wide without wasting vertices on hundreds of them.
func DefaultDetail() Detail {
	return Detail{CylinderSlices: 12, SphereRings: 12, SphereSlices: 16, DiscSides: 32}
}

func (d Detail) withDefaults() Detail {
	def := DefaultDetail()
	if d.CylinderSlices < 3 {
		d.CylinderSlices = def.CylinderSlices
	}
	if d.SphereRings < 3 {
		d.SphereRings = def.SphereRings
	}
	if d.SphereSlices < 3 {
		d.SphereSlices = def.SphereSlices
	}
	if d.DiscSides < 3 {
		d.DiscSides = def.DiscSides
	}
	return d
}
