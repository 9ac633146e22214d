package scene

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"drillview/internal/geom"
	"drillview/internal/project"
	"drillview/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// BodyRadius is the radius of a drillhole cylinder.
	BodyRadius = 0.6
	// MinBodyLength keeps zero-depth holes visible and pickable.
	MinBodyLength = 1e-3
	// CollarRadius is the radius of the collar marker sphere.
	CollarRadius = 1.2
	// DiscRadius is the radius of the translucent collar disc.
	DiscRadius = 3

	DiscOpacityDark  = 0.35
	DiscOpacityLight = 0.55
	TerrainOpacity   = 0.45

	// Grid used when there is no data to size it from.
	defaultGridExtent = 50
	defaultGridStep   = 10
	gridDivisions     = 10
	gridMajorEvery    = 5
)

// Options are the display toggles that change the scene's geometry.
type Options struct {
	ShowGrid    bool
	ShowTerrain bool
	Dark        bool
	Terrain     terrain.Options
}

// Builder owns the scene root and its three groups and rebuilds them when the input changes.
// It never touches cameras.
type Builder struct {
	Root       *Node
	Drillholes *Node
	Grid       *Node
	Terrain    *Node

	signature uint64
	synced    bool
	holes     map[string]*Node
}

// NewBuilder returns a builder with empty groups.
func NewBuilder() *Builder {
	b := &Builder{Root: NewGroup("root")}
	b.Drillholes = b.Root.Add(NewGroup("drillholes"))
	b.Grid = b.Root.Add(NewGroup("grid"))
	b.Terrain = b.Root.Add(NewGroup("terrain"))
	return b
}

// Sync rebuilds every group when the signature of holes and opts differs from the last sync.
// It reports whether a rebuild happened.
func (b *Builder) Sync(holes []project.Drillhole, opts Options) bool {
	if b == nil {
		return false
	}
	sig := Signature(holes, opts)
	if b.synced && sig == b.signature {
		return false
	}
	b.rebuild(holes, opts)
	b.signature, b.synced = sig, true
	return true
}

// Signature hashes everything the scene geometry depends on: ids, order, collar, depth,
// normalised angles, the display toggles and the terrain noise settings.
func Signature(holes []project.Drillhole, opts Options) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putBool := func(v bool) {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(len(holes)))
	h.Write(buf[:])
	for _, d := range holes {
		h.Write([]byte(d.ID))
		h.Write([]byte{0})
		putFloat(d.Collar.X)
		putFloat(d.Collar.Y)
		putFloat(d.Collar.Z)
		putFloat(float64(geom.Length(d)))
		putFloat(geom.NormalizeAzimuth(d.Azimuth))
		putFloat(geom.ClampInclination(d.Inclination))
	}
	putBool(opts.ShowGrid)
	putBool(opts.ShowTerrain)
	putBool(opts.Dark)
	putFloat(float64(opts.Terrain.Roughness))
	putFloat(float64(opts.Terrain.Seed))
	return h.Sum64()
}

// HoleGroup returns the group built for id.
func (b *Builder) HoleGroup(id string) (*Node, bool) {
	if b == nil {
		return nil, false
	}
	n, ok := b.holes[id]
	return n, ok
}

func (b *Builder) rebuild(holes []project.Drillhole, opts Options) {
	b.Drillholes.Clear()
	b.Grid.Clear()
	b.Terrain.Clear()
	b.holes = make(map[string]*Node, len(holes))

	for _, h := range holes {
		g := b.Drillholes.Add(DrillholeGroup(h, opts.Dark))
		if _, dup := b.holes[h.ID]; !dup {
			b.holes[h.ID] = g
		}
	}

	box, ok := geom.Bounds(holes)
	if opts.ShowGrid {
		b.Grid.Add(GridLines(box, ok))
	}
	if opts.ShowTerrain && ok {
		collars := make([]mgl32.Vec3, 0, len(holes))
		for _, h := range holes {
			collars = append(collars, geom.Collar(h))
		}
		if hf, ok := terrain.Generate(collars, box, opts.Terrain); ok {
			leaf := NewLeaf("terrain", Shape{Kind: ShapeTriangles, Triangles: hf.Triangles()}, RoleTerrain)
			leaf.Opacity = TerrainOpacity
			b.Terrain.Add(leaf)
		}
	}
}

// DrillholeGroup builds the tagged group for one hole: a body cylinder from collar along the hole
// direction, a collar sphere, and a horizontal collar disc.
func DrillholeGroup(h project.Drillhole, dark bool) *Node {
	top := geom.Collar(h)
	length := max(geom.Length(h), MinBodyLength)
	bottom := top.Add(geom.Direction(h).Mul(length))

	g := NewGroup(h.ID)
	g.Tag = &Tag{ID: h.ID, Kind: KindDrillhole}

	body := g.Add(NewLeaf("body", Shape{Kind: ShapeCylinder, A: top, B: bottom, Radius: BodyRadius}, RoleBody))
	body.Tag = &Tag{ID: h.ID, Kind: KindDrillhole}

	collar := g.Add(NewLeaf("collar", Shape{Kind: ShapeSphere, A: top, Radius: CollarRadius}, RoleCollar))
	collar.Tag = &Tag{ID: h.ID, Kind: KindCollar}

	disc := g.Add(NewLeaf("disc", Shape{Kind: ShapeDisc, A: top, Normal: mgl32.Vec3{0, 1, 0}, Radius: DiscRadius}, RoleDisc))
	disc.Tag = &Tag{ID: h.ID, Kind: KindCollar}
	disc.Opacity = DiscOpacityLight
	if dark {
		disc.Opacity = DiscOpacityDark
	}
	return g
}

// GridStep returns the 1-2-5 x 10^n step that divides span into about gridDivisions cells.
func GridStep(span float32) float32 {
	if !(span > 0) || math.IsInf(float64(span), 0) {
		return defaultGridStep
	}
	raw := float64(span) / gridDivisions
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return float32(m * mag)
		}
	}
	return float32(10 * mag)
}

// GridLines returns the reference grid on the horizontal plane at the top of the data. Without
// data it is a fixed grid around the origin at y=0.
func GridLines(box geom.Box, ok bool) *Node {
	minX, maxX := float32(-defaultGridExtent), float32(defaultGridExtent)
	minZ, maxZ := minX, maxX
	step := float32(defaultGridStep)
	var y float32
	if ok && !box.Empty() {
		size := box.Size()
		step = GridStep(max(size.X(), size.Z()))
		minX = (floor(box.Min.X()/step) - 1) * step
		maxX = (ceil(box.Max.X()/step) + 1) * step
		minZ = (floor(box.Min.Z()/step) - 1) * step
		maxZ = (ceil(box.Max.Z()/step) + 1) * step
		y = box.Max.Y()
	}

	var minor, major []Segment
	for i := int(floor(minX / step)); float32(i)*step <= maxX+step/2; i++ {
		x := float32(i) * step
		s := Segment{A: mgl32.Vec3{x, y, minZ}, B: mgl32.Vec3{x, y, maxZ}}
		if i%gridMajorEvery == 0 {
			major = append(major, s)
		} else {
			minor = append(minor, s)
		}
	}
	for i := int(floor(minZ / step)); float32(i)*step <= maxZ+step/2; i++ {
		z := float32(i) * step
		s := Segment{A: mgl32.Vec3{minX, y, z}, B: mgl32.Vec3{maxX, y, z}}
		if i%gridMajorEvery == 0 {
			major = append(major, s)
		} else {
			minor = append(minor, s)
		}
	}

	g := NewGroup("grid")
	g.Add(NewLeaf("minor", Shape{Kind: ShapeLines, Lines: minor}, RoleGrid))
	g.Add(NewLeaf("major", Shape{Kind: ShapeLines, Lines: major}, RoleGridMajor))
	return g
}

func floor(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil(v float32) float32  { return float32(math.Ceil(float64(v))) }
