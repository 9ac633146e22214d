// Package scene is the viewer's scene graph: a tree of nodes carrying shapes and drillhole tags,
// rebuilt from the drillhole list by Builder and walked by the renderer and by picking.
package scene

import (
	"sort"

	"drillview/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is what part of a drillhole a tagged node represents.
type Kind string

const (
	KindDrillhole Kind = "drillhole"
	KindCollar    Kind = "collar"
)

// Tag links a node back to the drillhole it was built from.
type Tag struct {
	ID   string
	Kind Kind
}

// Role names the theme color a node is drawn with. The renderer resolves roles against the
// current theme and selection, so selection never needs new geometry.
type Role int

const (
	RoleNone Role = iota
	RoleBody
	RoleCollar
	RoleDisc
	RoleGrid
	RoleGridMajor
	RoleTerrain
)

// ShapeKind selects which Shape fields are meaningful.
type ShapeKind int

const (
	ShapeGroup ShapeKind = iota
	ShapeCylinder
	ShapeSphere
	ShapeDisc
	ShapeLines
	ShapeTriangles
)

// Segment is one line of a line set.
type Segment struct {
	A, B mgl32.Vec3
}

// Shape is the world-space geometry of a leaf node.
// Cylinder: A to B with Radius. Sphere: center A with Radius. Disc: center A, Normal, Radius.
type Shape struct {
	Kind      ShapeKind
	A, B      mgl32.Vec3
	Normal    mgl32.Vec3
	Radius    float32
	Lines     []Segment
	Triangles [][3]mgl32.Vec3
}

// Node is one element of the scene tree. Groups have no shape; leaves have no children.
type Node struct {
	Name     string
	Tag      *Tag
	Shape    Shape
	Role     Role
	Opacity  float32
	Hidden   bool
	Parent   *Node
	Children []*Node
}

// NewGroup returns an empty group node.
func NewGroup(name string) *Node {
	return &Node{Name: name, Opacity: 1}
}

// NewLeaf returns a shape node.
func NewLeaf(name string, shape Shape, role Role) *Node {
	return &Node{Name: name, Shape: shape, Role: role, Opacity: 1}
}

// Add appends child, detaching it from any previous parent.
func (n *Node) Add(child *Node) *Node {
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// Remove detaches child if it is a direct child of n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Clear detaches all children.
func (n *Node) Clear() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
}

// Walk visits n and its descendants depth first. Returning false skips a node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Hit is one ray intersection with a leaf.
type Hit struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// Intersect casts ray against n and all visible descendants and returns the hits nearest first.
func Intersect(n *Node, ray geom.Ray) []Hit {
	var hits []Hit
	n.Walk(func(node *Node) bool {
		if node.Hidden {
			return false
		}
		if t, ok := node.intersect(ray); ok {
			hits = append(hits, Hit{Node: node, Distance: t, Point: ray.At(t)})
		}
		return true
	})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (n *Node) intersect(ray geom.Ray) (float32, bool) {
	s := n.Shape
	switch s.Kind {
	case ShapeCylinder:
		return ray.IntersectCylinder(s.A, s.B, s.Radius)
	case ShapeSphere:
		return ray.IntersectSphere(s.A, s.Radius)
	case ShapeDisc:
		return ray.IntersectDisc(s.A, s.Normal, s.Radius)
	case ShapeTriangles:
		best, found := float32(0), false
		for _, tri := range s.Triangles {
			if t, ok := ray.IntersectTriangle(tri[0], tri[1], tri[2]); ok && (!found || t < best) {
				best, found = t, true
			}
		}
		return best, found
	}
	return 0, false
}

// FindTag walks from n up through its ancestors and returns the first tag found.
func FindTag(n *Node) (Tag, bool) {
	for ; n != nil; n = n.Parent {
		if n.Tag != nil && n.Tag.ID != "" {
			return *n.Tag, true
		}
	}
	return Tag{}, false
}
