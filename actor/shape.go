package actor

import (
	"math"

	"github.com/akmonengine/proximity/geom"
)

// ShapeType represents the kind of a convex shape
type ShapeType int

const (
	ShapeTypeBall ShapeType = iota
	ShapeTypeCuboid
	ShapeTypeSegment
	ShapeTypePolytope
	ShapeTypeMargin
	ShapeTypeReflection
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeBall:
		return "ball"
	case ShapeTypeCuboid:
		return "cuboid"
	case ShapeTypeSegment:
		return "segment"
	case ShapeTypePolytope:
		return "polytope"
	case ShapeTypeMargin:
		return "margin"
	case ShapeTypeReflection:
		return "reflection"
	}
	return "unknown"
}

// ShapeInterface is the interface that all convex shapes must implement
type ShapeInterface[V geom.Vector[V]] interface {
	Type() ShapeType
	// Support returns the farthest point of the shape along direction, both
	// expressed in the shape's local frame. The direction need not be normalized.
	Support(direction V) V
}

// Ball is centered on the local origin
type Ball[V geom.Vector[V]] struct {
	Radius float64
}

func (b *Ball[V]) Type() ShapeType {
	return ShapeTypeBall
}

func (b *Ball[V]) Support(direction V) V {
	return extrude(direction, b.Radius)
}

// Cuboid represents an axis-aligned box in local space
// The box is defined by its half-extents (half-width, half-height, ...)
type Cuboid[V geom.Vector[V]] struct {
	HalfExtents V
}

func (c *Cuboid[V]) Type() ShapeType {
	return ShapeTypeCuboid
}

func (c *Cuboid[V]) Support(direction V) V {
	support := c.HalfExtents
	for i := 0; i < len(support); i++ {
		if direction[i] < 0 {
			support[i] = -support[i]
		}
	}

	return support
}

// Segment is the set of points between A and B
type Segment[V geom.Vector[V]] struct {
	A, B V
}

func (s *Segment[V]) Type() ShapeType {
	return ShapeTypeSegment
}

func (s *Segment[V]) Support(direction V) V {
	if s.B.Dot(direction) > s.A.Dot(direction) {
		return s.B
	}

	return s.A
}

// Polytope is the convex hull of a set of vertices
// Vertices need not be in any order, nor all be on the hull.
type Polytope[V geom.Vector[V]] struct {
	Vertices []V
}

func (p *Polytope[V]) Type() ShapeType {
	return ShapeTypePolytope
}

func (p *Polytope[V]) Support(direction V) V {
	var best V
	bestDot := math.Inf(-1)
	for _, vertex := range p.Vertices {
		if dot := vertex.Dot(direction); dot > bestDot {
			bestDot = dot
			best = vertex
		}
	}

	return best
}

// Margin inflates a shape by a fixed distance, rounding its corners.
type Margin[V geom.Vector[V]] struct {
	Shape  ShapeInterface[V]
	Margin float64
}

// NewCapsule returns the set of points within radius of the segment [a, b]
func NewCapsule[V geom.Vector[V]](a, b V, radius float64) *Margin[V] {
	return &Margin[V]{
		Shape:  &Segment[V]{A: a, B: b},
		Margin: radius,
	}
}

func (m *Margin[V]) Type() ShapeType {
	return ShapeTypeMargin
}

func (m *Margin[V]) Support(direction V) V {
	return m.Shape.Support(direction).Add(extrude(direction, m.Margin))
}

// Reflection is the point reflection of a shape through its local origin.
// Summing a shape with the reflection of another gives their Minkowski difference.
type Reflection[V geom.Vector[V]] struct {
	Shape ShapeInterface[V]
}

func (r *Reflection[V]) Type() ShapeType {
	return ShapeTypeReflection
}

func (r *Reflection[V]) Support(direction V) V {
	return r.Shape.Support(direction.Mul(-1)).Mul(-1)
}

// extrude scales the normalized direction to length. A null direction gives the origin.
func extrude[V geom.Vector[V]](direction V, length float64) V {
	var zero V
	sqLen := direction.LenSqr()
	if sqLen == 0 {
		return zero
	}

	return direction.Mul(length / math.Sqrt(sqLen))
}
