package gjk

import (
	"github.com/akmonengine/proximity/actor"
	"github.com/akmonengine/proximity/geom"
)

// Sum is the implicit Minkowski sum of two placed convex shapes.
//
// The sum is never built: its only query is Support. It borrows the placements and
// shapes it was created from and must not outlive them.
type Sum[V geom.Vector[V]] struct {
	m1 actor.Placement[V]
	g1 actor.ShapeInterface[V]
	m2 actor.Placement[V]
	g2 actor.ShapeInterface[V]
}

// NewSum builds the Minkowski sum of two shapes in constant time.
func NewSum[V geom.Vector[V]](m1 actor.Placement[V], g1 actor.ShapeInterface[V], m2 actor.Placement[V], g2 actor.ShapeInterface[V]) Sum[V] {
	return Sum[V]{m1: m1, g1: g1, m2: m2, g2: g2}
}

// NewCSO builds the configuration space obstacle of two placed shapes, i.e. the
// Minkowski difference g1 - g2. It contains the origin if and only if the shapes
// intersect. M2 and G2 of the result are the reflected placement and shape.
func NewCSO[V geom.Vector[V]](m1 actor.Placement[V], g1 actor.ShapeInterface[V], m2 actor.Placement[V], g2 actor.ShapeInterface[V]) Sum[V] {
	rm2, rg2 := actor.Reflect(m2, g2)
	return NewSum(m1, g1, rm2, rg2)
}

func (s Sum[V]) M1() actor.Placement[V]      { return s.m1 }
func (s Sum[V]) G1() actor.ShapeInterface[V] { return s.g1 }
func (s Sum[V]) M2() actor.Placement[V]      { return s.m2 }
func (s Sum[V]) G2() actor.ShapeInterface[V] { return s.g2 }

// Support returns the point of the sum farthest along direction:
// support1(direction) + support2(direction).
func (s Sum[V]) Support(direction V) V {
	return actor.SupportWorld(s.m1, s.g1, direction).Add(actor.SupportWorld(s.m2, s.g2, direction))
}

// AnnotatedSum is a Sum whose support points keep track of the point each shape
// contributed, to rebuild witness points once the search converges.
type AnnotatedSum[V geom.Vector[V]] struct {
	m1 actor.Placement[V]
	g1 actor.ShapeInterface[V]
	m2 actor.Placement[V]
	g2 actor.ShapeInterface[V]
}

func NewAnnotatedSum[V geom.Vector[V]](m1 actor.Placement[V], g1 actor.ShapeInterface[V], m2 actor.Placement[V], g2 actor.ShapeInterface[V]) AnnotatedSum[V] {
	return AnnotatedSum[V]{m1: m1, g1: g1, m2: m2, g2: g2}
}

// NewAnnotatedCSO is the annotated flavor of NewCSO. Witness2 of its support points
// lies on the reflection of the placed g2: negate it to get the point of g2.
func NewAnnotatedCSO[V geom.Vector[V]](m1 actor.Placement[V], g1 actor.ShapeInterface[V], m2 actor.Placement[V], g2 actor.ShapeInterface[V]) AnnotatedSum[V] {
	rm2, rg2 := actor.Reflect(m2, g2)
	return NewAnnotatedSum(m1, g1, rm2, rg2)
}

func (s AnnotatedSum[V]) M1() actor.Placement[V]      { return s.m1 }
func (s AnnotatedSum[V]) G1() actor.ShapeInterface[V] { return s.g1 }
func (s AnnotatedSum[V]) M2() actor.Placement[V]      { return s.m2 }
func (s AnnotatedSum[V]) G2() actor.ShapeInterface[V] { return s.g2 }

func (s AnnotatedSum[V]) Support(direction V) geom.AnnotatedPoint[V] {
	support1 := actor.SupportWorld(s.m1, s.g1, direction)
	support2 := actor.SupportWorld(s.m2, s.g2, direction)

	return geom.NewAnnotatedPoint(support1, support2, support1.Add(support2))
}
