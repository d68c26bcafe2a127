package actor

import "github.com/akmonengine/proximity/geom"

// SupportWorld returns the support point of a placed shape along a world direction.
func SupportWorld[V geom.Vector[V]](placement Placement[V], shape ShapeInterface[V], direction V) V {
	// 1. Bring the direction into the shape's local frame
	localDirection := placement.InverseRotate(direction)

	// 2. Find the support in local space
	localSupport := shape.Support(localDirection)

	// 3. Back to world space (rotation + translation)
	return placement.Apply(localSupport)
}

// Body is a convex shape at a given placement
type Body[V geom.Vector[V]] struct {
	Transform Placement[V]
	Shape     ShapeInterface[V]
}

// NewBody creates a body from its placement and shape
func NewBody[V geom.Vector[V]](transform Placement[V], shape ShapeInterface[V]) *Body[V] {
	return &Body[V]{
		Transform: transform,
		Shape:     shape,
	}
}

// Center is the world position of the shape's local origin
func (b *Body[V]) Center() V {
	var origin V
	return b.Transform.Apply(origin)
}

func (b *Body[V]) SupportWorld(direction V) V {
	return SupportWorld(b.Transform, b.Shape, direction)
}

// AABB returns the world-space bounding box of the body
func (b *Body[V]) AABB() AABB[V] {
	return BoundingBox(b.Transform, b.Shape)
}
