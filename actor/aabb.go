package actor

import "github.com/akmonengine/proximity/geom"

// AABB represents an axis-aligned bounding box
type AABB[V geom.Vector[V]] struct {
	Min V
	Max V
}

// BoundingBox returns the tightest AABB of a placed shape, from its support points
// along each world axis.
func BoundingBox[V geom.Vector[V]](placement Placement[V], shape ShapeInterface[V]) AABB[V] {
	var aabb AABB[V]
	for i := 0; i < geom.Dim[V](); i++ {
		axis := geom.Axis[V](i)
		aabb.Max[i] = SupportWorld(placement, shape, axis)[i]
		aabb.Min[i] = SupportWorld(placement, shape, axis.Mul(-1))[i]
	}

	return aabb
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB[V]) ContainsPoint(point V) bool {
	for i := 0; i < len(point); i++ {
		if point[i] < a.Min[i] || point[i] > a.Max[i] {
			return false
		}
	}

	return true
}

// Overlaps checks if two AABBs overlap
func (a AABB[V]) Overlaps(other AABB[V]) bool {
	// AABBs overlap if they overlap on every axis
	for i := 0; i < len(a.Min); i++ {
		if a.Max[i] < other.Min[i] || a.Min[i] > other.Max[i] {
			return false
		}
	}

	return true
}

// Grow returns the AABB extended by margin on every side
func (a AABB[V]) Grow(margin float64) AABB[V] {
	grown := a
	for i := 0; i < len(a.Min); i++ {
		grown.Min[i] -= margin
		grown.Max[i] += margin
	}

	return grown
}

// Union returns the smallest AABB enclosing both a and other
func (a AABB[V]) Union(other AABB[V]) AABB[V] {
	union := a
	for i := 0; i < len(a.Min); i++ {
		union.Min[i] = min(a.Min[i], other.Min[i])
		union.Max[i] = max(a.Max[i], other.Max[i])
	}

	return union
}
