package geom

// AnnotatedPoint is a point of a Minkowski sum that remembers where it comes from.
//
// Point is always Witness1 + Witness2, where Witness1 lies on the first shape of the
// sum and Witness2 on the second one. For a difference A - B the second shape is the
// reflection of B, so the point of B itself is Witness2 negated.
//
// Every arithmetic operation acts identically on the three vectors, so any linear
// combination of annotated points (a projection onto a simplex for instance) still
// carries consistent witnesses. Comparisons, dot products and norms only look at Point.
type AnnotatedPoint[V Vector[V]] struct {
	Point    V
	Witness1 V
	Witness2 V
}

func NewAnnotatedPoint[V Vector[V]](witness1, witness2, point V) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{
		Point:    point,
		Witness1: witness1,
		Witness2: witness2,
	}
}

// NewInvalidAnnotatedPoint wraps a bare point with zero witnesses.
// Useful for search directions, which never need their witnesses.
func NewInvalidAnnotatedPoint[V Vector[V]](point V) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{Point: point}
}

func (p AnnotatedPoint[V]) Add(q AnnotatedPoint[V]) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{
		Point:    p.Point.Add(q.Point),
		Witness1: p.Witness1.Add(q.Witness1),
		Witness2: p.Witness2.Add(q.Witness2),
	}
}

func (p AnnotatedPoint[V]) Sub(q AnnotatedPoint[V]) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{
		Point:    p.Point.Sub(q.Point),
		Witness1: p.Witness1.Sub(q.Witness1),
		Witness2: p.Witness2.Sub(q.Witness2),
	}
}

func (p AnnotatedPoint[V]) Mul(c float64) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{
		Point:    p.Point.Mul(c),
		Witness1: p.Witness1.Mul(c),
		Witness2: p.Witness2.Mul(c),
	}
}

func (p AnnotatedPoint[V]) Div(c float64) AnnotatedPoint[V] {
	return p.Mul(1.0 / c)
}

// Neg negates the point and both witnesses.
func (p AnnotatedPoint[V]) Neg() AnnotatedPoint[V] {
	return p.Mul(-1)
}

func (p AnnotatedPoint[V]) Dot(q AnnotatedPoint[V]) float64 {
	return p.Point.Dot(q.Point)
}

func (p AnnotatedPoint[V]) Len() float64 {
	return p.Point.Len()
}

func (p AnnotatedPoint[V]) LenSqr() float64 {
	return p.Point.LenSqr()
}

// Normalize only normalizes Point, the witnesses are kept as they are.
func (p AnnotatedPoint[V]) Normalize() AnnotatedPoint[V] {
	return AnnotatedPoint[V]{
		Point:    p.Point.Normalize(),
		Witness1: p.Witness1,
		Witness2: p.Witness2,
	}
}

func (p AnnotatedPoint[V]) ApproxEqualThreshold(q AnnotatedPoint[V], threshold float64) bool {
	return p.Point.ApproxEqualThreshold(q.Point, threshold)
}

func (p AnnotatedPoint[V]) ApproxFuncEqual(q AnnotatedPoint[V], eq func(float64, float64) bool) bool {
	return p.Point.ApproxFuncEqual(q.Point, eq)
}

// Equal compares the combined points exactly, witnesses are ignored.
func (p AnnotatedPoint[V]) Equal(q AnnotatedPoint[V]) bool {
	return Equal(p.Point, q.Point)
}
