// Package simplex holds the working set of support points of a GJK-style search
// and projects the origin onto its convex hull.
//
// The outer distance loop only depends on the Simplex interface. Reference is a
// dimension-generic implementation that enumerates every subsimplex; it is exact
// and serves as the correctness baseline for closed-form variants.
package simplex

// Simplex is an ordered set of at most N+1 points, N being the dimension of the
// space the points live in.
type Simplex[P any] interface {
	// Reset discards every point and starts over with initial.
	Reset(initial P)
	// AddPoint appends p. Adding a point to a simplex already holding N+1 points panics.
	AddPoint(p P)
	// Dimension is the number of points minus one.
	Dimension() int
	// MaxSqLen is the squared norm of the held point farthest from the origin.
	MaxSqLen() float64
	// ContainsPoint tests p against every held point, without epsilon.
	ContainsPoint(p P) bool
	// ProjectOrigin returns the point of the convex hull closest to the origin.
	// Projecting an empty simplex panics.
	ProjectOrigin() P
	// ProjectOriginAndReduce is ProjectOrigin, then keeps only the points of the
	// smallest face containing the projection.
	ProjectOriginAndReduce() P
	// TranslateBy shifts every held point by v.
	TranslateBy(v P)
}
