// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for distance and
// overlap queries between convex shapes.
//
// Two shapes overlap when their Minkowski difference (the CSO) contains the origin, and
// their distance is the norm of the CSO point closest to the origin. The CSO is only
// known through its support function; GJK grows a simplex of support points, projects
// the origin onto it and searches along the opposite of that projection until no support
// point gets closer.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/proximity/actor"
	"github.com/akmonengine/proximity/geom"
	"github.com/akmonengine/proximity/simplex"
)

const (
	// MaxIterations limits the number of support queries of a single search.
	// Polytopes converge in a handful of iterations, curved shapes may need more.
	MaxIterations = 64

	// Tolerance is the distance under which two shapes are considered touching.
	Tolerance = 1e-6

	// RelativeTolerance stops the search once a new support point improves the
	// squared distance by less than this fraction.
	RelativeTolerance = 1e-6
)

// ErrNoConvergence is returned when MaxIterations is reached before convergence.
var ErrNoConvergence = errors.New("gjk: failed to converge")

// Options tunes a search. The zero value is not usable, start from DefaultOptions.
type Options struct {
	MaxIterations     int
	Tolerance         float64
	RelativeTolerance float64
}

func DefaultOptions() Options {
	return Options{
		MaxIterations:     MaxIterations,
		Tolerance:         Tolerance,
		RelativeTolerance: RelativeTolerance,
	}
}

// Result of a closest points query.
//
// PointA and PointB are the closest points on each body, in world space. When the
// bodies intersect, Distance is zero and both points lie in the overlapping region.
type Result[V geom.Vector[V]] struct {
	Intersecting bool
	Distance     float64
	PointA       V
	PointB       V
	Iterations   int
}

// Intersects tests whether two bodies overlap.
//
// It stops as soon as a support point proves the origin lies outside the CSO, so it
// is cheaper than Distance when only the boolean is needed. A search that fails to
// converge is reported as no intersection.
func Intersects[V geom.Vector[V]](a, b *actor.Body[V], s simplex.Simplex[V], opts Options) bool {
	cso := NewCSO(a.Transform, a.Shape, b.Transform, b.Shape)

	_, intersecting, _, err := closestToOrigin(cso.Support, s, initialDirection(a, b), geom.Dim[V](), opts, true)
	if err != nil {
		return false
	}

	return intersecting
}

// Distance returns the distance between two bodies, zero when they overlap.
func Distance[V geom.Vector[V]](a, b *actor.Body[V], s simplex.Simplex[V], opts Options) (float64, error) {
	cso := NewCSO(a.Transform, a.Shape, b.Transform, b.Shape)

	projection, intersecting, _, err := closestToOrigin(cso.Support, s, initialDirection(a, b), geom.Dim[V](), opts, false)
	if err != nil {
		return 0, err
	}
	if intersecting {
		return 0, nil
	}

	return projection.Len(), nil
}

// ClosestPoints computes the distance between two bodies along with the closest point
// on each of them.
//
// The simplex holds annotated points: the projection of the origin is a convex
// combination of support points, and applying the same combination to the witnesses
// gives a point on each body.
func ClosestPoints[V geom.Vector[V]](a, b *actor.Body[V], s simplex.Simplex[geom.AnnotatedPoint[V]], opts Options) (Result[V], error) {
	cso := NewAnnotatedCSO(a.Transform, a.Shape, b.Transform, b.Shape)
	support := func(direction geom.AnnotatedPoint[V]) geom.AnnotatedPoint[V] {
		return cso.Support(direction.Point)
	}
	direction := geom.NewInvalidAnnotatedPoint(initialDirection(a, b))

	projection, intersecting, iterations, err := closestToOrigin(support, s, direction, geom.Dim[V](), opts, false)
	if err != nil {
		return Result[V]{Iterations: iterations}, err
	}

	result := Result[V]{
		Intersecting: intersecting,
		PointA:       projection.Witness1,
		// Witness2 lies on the reflection of B
		PointB:     projection.Witness2.Mul(-1),
		Iterations: iterations,
	}
	if !intersecting {
		result.Distance = projection.Len()
	}

	return result, nil
}

// initialDirection points from A toward B, which usually saves iterations over an
// arbitrary direction.
func initialDirection[V geom.Vector[V]](a, b *actor.Body[V]) V {
	direction := b.Center().Sub(a.Center())
	if direction.LenSqr() < 1e-8 {
		return geom.Axis[V](0) // Fallback if the centers are identical
	}

	return direction
}

// closestToOrigin runs the GJK iterations over any support function.
//
// Algorithm overview:
//  1. Start the simplex with the support point along direction
//  2. Project the origin on the simplex, keeping only the face holding the projection
//  3. If the projection is (almost) the origin, or the simplex is full → intersection
//  4. Query a support point along the opposite of the projection
//  5. If it does not get closer to the origin → converged, shapes are separated
//  6. Otherwise add it to the simplex and repeat from step 2
//
// With earlyExit, the search also stops as soon as a support point stays farther from
// the origin than the touching distance, which proves separation without computing
// the distance.
//
// Returns the last projection, whether the origin is inside the CSO, and the number
// of support queries after the initial one.
func closestToOrigin[P geom.Point[P]](support func(P) P, s simplex.Simplex[P], direction P, dim int, opts Options, earlyExit bool) (P, bool, int, error) {
	s.Reset(support(direction))
	projection := s.ProjectOriginAndReduce()

	for i := 0; i < opts.MaxIterations; i++ {
		sqDist := projection.LenSqr()

		// The origin is on the simplex, or enclosed by a full simplex
		touching := opts.Tolerance * math.Sqrt(math.Max(1, s.MaxSqLen()))
		if sqDist <= touching*touching || s.Dimension() == dim {
			return projection, true, i, nil
		}

		direction = projection.Mul(-1)
		point := support(direction)

		// The CSO lies beyond the plane -point·direction/|direction| away from the origin.
		// Closer than touching is still an intersection, as in the distance query.
		if earlyExit && point.Dot(direction) < -touching*math.Sqrt(sqDist) {
			return projection, false, i + 1, nil
		}

		// No support point gets significantly closer to the origin than the projection
		if sqDist-projection.Dot(point) <= opts.RelativeTolerance*sqDist || s.ContainsPoint(point) {
			return projection, false, i + 1, nil
		}

		s.AddPoint(point)
		next := s.ProjectOriginAndReduce()

		// Numerical noise: the projection must strictly decrease
		if next.LenSqr() >= sqDist {
			return projection, false, i + 1, nil
		}
		projection = next
	}

	return projection, false, opts.MaxIterations, fmt.Errorf("%w after %d iterations", ErrNoConvergence, opts.MaxIterations)
}
