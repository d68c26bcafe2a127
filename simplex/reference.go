package simplex

import (
	"fmt"
	"math"

	"github.com/akmonengine/proximity/geom"
	"gonum.org/v1/gonum/mat"
)

// Reference implements Simplex by exhaustive search over all the subsimplices.
//
// For k held points there are 2^k - 1 subsets. k never exceeds N+1, so this stays
// cheap in two and three dimensions.
type Reference[P geom.Point[P]] struct {
	points []P
	dim    int
}

// New creates an empty simplex for points of a dim-dimensional space.
func New[P geom.Point[P]](dim int) *Reference[P] {
	if dim < 1 {
		panic(fmt.Sprintf("simplex: invalid dimension %d", dim))
	}

	return &Reference[P]{
		points: make([]P, 0, dim+1),
		dim:    dim,
	}
}

func (s *Reference[P]) Reset(initial P) {
	s.points = append(s.points[:0], initial)
}

func (s *Reference[P]) AddPoint(p P) {
	if len(s.points) > s.dim {
		panic(fmt.Sprintf("simplex: cannot add a point, already holding %d points in dimension %d", len(s.points), s.dim))
	}

	s.points = append(s.points, p)
}

func (s *Reference[P]) Dimension() int {
	return len(s.points) - 1
}

func (s *Reference[P]) MaxSqLen() float64 {
	return maxSqLen(s.points)
}

func (s *Reference[P]) ContainsPoint(p P) bool {
	for _, q := range s.points {
		if geom.Equal(p, q) {
			return true
		}
	}

	return false
}

func (s *Reference[P]) ProjectOrigin() P {
	return s.projectOrigin(false)
}

func (s *Reference[P]) ProjectOriginAndReduce() P {
	return s.projectOrigin(true)
}

func (s *Reference[P]) TranslateBy(v P) {
	for i := range s.points {
		s.points[i] = s.points[i].Add(v)
	}
}

// Points returns a copy of the held points, in insertion order.
func (s *Reference[P]) Points() []P {
	points := make([]P, len(s.points))
	copy(points, s.points)

	return points
}

func (s *Reference[P]) projectOrigin(reduce bool) P {
	if len(s.points) == 0 {
		panic("simplex: cannot project the origin on an empty simplex")
	}

	projection, support := projectOnSubsimplices(s.Points())
	if reduce {
		s.points = append(s.points[:0], support...)
	}

	return projection
}

// projectOnSubsimplices returns the point closest to the origin among the projections
// onto every subsimplex of points, along with the vertices of the subsimplex it lies in.
//
// Candidates are the projection onto the full set (when feasible), then the results of
// the k subsets missing one point. On equal norms the first candidate found is kept.
func projectOnSubsimplices[P geom.Point[P]](points []P) (P, []P) {
	if len(points) == 1 {
		return points[0], points
	}

	best, found := projectOnSubsimplex(points)
	bestPoints := points

	for i := range points {
		subsimplex := make([]P, 0, len(points)-1)
		subsimplex = append(subsimplex, points[:i]...)
		subsimplex = append(subsimplex, points[i+1:]...)

		projection, support := projectOnSubsimplices(subsimplex)
		if !found || best.Len() > projection.Len() {
			best = projection
			bestPoints = support
			found = true
		}
	}

	return best, bestPoints
}

// projectOnSubsimplex projects the origin onto the affine hull of points.
//
// The barycentric weights w solve A·w = e0, where the first row of A is all ones
// (weights sum to one) and row i encodes (points[i] - points[0]) · points[j]
// (the projection is orthogonal to every edge from points[0]). They are read from
// the first column of A⁻¹.
//
// Rows 1..k-1 are divided by the largest squared norm of the points. Their right-hand
// side is zero so the weights do not change, and A stays well conditioned whatever
// the scale of the coordinates.
//
// Returns false when the points are affinely dependent or when the projection falls
// outside the subsimplex (some weight not strictly positive).
func projectOnSubsimplex[P geom.Point[P]](points []P) (P, bool) {
	var zero P
	k := len(points)

	scale := 1.0
	if sqLen := maxSqLen(points); sqLen > 0 {
		scale = 1 / sqLen
	}

	a := mat.NewDense(k, k, nil)
	for j := 0; j < k; j++ {
		a.Set(0, j, 1)
	}
	for i := 1; i < k; i++ {
		edge := points[i].Sub(points[0])
		for j := 0; j < k; j++ {
			a.Set(i, j, edge.Dot(points[j])*scale)
		}
	}

	var inverse mat.Dense
	if err := inverse.Inverse(a); err != nil {
		// Singular or too badly conditioned to trust the weights
		return zero, false
	}

	var projection P
	normalizer := 0.0
	for i, p := range points {
		weight := inverse.At(i, 0)
		if !(weight > 0) || math.IsInf(weight, 1) {
			return zero, false
		}

		projection = projection.Add(p.Mul(weight))
		normalizer += weight
	}

	return projection.Mul(1.0 / normalizer), true
}

func maxSqLen[P geom.Point[P]](points []P) float64 {
	result := 0.0
	for _, p := range points {
		if sqLen := p.LenSqr(); sqLen > result {
			result = sqLen
		}
	}

	return result
}
