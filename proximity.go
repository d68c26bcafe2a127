// Package proximity runs GJK distance and overlap queries over batches of body pairs.
//
// Every query owns its simplex for its whole duration: simplices are taken from a pool
// by the worker running the query and given back once the result is copied out.
package proximity

import (
	"math"
	"sync"

	"github.com/akmonengine/proximity/actor"
	"github.com/akmonengine/proximity/geom"
	"github.com/akmonengine/proximity/gjk"
	"github.com/akmonengine/proximity/simplex"
)

const DEFAULT_WORKERS = 1

// Pair represents two bodies to query against each other
type Pair[V geom.Vector[V]] struct {
	BodyA *actor.Body[V]
	BodyB *actor.Body[V]
}

// Proximity is the outcome of a closest points query on a pair.
// Err is set when the search did not converge; Result then only holds the iteration count.
type Proximity[V geom.Vector[V]] struct {
	Pair   Pair[V]
	Result gjk.Result[V]
	Err    error
}

// ClosestPointsAll queries every pair and returns the results in the same order.
func ClosestPointsAll[V geom.Vector[V]](pairs []Pair[V], workersCount int, opts gjk.Options) []Proximity[V] {
	proximities := make([]Proximity[V], len(pairs))
	pool := simplex.NewPool[geom.AnnotatedPoint[V]](geom.Dim[V]())

	task(workersCount, len(pairs), func(i int) {
		s := pool.Get()
		defer pool.Put(s)

		result, err := gjk.ClosestPoints(pairs[i].BodyA, pairs[i].BodyB, s, opts)
		proximities[i] = Proximity[V]{Pair: pairs[i], Result: result, Err: err}
	})

	return proximities
}

// ClosestPointsStream queries pairs as they arrive, with workersCount concurrent workers.
// Results come out in completion order. The returned channel is closed once pairs is
// closed and drained.
func ClosestPointsStream[V geom.Vector[V]](pairs <-chan Pair[V], workersCount int, opts gjk.Options) <-chan Proximity[V] {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	proximityChan := make(chan Proximity[V], workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(proximityChan)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// One simplex per worker, reused across its queries
				s := simplex.New[geom.AnnotatedPoint[V]](geom.Dim[V]())
				for p := range pairs {
					result, err := gjk.ClosestPoints(p.BodyA, p.BodyB, s, opts)
					proximityChan <- Proximity[V]{Pair: p, Result: result, Err: err}
				}
			}()
		}
		wg.Wait()
	}()

	return proximityChan
}

// IntersectingPairs forwards the pairs whose bodies overlap or touch, as gjk.Intersects
// reports them. Pairs whose bounding boxes are farther apart than the touching distance
// are rejected before any search, pairs whose search does not converge are dropped.
func IntersectingPairs[V geom.Vector[V]](pairs <-chan Pair[V], workersCount int, opts gjk.Options) <-chan Pair[V] {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	collisionChan := make(chan Pair[V], workersCount)
	pool := simplex.NewPool[V](geom.Dim[V]())

	go func() {
		var wg sync.WaitGroup
		defer close(collisionChan)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairs {
					if !boundsOverlap(p.BodyA.AABB(), p.BodyB.AABB(), opts.Tolerance) {
						continue
					}

					s := pool.Get()
					intersecting := gjk.Intersects(p.BodyA, p.BodyB, s, opts)
					pool.Put(s)

					if intersecting {
						collisionChan <- p
					}
				}
			}()
		}
		wg.Wait()
	}()

	return collisionChan
}

// boundsOverlap tests the bounding boxes of a pair, grown by the touching distance of
// gjk. Points of the difference of the bodies are no longer than the diagonal of the
// union of the boxes, which bounds the scale applied to tolerance.
func boundsOverlap[V geom.Vector[V]](a, b actor.AABB[V], tolerance float64) bool {
	union := a.Union(b)
	margin := tolerance * math.Max(1, union.Max.Sub(union.Min).Len())

	return a.Grow(margin).Overlaps(b)
}
