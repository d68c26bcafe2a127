package gjk

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/proximity/actor"
	"github.com/akmonengine/proximity/geom"
	"github.com/akmonengine/proximity/simplex"
	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions

func createBoxBody(position mgl64.Vec3, halfExtents mgl64.Vec3) *actor.Body[mgl64.Vec3] {
	return actor.NewBody[mgl64.Vec3](
		actor.Transform{Position: position, Rotation: mgl64.QuatIdent()},
		&actor.Cuboid[mgl64.Vec3]{HalfExtents: halfExtents},
	)
}

func createSphereBody(position mgl64.Vec3, radius float64) *actor.Body[mgl64.Vec3] {
	return actor.NewBody[mgl64.Vec3](
		actor.Transform{Position: position, Rotation: mgl64.QuatIdent()},
		&actor.Ball[mgl64.Vec3]{Radius: radius},
	)
}

func newSimplex() *simplex.Reference[mgl64.Vec3] {
	return simplex.New[mgl64.Vec3](3)
}

func newAnnotatedSimplex() *simplex.Reference[geom.AnnotatedPoint[mgl64.Vec3]] {
	return simplex.New[geom.AnnotatedPoint[mgl64.Vec3]](3)
}

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() <= tolerance
}

// ClosestPoints tests - Spheres

func TestClosestPoints_Spheres(t *testing.T) {
	t.Run("separated along x-axis", func(t *testing.T) {
		a := createSphereBody(mgl64.Vec3{0, 0, 0}, 1.0)
		b := createSphereBody(mgl64.Vec3{5, 0, 0}, 1.0)

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Intersecting {
			t.Error("Expected separated spheres")
		}
		// 5 between centers, minus both radii
		if math.Abs(result.Distance-3) > 1e-9 {
			t.Errorf("Expected distance 3, got %v", result.Distance)
		}
		if !vec3ApproxEqual(result.PointA, mgl64.Vec3{1, 0, 0}, 1e-9) {
			t.Errorf("Expected PointA (1, 0, 0), got %v", result.PointA)
		}
		if !vec3ApproxEqual(result.PointB, mgl64.Vec3{4, 0, 0}, 1e-9) {
			t.Errorf("Expected PointB (4, 0, 0), got %v", result.PointB)
		}
	})

	t.Run("separated diagonally", func(t *testing.T) {
		a := createSphereBody(mgl64.Vec3{0, 0, 0}, 1.0)
		b := createSphereBody(mgl64.Vec3{3, 3, 3}, 0.5)

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		expected := 3*math.Sqrt(3) - 1.5
		if math.Abs(result.Distance-expected) > 1e-6 {
			t.Errorf("Expected distance %v, got %v", expected, result.Distance)
		}
	})

	t.Run("overlapping", func(t *testing.T) {
		a := createSphereBody(mgl64.Vec3{0, 0, 0}, 1.0)
		b := createSphereBody(mgl64.Vec3{1.5, 0, 0}, 1.0)

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.Intersecting {
			t.Error("Expected overlapping spheres to intersect")
		}
		if result.Distance != 0 {
			t.Errorf("Expected distance 0, got %v", result.Distance)
		}
	})

	t.Run("identical positions", func(t *testing.T) {
		a := createSphereBody(mgl64.Vec3{0, 0, 0}, 1.0)
		b := createSphereBody(mgl64.Vec3{0, 0, 0}, 1.0)

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.Intersecting {
			t.Error("Expected spheres at identical positions to intersect")
		}
	})
}

// ClosestPoints tests - Boxes

func TestClosestPoints_Boxes(t *testing.T) {
	t.Run("separated boxes", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(result.Distance-1) > 1e-9 {
			t.Errorf("Expected distance 1, got %v", result.Distance)
		}
		// Faces x = 1 and x = 2 face each other
		if math.Abs(result.PointA.X()-1) > 1e-9 || math.Abs(result.PointB.X()-2) > 1e-9 {
			t.Errorf("Unexpected witnesses %v and %v", result.PointA, result.PointB)
		}
	})

	t.Run("rotated box", func(t *testing.T) {
		// B is rotated 45° around Z: its edge reaches x = 3 - √2
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := actor.NewBody[mgl64.Vec3](
			actor.Transform{Position: mgl64.Vec3{3, 0, 0}, Rotation: mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})},
			&actor.Cuboid[mgl64.Vec3]{HalfExtents: mgl64.Vec3{1, 1, 1}},
		)

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		expected := 2 - math.Sqrt2
		if math.Abs(result.Distance-expected) > 1e-6 {
			t.Errorf("Expected distance %v, got %v", expected, result.Distance)
		}
		if math.Abs(result.PointB.X()-(3-math.Sqrt2)) > 1e-6 {
			t.Errorf("Expected PointB on the edge x = 3 - √2, got %v", result.PointB)
		}
	})

	t.Run("overlapping boxes", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := createBoxBody(mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1})

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.Intersecting {
			t.Error("Expected overlapping boxes to intersect")
		}
	})

	t.Run("touching boxes", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := createBoxBody(mgl64.Vec3{2.0, 0, 0}, mgl64.Vec3{1, 1, 1})

		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.Intersecting {
			t.Errorf("Expected touching boxes to be reported as intersecting, distance %v", result.Distance)
		}
	})
}

func TestClosestPoints_SphereBox(t *testing.T) {
	a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createSphereBody(mgl64.Vec3{3, 3, 0}, 1.0)

	result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Closest point of the box is the middle of the edge x = y = 1
	expected := 2*math.Sqrt2 - 1
	if math.Abs(result.Distance-expected) > 1e-4 {
		t.Errorf("Expected distance %v, got %v", expected, result.Distance)
	}
	if math.Abs(result.PointA.X()-1) > 1e-6 || math.Abs(result.PointA.Y()-1) > 1e-6 {
		t.Errorf("Expected PointA on the edge x = y = 1, got %v", result.PointA)
	}
	// Convex combination of surface points: inside the sphere, close to its surface
	if r := result.PointB.Sub(b.Center()).Len(); r > 1+1e-9 || r < 0.99 {
		t.Errorf("Expected PointB near the sphere surface, got %v at %v from the center", result.PointB, r)
	}
	// Witnesses are consistent with the distance
	if math.Abs(result.PointB.Sub(result.PointA).Len()-result.Distance) > 1e-9 {
		t.Errorf("|PointB - PointA| = %v, distance = %v", result.PointB.Sub(result.PointA).Len(), result.Distance)
	}
}

func TestClosestPoints_2D(t *testing.T) {
	t.Run("disc and square", func(t *testing.T) {
		a := actor.NewBody[mgl64.Vec2](actor.NewTransform2D(), &actor.Ball[mgl64.Vec2]{Radius: 1})
		b := actor.NewBody[mgl64.Vec2](
			actor.Transform2D{Position: mgl64.Vec2{4, 0}},
			&actor.Cuboid[mgl64.Vec2]{HalfExtents: mgl64.Vec2{1, 1}},
		)

		result, err := ClosestPoints(a, b, simplex.New[geom.AnnotatedPoint[mgl64.Vec2]](2), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(result.Distance-2) > 1e-4 {
			t.Errorf("Expected distance 2, got %v", result.Distance)
		}
		if math.Abs(result.PointB.X()-3) > 1e-9 {
			t.Errorf("Expected PointB on the face x = 3, got %v", result.PointB)
		}
	})

	t.Run("triangle and rotated segment", func(t *testing.T) {
		a := actor.NewBody[mgl64.Vec2](
			actor.NewTransform2D(),
			&actor.Polytope[mgl64.Vec2]{Vertices: []mgl64.Vec2{{0, 0}, {2, 0}, {0, 2}}},
		)
		// Horizontal segment turned vertical, at x = 5
		b := actor.NewBody[mgl64.Vec2](
			actor.Transform2D{Position: mgl64.Vec2{5, 1}, Angle: math.Pi / 2},
			&actor.Segment[mgl64.Vec2]{A: mgl64.Vec2{-3, 0}, B: mgl64.Vec2{3, 0}},
		)

		result, err := ClosestPoints(a, b, simplex.New[geom.AnnotatedPoint[mgl64.Vec2]](2), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(result.Distance-3) > 1e-9 {
			t.Errorf("Expected distance 3, got %v", result.Distance)
		}
		if result.PointA.Sub(mgl64.Vec2{2, 0}).Len() > 1e-9 {
			t.Errorf("Expected PointA (2, 0), got %v", result.PointA)
		}
	})

	t.Run("overlapping capsules", func(t *testing.T) {
		a := actor.NewBody[mgl64.Vec2](actor.NewTransform2D(), actor.NewCapsule(mgl64.Vec2{-2, 0}, mgl64.Vec2{2, 0}, 0.5))
		b := actor.NewBody[mgl64.Vec2](
			actor.Transform2D{Position: mgl64.Vec2{1, 0.5}, Angle: math.Pi / 2},
			actor.NewCapsule(mgl64.Vec2{-2, 0}, mgl64.Vec2{2, 0}, 0.5),
		)

		result, err := ClosestPoints(a, b, simplex.New[geom.AnnotatedPoint[mgl64.Vec2]](2), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.Intersecting {
			t.Error("Expected crossing capsules to intersect")
		}
	})
}

// Intersects tests

func TestIntersects(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     *actor.Body[mgl64.Vec3]
		expected bool
	}{
		{"overlapping spheres", createSphereBody(mgl64.Vec3{0, 0, 0}, 1), createSphereBody(mgl64.Vec3{1.5, 0, 0}, 1), true},
		{"far apart spheres", createSphereBody(mgl64.Vec3{0, 0, 0}, 1), createSphereBody(mgl64.Vec3{10, 0, 0}, 1), false},
		{"barely separated spheres", createSphereBody(mgl64.Vec3{0, 0, 0}, 1), createSphereBody(mgl64.Vec3{2.1, 0, 0}, 1), false},
		{"separated on Y", createSphereBody(mgl64.Vec3{0, 0, 0}, 1), createSphereBody(mgl64.Vec3{0, 5, 0}, 1), false},
		{"separated diagonally", createSphereBody(mgl64.Vec3{0, 0, 0}, 1), createSphereBody(mgl64.Vec3{3, 3, 3}, 1), false},
		{"overlapping boxes", createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}), createBoxBody(mgl64.Vec3{1.5, 0.5, 0}, mgl64.Vec3{1, 1, 1}), true},
		{"box inside box", createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 3, 3}), createBoxBody(mgl64.Vec3{0.5, 0, 0}, mgl64.Vec3{1, 1, 1}), true},
		{"separated boxes", createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}), createBoxBody(mgl64.Vec3{0, 0, 2.5}, mgl64.Vec3{1, 1, 1}), false},
		{"sphere touching box corner region", createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}), createSphereBody(mgl64.Vec3{1.5, 1.5, 1.5}, 1), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := Intersects(tc.a, tc.b, newSimplex(), DefaultOptions()); result != tc.expected {
				t.Errorf("Intersects() = %v, want %v", result, tc.expected)
			}
		})
	}
}

func TestIntersects_WithinTolerance(t *testing.T) {
	t.Run("spheres closer than tolerance", func(t *testing.T) {
		a := createSphereBody(mgl64.Vec3{0, 0, 0}, 1)
		b := createSphereBody(mgl64.Vec3{2 + 1e-7, 0, 0}, 1)

		if !Intersects(a, b, newSimplex(), DefaultOptions()) {
			t.Error("Expected spheres 1e-7 apart to be touching")
		}
		distance, err := Distance(a, b, newSimplex(), DefaultOptions())
		if err != nil || distance != 0 {
			t.Errorf("Expected distance 0, got %v (%v)", distance, err)
		}
	})

	t.Run("support point just short of the origin", func(t *testing.T) {
		// The face x = -gap is closer than Tolerance. The second support point, found
		// along +x, falls short of the origin by gap only.
		gap := 1e-7
		cso := &actor.Polytope[mgl64.Vec3]{Vertices: []mgl64.Vec3{
			{-0.5, 0, 0},
			{-gap, 1, 1},
			{-gap, -1, 1},
			{-gap, 0, -1},
		}}

		for _, earlyExit := range []bool{false, true} {
			_, intersecting, _, err := closestToOrigin(cso.Support, newSimplex(), mgl64.Vec3{-1, 0, 0}, 3, DefaultOptions(), earlyExit)
			if err != nil {
				t.Fatalf("earlyExit=%v: unexpected error %v", earlyExit, err)
			}
			if !intersecting {
				t.Errorf("earlyExit=%v: expected a touching contact", earlyExit)
			}
		}
	})
}

func TestIntersects_Symmetric(t *testing.T) {
	a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 1})
	b := createSphereBody(mgl64.Vec3{1.8, 1, 0}, 1)

	if Intersects(a, b, newSimplex(), DefaultOptions()) != Intersects(b, a, newSimplex(), DefaultOptions()) {
		t.Error("Intersects should not depend on the order of the bodies")
	}
}

func TestDistance(t *testing.T) {
	t.Run("separated", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := createBoxBody(mgl64.Vec3{0, -4, 0}, mgl64.Vec3{1, 1, 1})

		distance, err := Distance(a, b, newSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(distance-2) > 1e-9 {
			t.Errorf("Expected distance 2, got %v", distance)
		}
	})

	t.Run("overlapping", func(t *testing.T) {
		a := createSphereBody(mgl64.Vec3{0, 0, 0}, 2)
		b := createBoxBody(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1})

		distance, err := Distance(a, b, newSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if distance != 0 {
			t.Errorf("Expected distance 0, got %v", distance)
		}
	})

	t.Run("agrees with ClosestPoints", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0.5, 2})
		b := actor.NewBody[mgl64.Vec3](
			actor.Transform{Position: mgl64.Vec3{2, 3, -1}, Rotation: mgl64.QuatRotate(0.7, mgl64.Vec3{1, 2, 3}.Normalize())},
			&actor.Polytope[mgl64.Vec3]{Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
		)

		distance, err := Distance(a, b, newSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		result, err := ClosestPoints(a, b, newAnnotatedSimplex(), DefaultOptions())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(distance-result.Distance) > 1e-6 {
			t.Errorf("Distance() = %v, ClosestPoints().Distance = %v", distance, result.Distance)
		}
	})
}

func TestNoConvergence(t *testing.T) {
	a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createSphereBody(mgl64.Vec3{3, 3, 0}, 1.0)

	opts := DefaultOptions()
	opts.MaxIterations = 1

	_, err := ClosestPoints(a, b, newAnnotatedSimplex(), opts)
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("Expected ErrNoConvergence, got %v", err)
	}

	if _, err := Distance(a, b, newSimplex(), opts); !errors.Is(err, ErrNoConvergence) {
		t.Errorf("Expected ErrNoConvergence from Distance, got %v", err)
	}
}

// The search works with any Simplex implementation, this one counts the calls
type countingSimplex struct {
	simplex.Simplex[mgl64.Vec3]
	added int
}

func (c *countingSimplex) AddPoint(p mgl64.Vec3) {
	c.added++
	c.Simplex.AddPoint(p)
}

func TestSimplexContract(t *testing.T) {
	a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})
	s := &countingSimplex{Simplex: newSimplex()}

	distance, err := Distance(a, b, s, DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(distance-1) > 1e-9 {
		t.Errorf("Expected distance 1, got %v", distance)
	}
	// The first support point is already the closest one
	if s.added != 0 {
		t.Errorf("Expected no point added after the initial one, got %d", s.added)
	}
	if s.Dimension() < 0 {
		t.Error("Expected the simplex to hold the final support points")
	}
}
