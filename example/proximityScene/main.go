package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/proximity"
	"github.com/akmonengine/proximity/actor"
	"github.com/akmonengine/proximity/geom"
	"github.com/akmonengine/proximity/gjk"
	"github.com/akmonengine/proximity/simplex"
	"github.com/go-gl/mathgl/mgl64"
)

// ProximityDebugger interface to instrument queries
type ProximityDebugger interface {
	DebugQuery(bodyA, bodyB *actor.Body[mgl64.Vec3])
	DebugResult(result gjk.Result[mgl64.Vec3], err error)
}

// SimpleDebugger prints queries and results
type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugQuery(bodyA, bodyB *actor.Body[mgl64.Vec3]) {
	fmt.Printf("🔍 GJK Debug:\n")
	fmt.Printf("   Body A (%v) center: %v\n", bodyA.Shape.Type(), bodyA.Center())
	fmt.Printf("   Body B (%v) center: %v\n", bodyB.Shape.Type(), bodyB.Center())
}

func (d *SimpleDebugger) DebugResult(result gjk.Result[mgl64.Vec3], err error) {
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	if result.Intersecting {
		fmt.Printf("   Intersecting after %d iterations\n", result.Iterations)
		return
	}
	fmt.Printf("   Distance: %.6f after %d iterations\n", result.Distance, result.Iterations)
	fmt.Printf("   Point A: %v\n", result.PointA)
	fmt.Printf("   Point B: %v\n", result.PointB)
}

func SetupScene() (*actor.Body[mgl64.Vec3], *actor.Body[mgl64.Vec3], ProximityDebugger) {
	boxBody := actor.NewBody[mgl64.Vec3](
		actor.Transform{
			Position: mgl64.Vec3{0, 0, 0},
			Rotation: mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}),
		},
		&actor.Cuboid[mgl64.Vec3]{HalfExtents: mgl64.Vec3{1.5, 1.5, 1.5}},
	)

	capsuleBody := actor.NewBody[mgl64.Vec3](
		actor.Transform{Position: mgl64.Vec3{8, 0.5, 0}, Rotation: mgl64.QuatIdent()},
		actor.NewCapsule(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, 1, 0}, 0.5),
	)

	return boxBody, capsuleBody, &SimpleDebugger{}
}

// Sweep a capsule toward a rotated box until they touch
func SweepCapsule() {
	fmt.Println("🧪 Capsule approaching a rotated box")
	fmt.Println("====================================")

	boxBody, capsuleBody, debugger := SetupScene()
	s := simplex.New[geom.AnnotatedPoint[mgl64.Vec3]](3)

	const step float64 = 0.5
	for i := 0; i < 16; i++ {
		fmt.Printf("--- STEP %d ---\n", i+1)
		debugger.DebugQuery(boxBody, capsuleBody)

		result, err := gjk.ClosestPoints(boxBody, capsuleBody, s, gjk.DefaultOptions())
		debugger.DebugResult(result, err)
		if err == nil && result.Intersecting {
			break
		}

		transform := capsuleBody.Transform.(actor.Transform)
		transform.Position = transform.Position.Sub(mgl64.Vec3{step, 0, 0})
		capsuleBody.Transform = transform
	}
	fmt.Println()
}

// Query a row of discs against a triangle in the plane
func PlanarBatch() {
	fmt.Println("🧪 Planar batch")
	fmt.Println("===============")

	triangle := actor.NewBody[mgl64.Vec2](
		actor.NewTransform2D(),
		&actor.Polytope[mgl64.Vec2]{Vertices: []mgl64.Vec2{{-1, -1}, {1, -1}, {0, 1}}},
	)

	var pairs []proximity.Pair[mgl64.Vec2]
	for i := 0; i < 6; i++ {
		disc := actor.NewBody[mgl64.Vec2](
			actor.Transform2D{Position: mgl64.Vec2{float64(i) - 2.5, 2}},
			&actor.Ball[mgl64.Vec2]{Radius: 0.75},
		)
		pairs = append(pairs, proximity.Pair[mgl64.Vec2]{BodyA: triangle, BodyB: disc})
	}

	for i, p := range proximity.ClosestPointsAll(pairs, 3, gjk.DefaultOptions()) {
		switch {
		case p.Err != nil:
			fmt.Printf("  Disc %d: %v\n", i, p.Err)
		case p.Result.Intersecting:
			fmt.Printf("  Disc %d: intersecting\n", i)
		default:
			fmt.Printf("  Disc %d: distance %.4f, closest points %v / %v\n", i, p.Result.Distance, p.Result.PointA, p.Result.PointB)
		}
	}
	fmt.Println()
}

func main() {
	SweepCapsule()
	PlanarBatch()

	fmt.Println("Done!")
}
