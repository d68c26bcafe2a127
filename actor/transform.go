package actor

import (
	"github.com/akmonengine/proximity/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Placement is a rigid transform (rotation then translation) applied to a shape
// before any support query.
type Placement[V geom.Vector[V]] interface {
	// Apply maps a local point to world space.
	Apply(point V) V
	// Rotate maps a local direction to world space.
	Rotate(direction V) V
	// InverseRotate maps a world direction to local space.
	InverseRotate(direction V) V
}

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

func (t Transform) Apply(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

func (t Transform) Rotate(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(direction)
}

func (t Transform) InverseRotate(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Inverse().Rotate(direction)
}

// Transform2D represents a position and orientation in the plane.
// Angle is counter-clockwise, in radians.
type Transform2D struct {
	Position mgl64.Vec2
	Angle    float64
}

// NewTransform2D creates an identity planar transform
func NewTransform2D() Transform2D {
	return Transform2D{}
}

func (t Transform2D) Apply(point mgl64.Vec2) mgl64.Vec2 {
	return t.Rotate(point).Add(t.Position)
}

func (t Transform2D) Rotate(direction mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Rotate2D(t.Angle).Mul2x1(direction)
}

func (t Transform2D) InverseRotate(direction mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Rotate2D(-t.Angle).Mul2x1(direction)
}

// reflectedPlacement keeps the rotation of a placement and negates its translation.
// Combined with a Reflection shape it places the point reflection of the placed shape.
type reflectedPlacement[V geom.Vector[V]] struct {
	Placement[V]
}

func (r reflectedPlacement[V]) Apply(point V) V {
	var origin V
	return r.Placement.Rotate(point).Sub(r.Placement.Apply(origin))
}

// Reflect returns the placement and shape of the point reflection, through the world
// origin, of shape placed by placement.
func Reflect[V geom.Vector[V]](placement Placement[V], shape ShapeInterface[V]) (Placement[V], ShapeInterface[V]) {
	return reflectedPlacement[V]{Placement: placement}, &Reflection[V]{Shape: shape}
}
