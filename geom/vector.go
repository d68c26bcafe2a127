// Package geom defines the vector capabilities shared by the narrow-phase packages.
//
// Algorithms are written once over a type parameter and instantiated with
// mgl64.Vec2 for planar queries and mgl64.Vec3 for spatial ones.
package geom

// Vector is satisfied by the fixed-size mgl64 vector types (Vec2, Vec3, Vec4).
// The array core allows per-axis access, the methods give the vector-space operations.
type Vector[V any] interface {
	~[2]float64 | ~[3]float64 | ~[4]float64
	Point[V]
	Normalize() V
}

// Point is the arithmetic a simplex needs from the points it holds.
// Plain vectors and AnnotatedPoint both satisfy it.
type Point[P any] interface {
	Add(P) P
	Sub(P) P
	Mul(c float64) P
	Dot(P) float64
	Len() float64
	LenSqr() float64
	ApproxEqualThreshold(P, float64) bool
	ApproxFuncEqual(P, func(float64, float64) bool) bool
}

// Dim returns the number of components of V.
func Dim[V Vector[V]]() int {
	var v V
	return len(v)
}

// Axis returns the unit vector along axis i.
func Axis[V Vector[V]](i int) V {
	var v V
	v[i] = 1
	return v
}

// Neg returns -p.
func Neg[P Point[P]](p P) P {
	return p.Mul(-1)
}

// Div returns p / c.
func Div[P Point[P]](p P, c float64) P {
	return p.Mul(1.0 / c)
}

// Equal reports whether p and q are bit-for-bit equal, without any epsilon.
func Equal[P Point[P]](p, q P) bool {
	return p.ApproxFuncEqual(q, exactEqual)
}

func exactEqual(a, b float64) bool {
	return a == b
}
