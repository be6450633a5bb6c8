package tuple

import (
	"fmt"
	"math"

	"github.com/san-kum/raytracer/internal/approx"
)

// Tuple is an immutable (x, y, z, w) value.
type Tuple struct {
	X, Y, Z, W float64
}

// Point returns a tuple with W set to 1.
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

// Vector returns a tuple with W set to 0.
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

func (t Tuple) Add(o Tuple) Tuple {
	return Tuple{t.X + o.X, t.Y + o.Y, t.Z + o.Z, t.W + o.W}
}

func (t Tuple) Sub(o Tuple) Tuple {
	return Tuple{t.X - o.X, t.Y - o.Y, t.Z - o.Z, t.W - o.W}
}

// Negate subtracts t from the zero vector.
func (t Tuple) Negate() Tuple {
	return Vector(0, 0, 0).Sub(t)
}

// Scale multiplies every component, W included, by k.
func (t Tuple) Scale(k float64) Tuple {
	return Tuple{t.X * k, t.Y * k, t.Z * k, t.W * k}
}

// Divide scales t by 1/k. A zero k is not checked.
func (t Tuple) Divide(k float64) Tuple {
	return t.Scale(1 / k)
}

// Magnitude is the Euclidean norm over all four components.
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize divides t by its magnitude. A zero-length tuple yields NaN
// components.
func (t Tuple) Normalize() Tuple {
	return t.Divide(t.Magnitude())
}

// Dot sums the pairwise products of all four components.
func (t Tuple) Dot(o Tuple) float64 {
	return t.X*o.X + t.Y*o.Y + t.Z*o.Z + t.W*o.W
}

// Cross is the 3D cross product of the x/y/z components. The result is
// always a vector, whatever the inputs' W.
func (t Tuple) Cross(o Tuple) Tuple {
	return Vector(
		t.Y*o.Z-t.Z*o.Y,
		t.Z*o.X-t.X*o.Z,
		t.X*o.Y-t.Y*o.X,
	)
}

func (t Tuple) IsPoint() bool {
	return approx.Equal(t.W, 1)
}

func (t Tuple) IsVector() bool {
	return approx.Equal(t.W, 0)
}

// Equal reports whether all four components are approximately equal.
func (t Tuple) Equal(o Tuple) bool {
	return approx.Equal(t.X, o.X) &&
		approx.Equal(t.Y, o.Y) &&
		approx.Equal(t.Z, o.Z) &&
		approx.Equal(t.W, o.W)
}

// IsValid reports whether no component is NaN or infinite.
func (t Tuple) IsValid() bool {
	for _, v := range [4]float64{t.X, t.Y, t.Z, t.W} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (t Tuple) String() string {
	switch {
	case t.IsPoint():
		return fmt.Sprintf("point(%g, %g, %g)", t.X, t.Y, t.Z)
	case t.IsVector():
		return fmt.Sprintf("vector(%g, %g, %g)", t.X, t.Y, t.Z)
	}
	return fmt.Sprintf("tuple(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
}
