// Package approx compares floating point values with a fixed tolerance.
//
// Every equality check on tuples and colors goes through [Equal], so the
// whole renderer shares one notion of "close enough".
package approx

import "math"

// Epsilon is the float64 machine epsilon, the gap between 1.0 and the next
// representable value.
const Epsilon = 2.220446049250313e-16

// Equal reports whether |a-b| < Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
