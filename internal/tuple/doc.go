// Package tuple implements the 4-component spatial algebra used by the
// renderer.
//
// A [Tuple] is a point when W is 1 and a vector when W is 0. The type does
// not enforce the convention: arithmetic runs over all four components, so
// subtracting two points yields a vector and adding a vector to a point
// yields a point.
//
// # Example
//
//	p := tuple.Point(0, 1, 0)
//	v := tuple.Vector(1, 1.8, 0).Normalize().Scale(11.25)
//	next := p.Add(v)
//
// # Unchecked arithmetic
//
// Division and normalization do not guard against zero. Dividing by zero, or
// normalizing a zero-length tuple, produces IEEE infinities or NaN that
// propagate through later operations. Callers that need a usable direction
// must check [Tuple.Magnitude] first.
package tuple
