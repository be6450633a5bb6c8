package projectile

import (
	"errors"
	"fmt"

	"github.com/san-kum/raytracer/internal/tuple"
)

var (
	// ErrNotLanded indicates the projectile was still in flight after
	// MaxTicks ticks.
	ErrNotLanded = errors.New("projectile: still in flight after tick limit")

	// ErrInvalidState indicates a NaN or infinite position or velocity.
	ErrInvalidState = errors.New("projectile: invalid state (NaN or Inf detected)")
)

// SimulationError records where a run stopped.
type SimulationError struct {
	Tick     int
	Position tuple.Tuple
	Wrapped  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d at %v: %v", e.Tick, e.Position, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
