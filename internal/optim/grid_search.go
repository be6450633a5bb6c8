package optim

import (
	"context"
	"errors"
	"maps"
	"math"

	"github.com/san-kum/raytracer/internal/metrics"
	"github.com/san-kum/raytracer/internal/projectile"
)

// ErrNoCandidate is returned when no grid point produced a landed flight.
var ErrNoCandidate = errors.New("optim: no candidate landed")

// Axis is one searched parameter and the values tried for it.
type Axis struct {
	Name   string
	Values []float64
}

type Objective struct {
	Metric   string
	Maximize bool
}

type Candidate struct {
	Params map[string]float64
	Value  float64
}

// Builder turns one grid point into a scenario.
type Builder func(params map[string]float64) (projectile.Scenario, error)

type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Search flies every grid point and returns the best by obj. Grid points
// that fail to build or land are skipped.
func (g *GridSearch) Search(ctx context.Context, build Builder, obj Objective) (*Candidate, int, error) {
	s := &search{build: build, obj: obj}
	if err := s.recurse(ctx, g.axes, make(map[string]float64)); err != nil {
		return nil, s.evaluated, err
	}
	if s.best == nil {
		return nil, s.evaluated, ErrNoCandidate
	}
	return s.best, s.evaluated, nil
}

type search struct {
	build     Builder
	obj       Objective
	best      *Candidate
	evaluated int
}

func (s *search) recurse(ctx context.Context, axes []Axis, current map[string]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(axes) == 0 {
		s.evaluate(ctx, current)
		return nil
	}

	for _, val := range axes[0].Values {
		next := maps.Clone(current)
		next[axes[0].Name] = val
		if err := s.recurse(ctx, axes[1:], next); err != nil {
			return err
		}
	}
	return nil
}

func (s *search) evaluate(ctx context.Context, params map[string]float64) {
	sc, err := s.build(params)
	if err != nil {
		return
	}

	sim := projectile.New(sc.Environment)
	for _, m := range metrics.Default() {
		sim.AddMetric(m)
	}

	result, err := sim.Run(ctx, sc.Start, nil, sc.Config)
	if err != nil {
		return
	}
	s.evaluated++

	val, ok := result.Metrics[s.obj.Metric]
	if !ok || math.IsNaN(val) {
		return
	}
	if s.best == nil || s.better(val, s.best.Value) {
		s.best = &Candidate{Params: params, Value: val}
	}
}

func (s *search) better(a, b float64) bool {
	if s.obj.Maximize {
		return a > b
	}
	return a < b
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}
