package metrics

import (
	"math"

	"github.com/san-kum/raytracer/internal/projectile"
)

// Apex tracks the highest y reached while in flight.
type Apex struct {
	name    string
	samples int
	maxY    float64
}

func NewApex() *Apex {
	return &Apex{name: "apex"}
}

func (a *Apex) Name() string { return a.name }

func (a *Apex) Observe(p projectile.Projectile, tick int) {
	if a.samples == 0 || p.Position.Y > a.maxY {
		a.maxY = p.Position.Y
	}
	a.samples++
}

func (a *Apex) Value() float64 { return a.maxY }

func (a *Apex) Reset() {
	a.samples = 0
	a.maxY = 0
}

// Range is the horizontal distance from the first to the last observed
// position.
type Range struct {
	name   string
	seen   bool
	startX float64
	lastX  float64
}

func NewRange() *Range {
	return &Range{name: "range"}
}

func (r *Range) Name() string { return r.name }

func (r *Range) Observe(p projectile.Projectile, tick int) {
	if !r.seen {
		r.startX = p.Position.X
		r.seen = true
	}
	r.lastX = p.Position.X
}

func (r *Range) Value() float64 {
	return r.lastX - r.startX
}

func (r *Range) Reset() {
	r.seen = false
	r.startX = 0
	r.lastX = 0
}

// FlightTicks counts observed in-flight states.
type FlightTicks struct {
	name  string
	count int
}

func NewFlightTicks() *FlightTicks {
	return &FlightTicks{name: "flight_ticks"}
}

func (f *FlightTicks) Name() string                          { return f.name }
func (f *FlightTicks) Observe(p projectile.Projectile, _ int) { f.count++ }
func (f *FlightTicks) Value() float64                        { return float64(f.count) }
func (f *FlightTicks) Reset()                                { f.count = 0 }

// PeakSpeed is the largest velocity magnitude seen.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (s *PeakSpeed) Name() string { return s.name }

func (s *PeakSpeed) Observe(p projectile.Projectile, tick int) {
	s.peak = math.Max(s.peak, p.Velocity.Magnitude())
}

func (s *PeakSpeed) Value() float64 { return s.peak }

func (s *PeakSpeed) Reset() { s.peak = 0 }

// Default returns the metrics recorded for every saved run.
func Default() []projectile.Metric {
	return []projectile.Metric{
		NewApex(),
		NewRange(),
		NewFlightTicks(),
		NewPeakSpeed(),
	}
}
