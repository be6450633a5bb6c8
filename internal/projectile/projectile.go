package projectile

import (
	"context"
	"math"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
	"github.com/san-kum/raytracer/internal/ppm"
	"github.com/san-kum/raytracer/internal/tuple"
)

type Projectile struct {
	Position tuple.Tuple
	Velocity tuple.Tuple
}

type Environment struct {
	Gravity tuple.Tuple
	Wind    tuple.Tuple
}

// InFlight reports whether the projectile is above the ground.
func (p Projectile) InFlight() bool {
	return p.Position.Y > 0
}

func (p Projectile) IsValid() bool {
	return p.Position.IsValid() && p.Velocity.IsValid()
}

// Tick returns the projectile one step later.
func Tick(env Environment, p Projectile) Projectile {
	return Projectile{
		Position: p.Position.Add(p.Velocity),
		Velocity: p.Velocity.Add(env.Gravity).Add(env.Wind),
	}
}

// Observer is notified of every plotted state.
type Observer interface {
	OnTick(p Projectile, tick int)
}

type Metric interface {
	Name() string
	Observe(p Projectile, tick int)
	Value() float64
	Reset()
}

type Config struct {
	// MaxTicks bounds the run; zero or negative means unbounded.
	MaxTicks int
	Paint    color.Color
}

const DefaultMaxTicks = 100000

func DefaultConfig() Config {
	return Config{
		MaxTicks: DefaultMaxTicks,
		Paint:    color.Red,
	}
}

type Result struct {
	// Trajectory holds every in-flight position, the initial one first.
	Trajectory []tuple.Tuple
	Final      Projectile
	Ticks      int
	Plotted    int
	Metrics    map[string]float64
}

type Simulator struct {
	env       Environment
	metrics   []Metric
	observers []Observer
}

func New(env Environment) *Simulator {
	return &Simulator{
		env:       env,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Environment() Environment { return s.env }

// Run flies p until it lands, painting each in-flight position onto c with
// cfg.Paint. c may be nil to trace without drawing. On error the partial
// result is returned along with it.
func (s *Simulator) Run(ctx context.Context, p Projectile, c *canvas.Canvas, cfg Config) (*Result, error) {
	result := &Result{
		Trajectory: make([]tuple.Tuple, 0, 64),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var runErr error
	for tick := 0; ; tick++ {
		if !p.IsValid() {
			runErr = &SimulationError{Tick: tick, Position: p.Position, Wrapped: ErrInvalidState}
			break
		}
		if !p.InFlight() {
			break
		}
		if cfg.MaxTicks > 0 && tick >= cfg.MaxTicks {
			runErr = &SimulationError{Tick: tick, Position: p.Position, Wrapped: ErrNotLanded}
			break
		}

		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		for _, m := range s.metrics {
			m.Observe(p, tick)
		}
		for _, obs := range s.observers {
			obs.OnTick(p, tick)
		}

		result.Trajectory = append(result.Trajectory, p.Position)
		if c != nil && Plot(c, p.Position, cfg.Paint) {
			result.Plotted++
		}

		p = Tick(s.env, p)
		result.Ticks++
	}

	result.Final = p
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

// maxPixel keeps float to int conversion well defined for far-off points.
const maxPixel = 1 << 30

// Plot writes col at the pixel for pos, flipping y so that larger y is
// higher on the canvas. It reports whether the pixel landed on the canvas.
func Plot(c *canvas.Canvas, pos tuple.Tuple, col color.Color) bool {
	x, y := math.Round(pos.X), math.Round(pos.Y)
	if math.Abs(x) > maxPixel || math.Abs(y) > maxPixel || math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return c.WritePixel(int(x), c.Height-int(y), col)
}

// Scenario is everything needed for one self-contained run.
type Scenario struct {
	Name        string
	Start       Projectile
	Environment Environment
	Width       int
	Height      int
	Config      Config
}

// DefaultScenario is a long arc across a 900x550 canvas with a light tail
// wind.
func DefaultScenario() Scenario {
	return Scenario{
		Name: "arc",
		Start: Projectile{
			Position: tuple.Point(0, 1, 0),
			Velocity: tuple.Vector(1, 1.8, 0).Normalize().Scale(11.25),
		},
		Environment: Environment{
			Gravity: tuple.Vector(0, -0.1, 0),
			Wind:    tuple.Vector(0.01, 0, 0),
		},
		Width:  900,
		Height: 550,
		Config: DefaultConfig(),
	}
}

// Trace runs sc on a fresh canvas, attaching metrics to the simulator first.
func Trace(ctx context.Context, sc Scenario, metrics ...Metric) (*canvas.Canvas, *Result, error) {
	c, err := canvas.New(sc.Width, sc.Height)
	if err != nil {
		return nil, nil, err
	}

	sim := New(sc.Environment)
	for _, m := range metrics {
		sim.AddMetric(m)
	}

	result, err := sim.Run(ctx, sc.Start, c, sc.Config)
	return c, result, err
}

// Render traces sc and returns the canvas as PPM text.
func Render(ctx context.Context, sc Scenario) (string, error) {
	c, _, err := Trace(ctx, sc)
	if err != nil {
		return "", err
	}
	return ppm.Encode(c), nil
}
