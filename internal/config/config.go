package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/raytracer/internal/color"
	"github.com/san-kum/raytracer/internal/projectile"
	"github.com/san-kum/raytracer/internal/tuple"
)

const (
	DefaultWidth    = 900
	DefaultHeight   = 550
	DefaultSpeed    = 11.25
	DefaultGravity  = -0.1
	DefaultWind     = 0.01
	DefaultMaxTicks = projectile.DefaultMaxTicks
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid scenario")

type Config struct {
	Name        string            `yaml:"name"`
	Projectile  ProjectileConfig  `yaml:"projectile"`
	Environment EnvironmentConfig `yaml:"environment"`
	Canvas      CanvasConfig      `yaml:"canvas"`
	MaxTicks    int               `yaml:"max_ticks"`
}

// ProjectileConfig describes the launch. Direction is normalized and scaled
// by Speed to give the initial velocity.
type ProjectileConfig struct {
	Start     Vec3    `yaml:"start"`
	Direction Vec3    `yaml:"direction"`
	Speed     float64 `yaml:"speed"`
}

type EnvironmentConfig struct {
	Gravity Vec3 `yaml:"gravity"`
	Wind    Vec3 `yaml:"wind"`
}

type CanvasConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Paint  RGB    `yaml:"paint"`
	Output string `yaml:"output"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type RGB struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "arc",
		Projectile: ProjectileConfig{
			Start:     Vec3{Y: 1},
			Direction: Vec3{X: 1, Y: 1.8},
			Speed:     DefaultSpeed,
		},
		Environment: EnvironmentConfig{
			Gravity: Vec3{Y: DefaultGravity},
			Wind:    Vec3{X: DefaultWind},
		},
		Canvas: CanvasConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Paint:  RGB{R: 1},
			Output: "canvas.ppm",
		},
		MaxTicks: DefaultMaxTicks,
	}
}

// Load reads a YAML scenario over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if strings.ContainsAny(c.Name, `/\`) || c.Name == "." || c.Name == ".." {
		return fmt.Errorf("%w: name %q", ErrInvalidConfig, c.Name)
	}
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Projectile.Speed != 0 && c.Projectile.Direction.tuple(0).Magnitude() == 0 {
		return fmt.Errorf("%w: zero launch direction with speed %g", ErrInvalidConfig, c.Projectile.Speed)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks %d", ErrInvalidConfig, c.MaxTicks)
	}
	return nil
}

// Scenario converts the config into a runnable projectile scenario.
func (c *Config) Scenario() (projectile.Scenario, error) {
	if err := c.Validate(); err != nil {
		return projectile.Scenario{}, err
	}

	velocity := tuple.Vector(0, 0, 0)
	if c.Projectile.Speed != 0 {
		velocity = tuple.Vector(c.Projectile.Direction.X, c.Projectile.Direction.Y, c.Projectile.Direction.Z).
			Normalize().
			Scale(c.Projectile.Speed)
	}

	return projectile.Scenario{
		Name: c.Name,
		Start: projectile.Projectile{
			Position: c.Projectile.Start.tuple(1),
			Velocity: velocity,
		},
		Environment: projectile.Environment{
			Gravity: c.Environment.Gravity.tuple(0),
			Wind:    c.Environment.Wind.tuple(0),
		},
		Width:  c.Canvas.Width,
		Height: c.Canvas.Height,
		Config: projectile.Config{
			MaxTicks: c.MaxTicks,
			Paint:    color.New(c.Canvas.Paint.R, c.Canvas.Paint.G, c.Canvas.Paint.B),
		},
	}, nil
}

func (v Vec3) tuple(w float64) tuple.Tuple {
	return tuple.Tuple{X: v.X, Y: v.Y, Z: v.Z, W: w}
}
