package config

import "sort"

var Presets = map[string]*Config{
	"arc": DefaultConfig(),
	"drift": {
		Name: "drift",
		Projectile: ProjectileConfig{
			Start:     Vec3{Y: 1},
			Direction: Vec3{X: 1, Y: 1},
			Speed:     1,
		},
		Environment: EnvironmentConfig{
			Gravity: Vec3{Y: -0.1},
			Wind:    Vec3{X: -0.01},
		},
		Canvas: CanvasConfig{
			Width: 20, Height: 10,
			Paint:  RGB{R: 1},
			Output: "drift.ppm",
		},
		MaxTicks: DefaultMaxTicks,
	},
	"lob": {
		Name: "lob",
		Projectile: ProjectileConfig{
			Start:     Vec3{Y: 1},
			Direction: Vec3{X: 1, Y: 4},
			Speed:     9,
		},
		Environment: EnvironmentConfig{
			Gravity: Vec3{Y: -0.1},
		},
		Canvas: CanvasConfig{
			Width: 400, Height: 420,
			Paint:  RGB{R: 1, G: 0.8, B: 0.2},
			Output: "lob.ppm",
		},
		MaxTicks: DefaultMaxTicks,
	},
	"gale": {
		Name: "gale",
		Projectile: ProjectileConfig{
			Start:     Vec3{Y: 1},
			Direction: Vec3{X: 1, Y: 1.2},
			Speed:     8,
		},
		Environment: EnvironmentConfig{
			Gravity: Vec3{Y: -0.1},
			Wind:    Vec3{X: -0.06},
		},
		Canvas: CanvasConfig{
			Width: 400, Height: 200,
			Paint:  RGB{R: 0.3, G: 0.7, B: 1},
			Output: "gale.ppm",
		},
		MaxTicks: DefaultMaxTicks,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
