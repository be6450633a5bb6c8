// Package color implements RGB colors over an unbounded float range.
//
// Channels may go negative or exceed 1 during arithmetic; [Color.Clamped]
// brings them into the displayable range and is only applied on output.
package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/raytracer/internal/approx"
)

type Color struct {
	Red, Green, Blue float64
}

// New returns a color with the given channels.
func New(red, green, blue float64) Color {
	return Color{Red: red, Green: green, Blue: blue}
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

func (c Color) Add(o Color) Color {
	return Color{c.Red + o.Red, c.Green + o.Green, c.Blue + o.Blue}
}

// Sub adds the negation of o.
func (c Color) Sub(o Color) Color {
	return c.Add(o.Scale(-1))
}

func (c Color) Scale(k float64) Color {
	return Color{c.Red * k, c.Green * k, c.Blue * k}
}

// Multiply is the component-wise (Hadamard) product.
func (c Color) Multiply(o Color) Color {
	return Color{c.Red * o.Red, c.Green * o.Green, c.Blue * o.Blue}
}

// Clamped restricts each channel to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.Red), clamp01(c.Green), clamp01(c.Blue)}
}

func (c Color) Equal(o Color) bool {
	return approx.Equal(c.Red, o.Red) &&
		approx.Equal(c.Green, o.Green) &&
		approx.Equal(c.Blue, o.Blue)
}

// Bytes converts the clamped channels to 0..255, rounding half away from
// zero.
func (c Color) Bytes() (r, g, b uint8) {
	cl := c.Clamped()
	return to8bit(cl.Red), to8bit(cl.Green), to8bit(cl.Blue)
}

// Hex formats the clamped color as #rrggbb.
func (c Color) Hex() string {
	cl := c.Clamped()
	return colorful.Color{R: cl.Red, G: cl.Green, B: cl.Blue}.Hex()
}

// ParseHex reads a #rrggbb or #rgb string.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color: %w", err)
	}
	return Color{Red: cf.R, Green: cf.G, Blue: cf.B}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("color(%g, %g, %g)", c.Red, c.Green, c.Blue)
}

// clamp01 maps NaN to 0 so serialized channels always stay in range.
func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8bit(v float64) uint8 {
	return uint8(math.Round(255 * v))
}
