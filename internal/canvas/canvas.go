// Package canvas holds the in-memory raster the renderer paints into.
package canvas

import (
	"errors"
	"fmt"

	"github.com/san-kum/raytracer/internal/color"
)

// ErrInvalidDimensions is returned by New for a negative width or height.
var ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

// Canvas is a Height x Width grid of colors. Its dimensions never change
// after construction: Width and Height are read-only, and bounds checks go
// by the allocated grid so assigning to them cannot reach past it. A Canvas
// is not safe for concurrent use.
type Canvas struct {
	Width, Height int
	pixels        [][]color.Color
}

// New allocates a canvas with every pixel black. Zero dimensions are
// allowed and produce an empty grid.
func New(width, height int) (*Canvas, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	c := &Canvas{
		Width:  width,
		Height: height,
		pixels: make([][]color.Color, height),
	}
	for y := range c.pixels {
		c.pixels[y] = make([]color.Color, width)
	}
	return c, nil
}

// WritePixel stores col at (x, y) and reports whether it did. Writes outside
// the grid are discarded.
func (c *Canvas) WritePixel(x, y int, col color.Color) bool {
	if !c.InBounds(x, y) {
		return false
	}
	c.pixels[y][x] = col
	return true
}

// PixelAt returns the color at (x, y). Outside the grid it returns black and
// false.
func (c *Canvas) PixelAt(x, y int) (color.Color, bool) {
	if !c.InBounds(x, y) {
		return color.Black, false
	}
	return c.pixels[y][x], true
}

func (c *Canvas) InBounds(x, y int) bool {
	return y >= 0 && y < len(c.pixels) && x >= 0 && x < len(c.pixels[y])
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col color.Color) {
	for y := range c.pixels {
		for x := range c.pixels[y] {
			c.pixels[y][x] = col
		}
	}
}

// Row returns a copy of row y, or nil outside the grid.
func (c *Canvas) Row(y int) []color.Color {
	if y < 0 || y >= len(c.pixels) {
		return nil
	}
	row := make([]color.Color, len(c.pixels[y]))
	copy(row, c.pixels[y])
	return row
}
