package viz

import (
	"strings"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
)

// Dot bits within a braille cell, indexed [row][col]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Braille is a grid of braille cells addressed in dot coordinates.
type Braille struct {
	Cols, Rows int
	cells      [][]rune
}

func NewBraille(cols, rows int) *Braille {
	b := &Braille{
		Cols:  max(cols, 0),
		Rows:  max(rows, 0),
		cells: make([][]rune, max(rows, 0)),
	}
	for i := range b.cells {
		b.cells[i] = make([]rune, b.Cols)
	}
	b.Clear()
	return b
}

// Set lights the dot at (x, y). Dots outside the grid are ignored.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.cells[row][col] |= dotBits[y%4][x%2]
}

func (b *Braille) Clear() {
	for i := range b.cells {
		for j := range b.cells[i] {
			b.cells[i][j] = brailleBlank
		}
	}
}

func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FromCanvas downsamples c onto a cols x rows braille grid, lighting a dot
// wherever any covered pixel is not black.
func FromCanvas(c *canvas.Canvas, cols, rows int) *Braille {
	b := NewBraille(cols, rows)
	dotsX, dotsY := b.Cols*2, b.Rows*4
	if c.Width == 0 || c.Height == 0 || dotsX == 0 || dotsY == 0 {
		return b
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			px, _ := c.PixelAt(x, y)
			if px.Clamped().Equal(color.Black) {
				continue
			}
			b.Set(x*dotsX/c.Width, y*dotsY/c.Height)
		}
	}
	return b
}

// DominantColor returns the most frequent non-black color on c, or white
// when the canvas is blank.
func DominantColor(c *canvas.Canvas) color.Color {
	counts := make(map[string]int)
	colors := make(map[string]color.Color)
	best, bestN := "", 0
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			px, _ := c.PixelAt(x, y)
			hex := px.Hex()
			if hex == "#000000" {
				continue
			}
			counts[hex]++
			colors[hex] = px.Clamped()
			if counts[hex] > bestN || (counts[hex] == bestN && hex < best) {
				best, bestN = hex, counts[hex]
			}
		}
	}
	if bestN == 0 {
		return color.White
	}
	return colors[best]
}
