package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
)

// maxLineBytes bounds a single input line; other writers do not always wrap
// at 70 columns.
const maxLineBytes = 16 << 20

// MaxDimension is the largest width or height Decode accepts.
const MaxDimension = 1 << 16

// ErrMalformed is returned by Decode for input that is not valid P3 text.
var ErrMalformed = errors.New("ppm: malformed image")

// Decode parses P3 text into a canvas. Whitespace layout is free and '#'
// starts a comment running to the end of the line. Channel values are scaled
// by the file's maximum value into [0, 1].
func Decode(r io.Reader) (*canvas.Canvas, error) {
	tokens, err := scanTokens(r)
	if err != nil {
		return nil, err
	}
	if len(tokens) < 4 {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}
	if tokens[0] != MagicNumber {
		return nil, fmt.Errorf("%w: magic number %q", ErrMalformed, tokens[0])
	}

	header := make([]int, 3)
	for i, name := range []string{"width", "height", "max value"} {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %s %q", ErrMalformed, name, tokens[i+1])
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: dimensions %dx%d exceed %d", ErrMalformed, width, height, MaxDimension)
	}
	if maxVal == 0 {
		return nil, fmt.Errorf("%w: max value 0", ErrMalformed)
	}

	data := tokens[4:]
	if want := width * height * 3; len(data) != want {
		return nil, fmt.Errorf("%w: %d channel values, want %d", ErrMalformed, len(data), want)
	}

	c, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}

	channel := func(i int) (float64, error) {
		v, err := strconv.Atoi(data[i])
		if err != nil || v < 0 || v > maxVal {
			return 0, fmt.Errorf("%w: channel value %q", ErrMalformed, data[i])
		}
		return float64(v) / float64(maxVal), nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := (y*width + x) * 3
			var rgb [3]float64
			for k := range rgb {
				v, err := channel(base + k)
				if err != nil {
					return nil, err
				}
				rgb[k] = v
			}
			c.WritePixel(x, y, color.New(rgb[0], rgb[1], rgb[2]))
		}
	}

	return c, nil
}

func scanTokens(r io.Reader) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ppm: read: %w", err)
	}
	return tokens, nil
}
