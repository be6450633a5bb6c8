// Package ppm serializes canvases to the plain-text "P3" portable pixmap
// format and reads them back.
//
// Output is a pure function of the canvas contents:
//
//	P3
//	<width> <height>
//	255
//	<pixel rows, wrapped at 70 characters>
//
// Each channel is clamped to [0, 1], scaled by 255 and rounded half away
// from zero. A row's values are packed greedily onto lines of at most
// MaxLineLength characters; a value is never split across lines. Every row
// starts on a new line and the document ends with a newline.
package ppm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/raytracer/internal/canvas"
)

const (
	MagicNumber   = "P3"
	MaxColorValue = 255
	MaxLineLength = 70
)

// Encode returns the PPM text for c.
func Encode(c *canvas.Canvas) string {
	var sb strings.Builder
	// strings.Builder never fails a write.
	_ = Write(&sb, c)
	return sb.String()
}

// Write streams the PPM text for c to w.
func Write(w io.Writer, c *canvas.Canvas) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(MagicNumber)
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(c.Width))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(c.Height))
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(MaxColorValue))
	bw.WriteByte('\n')

	for y := 0; y < c.Height; y++ {
		lw := lineWrapper{w: bw}
		for x := 0; x < c.Width; x++ {
			px, _ := c.PixelAt(x, y)
			r, g, b := px.Bytes()
			lw.token(r)
			lw.token(g)
			lw.token(b)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// lineWrapper packs channel values onto one logical row, breaking the line
// before a value that would push it past MaxLineLength.
type lineWrapper struct {
	w   *bufio.Writer
	n   int
	buf [3]byte
}

func (lw *lineWrapper) token(v uint8) {
	tok := strconv.AppendUint(lw.buf[:0], uint64(v), 10)
	switch {
	case lw.n == 0:
	case lw.n+1+len(tok) > MaxLineLength:
		lw.w.WriteByte('\n')
		lw.n = 0
	default:
		lw.w.WriteByte(' ')
		lw.n++
	}
	lw.w.Write(tok)
	lw.n += len(tok)
}
