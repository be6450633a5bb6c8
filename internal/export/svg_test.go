package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
	"github.com/san-kum/raytracer/internal/tuple"
)

func TestCanvasToSVG(t *testing.T) {
	c, err := canvas.New(4, 3)
	require.NoError(t, err)
	c.WritePixel(1, 2, color.Red)
	c.WritePixel(3, 0, color.New(2, 0.8, 0.6))
	c.WritePixel(0, 0, color.New(-1, -1, -1))

	svg := CanvasToSVG(c, 10)

	assert.Contains(t, svg, `width="40" height="30"`)
	assert.Contains(t, svg, `<rect x="10.0" y="20.0" width="10.0" height="10.0" fill="#ff0000"/>`)
	assert.Contains(t, svg, `<rect x="30.0" y="0.0" width="10.0" height="10.0" fill="#ffcc99"/>`)
	assert.Equal(t, 3, strings.Count(svg, "<rect"), "background plus two lit pixels")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestCanvasToSVGNil(t *testing.T) {
	assert.Empty(t, CanvasToSVG(nil, 1))
}

func TestTrajectoryToSVG(t *testing.T) {
	points := []tuple.Tuple{
		tuple.Point(0, 0, 0),
		tuple.Point(5, 10, 0),
		tuple.Point(10, 0, 0),
	}

	svg := TrajectoryToSVG(points, 120, 120, color.Red)

	assert.Contains(t, svg, `stroke="#ff0000"`)
	// Bounds padded by 10%: x in [-1, 11], y in [-1, 11].
	assert.Contains(t, svg, `d="M10.0,110.0 L60.0,10.0 L110.0,110.0"`)
}

func TestTrajectoryToSVGFlatLine(t *testing.T) {
	points := []tuple.Tuple{tuple.Point(0, 2, 0), tuple.Point(4, 2, 0)}
	svg := TrajectoryToSVG(points, 100, 100, color.White)
	assert.NotContains(t, svg, "NaN")
	assert.Contains(t, svg, "M")
}

func TestTrajectoryToSVGTooShort(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG(nil, 10, 10, color.Red))
	assert.Empty(t, TrajectoryToSVG([]tuple.Tuple{tuple.Point(1, 1, 0)}, 10, 10, color.Red))
}
