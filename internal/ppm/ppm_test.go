package ppm_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
	"github.com/san-kum/raytracer/internal/ppm"
)

func newCanvas(w, h int) *canvas.Canvas {
	c, err := canvas.New(w, h)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

var _ = Describe("Encode", func() {
	It("writes the three header lines", func() {
		out := lines(ppm.Encode(newCanvas(5, 3)))
		Expect(out[:3]).To(Equal([]string{"P3", "5 3", "255"}))
	})

	It("clamps and scales pixel data", func() {
		c := newCanvas(5, 3)
		c.WritePixel(0, 0, color.New(1.5, 0, 0))
		c.WritePixel(2, 1, color.New(0, 0.5, 0))
		c.WritePixel(4, 2, color.New(-0.5, 0, 1))

		out := lines(ppm.Encode(c))
		Expect(out[3:]).To(Equal([]string{
			"255 0 0 0 0 0 0 0 0 0 0 0 0 0 0",
			"0 0 0 0 0 0 0 128 0 0 0 0 0 0 0",
			"0 0 0 0 0 0 0 0 0 0 0 0 0 0 255",
		}))
	})

	It("wraps long rows at 70 characters without splitting values", func() {
		c := newCanvas(10, 2)
		c.Fill(color.New(1, 0.8, 0.6))

		out := lines(ppm.Encode(c))
		Expect(out[3:]).To(Equal([]string{
			"255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204",
			"153 255 204 153 255 204 153 255 204 153 255 204 153",
			"255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204",
			"153 255 204 153 255 204 153 255 204 153 255 204 153",
		}))
		for _, l := range out {
			Expect(len(l)).To(BeNumerically("<=", ppm.MaxLineLength))
		}
	})

	It("keeps every line within the limit for wide canvases", func() {
		c := newCanvas(97, 3)
		c.Fill(color.New(0.05, 0.5, 1))

		out := lines(ppm.Encode(c))
		values := 0
		for _, l := range out[3:] {
			Expect(len(l)).To(BeNumerically("<=", ppm.MaxLineLength))
			Expect(l).NotTo(HavePrefix(" "))
			Expect(l).NotTo(HaveSuffix(" "))
			values += len(strings.Fields(l))
		}
		Expect(values).To(Equal(97 * 3 * 3))
	})

	It("ends with a newline", func() {
		Expect(ppm.Encode(newCanvas(5, 3))).To(HaveSuffix("\n"))
	})

	It("emits only the header for an empty canvas", func() {
		Expect(ppm.Encode(newCanvas(0, 0))).To(Equal("P3\n0 0\n255\n"))
	})
})

var _ = Describe("Write", func() {
	It("streams the same bytes Encode returns", func() {
		c := newCanvas(30, 4)
		c.WritePixel(3, 2, color.Red)
		c.WritePixel(29, 3, color.New(0.2, 0.4, 0.6))

		var buf bytes.Buffer
		Expect(ppm.Write(&buf, c)).To(Succeed())
		Expect(buf.String()).To(Equal(ppm.Encode(c)))
	})

	It("reports writer failures", func() {
		Expect(ppm.Write(failingWriter{}, newCanvas(2, 2))).To(MatchError(ContainSubstring("disk full")))
	})
})

var _ = Describe("Decode", func() {
	It("round-trips encoded canvases", func() {
		c := newCanvas(12, 3)
		c.WritePixel(0, 0, color.Red)
		c.WritePixel(11, 2, color.White)
		c.WritePixel(5, 1, color.New(0, 1, 1))

		back, err := ppm.Decode(strings.NewReader(ppm.Encode(c)))
		Expect(err).NotTo(HaveOccurred())
		Expect(back.Width).To(Equal(12))
		Expect(back.Height).To(Equal(3))
		Expect(ppm.Encode(back)).To(Equal(ppm.Encode(c)))

		px, ok := back.PixelAt(5, 1)
		Expect(ok).To(BeTrue())
		Expect(px.Equal(color.New(0, 1, 1))).To(BeTrue())
	})

	It("accepts comments and a different max value", func() {
		src := "P3\n# made elsewhere\n2 1\n15\n15 0 0   0 15 0 # trailing\n"
		c, err := ppm.Decode(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())

		px, _ := c.PixelAt(0, 0)
		Expect(px.Equal(color.Red)).To(BeTrue())
		px, _ = c.PixelAt(1, 0)
		Expect(px.Equal(color.Green)).To(BeTrue())
	})

	It("accepts dimensions at the limit", func() {
		src := fmt.Sprintf("P3\n0 %d\n255\n", ppm.MaxDimension)
		c, err := ppm.Decode(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Height).To(Equal(ppm.MaxDimension))
	})

	DescribeTable("rejects malformed input",
		func(src string) {
			_, err := ppm.Decode(strings.NewReader(src))
			Expect(err).To(MatchError(ppm.ErrMalformed))
		},
		Entry("empty", ""),
		Entry("wrong magic", "P6\n1 1\n255\n0 0 0\n"),
		Entry("bad width", "P3\nx 1\n255\n0 0 0\n"),
		Entry("zero max value", "P3\n1 1\n0\n0 0 0\n"),
		Entry("missing values", "P3\n2 1\n255\n0 0 0\n"),
		Entry("extra values", "P3\n1 1\n255\n0 0 0 0\n"),
		Entry("value above max", "P3\n1 1\n255\n256 0 0\n"),
		Entry("negative value", "P3\n1 1\n255\n-1 0 0\n"),
		Entry("width overflowing the value count", "P3\n4611686018427387904 4\n255\n"),
		Entry("zero width with huge height", "P3\n0 4611686018427387904\n255\n"),
		Entry("height just over the limit", "P3\n0 65537\n255\n"),
	)
})
