package render_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/escapetime/internal/mandel"
	"github.com/san-kum/escapetime/internal/ppm"
	"github.com/san-kum/escapetime/internal/render"
)

var errDisk = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errDisk }

type countingMetric struct {
	observed int
	resets   int
}

func (c *countingMetric) Name() string   { return "count" }
func (c *countingMetric) Observe(_ int)  { c.observed++ }
func (c *countingMetric) Value() float64 { return float64(c.observed) }

func (c *countingMetric) Reset() {
	c.observed = 0
	c.resets++
}

func small(width, height int) mandel.Params {
	return mandel.Params{
		Width: width, Height: height,
		XMin: -2, XMax: 1, YMin: -1.5, YMax: 1.5,
		MaxIterations: 255,
	}
}

var _ = Describe("Renderer", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Render", func() {
		It("emits the header followed by row-major grayscale pixels", func() {
			var buf bytes.Buffer
			result, err := render.New(small(4, 3)).Render(ctx, &buf)
			Expect(err).NotTo(HaveOccurred())

			counts := []byte{1, 2, 2, 2, 0, 0, 0, 3, 1, 2, 2, 2}
			expected := []byte("P6 4 3 255 ")
			for _, c := range counts {
				expected = append(expected, c, c, c)
			}
			Expect(buf.Bytes()).To(Equal(expected))
			Expect(result.Pixels).To(Equal(12))
			Expect(result.InSet).To(Equal(3))
			Expect(result.BytesWritten).To(Equal(int64(len(expected))))
		})

		It("matches the reference raster for the 31x31 image", func() {
			var buf bytes.Buffer
			result, err := render.New(small(31, 31)).Render(ctx, &buf)
			Expect(err).NotTo(HaveOccurred())

			sum := sha256.Sum256(buf.Bytes())
			Expect(hex.EncodeToString(sum[:])).To(Equal("5cedbaa60cb76aa11a7bfe099f6ad239534def0074202ba47e1524c50621dba0"))
			Expect(result.InSet).To(Equal(163))
			Expect(int64(buf.Len())).To(Equal(ppm.ExpectedSize(31, 31)))
		})

		It("paints in-set pixels black", func() {
			p := small(31, 31)
			var buf bytes.Buffer
			_, err := render.New(p).Render(ctx, &buf)
			Expect(err).NotTo(HaveOccurred())

			header := len(ppm.Header(31, 31))
			offset := header + (15*31+7)*3
			Expect(mandel.Iterate(p.PixelPoint(7, 15), p.MaxIterations)).To(Equal(p.MaxIterations))
			Expect(buf.Bytes()[offset : offset+3]).To(Equal([]byte{0, 0, 0}))
		})

		It("is deterministic", func() {
			var a, b bytes.Buffer
			r := render.New(small(40, 24))
			_, err := r.Render(ctx, &a)
			Expect(err).NotTo(HaveOccurred())
			_, err = r.Render(ctx, &b)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Bytes()).To(Equal(b.Bytes()))
		})

		DescribeTable("rejects invalid parameters before writing",
			func(p mandel.Params, want error) {
				var buf bytes.Buffer
				_, err := render.New(p).Render(ctx, &buf)
				Expect(err).To(MatchError(want))
				Expect(buf.Len()).To(BeZero())
			},
			Entry("single pixel", small(1, 1), mandel.ErrDegenerateDimension),
			Entry("single row", small(16, 1), mandel.ErrDegenerateDimension),
			Entry("too many iterations", func() mandel.Params { p := small(4, 4); p.MaxIterations = 1000; return p }(), mandel.ErrIterationRange),
			Entry("reversed bounds", func() mandel.Params { p := small(4, 4); p.XMin, p.XMax = p.XMax, p.XMin; return p }(), mandel.ErrInvalidBounds),
		)

		It("feeds every escape count to metrics and resets them per run", func() {
			m := &countingMetric{}
			r := render.New(small(8, 6))
			r.AddMetric(m)

			result, err := r.Render(ctx, &bytes.Buffer{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKeyWithValue("count", 48.0))

			_, err = r.Render(ctx, &bytes.Buffer{})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.observed).To(Equal(48))
			Expect(m.resets).To(Equal(2))
		})

		It("notifies observers once per row in order", func() {
			var rows []int
			r := render.New(small(5, 7))
			r.AddObserver(render.ObserverFunc(func(row, height int) {
				Expect(height).To(Equal(7))
				rows = append(rows, row)
			}))

			_, err := r.Render(ctx, &bytes.Buffer{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal([]int{0, 1, 2, 3, 4, 5, 6}))
		})

		It("stops between rows when the context is canceled", func() {
			cctx, cancel := context.WithCancel(ctx)
			defer cancel()

			r := render.New(small(10, 10))
			r.AddObserver(render.ObserverFunc(func(row, _ int) {
				if row == 2 {
					cancel()
				}
			}))

			var buf bytes.Buffer
			result, err := r.Render(cctx, &buf)
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Pixels).To(Equal(30))
			Expect(int64(buf.Len())).To(Equal(int64(len(ppm.Header(10, 10))) + 30*3))
		})

		It("keeps the flush error when canceled mid-render", func() {
			cctx, cancel := context.WithCancel(ctx)
			defer cancel()

			r := render.New(small(4, 4))
			r.AddObserver(render.ObserverFunc(func(row, _ int) {
				if row == 1 {
					cancel()
				}
			}))

			result, err := r.Render(cctx, failingWriter{})
			Expect(err).To(MatchError(context.Canceled))
			Expect(err).To(MatchError(errDisk))
			Expect(result.Pixels).To(Equal(8))
		})

		It("reports write failures with the pixel being emitted", func() {
			_, err := render.New(small(200, 200)).Render(ctx, failingWriter{})
			Expect(err).To(MatchError(errDisk))

			var pe *mandel.PixelError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Row).To(BeNumerically(">", 0))
		})

		It("reports flush failures for images that fit the buffer", func() {
			_, err := render.New(small(4, 4)).Render(ctx, failingWriter{})
			Expect(err).To(MatchError(errDisk))

			var pe *mandel.PixelError
			Expect(errors.As(err, &pe)).To(BeFalse())
		})
	})

	Describe("RenderFile", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "render")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("writes a file of exactly the expected size", func() {
			p := small(64, 48)
			path := filepath.Join(dir, p.Filename())

			result, err := render.New(p).RenderFile(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Path).To(Equal(path))

			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Size()).To(Equal(ppm.ExpectedSize(64, 48)))
			Expect(result.BytesWritten).To(Equal(info.Size()))
		})

		It("overwrites with byte-identical output", func() {
			p := small(31, 31)
			path := filepath.Join(dir, p.Filename())
			r := render.New(p)

			_, err := r.RenderFile(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			first, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())

			_, err = r.RenderFile(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			second, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
		})

		It("does not create a file for invalid parameters", func() {
			path := filepath.Join(dir, "degenerate.ppm")
			_, err := render.New(small(1, 1)).RenderFile(ctx, path)
			Expect(err).To(MatchError(mandel.ErrDegenerateDimension))

			_, statErr := os.Stat(path)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})

		It("fails when the directory does not exist", func() {
			_, err := render.New(small(4, 4)).RenderFile(ctx, filepath.Join(dir, "missing", "out.ppm"))
			Expect(err).To(HaveOccurred())
		})
	})
})
