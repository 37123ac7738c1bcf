package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, with some operations. Frames,
// correlation surfaces and canvases are all FloatGrids.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromRows copies a row-major [][]float64 into a grid. All
// rows must have the same length.
func NewFloatGridFromRows(rows [][]float64) (FloatGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return FloatGrid{}, fmt.Errorf("empty grid")
	}
	g := NewFloatGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.stride {
			return FloatGrid{}, fmt.Errorf("row %d has %d values, want %d", y, len(row), g.stride)
		}
		copy(g.Row(y), row)
	}
	return g, nil
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int                 { if fg.stride == 0 { return 0 }; return len(fg.values) / fg.stride }
func (fg *FloatGrid)Bounds() image.Rectangle { return image.Rect(0, 0, fg.Dx(), fg.Dy()) }
func (fg *FloatGrid)SameSize(o FloatGrid) bool { return fg.Dx() == o.Dx() && fg.Dy() == o.Dy() }

// Row returns the backing slice for row y; writes go through to the grid.
func (fg *FloatGrid)Row(y int) []float64 { return fg.values[fg.stride*y : fg.stride*(y+1)] }

// Values returns the backing slice, row-major.
func (fg *FloatGrid)Values() []float64 { return fg.values }

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Paste writes all of src into fg, with src's origin at (x0,y0). The
// caller is responsible for bounds; see Contains.
func (fg *FloatGrid)Paste(src FloatGrid, x0, y0 int) {
	for y:=0; y<src.Dy(); y++ {
		copy(fg.Row(y0+y)[x0:x0+src.Dx()], src.Row(y))
	}
}

// Crop returns a copy of the w*h block at (x0,y0), which must be Contained.
func (fg *FloatGrid)Crop(x0, y0, w, h int) FloatGrid {
	out := NewFloatGrid(w, h)
	for y:=0; y<h; y++ {
		copy(out.Row(y), fg.Row(y0+y)[x0:x0+w])
	}
	return out
}

// Contains reports whether a w*h block with origin (x0,y0) lies fully inside the grid.
func (fg *FloatGrid)Contains(x0, y0, w, h int) bool {
	return x0 >= 0 && y0 >= 0 && x0+w <= fg.Dx() && y0+h <= fg.Dy()
}

// ArgMax returns the location of the largest value. Ties go to the
// first one seen in row-major order.
func (fg *FloatGrid)ArgMax() (x, y int) {
	i := floats.MaxIdx(fg.values)
	return i % fg.stride, i / fg.stride
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	return floats.Min(fg.values), floats.Max(fg.values)
}

// GaussianBlur convolves with a separable ksize*ksize Gaussian kernel
// (see GaussianKernel). Edges are reflected without repeating the
// border pixel (gfedcb|abcdefgh|gfedcba).
func (g1 FloatGrid)GaussianBlur(ksize int) FloatGrid {
	return g1.blur(ksize, reflect101)
}

// GaussianBlurWrap is GaussianBlur for periodic grids, such as a
// correlation surface: the edges wrap round (fgh|abcdefgh|abc).
func (g1 FloatGrid)GaussianBlurWrap(ksize int) FloatGrid {
	return g1.blur(ksize, wrapIndex)
}

func (g1 FloatGrid)blur(ksize int, border func(i, n int) int) FloatGrid {
	width := g1.Dx()
	height := g1.Dy()
	k := GaussianKernel(ksize)
	r := len(k) / 2
	g2 := g1.NewFromThis()

	T  := g1.NewFromThis()

	//--- X blur, build up in T
	for y:=0; y<height; y++ {
		row := g1.Row(y)
		for x:=0; x<width; x++ {
			t := 0.0
			for i:=-r; i<=r; i++ {
				t += k[i+r] * row[border(x+i, width)]
			}
			T.Set(x, y, t)
		}
	}

	//--- Y blur, read from T and generate output
	for x:=0; x<width; x++ {
		for y:=0; y<height; y++ {
			t := 0.0
			for i:=-r; i<=r; i++ {
				t += k[i+r] * T.Get(x, border(y+i, height))
			}
			g2.Set(x, y, t)
		}
	}

	return g2
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToGray8 clamps each value into [0,255] and rounds it, giving an 8-bit grayscale image.
func (fg *FloatGrid)ToGray8() *image.Gray {
	img := image.NewGray(fg.Bounds())
	for y:=0; y<fg.Dy(); y++ {
		for x:=0; x<fg.Dx(); x++ {
			img.Pix[y*img.Stride + x] = Clamp8(fg.Get(x, y))
		}
	}
	return img
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.MinMax()
	span := max - min
	if span == 0 { span = 1 }

	img := image.NewRGBA64(fg.Bounds())
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			gray := GammaExpand_F64 ((fg.Get(x,y) - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0.2,0.2)
	dc.DrawString(title, 10, math.Min(20, float64(fg.Dy())))
	return dc.SavePNG(filename)
}
