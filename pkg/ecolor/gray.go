package ecolor

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// A GrayMode picks how a color pixel is reduced to one intensity in [0,255].
type GrayMode string

const(
	GrayLuma GrayMode = "luma" // Rec.601 weights, as most image libraries do it
	GrayLab  GrayMode = "lab"  // CIE L*, perceptual lightness
)

func ParseGrayMode(s string) (GrayMode, error) {
	switch GrayMode(s) {
	case "", GrayLuma: return GrayLuma, nil
	case GrayLab:      return GrayLab, nil
	}
	return "", fmt.Errorf("no grayscale mode named '%s' (want %s or %s)", s, GrayLuma, GrayLab)
}

// ColToGray maps a color into a gray value in the range [0, 255].
func ColToGray(c color.Color, mode GrayMode) float64 {
	if mode == GrayLab {
		if cf, ok := colorful.MakeColor(c); ok {
			l, _, _ := cf.Lab()
			return clamp255(l * 255.0)
		}
		return 0 // fully transparent
	}

	r, g, b, _ := c.RGBA() // channel values in range [0, 0xFFFF]
	gray := (float64(r) * 0.299 + float64(g) * 0.587 + float64(b) * 0.114) / 257.0
	return clamp255(math.Round(gray))
}

func clamp255(v float64) float64 {
	if v < 0 { return 0 }
	if v > 255 { return 255 }
	return v
}

// ToGrayGrid converts an image into a FloatGrid of intensities in [0,255],
// with the image's Min point at grid (0,0).
func ToGrayGrid(img image.Image, mode GrayMode) emath.FloatGrid {
	b := img.Bounds()
	g := emath.NewFloatGrid(b.Dx(), b.Dy())

	// Already gray: no need to go via color.Color per pixel
	if gray, ok := img.(*image.Gray); ok && mode != GrayLab {
		for y:=0; y<b.Dy(); y++ {
			row := g.Row(y)
			off := gray.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range row {
				row[x] = float64(gray.Pix[off+x])
			}
		}
		return g
	}

	for y:=0; y<b.Dy(); y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = ColToGray(img.At(b.Min.X+x, b.Min.Y+y), mode)
		}
	}
	return g
}
