package stacker

import(
	"fmt"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// BrightSpotter aligns frames by the brightest (blurred) pixel in
// each. Cheap, and good when the subject is one small bright thing on a
// dark sky, like a planet.
type BrightSpotter struct {
	Radius int // size of the blur kernel; must be odd
}

func (bs BrightSpotter)Name() string   { return fmt.Sprintf("bright spot correlation (radius %d)", bs.Radius) }
func (bs BrightSpotter)Circular() bool { return false }

func (bs BrightSpotter)Validate() error {
	if bs.Radius <= 0 || bs.Radius%2 == 0 {
		return fmt.Errorf("invalid radius %d, must be odd and positive: %w", bs.Radius, ErrConfig)
	}
	return nil
}

func (bs BrightSpotter)Estimate(pivot, candidate emath.FloatGrid) (Shift, error) {
	if err := bs.Validate(); err != nil {
		return Shift{}, err
	}
	px, py := BrightSpot(pivot, bs.Radius)
	cx, cy := BrightSpot(candidate, bs.Radius)
	return Shift{DX: px - cx, DY: py - cy}, nil
}

// BrightSpot returns the location of the brightest pixel after a
// radius*radius Gaussian blur.
func BrightSpot(g emath.FloatGrid, radius int) (int, int) {
	blurred := g.GaussianBlur(radius)
	return blurred.ArgMax()
}
