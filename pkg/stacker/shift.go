package stacker

import(
	"fmt"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// A Shift is the whole-pixel translation that registers a candidate
// frame onto the pivot: place the candidate DX,DY pixels from where the
// pivot sits and they line up.
type Shift struct {
	DX, DY int
}

func (s Shift)String() string { return fmt.Sprintf("(%d,%d)", s.DX, s.DY) }

// A ShiftEstimator works out the Shift for a candidate frame. Circular
// estimators work in the frequency domain, so their answers are modulo
// the frame size and need WrapShift applied.
type ShiftEstimator interface {
	Name() string
	Estimate(pivot, candidate emath.FloatGrid) (Shift, error)
	Circular() bool
}

// A SurfaceEstimator can also hand back the surface it picks the peak
// from, so it can be dumped for debugging.
type SurfaceEstimator interface {
	ShiftEstimator
	Surface(pivot, candidate emath.FloatGrid) (emath.FloatGrid, error)
}

// EstimateShift runs the estimator, after checking the frames are the same size.
// The result is raw; see AlignShift for the corrected value.
func EstimateShift(pivot, candidate emath.FloatGrid, est ShiftEstimator) (Shift, error) {
	if !pivot.SameSize(candidate) {
		return Shift{}, fmt.Errorf("pivot %dx%d, candidate %dx%d: %w",
			pivot.Dx(), pivot.Dy(), candidate.Dx(), candidate.Dy(), ErrDimensionMismatch)
	}
	return est.Estimate(pivot, candidate)
}

// WrapShift maps a shift that is only known modulo (w,h) onto its
// smallest representative: x in (-w/2, w/2], y in (-h/2, h/2].
func WrapShift(raw Shift, w, h int) Shift {
	s := raw
	if s.DX > w/2 { s.DX -= w }
	if s.DY > h/2 { s.DY -= h }
	return s
}

// AlignShift estimates the shift and, for circular estimators only,
// applies the wraparound correction.
func AlignShift(pivot, candidate emath.FloatGrid, est ShiftEstimator) (raw, corrected Shift, err error) {
	raw, err = EstimateShift(pivot, candidate, est)
	if err != nil {
		return raw, raw, err
	}
	corrected = raw
	if est.Circular() {
		corrected = WrapShift(raw, pivot.Dx(), pivot.Dy())
	}
	return raw, corrected, nil
}
