package stacker

import(
	"fmt"
	"math/cmplx"

	"github.com/abworrall/drift-stacker/pkg/emath"
	"github.com/abworrall/drift-stacker/pkg/fft"
)

// PhaseCorrelator finds the shift from the peak of the normalized
// cross-power spectrum of the two frames. It copes well with extended
// subjects, and with brightness differences between frames.
type PhaseCorrelator struct {
	BlurSize int // smoothing applied to the correlation surface, to knock down single pixel noise peaks
}

func (pc PhaseCorrelator)Name() string   { return "phase correlation" }
func (pc PhaseCorrelator)Circular() bool { return true }

func (pc PhaseCorrelator)Estimate(pivot, candidate emath.FloatGrid) (Shift, error) {
	surface, err := pc.Surface(pivot, candidate)
	if err != nil {
		return Shift{}, err
	}
	x, y := surface.ArgMax()
	return Shift{DX: x, DY: y}, nil
}

// Surface returns the smoothed correlation surface; its peak is at the
// (unwrapped) shift. The surface is periodic, so the blur wraps at the
// edges; a reflected border would drag peaks at 1 and W-2 onto the edge.
func (pc PhaseCorrelator)Surface(pivot, candidate emath.FloatGrid) (emath.FloatGrid, error) {
	if !pivot.SameSize(candidate) {
		return emath.FloatGrid{}, fmt.Errorf("phase correlation: %w", ErrDimensionMismatch)
	}

	plan := fft.NewPlan(pivot.Dx(), pivot.Dy())
	ga, err := plan.Forward(pivot)
	if err != nil {
		return emath.FloatGrid{}, err
	}
	gb, err := plan.Forward(candidate)
	if err != nil {
		return emath.FloatGrid{}, err
	}

	// R = Ga.conj(Gb) / |Ga.conj(Gb)|, reusing ga's storage
	for i, a := range ga.Coeffs {
		r := a * cmplx.Conj(gb.Coeffs[i])
		if mag := cmplx.Abs(r); mag == 0 {
			ga.Coeffs[i] = 0
		} else {
			ga.Coeffs[i] = r / complex(mag, 0)
		}
	}

	r, err := plan.Inverse(ga)
	if err != nil {
		return emath.FloatGrid{}, err
	}

	blur := pc.BlurSize
	if blur <= 0 { blur = 5 }
	return r.GaussianBlurWrap(blur), nil
}
