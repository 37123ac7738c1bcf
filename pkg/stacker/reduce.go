package stacker

import(
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// A Reducer combines a stack of same-sized canvases into one.
type Reducer func([]emath.FloatGrid) (emath.FloatGrid, error)

// ReduceMedian takes the per-pixel median across the stack. Most of
// each canvas is zero padding, which would drag a mean down at the
// edges; the median shrugs that off, along with noise that only shows
// up in a few frames.
func ReduceMedian(canvases []emath.FloatGrid) (emath.FloatGrid, error) {
	return reduceWith(canvases, func(vals []float64) (float64, error) {
		return medianInPlace(vals), nil
	})
}

// medianInPlace sorts vals, which reduceWith reuses for every pixel, so
// nothing is allocated per pixel. Even counts average the middle pair.
func medianInPlace(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 0 {
		return (vals[n/2-1] + vals[n/2]) / 2
	}
	return vals[n/2]
}

// ReduceMean is the plain average, for comparison.
func ReduceMean(canvases []emath.FloatGrid) (emath.FloatGrid, error) {
	return reduceWith(canvases, func(vals []float64) (float64, error) {
		return stats.Mean(vals)
	})
}

// ReduceMax keeps the brightest value at each pixel, which is what an
// unaligned long exposure would record.
func ReduceMax(canvases []emath.FloatGrid) (emath.FloatGrid, error) {
	return reduceWith(canvases, func(vals []float64) (float64, error) {
		return stats.Max(vals)
	})
}

func reduceWith(canvases []emath.FloatGrid, f func([]float64) (float64, error)) (emath.FloatGrid, error) {
	if len(canvases) < 2 {
		return emath.FloatGrid{}, fmt.Errorf("reduce needs at least 2 canvases, got %d: %w", len(canvases), ErrInsufficientInput)
	}

	first := canvases[0]
	for i, c := range canvases[1:] {
		if !first.SameSize(c) {
			return emath.FloatGrid{}, fmt.Errorf("canvas %d is %dx%d, want %dx%d: %w",
				i+1, c.Dx(), c.Dy(), first.Dx(), first.Dy(), ErrDimensionMismatch)
		}
	}

	out := first.NewFromThis()
	vals := make([]float64, len(canvases))
	dst := out.Values()
	for i := range dst {
		for j := range canvases {
			vals[j] = canvases[j].Values()[i]
		}
		v, err := f(vals)
		if err != nil {
			return emath.FloatGrid{}, fmt.Errorf("reduce pixel %d: %v", i, err)
		}
		dst[i] = v
	}

	return out, nil
}
