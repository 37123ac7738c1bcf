package fft

// 2D discrete Fourier transforms over emath.FloatGrids, as needed for
// phase correlation. The 1D work is done by gonum's dsp/fourier, which
// handles any length (not just powers of two); we just run it over the
// rows and then the columns.

import(
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// A Spectrum is a row-major grid of complex coefficients.
type Spectrum struct {
	W, H   int
	Coeffs []complex128
}

func NewSpectrum(w, h int) Spectrum {
	return Spectrum{W: w, H: h, Coeffs: make([]complex128, w*h)}
}

func (s *Spectrum)At(x, y int) complex128     { return s.Coeffs[y*s.W + x] }
func (s *Spectrum)Set(x, y int, c complex128) { s.Coeffs[y*s.W + x] = c }

// A Plan holds the 1D transforms for a fixed image size. It is not
// safe for concurrent use; make one per goroutine.
type Plan struct {
	w, h   int
	rowFFT *fourier.CmplxFFT
	colFFT *fourier.CmplxFFT
	work   []complex128
}

func NewPlan(w, h int) *Plan {
	n := w
	if h > n { n = h }
	return &Plan{
		w:      w,
		h:      h,
		rowFFT: fourier.NewCmplxFFT(w),
		colFFT: fourier.NewCmplxFFT(h),
		work:   make([]complex128, n),
	}
}

// Forward returns the 2D DFT of the grid.
func (p *Plan)Forward(g emath.FloatGrid) (Spectrum, error) {
	if g.Dx() != p.w || g.Dy() != p.h {
		return Spectrum{}, fmt.Errorf("fft: grid is %dx%d, plan is %dx%d", g.Dx(), g.Dy(), p.w, p.h)
	}

	s := NewSpectrum(p.w, p.h)
	for y:=0; y<p.h; y++ {
		row := g.Row(y)
		for x, v := range row {
			s.Set(x, y, complex(v, 0))
		}
	}

	p.transform(s, false)
	return s, nil
}

// Inverse returns the real part of the inverse 2D DFT, scaled by 1/(w*h).
func (p *Plan)Inverse(s Spectrum) (emath.FloatGrid, error) {
	if s.W != p.w || s.H != p.h {
		return emath.FloatGrid{}, fmt.Errorf("fft: spectrum is %dx%d, plan is %dx%d", s.W, s.H, p.w, p.h)
	}

	t := Spectrum{W: s.W, H: s.H, Coeffs: make([]complex128, len(s.Coeffs))}
	copy(t.Coeffs, s.Coeffs)
	p.transform(t, true)

	g := emath.NewFloatGrid(p.w, p.h)
	scale := 1.0 / float64(p.w*p.h)
	for y:=0; y<p.h; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = real(t.At(x, y)) * scale
		}
	}
	return g, nil
}

// transform runs the 1D transforms in place, rows first then columns.
// gonum's Sequence is the unnormalized inverse.
func (p *Plan)transform(s Spectrum, inverse bool) {
	row := p.work[:p.w]
	for y:=0; y<p.h; y++ {
		copy(row, s.Coeffs[y*p.w:(y+1)*p.w])
		if inverse {
			p.rowFFT.Sequence(row, row)
		} else {
			p.rowFFT.Coefficients(row, row)
		}
		copy(s.Coeffs[y*p.w:(y+1)*p.w], row)
	}

	col := p.work[:p.h]
	for x:=0; x<p.w; x++ {
		for y:=0; y<p.h; y++ {
			col[y] = s.Coeffs[y*p.w + x]
		}
		if inverse {
			p.colFFT.Sequence(col, col)
		} else {
			p.colFFT.Coefficients(col, col)
		}
		for y:=0; y<p.h; y++ {
			s.Coeffs[y*p.w + x] = col[y]
		}
	}
}
