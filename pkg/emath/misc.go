package emath

import "math"

// Some functions that only operate on basic types, that are useful

func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// Clamp8 rounds v to the nearest integer in [0,255].
func Clamp8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 { return 0 }
	if v >= 255 { return 255 }
	return uint8(math.Round(v))
}

// GaussianKernel returns a normalized 1D Gaussian of the given odd
// size. As in OpenCV with sigma<=0, sizes up to 7 use the fixed binomial
// kernels and larger sizes take sigma = 0.3*((ksize-1)*0.5 - 1) + 0.8.
func GaussianKernel(ksize int) []float64 {
	switch ksize {
	case 1: return []float64{1}
	case 3: return []float64{0.25, 0.5, 0.25}
	case 5: return []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}
	case 7: return []float64{0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125}
	}

	sigma := 0.3*(float64(ksize-1)*0.5 - 1) + 0.8
	k := make([]float64, ksize)
	sum := 0.0
	for i := range k {
		x := float64(i - (ksize-1)/2)
		k[i] = math.Exp(-(x*x) / (2*sigma*sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}
