package simulate

// Synthetic drift: take one still image, jiggle it about and sprinkle it
// with hot pixels, so the stacker can be scored against a known answer.

import(
	"fmt"
	"image"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/drift-stacker/pkg/emath"
	"github.com/abworrall/drift-stacker/pkg/stacker"
)

// Shifted is one simulated frame, and where the source image landed in it.
type Shifted struct {
	Gray    emath.FloatGrid
	Offset  image.Point
}

// A Run is a full set of simulated frames. Noise holds every hot pixel
// from every frame, in frame coordinates.
type Run struct {
	Frames  []Shifted
	Noise   []image.Point
	W, H    int
}

// ShiftFrame pads img out by maxShift in each direction, with img at a
// random offset in [1,maxShift] on each axis.
func ShiftFrame(img emath.FloatGrid, maxShift int, rng *rand.Rand) Shifted {
	if maxShift < 1 { maxShift = 1 }
	w, h := img.Dx(), img.Dy()
	out := emath.NewFloatGrid(w+maxShift, h+maxShift)

	o := image.Point{X: 1 + rng.Intn(maxShift), Y: 1 + rng.Intn(maxShift)}
	out.Paste(img, o.X, o.Y)

	return Shifted{Gray: out, Offset: o}
}

// SaltPepper sets each pixel to 255 with probability perMille/1000, and
// returns where it did so.
func SaltPepper(img *emath.FloatGrid, perMille int, rng *rand.Rand) []image.Point {
	noise := []image.Point{}
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			if rng.Intn(1000) < perMille {
				img.Set(x, y, 255)
				noise = append(noise, image.Point{x, y})
			}
		}
	}
	return noise
}

// Generate builds n shifted frames from src, adding noise to each.
func Generate(src emath.FloatGrid, n, maxShift, perMille int, rng *rand.Rand) Run {
	r := Run{
		Frames: make([]Shifted, 0, n),
		Noise:  []image.Point{},
		W:      src.Dx() + maxShift,
		H:      src.Dy() + maxShift,
	}
	for i:=0; i<n; i++ {
		f := ShiftFrame(src, maxShift, rng)
		if perMille > 0 {
			r.Noise = append(r.Noise, SaltPepper(&f.Gray, perMille, rng)...)
		}
		r.Frames = append(r.Frames, f)
	}
	return r
}

func (r Run)Grids() []emath.FloatGrid {
	grids := make([]emath.FloatGrid, len(r.Frames))
	for i, f := range r.Frames {
		grids[i] = f.Gray
	}
	return grids
}

// LongExposure is what a single exposure spanning every frame would
// record, if the bright bits dominate: the per-pixel max.
func LongExposure(frames []emath.FloatGrid) (emath.FloatGrid, error) {
	return stacker.ReduceMax(frames)
}

// NoiseRatio scores how much of the noise made it through into img. The
// noise locations are in frame coordinates (noiseW x noiseH), and frames
// are assumed to sit centered in img. The result is pixels per
// surviving hot pixel, so bigger is better; if none survive it is the
// pixel count.
func NoiseRatio(img emath.FloatGrid, noise []image.Point, noiseW, noiseH int) float64 {
	w, h := img.Dx(), img.Dy()
	dx := floorDiv(w - noiseW, 2)
	dy := floorDiv(h - noiseH, 2)

	count := 0
	for _, p := range noise {
		x, y := p.X + dx, p.Y + dy
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		if emath.Clamp8(img.Get(x, y)) == 255 {
			count++
		}
	}

	if count == 0 {
		return float64(w*h)
	}
	return float64(w*h) / float64(count)
}

// Sharpness is the variance of the Laplacian of a lightly blurred copy
// of img. Only useful for comparing images of the same scene.
func Sharpness(img emath.FloatGrid) (float64, error) {
	if img.Dx() < 3 || img.Dy() < 3 {
		return 0, fmt.Errorf("sharpness needs at least 3x3, got %dx%d", img.Dx(), img.Dy())
	}

	b := img.GaussianBlur(3)
	lap := make([]float64, 0, (b.Dx()-2)*(b.Dy()-2))
	for y:=1; y<b.Dy()-1; y++ {
		for x:=1; x<b.Dx()-1; x++ {
			v := b.Get(x-1,y) + b.Get(x+1,y) + b.Get(x,y-1) + b.Get(x,y+1) - 4*b.Get(x,y)
			lap = append(lap, v)
		}
	}

	return stat.Variance(lap, nil), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
