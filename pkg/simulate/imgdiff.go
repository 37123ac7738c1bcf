package simulate

import(
	"fmt"
	"math"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// Pixels outside [diffTooLow, diffTooHigh] are left out of ImgDiff: dark
// ones are mostly canvas padding, bright ones mostly hot pixels.
const(
	diffTooLow  = 2.0
	diffTooHigh = 250.0
)

// ImgDiff compares two same-sized images, and returns the mean absolute
// difference over the pixels both have a reasonable exposure for; the
// less similar, the higher the value. If diffFilename is set, the per
// pixel differences are written there as a PNG.
func ImgDiff(g1, g2 emath.FloatGrid, diffFilename string) (float64, error) {
	if !g1.SameSize(g2) {
		return 0, fmt.Errorf("imgdiff: %dx%d vs %dx%d", g1.Dx(), g1.Dy(), g2.Dx(), g2.Dy())
	}

	diff := g1.NewFromThis()
	totErr := 0.0
	nErr := 0
	nLow, nHigh := 0, 0

	for y:=0; y<g1.Dy(); y++ {
		for x:=0; x<g1.Dx(); x++ {
			v1, v2 := g1.Get(x, y), g2.Get(x, y)
			if v1 < diffTooLow || v2 < diffTooLow {
				nLow++
				continue
			} else if v1 > diffTooHigh || v2 > diffTooHigh {
				nHigh++
				continue
			}

			pixErr := math.Abs(v1 - v2)
			diff.Set(x, y, pixErr)
			totErr += pixErr
			nErr++
		}
	}

	if nErr == 0 {
		return 0, fmt.Errorf("imgdiff: no comparable pixels (%d too dark, %d too bright)", nLow, nHigh)
	}
	errMetric := totErr / float64(nErr)

	if diffFilename != "" {
		nPix := g1.Dx() * g1.Dy()
		title := fmt.Sprintf("%.1f%% comparable; err=%.3f", 100.0*float64(nErr)/float64(nPix), errMetric)
		if err := diff.ToImg(title, diffFilename); err != nil {
			return errMetric, err
		}
	}

	return errMetric, nil
}
