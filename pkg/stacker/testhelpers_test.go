package stacker

import(
	"image"
	"image/color"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// texture is a reproducible noise frame with integer values in [0,255].
func texture(w, h int, seed int64) emath.FloatGrid {
	rng := rand.New(rand.NewSource(seed))
	g := emath.NewFloatGrid(w, h)
	for i := range g.Values() {
		g.Values()[i] = float64(rng.Intn(256))
	}
	return g
}

// rollBy returns a frame whose content is g moved by (-dx,-dy), wrapping
// round the edges: out(x,y) = g(x+dx, y+dy). The shift that registers
// it back onto g is (dx,dy).
func rollBy(g emath.FloatGrid, dx, dy int) emath.FloatGrid {
	w, h := g.Dx(), g.Dy()
	out := g.NewFromThis()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, g.Get(((x+dx)%w+w)%w, ((y+dy)%h+h)%h))
		}
	}
	return out
}

// translateBy is like rollBy, but pixels that come in from outside are zero.
func translateBy(g emath.FloatGrid, dx, dy int) emath.FloatGrid {
	w, h := g.Dx(), g.Dy()
	out := g.NewFromThis()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := x+dx, y+dy
			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				out.Set(x, y, g.Get(sx, sy))
			}
		}
	}
	return out
}

// blob is a dark frame with one soft bright spot centered at (cx,cy).
func blob(w, h, cx, cy int) emath.FloatGrid {
	g := emath.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d2 := float64((x-cx)*(x-cx) + (y-cy)*(y-cy))
			g.Set(x, y, 250*math.Exp(-d2/8.0))
		}
	}
	return g
}

func writeGrayPNG(t *testing.T, dir, name string, g emath.FloatGrid) {
	t.Helper()
	require.NoError(t, WritePNG(g.ToGray8(), filepath.Join(dir, name)))
}

func writeBlankPNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	img.SetGray(0, 0, color.Gray{1})
	require.NoError(t, WritePNG(img, filepath.Join(dir, name)))
}

func quietStack(cfg Config) (*Stack, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s := NewStack(cfg)
	s.SetLogger(logger)
	return s, hook
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
