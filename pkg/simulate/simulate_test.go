package simulate

import(
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

func source(w, h int) emath.FloatGrid {
	rng := rand.New(rand.NewSource(99))
	g := emath.NewFloatGrid(w, h)
	for i := range g.Values() {
		g.Values()[i] = float64(10 + rng.Intn(200))
	}
	return g
}

func TestShiftFrame(t *testing.T) {
	src := source(20, 10)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		f := ShiftFrame(src, 8, rng)
		require.Equal(t, 28, f.Gray.Dx())
		require.Equal(t, 18, f.Gray.Dy())
		assert.True(t, f.Offset.X >= 1 && f.Offset.X <= 8, "x offset %d", f.Offset.X)
		assert.True(t, f.Offset.Y >= 1 && f.Offset.Y <= 8, "y offset %d", f.Offset.Y)

		assert.Equal(t, src.Get(0, 0), f.Gray.Get(f.Offset.X, f.Offset.Y))
		assert.Equal(t, src.Get(19, 9), f.Gray.Get(f.Offset.X+19, f.Offset.Y+9))
		assert.Equal(t, 0.0, f.Gray.Get(0, 0))
	}
}

func TestSaltPepper(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	g := emath.NewFloatGrid(10, 10)
	assert.Empty(t, SaltPepper(&g, 0, rng))

	noise := SaltPepper(&g, 1000, rng)
	assert.Len(t, noise, 100)
	for _, v := range g.Values() {
		assert.Equal(t, 255.0, v)
	}

	g = emath.NewFloatGrid(100, 100)
	noise = SaltPepper(&g, 20, rng)
	assert.InDelta(t, 200, len(noise), 80)
	for _, p := range noise {
		assert.Equal(t, 255.0, g.Get(p.X, p.Y))
	}
}

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := Generate(source(30, 20), 5, 4, 10, rng)

	assert.Len(t, r.Frames, 5)
	assert.Len(t, r.Grids(), 5)
	assert.Equal(t, 34, r.W)
	assert.Equal(t, 24, r.H)
	assert.NotEmpty(t, r.Noise)

	clean := Generate(source(30, 20), 3, 4, 0, rng)
	assert.Empty(t, clean.Noise)
}

func TestLongExposure(t *testing.T) {
	a, _ := emath.NewFloatGridFromRows([][]float64{{1, 9}})
	b, _ := emath.NewFloatGridFromRows([][]float64{{5, 2}})

	out, err := LongExposure([]emath.FloatGrid{a, b})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 9}, out.Values())
}

func TestNoiseRatio(t *testing.T) {
	// 10x10 frames, centered on a 20x20 result: offset (5,5)
	img := emath.NewFloatGrid(20, 20)
	img.Set(6, 7, 255)
	img.Set(8, 8, 254.4)

	noise := []image.Point{{1, 2}, {3, 3}, {9, 9}}
	assert.Equal(t, 400.0, NoiseRatio(img, noise, 10, 10))

	img.Set(14, 14, 255)
	assert.Equal(t, 200.0, NoiseRatio(img, noise, 10, 10))

	assert.Equal(t, 400.0, NoiseRatio(emath.NewFloatGrid(20, 20), noise, 10, 10))
}

func TestNoiseRatioSkipsPointsOffImage(t *testing.T) {
	// Result smaller than the frames: the offset is negative
	img := emath.NewFloatGrid(4, 4)
	img.Set(0, 0, 255)
	noise := []image.Point{{0, 0}, {3, 3}}
	assert.Equal(t, 16.0, NoiseRatio(img, noise, 7, 7))
}

func TestSharpness(t *testing.T) {
	src := source(40, 30)
	sharp, err := Sharpness(src)
	require.NoError(t, err)

	soft, err := Sharpness(src.GaussianBlur(7))
	require.NoError(t, err)
	assert.Greater(t, sharp, soft)

	flat := emath.NewFloatGrid(10, 10)
	zero, err := Sharpness(flat)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	_, err = Sharpness(emath.NewFloatGrid(2, 5))
	assert.Error(t, err)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(5, 2))
	assert.Equal(t, -2, floorDiv(-3, 2))
	assert.Equal(t, -1, floorDiv(-2, 2))
}
