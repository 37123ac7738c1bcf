package stacker

import(
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

func TestCanvasSize(t *testing.T) {
	w, h := CanvasSize(100, 100)
	assert.Equal(t, 200, w)
	assert.Equal(t, 200, h)

	w, h = CanvasSize(101, 63)
	assert.Equal(t, 201, w)
	assert.Equal(t, 125, h)

	assert.Equal(t, image.Point{50, 50}, PlacementOrigin(100, 100, Shift{}))
	assert.Equal(t, image.Point{47, 52}, PlacementOrigin(100, 100, Shift{-3, 2}))
}

func TestPlaceCentersUnshiftedFrame(t *testing.T) {
	img := texture(10, 6, 1)

	canvas, err := Place(img, Shift{})
	require.NoError(t, err)
	require.Equal(t, 20, canvas.Dx())
	require.Equal(t, 12, canvas.Dy())

	for y := 0; y < canvas.Dy(); y++ {
		for x := 0; x < canvas.Dx(); x++ {
			inside := x >= 5 && x < 15 && y >= 3 && y < 9
			if inside {
				assert.Equal(t, img.Get(x-5, y-3), canvas.Get(x, y))
			} else {
				assert.Equal(t, 0.0, canvas.Get(x, y), "padding at (%d,%d)", x, y)
			}
		}
	}
}

func TestPlaceShifted(t *testing.T) {
	img := emath.NewFloatGrid(10, 10)
	img.Set(0, 0, 7)

	canvas, err := Place(img, Shift{-5, 5})
	require.NoError(t, err)
	assert.Equal(t, 7.0, canvas.Get(0, 10))

	// Both extremes fit exactly
	_, err = Place(img, Shift{5, -5})
	assert.NoError(t, err)
}

func TestPlaceOutOfBounds(t *testing.T) {
	img := emath.NewFloatGrid(100, 100)
	for _, s := range []Shift{{51, 0}, {0, -51}, {-60, 60}, {200, 0}} {
		_, err := Place(img, s)
		assert.ErrorIs(t, err, ErrBounds, "shift %s", s)
	}
}

func TestPlaceLeavesSourceAlone(t *testing.T) {
	img := texture(8, 8, 2)
	before := img.Copy()

	_, err := Place(img, Shift{1, 1})
	require.NoError(t, err)
	assert.Equal(t, before.Values(), img.Values())
}
