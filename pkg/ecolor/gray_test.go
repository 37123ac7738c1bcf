package ecolor

import(
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrayMode(t *testing.T) {
	m, err := ParseGrayMode("")
	require.NoError(t, err)
	assert.Equal(t, GrayLuma, m)

	m, err = ParseGrayMode("lab")
	require.NoError(t, err)
	assert.Equal(t, GrayLab, m)

	_, err = ParseGrayMode("hsv")
	assert.Error(t, err)
}

func TestColToGrayLuma(t *testing.T) {
	assert.Equal(t, 0.0, ColToGray(color.RGBA{0, 0, 0, 0xff}, GrayLuma))
	assert.Equal(t, 255.0, ColToGray(color.RGBA{0xff, 0xff, 0xff, 0xff}, GrayLuma))
	assert.Equal(t, 76.0, ColToGray(color.RGBA{0xff, 0, 0, 0xff}, GrayLuma))
	assert.Equal(t, 150.0, ColToGray(color.RGBA{0, 0xff, 0, 0xff}, GrayLuma))
	assert.Equal(t, 29.0, ColToGray(color.RGBA{0, 0, 0xff, 0xff}, GrayLuma))
}

func TestColToGrayLab(t *testing.T) {
	assert.InDelta(t, 0.0, ColToGray(color.RGBA{0, 0, 0, 0xff}, GrayLab), 0.5)
	assert.InDelta(t, 255.0, ColToGray(color.RGBA{0xff, 0xff, 0xff, 0xff}, GrayLab), 0.5)

	// Lightness is monotonic in gray level
	dark := ColToGray(color.Gray{60}, GrayLab)
	light := ColToGray(color.Gray{180}, GrayLab)
	assert.Less(t, dark, light)
}

func TestToGrayGrid(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.Set(10, 20, color.RGBA{0xff, 0xff, 0xff, 0xff})
	img.Set(12, 21, color.RGBA{0, 0xff, 0, 0xff})

	g := ToGrayGrid(img, GrayLuma)
	require.Equal(t, 3, g.Dx())
	require.Equal(t, 2, g.Dy())
	assert.Equal(t, 255.0, g.Get(0, 0))
	assert.Equal(t, 150.0, g.Get(2, 1))
	assert.Equal(t, 0.0, g.Get(1, 1))
}

func TestToGrayGridFromGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(3, 2, color.Gray{77})

	g := ToGrayGrid(img, GrayLuma)
	assert.Equal(t, 77.0, g.Get(3, 2))
	assert.Equal(t, 0.0, g.Get(0, 0))
}
