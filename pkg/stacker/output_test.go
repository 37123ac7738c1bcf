package stacker

import(
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareOutputClobbers(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result_images")
	require.NoError(t, os.MkdirAll(out, 0755))
	stale := filepath.Join(out, "result.jpg")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	require.NoError(t, PrepareOutput(out))
	assert.False(t, exists(stale))
	assert.True(t, exists(filepath.Join(out, CorrectedDirName)))
}

func TestOutputFilenames(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "corrected_images", "3.png"), CorrectedFilename("out", 3, "png"))
	assert.Equal(t, filepath.Join("out", "result.jpg"), ResultFilename("out", "jpg"))
}

func TestWriteGrid(t *testing.T) {
	dir := t.TempDir()
	g := texture(6, 4, 5)

	pngFile := filepath.Join(dir, "g.png")
	require.NoError(t, WriteGrid(g, pngFile, "png", 95))
	reader, err := os.Open(pngFile)
	require.NoError(t, err)
	defer reader.Close()
	img, err := png.Decode(reader)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	require.NoError(t, WriteGrid(g, filepath.Join(dir, "g.jpg"), "jpg", 90))
	assert.True(t, exists(filepath.Join(dir, "g.jpg")))

	assert.ErrorIs(t, WriteGrid(g, filepath.Join(dir, "g.gif"), "gif", 90), ErrConfig)
}

func TestWriteHDR(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "result.hdr")
	g := texture(8, 8, 6)
	g.Set(0, 0, 127.5)
	require.NoError(t, WriteHDR(g, filename))

	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Greater(t, len(contents), 8*8)
}

func TestHDRGrid(t *testing.T) {
	g := texture(3, 2, 1)
	g.Set(1, 1, 255)
	g.Set(2, 1, -3)
	hg := HDRGrid{g}

	assert.Equal(t, 6, hg.Size())
	r, gg, b, _ := hg.HDRAt(1, 1).HDRRGBA()
	assert.InDelta(t, 1.0, r, 1e-12)
	assert.InDelta(t, 1.0, gg, 1e-12)
	assert.InDelta(t, 1.0, b, 1e-12)

	r, _, _, _ = hg.HDRAt(2, 1).HDRRGBA()
	assert.Equal(t, 0.0, r)
}
