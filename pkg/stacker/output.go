package stacker

import(
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

const CorrectedDirName = "corrected_images"

// PrepareOutput wipes out any previous results, and makes the dirs we write into.
func PrepareOutput(outputDir string) error {
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("clobber '%s': %v", outputDir, err)
	}
	if err := os.MkdirAll(filepath.Join(outputDir, CorrectedDirName), 0755); err != nil {
		return fmt.Errorf("mkdir '%s': %v", outputDir, err)
	}
	return nil
}

func CorrectedFilename(outputDir string, n int, format string) string {
	return filepath.Join(outputDir, CorrectedDirName, fmt.Sprintf("%d.%s", n, format))
}

func ResultFilename(outputDir, format string) string {
	return filepath.Join(outputDir, "result." + format)
}

// WriteGrid writes the grid as an 8-bit grayscale image; values are
// clamped to [0,255].
func WriteGrid(g emath.FloatGrid, filename, format string, jpegQuality int) error {
	img := g.ToGray8()
	switch format {
	case "png": return WritePNG(img, filename)
	case "jpg": return WriteJPEG(img, filename, jpegQuality)
	}
	return fmt.Errorf("no output format named '%s': %w", format, ErrConfig)
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

func WriteJPEG(img image.Image, filename string, quality int) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	}
}

// HDRGrid presents a FloatGrid of [0,255] intensities as a gray
// hdr.Image, without quantizing to 8 bits.
type HDRGrid struct {
	emath.FloatGrid
}

// Implement image.Image
func (hg HDRGrid)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (hg HDRGrid)Bounds() image.Rectangle       { return hg.FloatGrid.Bounds() }
func (hg HDRGrid)At(x, y int) color.Color       { return hg.HDRAt(x, y) }

// Implement hdr.Image
func (hg HDRGrid)HDRAt(x, y int) hdrcolor.Color {
	v := hg.Get(x, y) / 255.0
	if v < 0 { v = 0 }
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (hg HDRGrid)Size() int                     { return hg.Dx() * hg.Dy() }

// WriteHDR outputs a Radiance RGBE file, which keeps the fractional
// values the median produces.
func WriteHDR(g emath.FloatGrid, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, HDRGrid{g})
	}
}
