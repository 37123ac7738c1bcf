package stacker

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/abworrall/drift-stacker/pkg/ecolor"
)

// ScanInput lists the regular files in dir with the given extension
// (case insensitive), sorted by name.
func ScanInput(dir, ext string) ([]string, error) {
	contents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %v", dir, err)
	}

	names := []string{}
	for _, content := range contents {
		if !content.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(content.Name()), ext) {
			names = append(names, content.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

// ChoosePivot returns the index of pivotName in names. If it isn't
// there (or wasn't asked for) we fall back to the first file, and
// return false.
func ChoosePivot(names []string, pivotName string) (int, bool) {
	for i, name := range names {
		if name == pivotName {
			return i, true
		}
	}
	return 0, false
}

// LoadFrame decodes an image file and reduces it to a grayscale grid.
func LoadFrame(filename string, mode ecolor.GrayMode) (Frame, error) {
	f := Frame{LoadFilename: filename}

	img, err := decodeImage(filename)
	if err != nil {
		return f, err
	}
	f.Gray = ecolor.ToGrayGrid(img, mode)

	// EXIF is nice to have; plenty of formats don't carry it
	if fe, err := readExif(filename); err == nil {
		f.Exif = fe
	}

	return f, nil
}

func decodeImage(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg": img, err = jpeg.Decode(reader)
	case ".png":          img, err = png.Decode(reader)
	case ".tif", ".tiff": img, err = tiff.Decode(reader)
	case ".bmp":          img, err = bmp.Decode(reader)
	default:              img, _, err = image.Decode(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	return img, nil
}

func readExif(filename string) (FrameExif, error) {
	fe := FrameExif{}

	reader, err := os.Open(filename)
	if err != nil {
		return fe, fmt.Errorf("open+r exif '%s': %v", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return fe, fmt.Errorf("exif parsing '%s': %v", filename, err)
	}

	if tag, err := ex.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			fe.Camera = strings.TrimSpace(s)
		}
	}
	if t, err := ex.DateTime(); err == nil {
		fe.Taken = t
	}
	if tag, err := ex.Get(exif.ISOSpeedRatings); err == nil {
		if val, err := tag.Int64(0); err == nil {
			fe.ISO = val
		}
	}

	return fe, nil
}
