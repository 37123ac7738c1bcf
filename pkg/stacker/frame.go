package stacker

import(
	"fmt"
	"path/filepath"
	"time"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// A Frame is one input photo, reduced to grayscale, plus what we
// learn about it while aligning.
type Frame struct {
	LoadFilename   string
	Gray           emath.FloatGrid  // intensities in [0,255]
	Exif           FrameExif        // zero if the file had none

	RawShift       Shift            // as the estimator reported it
	Shift          Shift            // after wraparound correction; how to place it on the canvas
}

// FrameExif is the little bit of camera metadata we log; handy for
// spotting a frame from a different session.
type FrameExif struct {
	Camera   string
	Taken    time.Time
	ISO      int64
}

func (fe FrameExif)String() string {
	if fe.Camera == "" && fe.Taken.IsZero() && fe.ISO == 0 {
		return "no exif"
	}
	return fmt.Sprintf("%s, %s, ISO%d", fe.Camera, fe.Taken.Format(time.RFC3339), fe.ISO)
}

func (f Frame)String() string {
	return fmt.Sprintf("%s: %dx%d, shift%s (raw%s), %s",
		f.Filename(), f.Gray.Dx(), f.Gray.Dy(), f.Shift, f.RawShift, f.Exif)
}

func (f Frame)Filename() string {
	return filepath.Base(f.LoadFilename)
}

func (f Frame)Width() int  { return f.Gray.Dx() }
func (f Frame)Height() int { return f.Gray.Dy() }
