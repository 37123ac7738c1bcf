package stacker

import(
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abworrall/drift-stacker/pkg/ecolor"
	"github.com/abworrall/drift-stacker/pkg/emath"
)

// Stack holds the frames of one run, aligns them onto the pivot, and
// median-combines them into a single image.
type Stack struct {
	Config
	Log          logrus.FieldLogger
	Estimator    ShiftEstimator
	Reducer      Reducer

	Names        []string          // Eligible input files, sorted
	PivotIndex   int               // Index into Names
	Frames       []Frame           // Pivot first, then candidates in processing order
	Canvases     []emath.FloatGrid // One per frame, same order as Frames
	Result       emath.FloatGrid

	Report      *Report
}

func NewStack(cfg Config) *Stack {
	return &Stack{
		Config:  cfg,
		Log:     runLogger(logrus.StandardLogger()),
		Reducer: ReduceMedian,
		Frames:  []Frame{},
	}
}

func (s *Stack)SetLogger(l *logrus.Logger) { s.Log = runLogger(l) }

func (s Stack)String() string {
	str := fmt.Sprintf("Stack %s [\n", s.InputDir)
	for _, f := range s.Frames {
		str += fmt.Sprintf("  %s\n", f)
	}
	return str + "]\n"
}

func (s *Stack)Pivot() Frame { return s.Frames[0] }

// Run does the whole job: load, align, composite, combine, write.
func (s *Stack)Run() error {
	start := time.Now()

	if err := s.Config.Validate(); err != nil {
		return err
	}
	if s.Verbosity > 0 {
		s.Log.Debugf("Final configuration:-\n\n%s\n", s.Config.AsYaml())
	}

	s.Estimator = s.Config.GetEstimator()
	s.Log.Infof("Using %s", s.Estimator.Name())

	if err := s.Scan(); err != nil {
		return err
	}
	if err := PrepareOutput(s.OutputDir); err != nil {
		return err
	}
	if err := s.Load(); err != nil {
		return err
	}
	if err := s.Align(); err != nil {
		return err
	}
	if err := s.Composite(); err != nil {
		return err
	}
	if err := s.Combine(); err != nil {
		return err
	}

	s.Report.Elapsed = time.Since(start)
	s.Log.Infof("done\n%s", s.Report)
	s.Log.Infof("Time taken: %.2f seconds", s.Report.Elapsed.Seconds())
	return nil
}

// Scan finds the eligible input files and picks the pivot.
func (s *Stack)Scan() error {
	names, err := ScanInput(s.InputDir, s.Extension)
	if err != nil {
		return err
	}
	if len(names) < 2 {
		return fmt.Errorf("found %d '%s' files in %s: %w", len(names), s.Extension, s.InputDir, ErrInsufficientInput)
	}
	s.Names = names

	idx, found := ChoosePivot(names, s.PivotName)
	if !found {
		if s.PivotName != "" {
			s.Log.Warnf("Pivot image '%s' not found, using first image as pivot", s.PivotName)
		}
	}
	s.PivotIndex = idx
	s.Log.Infof("Pivot image: %s (%d images)", names[idx], len(names))
	return nil
}

// Load reads the pivot and then every other image, skipping any that
// aren't the same size as the pivot.
func (s *Stack)Load() error {
	mode, err := ecolor.ParseGrayMode(s.Grayscale)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrConfig)
	}

	pivot, err := LoadFrame(filepath.Join(s.InputDir, s.Names[s.PivotIndex]), mode)
	if err != nil {
		return err
	}
	w, h := pivot.Width(), pivot.Height()

	if s.UseBrightSpot() && (s.BrightRadius > w || s.BrightRadius > h) {
		return fmt.Errorf("radius %d is bigger than the %dx%d images: %w", s.BrightRadius, w, h, ErrConfig)
	}

	cw, ch := CanvasSize(w, h)
	s.Report = NewReport(max(cw-w, ch-h))
	s.Report.Estimator = s.Estimator.Name()
	s.Frames = []Frame{pivot}
	s.Log.Debugf("Loaded pivot %s", pivot)

	for i, name := range s.Names {
		if i == s.PivotIndex {
			continue
		}
		f, err := LoadFrame(filepath.Join(s.InputDir, name), mode)
		if err != nil {
			return err
		}
		if f.Width() != w || f.Height() != h {
			s.Log.WithFields(logrus.Fields{
				"want": fmt.Sprintf("%dx%d", w, h),
				"got":  fmt.Sprintf("%dx%d", f.Width(), f.Height()),
			}).Warnf("Image \"%s\" has invalid dimensions and will not be processed", name)
			s.Report.FramesSkipped = append(s.Report.FramesSkipped, name)
			continue
		}
		s.Log.Debugf("Loaded %s", f)
		s.Frames = append(s.Frames, f)
	}

	if len(s.Frames) < 2 {
		return fmt.Errorf("only %d usable image(s) of %dx%d: %w", len(s.Frames), w, h, ErrInsufficientInput)
	}
	s.Report.FramesUsed = len(s.Frames)
	s.Log.Debugf("Images loaded: %s", s)
	return nil
}

// Align works out the shift for every candidate. Each one only depends
// on the pivot, so with Workers>1 they run concurrently.
func (s *Stack)Align() error {
	if s.DumpSurfaces {
		if err := os.MkdirAll(s.surfaceDir(), 0755); err != nil {
			return fmt.Errorf("mkdir '%s': %v", s.surfaceDir(), err)
		}
	}

	if s.Workers <= 1 {
		for i:=1; i<len(s.Frames); i++ {
			if err := s.alignFrame(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(s.Workers)
	for i:=1; i<len(s.Frames); i++ {
		i := i
		g.Go(func() error { return s.alignFrame(i) })
	}
	return g.Wait()
}

// alignFrame fills in the shifts for s.Frames[i]; it touches nothing else.
func (s *Stack)alignFrame(i int) error {
	pivot := s.Frames[0].Gray
	f := &s.Frames[i]

	raw := Shift{}
	if se, ok := s.Estimator.(SurfaceEstimator); ok && s.DumpSurfaces {
		surface, err := se.Surface(pivot, f.Gray)
		if err != nil {
			return fmt.Errorf("align %s: %w", f.Filename(), err)
		}
		raw.DX, raw.DY = surface.ArgMax()
		title := fmt.Sprintf("%s: peak %s", f.Filename(), raw)
		if err := surface.ToImg(title, s.surfaceFilename(f)); err != nil {
			s.Log.Warnf("Could not dump correlation surface for %s: %v", f.Filename(), err)
		}
	} else {
		var err error
		if raw, err = EstimateShift(pivot, f.Gray, s.Estimator); err != nil {
			return fmt.Errorf("align %s: %w", f.Filename(), err)
		}
	}

	f.RawShift = raw
	f.Shift = raw
	if s.Estimator.Circular() {
		f.Shift = WrapShift(raw, pivot.Dx(), pivot.Dy())
	}
	return nil
}

func (s *Stack)surfaceDir() string { return filepath.Join(s.OutputDir, "surfaces") }
func (s *Stack)surfaceFilename(f *Frame) string {
	base := strings.TrimSuffix(f.Filename(), filepath.Ext(f.Filename()))
	return filepath.Join(s.surfaceDir(), base + ".png")
}

// Composite places every frame onto its own canvas, and writes each one
// out as it goes: the pivot is 1, candidates follow in order.
func (s *Stack)Composite() error {
	s.Canvases = make([]emath.FloatGrid, 0, len(s.Frames))
	nCandidates := len(s.Frames) - 1

	for i, f := range s.Frames {
		canvas, err := Place(f.Gray, f.Shift)
		if err != nil {
			return fmt.Errorf("place %s: %w", f.Filename(), err)
		}

		if err := WriteGrid(canvas, CorrectedFilename(s.OutputDir, i+1, s.OutputFormat), s.OutputFormat, s.JPEGQuality); err != nil {
			return fmt.Errorf("write corrected %s: %w", f.Filename(), err)
		}
		s.Canvases = append(s.Canvases, canvas)

		if i == 0 {
			continue
		}
		if err := s.Report.AddShift(f.Shift); err != nil {
			s.Log.Warnf("%v", err)
		}
		s.Log.WithField("file", f.Filename()).Infof("Corrected image (%d/%d)", i, nCandidates)
		s.Log.WithField("file", f.Filename()).Infof("Shift (x,y): %d,%d", f.Shift.DX, f.Shift.DY)
	}

	return nil
}

// Combine reduces the canvases into the final result, and writes it.
func (s *Stack)Combine() error {
	s.Log.Infof("Generating combined image...")

	result, err := s.Reducer(s.Canvases)
	if err != nil {
		return err
	}
	s.Result = result
	s.Log.Debugf("Combined %d canvases: %s", len(s.Canvases), result.Stats())

	filename := ResultFilename(s.OutputDir, s.OutputFormat)
	if err := WriteGrid(result, filename, s.OutputFormat, s.JPEGQuality); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	s.Log.Infof("Result written to %s", filename)

	if s.WriteHDR {
		filename := ResultFilename(s.OutputDir, "hdr")
		if err := WriteHDR(result, filename); err != nil {
			return fmt.Errorf("write hdr result: %w", err)
		}
		s.Log.Infof("HDR result written to %s", filename)
	}

	return nil
}
