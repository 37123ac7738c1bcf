package main

// simstack scores the stacker on synthetic data: it takes one still
// image, makes a set of drifting, noisy frames from it, stacks them, and
// compares the result against a simulated unaligned long exposure.

import(
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abworrall/drift-stacker/pkg/ecolor"
	"github.com/abworrall/drift-stacker/pkg/emath"
	"github.com/abworrall/drift-stacker/pkg/simulate"
	"github.com/abworrall/drift-stacker/pkg/stacker"
)

var(
	fVerbosity int
	fWorkDir string
	fNumFrames int
	fMaxShift int
	fNoise int
	fSeed int64
	fBrightRadius int
	fWorkers int
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fWorkDir, "o", "simulated", "work dir for frames and results; clobbered!")
	flag.IntVar(&fNumFrames, "n", 10, "number of frames to simulate")
	flag.IntVar(&fMaxShift, "maxshift", 8, "frames drift by up to this many pixels")
	flag.IntVar(&fNoise, "noise", 2, "chance of a hot pixel, per mille")
	flag.Int64Var(&fSeed, "seed", 0, "random seed (default: time based)")
	flag.IntVar(&fBrightRadius, "bright", 0, "stack with bright spot alignment, at this radius")
	flag.IntVar(&fWorkers, "workers", 1, "estimate shifts on this many goroutines")
	flag.Parse()
}

func main() {
	log := stacker.NewLogger(fVerbosity)

	if flag.NArg() != 1 {
		log.Errorf("Usage: %s [flags] <image>", os.Args[0])
		os.Exit(2)
	}

	if err := run(log, flag.Arg(0)); err != nil {
		log.Errorf("Simulation failed: %v", err)
		os.Exit(stacker.ExitCode(err))
	}
}

func run(log *logrus.Logger, filename string) error {
	seed := fSeed
	if seed == 0 { seed = time.Now().UnixNano() }
	rng := rand.New(rand.NewSource(seed))
	log.WithField("seed", seed).Infof("Simulating %d frames from %s", fNumFrames, filename)

	src, err := stacker.LoadFrame(filename, ecolor.GrayLuma)
	if err != nil {
		return err
	}

	framesDir := filepath.Join(fWorkDir, "frames")
	longDir := filepath.Join(fWorkDir, "long_exposure_simulated")
	for _, dir := range []string{framesDir, longDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clobber '%s': %v", dir, err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("mkdir '%s': %v", dir, err)
		}
	}

	noisy := simulate.Generate(src.Gray, fNumFrames, fMaxShift, fNoise, rng)
	clean := simulate.Generate(src.Gray, fNumFrames, fMaxShift, 0, rng)

	// PNG, so the hot pixels survive as exactly 255
	for i, f := range noisy.Frames {
		name := filepath.Join(framesDir, fmt.Sprintf("%03d.png", i))
		if err := stacker.WritePNG(f.Gray.ToGray8(), name); err != nil {
			return err
		}
		log.Debugf("Frame %s offset %v", name, f.Offset)
	}

	longNoisy, err := writeLongExposure(noisy, filepath.Join(longDir, "long_exposure_with_noise.png"))
	if err != nil {
		return err
	}
	longClean, err := writeLongExposure(clean, filepath.Join(longDir, "long_exposure_without_noise.png"))
	if err != nil {
		return err
	}

	cfg := stacker.NewConfig()
	cfg.Verbosity = fVerbosity
	cfg.InputDir = framesDir
	cfg.OutputDir = filepath.Join(fWorkDir, "result_images")
	cfg.Extension = ".png"
	cfg.OutputFormat = "png"
	cfg.BrightRadius = fBrightRadius
	cfg.Workers = fWorkers

	s := stacker.NewStack(cfg)
	s.SetLogger(log)
	if err := s.Run(); err != nil {
		return err
	}

	correctedNR := simulate.NoiseRatio(s.Result, noisy.Noise, noisy.W, noisy.H)
	simulatedNR := simulate.NoiseRatio(longNoisy, noisy.Noise, noisy.W, noisy.H)

	fields := logrus.Fields{
		"snr_corrected": fmt.Sprintf("%.1f", correctedNR),
		"snr_simulated": fmt.Sprintf("%.1f", simulatedNR),
	}

	// The same aligned canvases, averaged instead, to show what the median buys
	if mean, err := stacker.ReduceMean(s.Canvases); err != nil {
		log.Warnf("Could not build mean stack: %v", err)
	} else {
		fields["snr_mean"] = fmt.Sprintf("%.1f", simulate.NoiseRatio(mean, noisy.Noise, noisy.W, noisy.H))
	}
	if sharp, err := simulate.Sharpness(s.Result); err == nil {
		fields["sharpness_corrected"] = fmt.Sprintf("%.2f", sharp)
	}
	if sharp, err := simulate.Sharpness(longClean); err == nil {
		fields["sharpness_simulated"] = fmt.Sprintf("%.2f", sharp)
	}

	// The pivot is the first frame, centered on the canvas; line the source up with it
	o := noisy.Frames[0].Offset
	x0, y0 := noisy.W/2 + o.X, noisy.H/2 + o.Y
	if s.Result.Contains(x0, y0, src.Width(), src.Height()) {
		diffFilename := ""
		if fVerbosity > 0 {
			diffFilename = filepath.Join(fWorkDir, "diff.png")
		}
		crop := s.Result.Crop(x0, y0, src.Width(), src.Height())
		if d, err := simulate.ImgDiff(src.Gray, crop, diffFilename); err != nil {
			log.Warnf("Could not compare result to source: %v", err)
		} else {
			fields["diff_from_source"] = fmt.Sprintf("%.3f", d)
		}
	}

	log.WithFields(fields).Infof("Signal to noise ratio (corrected): %.1f, (simulated): %.1f", correctedNR, simulatedNR)

	return nil
}

func writeLongExposure(r simulate.Run, filename string) (emath.FloatGrid, error) {
	g, err := simulate.LongExposure(r.Grids())
	if err != nil {
		return g, err
	}
	return g, stacker.WritePNG(g.ToGray8(), filename)
}
