package main

import(
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/abworrall/drift-stacker/pkg/stacker"
)

var(
	fVerbosity int
	fOutputDir string
	fPivotName string
	fBrightRadius int
	fExtension string
	fOutputFormat string
	fJPEGQuality int
	fWriteHDR bool
	fWorkers int
	fGrayscale string
	fDumpSurfaces bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fOutputDir, "o", "", "output dir; clobbered! (default <inputdir>/result_images)")
	flag.StringVar(&fPivotName, "pivot", "", "filename of the frame everything is aligned to (default: first)")
	flag.IntVar(&fBrightRadius, "bright", 0, "align by brightest spot, blurred with this (odd) radius, instead of phase correlation")
	flag.StringVar(&fExtension, "ext", "", "only stack files with this extension (default .jpg)")
	flag.StringVar(&fOutputFormat, "format", "", "output image format, jpg or png")
	flag.IntVar(&fJPEGQuality, "quality", 0, "jpeg output quality, 1-100")
	flag.BoolVar(&fWriteHDR, "hdr", false, "also write the unquantized result as result.hdr")
	flag.IntVar(&fWorkers, "workers", 0, "estimate shifts on this many goroutines")
	flag.StringVar(&fGrayscale, "gray", "", "how to convert color frames to gray: luma or lab")
	flag.BoolVar(&fDumpSurfaces, "dumpsurfaces", false, "write each correlation surface out as a PNG")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [config.yaml] <inputdir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
}

func main() {
	log := stacker.NewLogger(fVerbosity)

	cfg, err := configFromArgs(flag.Args()...)
	if err != nil {
		log.Error(err)
		os.Exit(stacker.ExitCode(err))
	}

	s := stacker.NewStack(cfg)
	s.SetLogger(log)
	if err := s.Run(); err != nil {
		log.Errorf("Processing failed: %v", err)
		os.Exit(stacker.ExitCode(err))
	}
}

// configFromArgs starts from a config file if one was named, and then
// overrides it with any command line args.
func configFromArgs(args ...string) (stacker.Config, error) {
	cfg := stacker.NewConfig()
	for _, arg := range args {
		if strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml") {
			c, err := stacker.LoadConfig(arg)
			if err != nil {
				return cfg, err
			}
			cfg = c
		}
	}
	for _, arg := range args {
		if !strings.HasSuffix(arg, ".yaml") && !strings.HasSuffix(arg, ".yml") {
			cfg.InputDir = arg
		}
	}

	// Override the config file with command line args, if relevant
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }
	if fOutputDir != "" { cfg.OutputDir = fOutputDir }
	if fPivotName != "" { cfg.PivotName = fPivotName }
	if fBrightRadius != 0 { cfg.BrightRadius = fBrightRadius }
	if fExtension != "" { cfg.Extension = fExtension }
	if fOutputFormat != "" { cfg.OutputFormat = fOutputFormat }
	if fJPEGQuality != 0 { cfg.JPEGQuality = fJPEGQuality }
	if fWorkers != 0 { cfg.Workers = fWorkers }
	if fGrayscale != "" { cfg.Grayscale = fGrayscale }

	// Just set the bool vars
	if fWriteHDR { cfg.WriteHDR = true }
	if fDumpSurfaces { cfg.DumpSurfaces = true }

	return cfg, nil
}
