package stacker

import(
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/drift-stacker/pkg/ecolor"
)

/* Example config file ...

inputdir: /data/jupiter
extension: .jpg
pivotname: IMG_0042.jpg
brightradius: 31
outputformat: png
writehdr: true
workers: 4

*/

type Config struct {
	Verbosity      int

	InputDir       string
	OutputDir      string  // Clobbered at the start of each run. Defaults to InputDir/result_images
	Extension      string  // Only files with this extension are stacked

	PivotName      string  // Filename of the reference frame; first file if empty or missing
	BrightRadius   int     // If >0, align by bright spot with this (odd) blur size; else phase correlation
	BlurSize       int     // Smoothing of the phase correlation surface

	Grayscale      string  // see ecolor.GrayMode
	OutputFormat   string  // jpg or png
	JPEGQuality    int
	WriteHDR       bool    // also write result.hdr, with the unquantized median

	Workers        int     // >1 estimates shifts concurrently
	DumpSurfaces   bool    // write each correlation surface as a PNG, for debugging
}

func NewConfig() Config {
	return Config{
		Extension:    ".jpg",
		BlurSize:     5,
		Grayscale:    string(ecolor.GrayLuma),
		OutputFormat: "jpg",
		JPEGQuality:  95,
		Workers:      1,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return Config{}, fmt.Errorf("config parse %s: %v: %w", filename, err, ErrConfig)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config)UseBrightSpot() bool { return c.BrightRadius != 0 }

// Validate checks the config and fills in derived defaults. It does no
// I/O, so a bad config fails before any image is read.
func (c *Config)Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("no input directory: %w", ErrConfig)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "result_images")
	}
	if filepath.Clean(c.OutputDir) == filepath.Clean(c.InputDir) {
		return fmt.Errorf("output dir %s would clobber the input dir: %w", c.OutputDir, ErrConfig)
	}
	if c.Extension == "" {
		c.Extension = ".jpg"
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	if c.BrightRadius < 0 {
		return fmt.Errorf("invalid radius %d, must be positive: %w", c.BrightRadius, ErrConfig)
	}
	if c.BrightRadius > 0 && c.BrightRadius%2 == 0 {
		return fmt.Errorf("invalid radius %d, must be odd: %w", c.BrightRadius, ErrConfig)
	}
	if c.BlurSize == 0 {
		c.BlurSize = 5
	}
	if c.BlurSize < 0 || c.BlurSize%2 == 0 {
		return fmt.Errorf("invalid blur size %d, must be odd and positive: %w", c.BlurSize, ErrConfig)
	}

	if mode, err := ecolor.ParseGrayMode(c.Grayscale); err != nil {
		return fmt.Errorf("%v: %w", err, ErrConfig)
	} else {
		c.Grayscale = string(mode)
	}

	c.OutputFormat = strings.TrimPrefix(strings.ToLower(c.OutputFormat), ".")
	switch c.OutputFormat {
	case "":            c.OutputFormat = "jpg"
	case "jpeg":        c.OutputFormat = "jpg"
	case "jpg", "png":
	default:
		return fmt.Errorf("no output format named '%s' (want jpg or png): %w", c.OutputFormat, ErrConfig)
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = 95
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d not in [1,100]: %w", c.JPEGQuality, ErrConfig)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative: %w", c.Workers, ErrConfig)
	}

	return nil
}

// GetEstimator returns the shift estimator the config asks for.
func (c Config)GetEstimator() ShiftEstimator {
	if c.UseBrightSpot() {
		return BrightSpotter{Radius: c.BrightRadius}
	}
	return PhaseCorrelator{BlurSize: c.BlurSize}
}
