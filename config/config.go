// Package config defines the parameters of the segmentation pipeline and how they are
// read from disk.
package config

import (
	"fmt"
	"image/color"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/objseg/utils"
)

// Defaults of the pipeline parameters.
const (
	DefaultMedianBlurKernel  = 5
	DefaultErodeIterations   = 2
	DefaultDilateIterations  = 3
	DefaultBackgroundLabel   = 128
	DefaultGrabCutIterations = 1
	DefaultRNGSeed           = 12345
	DefaultBoxColor          = "#3302c4"
)

// maxGrabCutIterations bounds the refinement loop; every iteration re-fits both GMMs.
const maxGrabCutIterations = 20

// Config holds every tunable of the pipeline. The zero value is not usable; start from Default.
type Config struct {
	MedianBlurKernel  int    `json:"median_blur_kernel,omitempty" jsonschema:"minimum=3,description=odd aperture of the median blur"`
	ErodeIterations   int    `json:"erode_iterations,omitempty" jsonschema:"minimum=0,description=3x3 erosions building the foreground seed"`
	DilateIterations  int    `json:"dilate_iterations,omitempty" jsonschema:"minimum=0,description=3x3 dilations building the background seed"`
	BackgroundLabel   int    `json:"background_label,omitempty" jsonschema:"minimum=1,maximum=254,description=marker value of the background seed"`
	GrabCutIterations int    `json:"grab_cut_iterations,omitempty" jsonschema:"minimum=1,description=grab-cut refinement iterations"`
	RNGSeed           int    `json:"rng_seed,omitempty" jsonschema:"description=seed of the OpenCV random generator used by grab-cut"`
	MinImageSide      int    `json:"min_image_side,omitempty" jsonschema:"minimum=1,description=smallest accepted image width or height"`
	BoxColor          string `json:"box_color,omitempty" jsonschema:"description=hex color of the drawn bounding boxes"`
}

// Default returns the parameters the demo was tuned with.
func Default() *Config {
	return &Config{
		MedianBlurKernel:  DefaultMedianBlurKernel,
		ErodeIterations:   DefaultErodeIterations,
		DilateIterations:  DefaultDilateIterations,
		BackgroundLabel:   DefaultBackgroundLabel,
		GrabCutIterations: DefaultGrabCutIterations,
		RNGSeed:           DefaultRNGSeed,
		MinImageSide:      DefaultMedianBlurKernel,
		BoxColor:          DefaultBoxColor,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.MedianBlurKernel < 3 || !utils.IsOdd(cfg.MedianBlurKernel) {
		return utils.NewConfigValidationError(path,
			errors.Errorf("\"median_blur_kernel\" must be odd and at least 3 but got %d", cfg.MedianBlurKernel))
	}
	if cfg.ErodeIterations < 0 || cfg.DilateIterations < 0 {
		return utils.NewConfigValidationError(path, errors.New("morphology iterations cannot be negative"))
	}
	// the unknown band between the seeds is what watershed resolves; without it there is nothing to flood.
	if cfg.ErodeIterations+cfg.DilateIterations == 0 {
		return utils.NewConfigValidationError(path,
			errors.New("\"erode_iterations\" and \"dilate_iterations\" cannot both be zero"))
	}
	if cfg.BackgroundLabel < 1 || cfg.BackgroundLabel > 254 {
		return utils.NewConfigValidationError(path, utils.NewOutOfRangeError("background_label", cfg.BackgroundLabel, 1, 254))
	}
	if cfg.GrabCutIterations < 1 || cfg.GrabCutIterations > maxGrabCutIterations {
		return utils.NewConfigValidationError(path,
			utils.NewOutOfRangeError("grab_cut_iterations", cfg.GrabCutIterations, 1, maxGrabCutIterations))
	}
	if cfg.MinImageSide < 1 {
		return utils.NewConfigValidationFieldRequiredError(path, "min_image_side")
	}
	if cfg.BoxColor == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "box_color")
	}
	if _, err := cfg.BoxRGBA(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// BoxRGBA parses BoxColor.
func (cfg *Config) BoxRGBA() (color.RGBA, error) {
	c, err := colorful.Hex(cfg.BoxColor)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "bad \"box_color\" %q", cfg.BoxColor)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// String prints the parameters as a two column table.
func (cfg Config) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Parameter", "Value"})
	t.AppendRows([]table.Row{
		{"median_blur_kernel", cfg.MedianBlurKernel},
		{"erode_iterations", cfg.ErodeIterations},
		{"dilate_iterations", cfg.DilateIterations},
		{"background_label", cfg.BackgroundLabel},
		{"grab_cut_iterations", cfg.GrabCutIterations},
		{"rng_seed", cfg.RNGSeed},
		{"min_image_side", cfg.MinImageSide},
		{"box_color", fmt.Sprintf("%q", cfg.BoxColor)},
	})
	return t.Render()
}
