package config

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate("default"), test.ShouldBeNil)
	test.That(t, cfg.MedianBlurKernel, test.ShouldEqual, 5)
	test.That(t, cfg.ErodeIterations, test.ShouldEqual, 2)
	test.That(t, cfg.DilateIterations, test.ShouldEqual, 3)
	test.That(t, cfg.BackgroundLabel, test.ShouldEqual, 128)
	test.That(t, cfg.GrabCutIterations, test.ShouldEqual, 1)

	c, err := cfg.BoxRGBA()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, color.RGBA{R: 51, G: 2, B: 196, A: 255})
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(cfg *Config)
		errStr string
	}{
		{"even kernel", func(cfg *Config) { cfg.MedianBlurKernel = 4 }, "median_blur_kernel"},
		{"tiny kernel", func(cfg *Config) { cfg.MedianBlurKernel = 1 }, "median_blur_kernel"},
		{"negative erode", func(cfg *Config) { cfg.ErodeIterations = -1 }, "cannot be negative"},
		{"no unknown band", func(cfg *Config) {
			cfg.ErodeIterations = 0
			cfg.DilateIterations = 0
		}, "cannot both be zero"},
		{"background label too high", func(cfg *Config) { cfg.BackgroundLabel = 255 }, `"background_label" must be between 1 and 254`},
		{"background label zero", func(cfg *Config) { cfg.BackgroundLabel = 0 }, `"background_label"`},
		{"no grab-cut", func(cfg *Config) { cfg.GrabCutIterations = 0 }, `"grab_cut_iterations"`},
		{"min side", func(cfg *Config) { cfg.MinImageSide = 0 }, `"min_image_side" is required`},
		{"no color", func(cfg *Config) { cfg.BoxColor = "" }, `"box_color" is required`},
		{"bad color", func(cfg *Config) { cfg.BoxColor = "purple" }, `bad "box_color"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate("params.json5")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, `error validating "params.json5"`)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}
}

func TestFromReader(t *testing.T) {
	cfg, err := FromReader("empty", strings.NewReader("  \n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())

	cfg, err = FromReader("partial", strings.NewReader(`{
		// a wider blur for noisy scans
		median_blur_kernel: 7,
		grab_cut_iterations: 3,
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.MedianBlurKernel, test.ShouldEqual, 7)
	test.That(t, cfg.GrabCutIterations, test.ShouldEqual, 3)
	test.That(t, cfg.ErodeIterations, test.ShouldEqual, DefaultErodeIterations)
	test.That(t, cfg.BoxColor, test.ShouldEqual, DefaultBoxColor)

	_, err = FromReader("broken", strings.NewReader(`{median_blur_kernel: `))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `cannot parse "broken"`)

	_, err = FromReader("invalid", strings.NewReader(`{"median_blur_kernel": 6}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "median_blur_kernel")
}

func TestReadSubstitutesEnvironment(t *testing.T) {
	t.Setenv("OBJSEG_TEST_SEED", "99")
	fn := filepath.Join(t.TempDir(), "params.json5")
	err := os.WriteFile(fn, []byte(`{rng_seed: ${OBJSEG_TEST_SEED}, box_color: "#ff0000"}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := Read(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.RNGSeed, test.ShouldEqual, 99)
	c, err := cfg.BoxRGBA()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, color.RGBA{R: 255, A: 255})

	_, err = Read(filepath.Join(t.TempDir(), "missing.json5"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read parameter file")
}

func TestSchema(t *testing.T) {
	md, err := json.Marshal(Schema())
	test.That(t, err, test.ShouldBeNil)
	for _, field := range []string{"median_blur_kernel", "erode_iterations", "background_label", "box_color"} {
		test.That(t, string(md), test.ShouldContainSubstring, field)
	}
}

func TestString(t *testing.T) {
	out := Default().String()
	test.That(t, out, test.ShouldContainSubstring, "median_blur_kernel")
	test.That(t, out, test.ShouldContainSubstring, `"#3302c4"`)
}
