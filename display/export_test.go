package display

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
	"gocv.io/x/gocv"

	"go.viam.com/objseg/logging"
	"go.viam.com/objseg/rimage"
	"go.viam.com/objseg/segmentation"
)

func TestExportPresenter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "steps")
	ep, err := NewExportPresenter(dir, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	gray := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 0, 0, 0), 12, 16, gocv.MatTypeCV8UC1)
	color := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 12, 16, gocv.MatTypeCV8UC3)
	frames := segmentation.Frames{
		{Name: segmentation.FrameOriginal, Mat: color},
		{Name: segmentation.FrameThreshold, Mat: gray},
	}
	defer func() { test.That(t, frames.Close(), test.ShouldBeNil) }()

	test.That(t, Run(context.Background(), ep, frames, logging.NewTestLogger(t)), test.ShouldBeNil)
	test.That(t, ep.Close(), test.ShouldBeNil)

	entries, err := os.ReadDir(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(entries), test.ShouldEqual, 2)
	test.That(t, entries[0].Name(), test.ShouldEqual, "01_original.png")
	test.That(t, entries[1].Name(), test.ShouldEqual, "02_threshold.png")

	img, err := rimage.ReadImageFromFile(filepath.Join(dir, "02_threshold.png"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 16)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 12)

	p, err := ep.Path("sizes.csv")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldEqual, filepath.Join(dir, "sizes.csv"))
}
