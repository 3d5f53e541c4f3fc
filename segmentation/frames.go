package segmentation

import (
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"gocv.io/x/gocv"
)

// Names of the intermediate images, in the order the pipeline produces them.
const (
	FrameOriginal        = "original"
	FrameBlurred         = "blurred"
	FrameGrayscale       = "grayscale"
	FrameThreshold       = "threshold"
	FrameForegroundSeed  = "foreground_seed"
	FrameBackgroundSeed  = "background_seed"
	FrameMarker          = "marker"
	FrameWatershed       = "watershed"
	FrameCenterMask      = "center_mask"
	FrameWatershedObject = "watershed_object"
	FrameGrabCutMask     = "grabcut_mask"
	FrameGrabCutObject   = "grabcut_object"
)

// FrameOrder lists every frame of a successful run in display order.
var FrameOrder = []string{
	FrameOriginal,
	FrameBlurred,
	FrameGrayscale,
	FrameThreshold,
	FrameForegroundSeed,
	FrameBackgroundSeed,
	FrameMarker,
	FrameWatershed,
	FrameCenterMask,
	FrameWatershedObject,
	FrameGrabCutMask,
	FrameGrabCutObject,
}

// A Frame is one named intermediate image.
type Frame struct {
	Name string
	Mat  gocv.Mat
}

// Frames owns the Mats of a run. Close releases all of them.
type Frames []Frame

func (fs *Frames) add(name string, m gocv.Mat) gocv.Mat {
	*fs = append(*fs, Frame{Name: name, Mat: m})
	return m
}

// Get returns the frame with the given name.
func (fs Frames) Get(name string) (Frame, bool) {
	return lo.Find(fs, func(f Frame) bool { return f.Name == name })
}

// Names returns the frame names in order.
func (fs Frames) Names() []string {
	return lo.Map(fs, func(f Frame, _ int) string { return f.Name })
}

// Close closes every Mat.
func (fs Frames) Close() error {
	var err error
	for _, f := range fs {
		err = multierr.Combine(err, f.Mat.Close())
	}
	return err
}
