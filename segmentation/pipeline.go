// Package segmentation isolates the object in the middle of a photograph. A marker
// controlled watershed finds a first outline which then seeds a grab-cut refinement.
package segmentation

import (
	"context"
	"image"
	"image/color"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gocv.io/x/gocv"

	"go.viam.com/objseg/config"
	"go.viam.com/objseg/logging"
	"go.viam.com/objseg/spatialmath"
	"go.viam.com/objseg/utils"
)

// Measurement is the bounding geometry of one segmentation mask.
type Measurement struct {
	Upright image.Rectangle
	Min     spatialmath.RotatedBox
	Points  int
}

// Result of a pipeline run. The caller must Close it.
type Result struct {
	ImageSize image.Point
	Watershed Measurement
	GrabCut   Measurement
	Frames    Frames
}

// Close releases every frame.
func (r *Result) Close() error {
	return r.Frames.Close()
}

// Pipeline runs the segmentation with a fixed set of parameters.
type Pipeline struct {
	cfg      config.Config
	boxColor color.RGBA
	logger   logging.Logger
}

// NewPipeline validates cfg and returns a pipeline using it.
func NewPipeline(cfg *config.Config, logger logging.Logger) (*Pipeline, error) {
	if err := cfg.Validate("pipeline"); err != nil {
		return nil, err
	}
	c, err := cfg.BoxRGBA()
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: *cfg, boxColor: c, logger: logger}, nil
}

// runState carries the Mats one stage hands to the next. All of them are owned by frames.
type runState struct {
	frames    Frames
	original  gocv.Mat
	blurred   gocv.Mat
	threshold gocv.Mat
	marker    gocv.Mat
	watershed gocv.Mat
	center    gocv.Mat
	result    Result
}

type stage struct {
	name string
	run  func(*runState) error
}

// Run segments img, which is left untouched and still belongs to the caller.
func (p *Pipeline) Run(ctx context.Context, img gocv.Mat) (*Result, error) {
	if img.Empty() {
		return nil, ErrNoImageData
	}
	size := image.Pt(img.Cols(), img.Rows())
	if size.X < p.cfg.MinImageSide || size.Y < p.cfg.MinImageSide {
		return nil, errors.Wrapf(ErrImageTooSmall, "%dx%d is under %d pixels on a side", size.X, size.Y, p.cfg.MinImageSide)
	}

	st := &runState{result: Result{ImageSize: size}}
	guard := utils.NewGuard(func() { goutils.UncheckedError(st.frames.Close()) })
	defer guard.OnFail()

	original, err := toBGR(img)
	if err != nil {
		goutils.UncheckedError(original.Close())
		return nil, err
	}
	st.original = st.frames.add(FrameOriginal, original)
	stages := []stage{
		{"preprocess", p.preprocess},
		{"markers", p.buildMarkers},
		{"watershed", p.watershed},
		{"extract", p.extractCenter},
		{"grabcut", p.refine},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.logger.Debugw("running stage", "stage", s.name)
		if err := s.run(st); err != nil {
			return nil, errors.Wrapf(err, "%s stage", s.name)
		}
	}

	if spatialmath.Fits(st.result.GrabCut.Min, st.result.Watershed.Min) {
		p.logger.Debugw("grab-cut box fits inside the watershed box",
			"grabcut", st.result.GrabCut.Min, "watershed", st.result.Watershed.Min)
	} else {
		p.logger.Debugw("grab-cut box grew past the watershed box",
			"grabcut", st.result.GrabCut.Min, "watershed", st.result.Watershed.Min)
	}

	st.result.Frames = st.frames
	guard.Success()
	res := st.result
	return &res, nil
}

// toBGR returns a three channel copy of img. The returned Mat must be closed even on error.
func toBGR(img gocv.Mat) (gocv.Mat, error) {
	out := gocv.NewMat()
	switch img.Channels() {
	case 1:
		if err := gocv.CvtColor(img, &out, gocv.ColorGrayToBGR); err != nil {
			return out, errors.Wrap(err, "gray to BGR conversion")
		}
	case 3:
		img.CopyTo(&out)
	case 4:
		if err := gocv.CvtColor(img, &out, gocv.ColorBGRAToBGR); err != nil {
			return out, errors.Wrap(err, "BGRA to BGR conversion")
		}
	default:
		return out, errors.Errorf("unsupported channel count %d", img.Channels())
	}
	return out, nil
}
