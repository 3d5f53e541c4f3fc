package segmentation

import (
	"image"
	"math"
	"runtime"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gocv.io/x/gocv"

	"go.viam.com/objseg/rimage"
	"go.viam.com/objseg/spatialmath"
)

// Watershed label value of ridge pixels after the conversion back to 8 bits.
const ridgeLabel = 1

// grab-cut mask value of pixels classified as probable foreground.
const grabCutProbableForeground = 3

func (p *Pipeline) preprocess(st *runState) error {
	st.blurred = st.frames.add(FrameBlurred, gocv.NewMat())
	if err := gocv.MedianBlur(st.original, &st.blurred, p.cfg.MedianBlurKernel); err != nil {
		return errors.Wrap(err, "median blur")
	}

	gray := st.frames.add(FrameGrayscale, gocv.NewMat())
	if err := gocv.CvtColor(st.blurred, &gray, gocv.ColorBGRToGray); err != nil {
		return errors.Wrap(err, "grayscale conversion")
	}

	// dark objects on a light background come out as 255
	st.threshold = st.frames.add(FrameThreshold, gocv.NewMat())
	gocv.Threshold(gray, &st.threshold, 0, 255, gocv.ThresholdBinaryInv+gocv.ThresholdOtsu)
	return nil
}

func (p *Pipeline) buildMarkers(st *runState) error {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer goutils.UncheckedErrorFunc(kernel.Close)

	fg := st.frames.add(FrameForegroundSeed, gocv.NewMat())
	st.threshold.CopyTo(&fg)
	for i := 0; i < p.cfg.ErodeIterations; i++ {
		if err := gocv.Erode(fg, &fg, kernel); err != nil {
			return errors.Wrap(err, "erode")
		}
	}

	bg := st.frames.add(FrameBackgroundSeed, gocv.NewMat())
	st.threshold.CopyTo(&bg)
	for i := 0; i < p.cfg.DilateIterations; i++ {
		if err := gocv.Dilate(bg, &bg, kernel); err != nil {
			return errors.Wrap(err, "dilate")
		}
	}
	gocv.Threshold(bg, &bg, 0, float32(p.cfg.BackgroundLabel), gocv.ThresholdBinaryInv)

	if gocv.CountNonZero(fg) == 0 {
		return errors.Wrap(ErrNoRegion, "foreground seed is empty")
	}
	if gocv.CountNonZero(bg) == 0 {
		return errors.Wrap(ErrNoRegion, "background seed is empty")
	}
	overlap := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(overlap.Close)
	if err := gocv.BitwiseAnd(fg, bg, &overlap); err != nil {
		return errors.Wrap(err, "seed overlap")
	}
	if n := gocv.CountNonZero(overlap); n != 0 {
		return errors.Wrapf(ErrSeedOverlap, "%d pixels carry both labels", n)
	}

	st.marker = st.frames.add(FrameMarker, gocv.NewMat())
	if err := gocv.Add(fg, bg, &st.marker); err != nil {
		return errors.Wrap(err, "merging seeds")
	}
	return nil
}

func (p *Pipeline) watershed(st *runState) error {
	labels := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(labels.Close)
	if err := st.marker.ConvertTo(&labels, gocv.MatTypeCV32SC1); err != nil {
		return errors.Wrap(err, "marker conversion")
	}
	if err := gocv.Watershed(st.blurred, &labels); err != nil {
		return errors.Wrap(err, "watershed")
	}

	// ridges are labelled -1 and end up as 1
	st.watershed = st.frames.add(FrameWatershed, gocv.NewMat())
	if err := gocv.ConvertScaleAbs(labels, &st.watershed, 1, 0); err != nil {
		return errors.Wrap(err, "label conversion")
	}
	return nil
}

// extractCenter keeps the watershed basin holding the image centre, whatever its label.
func (p *Pipeline) extractCenter(st *runState) error {
	labels, err := matToGray(st.watershed)
	if err != nil {
		return err
	}
	center := rimage.Center(labels.Bounds())
	label := labels.GrayAt(center.X, center.Y).Y
	if label == ridgeLabel {
		return errors.Wrapf(ErrNoRegion, "centre pixel %v lies on a watershed ridge", center)
	}
	filled, err := rimage.FloodFill(labels, center, 0)
	if err != nil {
		return err
	}
	p.logger.Debugw("flood filled centre region", "center", center, "label", label, "pixels", filled)

	filledMat, err := gocv.NewMatFromBytes(labels.Rect.Dy(), labels.Rect.Dx(), gocv.MatTypeCV8UC1, labels.Pix)
	if err != nil {
		return errors.Wrap(err, "wrapping flood fill result")
	}
	inverted := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(inverted.Close)
	err = gocv.BitwiseNot(filledMat, &inverted)
	goutils.UncheckedError(filledMat.Close())
	runtime.KeepAlive(labels.Pix)
	if err != nil {
		return errors.Wrap(err, "inverting flood fill")
	}

	// other basins with the same label survive the NOT only where their bits differ from it
	st.center = st.frames.add(FrameCenterMask, gocv.NewMat())
	if err := gocv.BitwiseAnd(inverted, st.watershed, &st.center); err != nil {
		return errors.Wrap(err, "centre mask")
	}

	object, err := cutout(&st.frames, FrameWatershedObject, st.original, st.center)
	if err != nil {
		return err
	}
	m, err := measure(st.center)
	if err != nil {
		return err
	}
	st.result.Watershed = m
	if err := p.drawBoxes(&object, m); err != nil {
		return err
	}
	p.logger.Debugw("watershed object", "upright", m.Upright, "min", m.Min, "pixels", m.Points)
	return nil
}

func (p *Pipeline) refine(st *runState) error {
	rect := st.result.Watershed.Upright
	bounds := image.Rect(0, 0, st.result.ImageSize.X, st.result.ImageSize.Y)
	if rect.Intersect(bounds) == bounds {
		return errors.Wrapf(ErrNoBackground, "rectangle %v", rect)
	}

	gcMask := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(gcMask.Close)
	bgdModel := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(bgdModel.Close)
	fgdModel := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(fgdModel.Close)

	// grab-cut seeds its GMMs through the OpenCV RNG
	gocv.SetRNGSeed(p.cfg.RNGSeed)
	if err := gocv.GrabCut(
		st.original, &gcMask, rect, &bgdModel, &fgdModel, p.cfg.GrabCutIterations, gocv.GCInitWithRect,
	); err != nil {
		return errors.Wrap(err, "grab-cut")
	}

	mask := st.frames.add(FrameGrabCutMask, gocv.NewMat())
	prFgd := gocv.NewScalar(grabCutProbableForeground, 0, 0, 0)
	if err := gocv.InRangeWithScalar(gcMask, prFgd, prFgd, &mask); err != nil {
		return errors.Wrap(err, "probable foreground mask")
	}

	object, err := cutout(&st.frames, FrameGrabCutObject, st.original, mask)
	if err != nil {
		return err
	}
	m, err := measure(mask)
	if err != nil {
		return err
	}
	st.result.GrabCut = m
	if err := p.drawBoxes(&object, m); err != nil {
		return err
	}
	p.logger.Debugw("grab-cut object", "upright", m.Upright, "min", m.Min, "pixels", m.Points)
	return nil
}

// cutout copies src through mask onto a black canvas, adding the result to frames as name.
func cutout(frames *Frames, name string, src, mask gocv.Mat) (gocv.Mat, error) {
	out := frames.add(name, gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), src.Rows(), src.Cols(), src.Type()))
	if err := src.CopyToWithMask(&out, mask); err != nil {
		return out, errors.Wrapf(err, "%s cutout", name)
	}
	return out, nil
}

// measure fits the upright and the minimum-area rectangle around the non-zero pixels of mask.
func measure(mask gocv.Mat) (Measurement, error) {
	n := gocv.CountNonZero(mask)
	if n == 0 {
		return Measurement{}, errors.Wrap(ErrNoRegion, "mask is empty")
	}
	locations := gocv.NewMat()
	defer goutils.UncheckedErrorFunc(locations.Close)
	gocv.FindNonZero(mask, &locations)
	points := gocv.NewPointVectorFromMat(locations)
	defer points.Close()

	rr := gocv.MinAreaRect2f(points)
	minBox := spatialmath.NewRotatedBox(
		r2.Point{X: float64(rr.Center.X), Y: float64(rr.Center.Y)},
		float64(rr.Width), float64(rr.Height), rr.Angle,
	)
	return Measurement{Upright: gocv.BoundingRect(points), Min: minBox, Points: n}, nil
}

func (p *Pipeline) drawBoxes(img *gocv.Mat, m Measurement) error {
	corners := m.Min.Corners()
	for i := range corners {
		from, to := corners[i], corners[(i+1)%len(corners)]
		if err := gocv.Line(img, roundPoint(from.X, from.Y), roundPoint(to.X, to.Y), p.boxColor, 1); err != nil {
			return errors.Wrap(err, "drawing rotated box")
		}
	}
	if err := gocv.Rectangle(img, m.Upright, p.boxColor, 1); err != nil {
		return errors.Wrap(err, "drawing upright box")
	}
	return nil
}

func roundPoint(x, y float64) image.Point {
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// matToGray copies the pixels of a single channel 8-bit Mat into an image.Gray.
func matToGray(m gocv.Mat) (*image.Gray, error) {
	if m.Type() != gocv.MatTypeCV8UC1 {
		return nil, errors.Errorf("expected a single channel 8-bit mat but got type %v", m.Type())
	}
	return rimage.GrayFromBytes(m.Cols(), m.Rows(), m.ToBytes())
}
