package segmentation

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gocv.io/x/gocv"

	"go.viam.com/objseg/logging"
	"go.viam.com/objseg/rimage"
)

// LoadImage reads a colour image. OpenCV is tried first; formats only Go can decode
// (PPM variants, QOI, WebP and friends) are converted from an image.Image.
func LoadImage(path string, logger logging.Logger) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if !img.Empty() {
		return img, nil
	}
	goutils.UncheckedError(img.Close())

	logger.Debugw("opencv could not decode image, trying go decoders", "path", path)
	decoded, err := rimage.ReadImageFromFile(path)
	if err != nil {
		return gocv.Mat{}, errors.Wrapf(ErrNoImageData, "%s: %v", path, err)
	}
	img, err = gocv.ImageToMatRGB(decoded)
	if err != nil {
		return gocv.Mat{}, errors.Wrapf(ErrNoImageData, "%s: %v", path, err)
	}
	return img, nil
}
