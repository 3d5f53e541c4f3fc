package segmentation

import "github.com/pkg/errors"

var (
	// ErrNoImageData is returned when the input cannot be decoded by OpenCV or by Go.
	ErrNoImageData = errors.New("no image data")
	// ErrImageTooSmall is returned for images under the configured minimum side.
	ErrImageTooSmall = errors.New("image too small")
	// ErrNoRegion is returned when no central object can be separated from the background.
	ErrNoRegion = errors.New("no central region")
	// ErrSeedOverlap is returned when the foreground and background markers share pixels.
	ErrSeedOverlap = errors.New("foreground and background seeds overlap")
	// ErrNoBackground is returned when the grab-cut rectangle covers the whole image.
	ErrNoBackground = errors.New("grab-cut rectangle leaves no background")
)
