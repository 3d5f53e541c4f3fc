package display

import (
	"context"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"go.viam.com/objseg/segmentation"
)

// pollMillis is how long a single WaitKey blocks before the context and window are checked.
const pollMillis = 50

// highGUI is the part of *gocv.Window a WindowPresenter drives.
type highGUI interface {
	SetWindowTitle(title string) error
	IMShow(img gocv.Mat) error
	WaitKey(delay int) int
	IsOpen() bool
	Close() error
}

// WindowPresenter shows frames in an OpenCV HighGUI window.
type WindowPresenter struct {
	window highGUI
}

// NewWindowPresenter opens a window with the given title.
func NewWindowPresenter(title string) *WindowPresenter {
	return &WindowPresenter{window: gocv.NewWindow(title)}
}

// Present shows the frame and blocks until a key is pressed, the window is closed or ctx is done.
func (wp *WindowPresenter) Present(ctx context.Context, frame segmentation.Frame) (Action, error) {
	if err := wp.window.SetWindowTitle(frame.Name); err != nil {
		return Quit, errors.Wrap(err, "setting window title")
	}
	if err := wp.window.IMShow(frame.Mat); err != nil {
		return Quit, errors.Wrap(err, "showing frame")
	}
	for {
		if err := ctx.Err(); err != nil {
			return Quit, err
		}
		if key := wp.window.WaitKey(pollMillis); key >= 0 {
			return KeyToAction(key), nil
		}
		if !wp.window.IsOpen() {
			return Quit, nil
		}
	}
}

// Close destroys the window.
func (wp *WindowPresenter) Close() error {
	return wp.window.Close()
}
