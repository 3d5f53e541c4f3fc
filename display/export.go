package display

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"go.viam.com/objseg/logging"
	"go.viam.com/objseg/rimage"
	"go.viam.com/objseg/segmentation"
	"go.viam.com/objseg/utils"
)

// ExportPresenter writes every frame to a directory as NN_name.png and always advances.
type ExportPresenter struct {
	dir    string
	count  int
	logger logging.Logger
}

// NewExportPresenter creates dir if needed.
func NewExportPresenter(dir string, logger logging.Logger) (*ExportPresenter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "creating export directory %q", dir)
	}
	return &ExportPresenter{dir: dir, logger: logger}, nil
}

// Present encodes the frame to PNG.
func (ep *ExportPresenter) Present(ctx context.Context, frame segmentation.Frame) (Action, error) {
	ep.count++
	path, err := utils.SafeJoinDir(ep.dir, fmt.Sprintf("%02d_%s.png", ep.count, frame.Name))
	if err != nil {
		return Quit, err
	}
	img, err := frame.Mat.ToImage()
	if err != nil {
		return Quit, errors.Wrapf(err, "converting %q", frame.Name)
	}
	if err := rimage.WriteImageToFile(path, img); err != nil {
		return Quit, err
	}
	ep.logger.Debugw("exported frame", "path", path)
	return Next, nil
}

// Path joins name onto the export directory.
func (ep *ExportPresenter) Path(name string) (string, error) {
	return utils.SafeJoinDir(ep.dir, name)
}

// Close is a no-op; every file is closed once written.
func (ep *ExportPresenter) Close() error {
	return nil
}
