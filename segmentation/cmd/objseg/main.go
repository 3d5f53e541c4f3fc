// Package main segments the object in the centre of an image and steps through every
// intermediate image of the pipeline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/objseg/config"
	"go.viam.com/objseg/display"
	"go.viam.com/objseg/logging"
	"go.viam.com/objseg/segmentation"
)

const sizesFileName = "sizes.csv"

var logger = logging.NewLogger("objseg")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ImagePath string `flag:"0,usage=image to segment"`
	Config    string `flag:"config,usage=pipeline parameter file (JSON5)"`
	Export    string `flag:"export,usage=directory to write every step and sizes.csv to"`
	Headless  bool   `flag:"headless,usage=do not open a window"`
	Summary   bool   `flag:"summary,usage=log a table of both measurements"`
	Debug     bool   `flag:"debug,usage=enable debug logging"`
	Schema    bool   `flag:"schema,usage=print the JSON schema of the parameter file and exit"`
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	return run(ctx, args, os.Stdout, logger, func() display.Presenter {
		return display.NewWindowPresenter("objseg")
	})
}

func run(
	ctx context.Context,
	args []string,
	out io.Writer,
	logger logging.Logger,
	newWindow func() display.Presenter,
) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Schema {
		schema, err := json.MarshalIndent(config.Schema(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(schema))
		return err
	}
	if argsParsed.ImagePath == "" {
		return errors.New("an image path is required")
	}
	if argsParsed.Debug {
		logger = logging.NewDebugLogger("objseg")
	}

	cfg := config.Default()
	if argsParsed.Config != "" {
		if cfg, err = config.Read(argsParsed.Config); err != nil {
			return err
		}
	}
	logger.Debugf("pipeline parameters\n%s", cfg)
	pipeline, err := segmentation.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	img, err := segmentation.LoadImage(argsParsed.ImagePath, logger)
	if err != nil {
		if _, printErr := fmt.Fprintln(out, "No image data"); printErr != nil {
			return multierr.Combine(err, printErr)
		}
		return err
	}
	defer func() {
		err = multierr.Combine(err, img.Close())
	}()

	res, err := pipeline.Run(ctx, img)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, res.Close())
	}()

	if err := segmentation.WriteReport(out, res); err != nil {
		return err
	}
	if argsParsed.Summary {
		logger.Infof("segmentation summary\n%s", res.Summary())
	}
	if argsParsed.Export != "" {
		if err := export(ctx, argsParsed.Export, res, logger); err != nil {
			return err
		}
	}
	if argsParsed.Headless {
		return nil
	}

	window := newWindow()
	defer func() {
		err = multierr.Combine(err, window.Close())
	}()
	return display.Run(ctx, window, res.Frames, logger)
}

func export(ctx context.Context, dir string, res *segmentation.Result, logger logging.Logger) (err error) {
	ep, err := display.NewExportPresenter(dir, logger)
	if err != nil {
		return err
	}
	if err := display.Run(ctx, ep, res.Frames, logger); err != nil {
		return err
	}

	path, err := ep.Path(sizesFileName)
	if err != nil {
		return err
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	if err := segmentation.WriteSizesCSV(f, res); err != nil {
		return err
	}
	logger.Infow("exported segmentation steps", "dir", dir, "frames", len(res.Frames))
	return nil
}
