// Package display walks the viewer through the frames of a segmentation run.
package display

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/objseg/logging"
	"go.viam.com/objseg/segmentation"
	"go.viam.com/objseg/utils"
)

// An Action is the viewer's answer to a presented frame.
type Action int

// The viewer moves one frame or skipStep frames at a time, or stops.
const (
	Next Action = iota
	Back
	SkipForward
	SkipBack
	Quit
)

// skipStep is how many frames SkipForward and SkipBack move.
const skipStep = 5

func (a Action) String() string {
	switch a {
	case Next:
		return "next"
	case Back:
		return "back"
	case SkipForward:
		return "skip forward"
	case SkipBack:
		return "skip back"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

const keyEscape = 27

// KeyToAction maps a key code to an Action. ESC and q quit, a steps back, A and D skip
// backward and forward and any other key advances.
func KeyToAction(key int) Action {
	switch key & 0xff {
	case keyEscape, 'q', 'Q':
		return Quit
	case 'a':
		return Back
	case 'A':
		return SkipBack
	case 'D':
		return SkipForward
	default:
		return Next
	}
}

// A Presenter shows a frame and waits until the viewer acknowledges it.
type Presenter interface {
	Present(ctx context.Context, frame segmentation.Frame) (Action, error)
	Close() error
}

// Run presents frames in order until the last one is acknowledged, the viewer quits or
// ctx is done. Moves are clamped to the sequence; skipping forward from the last frame
// ends it like Next does.
func Run(ctx context.Context, p Presenter, frames segmentation.Frames, logger logging.Logger) error {
	for i := 0; i < len(frames); {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := p.Present(ctx, frames[i])
		if err != nil {
			return errors.Wrapf(err, "presenting %q", frames[i].Name)
		}
		logger.Debugw("frame acknowledged", "frame", frames[i].Name, "action", action)
		switch action {
		case Quit:
			return nil
		case Back:
			i = utils.MaxInt(i-1, 0)
		case SkipBack:
			i = utils.MaxInt(i-skipStep, 0)
		case SkipForward:
			if i == len(frames)-1 {
				return nil
			}
			i = utils.MinInt(i+skipStep, len(frames)-1)
		case Next:
			i++
		}
	}
	return nil
}
