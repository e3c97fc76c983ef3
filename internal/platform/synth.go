package platform

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-vgo/robotgo"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/keymap"
)

// ErrUnsupported is returned for events the synthesizer cannot inject.
var ErrUnsupported = errors.New("event cannot be synthesized")

// Synthesizer injects events through robotgo.
type Synthesizer struct{}

// Synthesize injects ev into the OS input stream.
func (Synthesizer) Synthesize(ev event.Input) error {
	switch ev.Kind {
	case event.KindKeyPress, event.KindKeyRelease:
		name, ok := keymap.RobotName(ev.Key)
		if !ok {
			return fmt.Errorf("%w: key %s", ErrUnsupported, ev.KeyName())
		}
		return robotgo.KeyToggle(name, direction(ev.Kind == event.KindKeyPress))

	case event.KindButtonPress, event.KindButtonRelease:
		name, ok := keymap.RobotButton(ev.Button)
		if !ok {
			return fmt.Errorf("%w: button %s", ErrUnsupported, ev.ButtonName())
		}
		return robotgo.Toggle(name, direction(ev.Kind == event.KindButtonPress))

	case event.KindMouseMove:
		robotgo.Move(int(math.Round(ev.X)), int(math.Round(ev.Y)))
		return nil

	case event.KindWheel:
		robotgo.Scroll(int(ev.DeltaX), int(ev.DeltaY))
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnsupported, ev)
}

func direction(down bool) string {
	if down {
		return "down"
	}
	return "up"
}

// Pointer reads the cursor position through robotgo.
type Pointer struct{}

// Position returns the current cursor coordinates.
func (Pointer) Position() (float64, float64) {
	x, y := robotgo.GetMousePos()
	return float64(x), float64(y)
}
