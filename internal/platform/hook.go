// Package platform binds the engine to the operating system: the global
// input hook, input synthesis and the cursor position query.
package platform

import (
	"context"

	hook "github.com/robotn/gohook"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/keymap"
)

// Hook delivers every system-wide input event to a handler.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a Hook.
func NewHook(logger *zap.Logger) *Hook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hook{logger: logger.With(zap.String("component", "hook"))}
}

// Run installs the hook and calls handle for each translated event until
// ctx is done. handle runs on the delivery goroutine and must not block.
func (h *Hook) Run(ctx context.Context, handle func(event.Input)) error {
	events := hook.Start()
	defer hook.End()
	h.logger.Info("input hook started")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("input hook stopped")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if in, ok := translate(ev); ok {
				handle(in)
			}
		}
	}
}

// translate maps a hook event onto the engine's model. Typed-key and
// click events are synthetic duplicates of press/release and are dropped.
func translate(ev hook.Event) (event.Input, bool) {
	switch ev.Kind {
	case hook.KeyHold, hook.KeyUp:
		in := event.UnknownKeyPress(uint32(ev.Rawcode))
		if k, ok := keymap.FromHookCode(ev.Keycode); ok {
			in = event.KeyPress(k)
		}
		if ev.Kind == hook.KeyUp {
			in.Kind = event.KindKeyRelease
		}
		return in, true

	case hook.MouseHold, hook.MouseDown:
		b, code := keymap.FromHookButton(ev.Button)
		in := event.Input{Kind: event.KindButtonPress, Button: b, Code: code}
		if ev.Kind == hook.MouseDown {
			in.Kind = event.KindButtonRelease
		}
		return in, true

	case hook.MouseMove, hook.MouseDrag:
		return event.MouseMove(float64(ev.X), float64(ev.Y)), true

	case hook.MouseWheel:
		dx, dy := keymap.WheelDelta(ev.Direction, ev.Rotation)
		return event.Wheel(dx, dy), true
	}
	return event.Input{}, false
}
