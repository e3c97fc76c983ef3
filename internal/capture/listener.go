// Package capture turns the system-wide input stream into recorded events
// and hotkey commands.
package capture

import (
	"time"

	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/eventlog"
	"github.com/SmitUplenchwar2687/macrokey/internal/mode"
	"github.com/SmitUplenchwar2687/macrokey/internal/notify"
)

// Fixed global hotkeys. Only their releases act as commands.
const (
	RecordHotkey = event.KeyF6
	PlayHotkey   = event.KeyF7
)

// Pointer reports the current cursor position.
type Pointer interface {
	Position() (x, y float64)
}

// Controls receives hotkey commands.
type Controls interface {
	ToggleRecording()
	TogglePlay()
}

// Config holds the Listener's collaborators.
type Config struct {
	Machine  *mode.Machine
	Log      *eventlog.Log
	Pointer  Pointer
	Notifier notify.Notifier
	Controls Controls
	Clock    clock.Clock
	Logger   *zap.Logger
}

// Listener handles every input event delivered by the OS hook.
type Listener struct {
	machine  *mode.Machine
	log      *eventlog.Log
	pointer  Pointer
	notifier notify.Notifier
	controls Controls
	clock    clock.Clock
	logger   *zap.Logger
}

// New creates a Listener. Nil Notifier and Logger default to no-ops.
func New(cfg Config) *Listener {
	l := &Listener{
		machine:  cfg.Machine,
		log:      cfg.Log,
		pointer:  cfg.Pointer,
		notifier: cfg.Notifier,
		controls: cfg.Controls,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
	if l.notifier == nil {
		l.notifier = notify.Nop{}
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if l.clock == nil {
		l.clock = clock.NewRealClock()
	}
	l.logger = l.logger.With(zap.String("component", "capture"))
	return l
}

// Handle processes one input event. It runs on the hook goroutine and never
// waits on anything but short, uncontended locks.
func (l *Listener) Handle(ev event.Input) {
	if ev.IsKey() && isHotkey(ev.Key) {
		if ev.Kind == event.KindKeyRelease {
			l.command(ev.Key)
		}
		return
	}

	if ev.Kind == event.KindMouseMove {
		return
	}
	if l.machine.Mode() != mode.Recording {
		return
	}

	value, ok := l.value(ev)
	if !ok {
		return
	}

	var (
		rec    event.Recorded
		logErr error
	)
	logged := l.machine.WhileRecording(func(epoch time.Time) {
		rec = event.Recorded{
			Event:  ev,
			Value:  value,
			Offset: clock.Seconds(l.clock.Since(epoch)),
		}
		logErr = l.log.Append(rec)
	})
	if !logged {
		return
	}
	if logErr != nil {
		l.logger.Warn("streaming event failed", zap.Error(logErr))
	}
	l.notifier.LiveEvent(rec)
}

func (l *Listener) command(k event.Key) {
	switch k {
	case RecordHotkey:
		l.logger.Debug("record hotkey")
		l.controls.ToggleRecording()
	case PlayHotkey:
		l.logger.Debug("play hotkey")
		l.controls.TogglePlay()
	}
}

func (l *Listener) value(ev event.Input) (string, bool) {
	switch {
	case ev.IsKey():
		return ev.KeyName(), true
	case ev.IsButton():
		x, y := l.pointer.Position()
		return event.FormatPoint(x, y), true
	case ev.Kind == event.KindWheel:
		return event.FormatDelta(ev.DeltaX, ev.DeltaY), true
	}
	return "", false
}

func isHotkey(k event.Key) bool {
	return k == RecordHotkey || k == PlayHotkey
}
