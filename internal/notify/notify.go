// Package notify defines the status notifications the engine sends to its
// UI collaborator.
package notify

import (
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Notifier receives engine status changes. Implementations are called from
// the input hook goroutine and must not block.
type Notifier interface {
	RecordingStatus(recording bool, sessionID string)
	LiveEvent(rec event.Recorded)
	PlaybackFinished()
	FileSaveRequested()
	FileLoadRequested()
}

// Nop discards every notification.
type Nop struct{}

func (Nop) RecordingStatus(bool, string) {}
func (Nop) LiveEvent(event.Recorded)     {}
func (Nop) PlaybackFinished()            {}
func (Nop) FileSaveRequested()           {}
func (Nop) FileLoadRequested()           {}

// Multi fans every notification out to each Notifier in order.
type Multi []Notifier

func (m Multi) RecordingStatus(recording bool, sessionID string) {
	for _, n := range m {
		n.RecordingStatus(recording, sessionID)
	}
}

func (m Multi) LiveEvent(rec event.Recorded) {
	for _, n := range m {
		n.LiveEvent(rec)
	}
}

func (m Multi) PlaybackFinished() {
	for _, n := range m {
		n.PlaybackFinished()
	}
}

func (m Multi) FileSaveRequested() {
	for _, n := range m {
		n.FileSaveRequested()
	}
}

func (m Multi) FileLoadRequested() {
	for _, n := range m {
		n.FileLoadRequested()
	}
}

// Log writes notifications to a zap logger. Live events go to debug.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a Notifier that logs through logger.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger.With(zap.String("component", "notify"))}
}

func (l *Log) RecordingStatus(recording bool, sessionID string) {
	l.logger.Info("recording status",
		zap.Bool("recording", recording),
		zap.String("session", sessionID),
	)
}

func (l *Log) LiveEvent(rec event.Recorded) {
	l.logger.Debug("event",
		zap.String("kind", rec.Label()),
		zap.String("value", rec.Value),
		zap.Float32("offset", rec.Offset),
	)
}

func (l *Log) PlaybackFinished()  { l.logger.Info("playback finished") }
func (l *Log) FileSaveRequested() { l.logger.Info("file save requested") }
func (l *Log) FileLoadRequested() { l.logger.Info("file load requested") }
