package playback

import (
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// LogSynthesizer logs events instead of injecting them.
type LogSynthesizer struct {
	Logger *zap.Logger
}

func (s LogSynthesizer) Synthesize(ev event.Input) error {
	s.Logger.Info("synthesize", zap.Stringer("event", ev))
	return nil
}
