// Package session wires the event log, mode machine, capture listener and
// player into the command surface used by the hook, the CLI and the HTTP
// server.
package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/capture"
	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/eventlog"
	"github.com/SmitUplenchwar2687/macrokey/internal/library"
	"github.com/SmitUplenchwar2687/macrokey/internal/mode"
	"github.com/SmitUplenchwar2687/macrokey/internal/notify"
	"github.com/SmitUplenchwar2687/macrokey/internal/playback"
)

// DefaultSettleDelay is the pause between the end of playback and the
// return to Idle.
const DefaultSettleDelay = 500 * time.Millisecond

// Config holds the collaborators of a Session.
type Config struct {
	Clock       clock.Clock
	Synth       playback.Synthesizer
	Pointer     capture.Pointer
	Notifier    notify.Notifier
	Logger      *zap.Logger
	SettleDelay time.Duration
	Yield       bool
	// Tee receives every captured event as an encoded line.
	Tee io.Writer
}

// LoadReport describes the outcome of a load command.
type LoadReport struct {
	Applied bool                `json:"applied"`
	Loaded  int                 `json:"loaded"`
	Skipped []codec.SkippedLine `json:"-"`
}

// Session owns the shared engine state for the process lifetime.
type Session struct {
	clock    clock.Clock
	machine  *mode.Machine
	log      *eventlog.Log
	player   *playback.Player
	listener *capture.Listener
	notifier notify.Notifier
	logger   *zap.Logger
	settle   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an idle Session.
func New(cfg Config) *Session {
	if cfg.Clock == nil {
		cfg.Clock = clock.NewRealClock()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		clock:    cfg.Clock,
		machine:  mode.New(cfg.Clock),
		log:      eventlog.New(cfg.Tee),
		notifier: cfg.Notifier,
		logger:   cfg.Logger.With(zap.String("component", "session")),
		settle:   cfg.SettleDelay,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.player = playback.New(cfg.Clock, cfg.Synth, cfg.Logger, playback.Options{Yield: cfg.Yield})
	s.listener = capture.New(capture.Config{
		Machine:  s.machine,
		Log:      s.log,
		Pointer:  cfg.Pointer,
		Notifier: cfg.Notifier,
		Controls: s,
		Clock:    cfg.Clock,
		Logger:   cfg.Logger,
	})
	return s
}

// HandleInput feeds one OS input event through the capture listener.
func (s *Session) HandleInput(ev event.Input) {
	s.listener.Handle(ev)
}

// Mode returns the current mode.
func (s *Session) Mode() mode.Mode {
	return s.machine.Mode()
}

// SessionID returns the ID of the current or last recording.
func (s *Session) SessionID() string {
	return s.machine.Session()
}

// Events returns a snapshot of the event log.
func (s *Session) Events() []event.Recorded {
	return s.log.Snapshot()
}

// ToggleRecording starts a new recording from Idle or stops the current
// one. Ignored while Playing.
func (s *Session) ToggleRecording() {
	recording, ok := s.machine.ToggleRecording(s.log.Clear)
	if !ok {
		s.logger.Debug("toggle recording ignored", zap.Stringer("mode", s.machine.Mode()))
		return
	}
	id := s.machine.Session()
	s.logger.Info("recording toggled", zap.Bool("recording", recording), zap.String("session", id))
	s.notifier.RecordingStatus(recording, id)
}

// TogglePlay cancels a running playback or starts a new one.
func (s *Session) TogglePlay() {
	if s.machine.StopPlaying() {
		s.logger.Info("playback cancel requested")
		return
	}
	s.Play()
}

// Play starts playback of the current log on its own goroutine. It is a
// no-op unless the session is Idle with a non-empty log.
func (s *Session) Play() {
	ctx, ok := s.machine.StartPlaying(s.ctx, func() bool { return s.log.Len() > 0 })
	if !ok {
		s.logger.Debug("play ignored", zap.Stringer("mode", s.machine.Mode()), zap.Int("events", s.log.Len()))
		return
	}

	events := s.log.Snapshot()
	s.wg.Add(1)
	go s.run(ctx, events)
}

func (s *Session) run(ctx context.Context, events []event.Recorded) {
	defer s.wg.Done()
	defer s.machine.FinishPlaying()

	if len(events) == 0 {
		return
	}

	s.logger.Info("playback started", zap.Int("events", len(events)))
	summary, err := s.player.Run(ctx, events, nil)
	fields := []zap.Field{
		zap.Int("played", summary.Played),
		zap.Int("failed", summary.Failed),
		zap.Duration("wall", summary.WallDuration),
	}
	if err != nil {
		s.logger.Info("playback cancelled", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("playback complete", fields...)
	}

	s.notifier.PlaybackFinished()

	select {
	case <-s.clock.After(s.settle):
	case <-s.ctx.Done():
	}
}

// Save writes the current log to path.
func (s *Session) Save(path string) error {
	if err := s.writeFile(path); err != nil {
		s.logger.Error("save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.logger.Info("macro saved", zap.String("path", path), zap.Int("events", s.log.Len()))
	return nil
}

func (s *Session) writeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating macro file: %w", err)
	}
	if _, err := s.log.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing macro file: %w", err)
	}
	return f.Close()
}

// Load replaces the log with the macro at path. A read failure is returned
// and leaves the log untouched. Outside Idle the load is ignored.
func (s *Session) Load(path string) (LoadReport, error) {
	events, skipped, err := codec.LoadFile(path)
	if err != nil {
		s.logger.Error("load failed", zap.String("path", path), zap.Error(err))
		return LoadReport{}, err
	}
	return s.apply(path, events, skipped), nil
}

// SaveTo stores the current log in store under name.
func (s *Session) SaveTo(ctx context.Context, store library.Store, name string) error {
	var buf bytes.Buffer
	if _, err := s.log.WriteTo(&buf); err != nil {
		return fmt.Errorf("encoding macro: %w", err)
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		s.logger.Error("library save failed", zap.String("name", name), zap.Error(err))
		return err
	}
	s.logger.Info("macro stored", zap.String("name", name))
	return nil
}

// LoadFrom replaces the log with the macro stored under name.
func (s *Session) LoadFrom(ctx context.Context, store library.Store, name string) (LoadReport, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		s.logger.Error("library load failed", zap.String("name", name), zap.Error(err))
		return LoadReport{}, err
	}
	events, skipped, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return LoadReport{}, fmt.Errorf("decoding macro %q: %w", name, err)
	}
	return s.apply("library:"+name, events, skipped), nil
}

func (s *Session) apply(source string, events []event.Recorded, skipped []codec.SkippedLine) LoadReport {
	for _, sk := range skipped {
		s.logger.Warn("skipping malformed line",
			zap.String("source", source),
			zap.Int("line", sk.Line),
			zap.Error(sk.Reason),
		)
	}

	applied := s.machine.WhileIdle(func() {
		s.log.Replace(events)
	})
	if !applied {
		s.logger.Debug("load ignored", zap.Stringer("mode", s.machine.Mode()))
		return LoadReport{Skipped: skipped}
	}

	s.logger.Info("macro loaded", zap.String("source", source), zap.Int("events", len(events)), zap.Int("skipped", len(skipped)))
	for _, rec := range events {
		s.notifier.LiveEvent(rec)
	}
	return LoadReport{Applied: true, Loaded: len(events), Skipped: skipped}
}

// RequestSave asks the UI collaborator for a path to save to.
func (s *Session) RequestSave() {
	s.notifier.FileSaveRequested()
}

// RequestLoad asks the UI collaborator for a path to load from.
func (s *Session) RequestLoad() {
	s.notifier.FileLoadRequested()
}

// Wait blocks until no playback goroutine is running.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels any running playback and waits for it to return to Idle.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}
