// Package playback replays recorded events with their recorded timing.
package playback

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Synthesizer injects a single input event into the OS.
type Synthesizer interface {
	Synthesize(ev event.Input) error
}

// Options tune a Player.
type Options struct {
	// Speed scales the timeline: 2 plays twice as fast. Zero or negative
	// means real time.
	Speed float64
	// Yield calls runtime.Gosched inside the wait loop.
	Yield bool
}

// Player replays a snapshot of recorded events through a Synthesizer.
type Player struct {
	clock  clock.Clock
	synth  Synthesizer
	logger *zap.Logger
	speed  float64
	yield  bool
}

// Result captures the outcome of replaying a single event.
type Result struct {
	Index   int            `json:"index"`
	Event   event.Recorded `json:"event"`
	Elapsed time.Duration  `json:"elapsed"` // since playback start
	Err     error          `json:"-"`
}

// Summary aggregates playback statistics.
type Summary struct {
	Total        int           `json:"total"`
	Played       int           `json:"played"`
	Failed       int           `json:"failed"`
	Duration     time.Duration `json:"duration"`      // recorded span
	WallDuration time.Duration `json:"wall_duration"` // actual time spent
}

// New creates a Player.
func New(clk clock.Clock, synth Synthesizer, logger *zap.Logger, opts Options) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	return &Player{
		clock:  clk,
		synth:  synth,
		logger: logger.With(zap.String("component", "playback")),
		speed:  speed,
		yield:  opts.Yield,
	}
}

// Run replays events in order. Before each event it busy-waits until the
// elapsed time since start reaches the event's offset, checking ctx on
// every poll. A failed synthesis is logged and skipped. On cancellation Run
// returns the partial summary and ctx.Err().
func (p *Player) Run(ctx context.Context, events []event.Recorded, cb func(Result)) (*Summary, error) {
	summary := &Summary{Total: len(events)}
	if len(events) > 0 {
		summary.Duration = clock.Duration(events[len(events)-1].Offset)
	}

	start := p.clock.Now()
	for i, rec := range events {
		if err := p.waitUntil(ctx, start, p.target(rec.Offset)); err != nil {
			summary.WallDuration = p.clock.Since(start)
			return summary, err
		}

		err := p.play(rec)
		res := Result{
			Index:   i,
			Event:   rec,
			Elapsed: p.clock.Since(start),
			Err:     err,
		}
		if err != nil {
			summary.Failed++
			p.logger.Warn("synthesis failed, continuing",
				zap.Int("index", i),
				zap.String("kind", rec.Label()),
				zap.String("value", rec.Value),
				zap.Error(err),
			)
		} else {
			summary.Played++
		}

		if cb != nil {
			cb(res)
		}
	}

	summary.WallDuration = p.clock.Since(start)
	return summary, nil
}

func (p *Player) target(offset float32) time.Duration {
	return time.Duration(float64(clock.Duration(offset)) / p.speed)
}

// waitUntil spins without sleeping; sleep granularity is too coarse for
// fast input sequences.
func (p *Player) waitUntil(ctx context.Context, start time.Time, target time.Duration) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.clock.Since(start) >= target {
			return nil
		}
		if p.yield {
			runtime.Gosched()
		}
	}
}

func (p *Player) play(rec event.Recorded) error {
	if rec.Event.IsButton() {
		x, y, err := event.ParsePoint(rec.Value)
		if err != nil {
			return fmt.Errorf("button position: %w", err)
		}
		if err := p.synth.Synthesize(event.MouseMove(x, y)); err != nil {
			return fmt.Errorf("moving pointer: %w", err)
		}
	}
	return p.synth.Synthesize(rec.Event)
}
