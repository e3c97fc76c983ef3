package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type call struct {
	ev event.Input
	at time.Time
}

// fakeSynth records every synthesized event with the clock time it saw.
type fakeSynth struct {
	mu     sync.Mutex
	clock  clock.Clock
	calls  []call
	failOn func(event.Input) bool
	after  func(event.Input)
}

func (s *fakeSynth) Synthesize(ev event.Input) error {
	s.mu.Lock()
	s.calls = append(s.calls, call{ev: ev, at: s.clock.Now()})
	s.mu.Unlock()
	if s.after != nil {
		s.after(ev)
	}
	if s.failOn != nil && s.failOn(ev) {
		return errors.New("injection refused")
	}
	return nil
}

func (s *fakeSynth) inputs() []event.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Input, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.ev
	}
	return out
}

func newPlayer(t *testing.T, opts Options) (*Player, *fakeSynth) {
	t.Helper()
	vc := clock.NewSteppingClock(epoch, time.Millisecond)
	synth := &fakeSynth{clock: vc}
	return New(vc, synth, zaptest.NewLogger(t), opts), synth
}

func TestPlayer_TimedSequence(t *testing.T) {
	p, synth := newPlayer(t, Options{Yield: true})

	events := []event.Recorded{
		{Event: event.KeyPress(event.KeyA), Value: "KeyA", Offset: 0.10},
		{Event: event.ButtonPress(event.ButtonLeft), Value: "100, 200", Offset: 0.50},
	}

	var results []Result
	summary, err := p.Run(context.Background(), events, func(r Result) {
		results = append(results, r)
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []event.Input{
		event.KeyPress(event.KeyA),
		event.MouseMove(100, 200),
		event.ButtonPress(event.ButtonLeft),
	}
	got := synth.inputs()
	if len(got) != len(want) {
		t.Fatalf("synthesized %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, got[i], want[i])
		}
	}

	deadlines := []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}
	for i, c := range synth.calls {
		elapsed := c.at.Sub(epoch)
		if elapsed < deadlines[i] {
			t.Errorf("call %d at %v, before its offset %v", i, elapsed, deadlines[i])
		}
		if elapsed > deadlines[i]+20*time.Millisecond {
			t.Errorf("call %d at %v, too late for offset %v", i, elapsed, deadlines[i])
		}
	}

	if summary.Played != 2 || summary.Failed != 0 || summary.Total != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Duration != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", summary.Duration)
	}
	if len(results) != 2 || results[1].Elapsed < 500*time.Millisecond {
		t.Errorf("results = %+v", results)
	}
}

func TestPlayer_Empty(t *testing.T) {
	p, synth := newPlayer(t, Options{})
	summary, err := p.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 0 || len(synth.inputs()) != 0 {
		t.Errorf("summary = %+v, calls = %v", summary, synth.inputs())
	}
}

func TestPlayer_FailureContinues(t *testing.T) {
	p, synth := newPlayer(t, Options{})
	synth.failOn = func(ev event.Input) bool { return ev.Key == event.KeyB }

	events := []event.Recorded{
		{Event: event.KeyPress(event.KeyA), Value: "KeyA", Offset: 0.01},
		{Event: event.KeyPress(event.KeyB), Value: "KeyB", Offset: 0.02},
		{Event: event.KeyPress(event.KeyC), Value: "KeyC", Offset: 0.03},
	}

	var failed []int
	summary, err := p.Run(context.Background(), events, func(r Result) {
		if r.Err != nil {
			failed = append(failed, r.Index)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Played != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 2 played 1 failed", summary)
	}
	if len(failed) != 1 || failed[0] != 1 {
		t.Errorf("failed indices = %v, want [1]", failed)
	}
	if len(synth.inputs()) != 3 {
		t.Errorf("expected all three events attempted, got %v", synth.inputs())
	}
}

func TestPlayer_BadButtonPositionSkipped(t *testing.T) {
	p, synth := newPlayer(t, Options{})

	events := []event.Recorded{
		{Event: event.ButtonPress(event.ButtonLeft), Value: "nowhere", Offset: 0},
		{Event: event.Wheel(0, 1), Value: "0, 1", Offset: 0.01},
	}
	summary, err := p.Run(context.Background(), events, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 || summary.Played != 1 {
		t.Errorf("summary = %+v", summary)
	}
	got := synth.inputs()
	if len(got) != 1 || got[0] != event.Wheel(0, 1) {
		t.Errorf("synthesized %v, want only the wheel", got)
	}
}

func TestPlayer_CancelStopsBeforeNextEvent(t *testing.T) {
	p, synth := newPlayer(t, Options{Yield: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	synth.after = func(event.Input) { cancel() }

	events := []event.Recorded{
		{Event: event.KeyPress(event.KeyA), Value: "KeyA", Offset: 0.1},
		{Event: event.KeyRelease(event.KeyA), Value: "KeyA", Offset: 0.2},
		{Event: event.KeyPress(event.KeyB), Value: "KeyB", Offset: 0.3},
	}
	summary, err := p.Run(ctx, events, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if summary.Played != 1 {
		t.Errorf("Played = %d, want 1", summary.Played)
	}
	if got := synth.inputs(); len(got) != 1 {
		t.Errorf("synthesized %v after cancellation", got)
	}
}

func TestPlayer_CancelledBeforeStart(t *testing.T) {
	p, synth := newPlayer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, []event.Recorded{{Event: event.KeyPress(event.KeyA), Value: "KeyA"}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(synth.inputs()) != 0 {
		t.Error("nothing should be synthesized")
	}
}

func TestPlayer_Speed(t *testing.T) {
	p, synth := newPlayer(t, Options{Speed: 4})

	events := []event.Recorded{{Event: event.KeyPress(event.KeyA), Value: "KeyA", Offset: 0.4}}
	if _, err := p.Run(context.Background(), events, nil); err != nil {
		t.Fatal(err)
	}
	elapsed := synth.calls[0].at.Sub(epoch)
	if elapsed < 100*time.Millisecond || elapsed > 120*time.Millisecond {
		t.Errorf("event played at %v, want ~100ms at 4x", elapsed)
	}
}

func TestPlayer_RealClock(t *testing.T) {
	synth := &fakeSynth{clock: clock.NewRealClock()}
	p := New(clock.NewRealClock(), synth, nil, Options{Yield: true})

	events := []event.Recorded{
		{Event: event.KeyPress(event.KeyA), Value: "KeyA", Offset: 0.02},
		{Event: event.KeyRelease(event.KeyA), Value: "KeyA", Offset: 0.04},
	}
	start := time.Now()
	summary, err := p.Run(context.Background(), events, nil)
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Errorf("playback finished too early: %v", time.Since(start))
	}
	if summary.Played != 2 {
		t.Errorf("Played = %d, want 2", summary.Played)
	}
}

func TestLogSynthesizer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := New(clock.NewSteppingClock(epoch, time.Millisecond), LogSynthesizer{Logger: zap.New(core)}, nil, Options{})

	events := []event.Recorded{{Event: event.ButtonRelease(event.ButtonRight), Value: "1, 2", Offset: 0.01}}
	if _, err := p.Run(context.Background(), events, nil); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("synthesize").All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want move + release", len(entries))
	}
	if got := entries[1].ContextMap()["event"]; got != "ButtonRelease(Right)" {
		t.Errorf("logged event = %v", got)
	}
}
