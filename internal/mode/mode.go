// Package mode implements the Idle/Recording/Playing state machine that
// gates capture and playback. Every transition is a single check-and-set
// under one lock.
package mode

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
)

// Mode is the engine's current activity.
type Mode int

const (
	Idle Mode = iota
	Recording
	Playing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Machine is the single control point for mode transitions.
type Machine struct {
	clock clock.Clock

	mu      sync.Mutex
	mode    Mode
	epoch   time.Time
	session string
	cancel  context.CancelFunc
}

// New creates a Machine in Idle.
func New(clk clock.Clock) *Machine {
	return &Machine{clock: clk}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Session returns the ID of the current or most recent recording session.
func (m *Machine) Session() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// ToggleRecording flips between Idle and Recording. On Idle→Recording,
// onStart runs before the new epoch is captured and while the transition is
// still invisible to other callers. ok is false when Playing.
func (m *Machine) ToggleRecording(onStart func()) (recording, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.mode {
	case Playing:
		return false, false
	case Recording:
		m.mode = Idle
		return false, true
	}

	if onStart != nil {
		onStart()
	}
	m.mode = Recording
	m.epoch = m.clock.Now()
	m.session = uuid.NewString()
	return true, true
}

// WhileRecording runs fn with the recording epoch if the machine is
// Recording, holding the mode lock so a concurrent toggle cannot clear the
// log between the check and fn. fn must not block.
func (m *Machine) WhileRecording(fn func(epoch time.Time)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != Recording {
		return false
	}
	fn(m.epoch)
	return true
}

// WhileIdle runs fn if the machine is Idle, holding the mode lock so no
// recording or playback can start until fn returns.
func (m *Machine) WhileIdle(fn func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != Idle {
		return false
	}
	fn()
	return true
}

// StartPlaying moves Idle→Playing if ready reports there is something to
// play. The returned context is cancelled by StopPlaying or FinishPlaying.
func (m *Machine) StartPlaying(parent context.Context, ready func() bool) (context.Context, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != Idle {
		return nil, false
	}
	if ready != nil && !ready() {
		return nil, false
	}

	ctx, cancel := context.WithCancel(parent)
	m.mode = Playing
	m.cancel = cancel
	return ctx, true
}

// StopPlaying requests cancellation of a running playback. The mode stays
// Playing until the playback goroutine calls FinishPlaying.
func (m *Machine) StopPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != Playing {
		return false
	}
	m.cancel()
	return true
}

// FinishPlaying returns a Playing machine to Idle.
func (m *Machine) FinishPlaying() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != Playing {
		return
	}
	m.cancel()
	m.cancel = nil
	m.mode = Idle
}
