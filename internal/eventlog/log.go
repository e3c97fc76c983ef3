// Package eventlog holds the ordered buffer of events captured during the
// current recording session.
package eventlog

import (
	"io"
	"sync"

	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Log is the single ordered buffer of truth for the active session.
// Thread-safe for concurrent use.
type Log struct {
	mu     sync.Mutex
	events []event.Recorded
	writer io.Writer // optional: stream lines as they arrive
}

// New creates an empty Log. If w is non-nil, every appended event that the
// text format can represent is also written to w as one encoded line.
func New(w io.Writer) *Log {
	return &Log{
		writer: w,
	}
}

// Append pushes rec to the tail of the log.
func (l *Log) Append(rec event.Recorded) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, rec)

	if l.writer != nil {
		if line, ok := codec.EncodeLine(rec); ok {
			if _, err := io.WriteString(l.writer, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear truncates the log to empty, keeping the backing array.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = l.events[:0]
}

// Replace swaps the whole content of the log for a copy of events.
func (l *Log) Replace(events []event.Recorded) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = make([]event.Recorded, len(events))
	copy(l.events, events)
}

// Snapshot returns an ordered copy of all events.
func (l *Log) Snapshot() []event.Recorded {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]event.Recorded, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of logged events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// WriteTo encodes the log in the line-oriented text format.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	return codec.Encode(w, l.Snapshot())
}
