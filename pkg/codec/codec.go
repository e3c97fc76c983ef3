// Package codec exposes the macro file format for programs that generate
// or post-process macros without running the recorder.
package codec

import (
	"io"

	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Delimiter separates the three fields of a line.
const Delimiter = codec.Delimiter

// ErrMalformed is wrapped by every per-line decode failure.
var ErrMalformed = codec.ErrMalformed

// Event is a recorded input event with its stored value and offset.
type Event = event.Recorded

// Input is a single OS-level input event.
type Input = event.Input

// SkippedLine describes an input line that could not be decoded.
type SkippedLine = codec.SkippedLine

// Encode writes events one line each. Mouse moves are omitted.
func Encode(w io.Writer, events []Event) (int64, error) {
	return codec.Encode(w, events)
}

// Decode reads events, collecting malformed lines instead of failing.
func Decode(r io.Reader) ([]Event, []SkippedLine, error) {
	return codec.Decode(r)
}

// SaveFile writes events to path, replacing any existing file.
func SaveFile(path string, events []Event) error {
	return codec.SaveFile(path, events)
}

// LoadFile reads events from path.
func LoadFile(path string) ([]Event, []SkippedLine, error) {
	return codec.LoadFile(path)
}
