// Package codec reads and writes the line-oriented macro file format.
//
// Every line is "<label>|||<value>|||<offset>" where label is one of
// "Key Press", "Key Release", "Button Press <name>", "Button Release <name>"
// or "Mouse Wheel". Mouse moves are never written; the pointer position is
// carried in the value of button events instead.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Delimiter separates the three fields of a line.
const Delimiter = "|||"

// ErrMalformed is wrapped by every per-line decode failure.
var ErrMalformed = errors.New("malformed line")

// SkippedLine describes an input line that Decode could not parse.
type SkippedLine struct {
	Line   int // 1-based
	Text   string
	Reason error
}

// EncodeLine renders rec as a single newline-terminated line. It returns
// false for events the format cannot represent.
func EncodeLine(rec event.Recorded) (string, bool) {
	var value string
	switch {
	case rec.Event.IsKey():
		value = rec.Event.KeyName()
	case rec.Event.IsButton(), rec.Event.Kind == event.KindWheel:
		value = rec.Value
	default:
		return "", false
	}
	return rec.Label() + Delimiter + value + Delimiter + formatOffset(rec.Offset) + "\n", true
}

// Encode writes events to w, dropping those EncodeLine cannot represent.
func Encode(w io.Writer, events []event.Recorded) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, rec := range events {
		line, ok := EncodeLine(rec)
		if !ok {
			continue
		}
		written, err := bw.WriteString(line)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ParseLine decodes one line without its trailing newline.
func ParseLine(line string) (event.Recorded, error) {
	// Fields after the third are ignored.
	fields := strings.Split(line, Delimiter)
	if len(fields) < 3 {
		return event.Recorded{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformed, len(fields))
	}
	label, value, rawOffset := fields[0], fields[1], fields[2]

	offset, err := parseOffset(rawOffset)
	if err != nil {
		return event.Recorded{}, err
	}

	switch {
	case strings.HasPrefix(label, "Key Press"), strings.HasPrefix(label, "Key Release"):
		key, code, err := event.ParseKey(value)
		if err != nil {
			return event.Recorded{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		ev := event.Input{Kind: event.KindKeyPress, Key: key, Code: code}
		if strings.HasPrefix(label, "Key Release") {
			ev.Kind = event.KindKeyRelease
		}
		return event.Recorded{Event: ev, Value: ev.KeyName(), Offset: offset}, nil

	case strings.HasPrefix(label, "Button Press "), strings.HasPrefix(label, "Button Release "):
		parts := strings.Fields(label)
		if len(parts) != 3 {
			return event.Recorded{}, fmt.Errorf("%w: bad button label %q", ErrMalformed, label)
		}
		button, code := event.ParseButton(parts[2])
		ev := event.Input{Kind: event.KindButtonPress, Button: button, Code: code}
		if parts[1] == "Release" {
			ev.Kind = event.KindButtonRelease
		}
		return event.Recorded{Event: ev, Value: value, Offset: offset}, nil

	case strings.HasPrefix(label, "Mouse Wheel"):
		dx, dy, err := event.ParseDelta(value)
		if err != nil {
			return event.Recorded{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return event.Recorded{Event: event.Wheel(dx, dy), Value: value, Offset: offset}, nil
	}

	return event.Recorded{}, fmt.Errorf("%w: unknown label %q", ErrMalformed, label)
}

// Decode reads every line of r. Lines that fail to parse are reported in
// the skipped slice and do not stop decoding; only read errors are returned.
func Decode(r io.Reader) ([]event.Recorded, []SkippedLine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	var (
		events  []event.Recorded
		skipped []SkippedLine
	)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			skipped = append(skipped, SkippedLine{Line: i + 1, Text: line, Reason: err})
			continue
		}
		events = append(events, rec)
	}
	return events, skipped, nil
}

// SaveFile writes events to path, replacing any existing file.
func SaveFile(path string, events []event.Recorded) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating macro file: %w", err)
	}
	if _, err := Encode(f, events); err != nil {
		f.Close()
		return fmt.Errorf("writing macro file: %w", err)
	}
	return f.Close()
}

// LoadFile decodes the macro file at path.
func LoadFile(path string) ([]event.Recorded, []SkippedLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening macro file: %w", err)
	}
	defer f.Close()

	events, skipped, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading macro file: %w", err)
	}
	return events, skipped, nil
}

func formatOffset(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func parseOffset(raw string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: offset %q", ErrMalformed, raw)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: offset %q out of range", ErrMalformed, raw)
	}
	return float32(f), nil
}
