// Package event defines the captured input model: the tagged Input union,
// the closed key and button enumerations, and Recorded, an Input stamped
// with its offset from the start of a recording.
package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags which variant of Input is populated.
type Kind uint8

const (
	KindKeyPress Kind = iota + 1
	KindKeyRelease
	KindButtonPress
	KindButtonRelease
	KindMouseMove
	KindWheel
)

func (k Kind) String() string {
	switch k {
	case KindKeyPress:
		return "KeyPress"
	case KindKeyRelease:
		return "KeyRelease"
	case KindButtonPress:
		return "ButtonPress"
	case KindButtonRelease:
		return "ButtonRelease"
	case KindMouseMove:
		return "MouseMove"
	case KindWheel:
		return "Wheel"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Input is a single OS-level input event. Only the fields belonging to Kind
// are meaningful.
type Input struct {
	Kind   Kind
	Key    Key
	Button Button
	// Code is the platform code for KeyUnknown / ButtonUnknown.
	Code   uint32
	X, Y   float64
	DeltaX int64
	DeltaY int64
}

func KeyPress(k Key) Input       { return Input{Kind: KindKeyPress, Key: k} }
func KeyRelease(k Key) Input     { return Input{Kind: KindKeyRelease, Key: k} }
func ButtonPress(b Button) Input { return Input{Kind: KindButtonPress, Button: b} }
func ButtonRelease(b Button) Input {
	return Input{Kind: KindButtonRelease, Button: b}
}
func MouseMove(x, y float64) Input { return Input{Kind: KindMouseMove, X: x, Y: y} }
func Wheel(dx, dy int64) Input     { return Input{Kind: KindWheel, DeltaX: dx, DeltaY: dy} }
func UnknownKeyPress(code uint32) Input {
	return Input{Kind: KindKeyPress, Key: KeyUnknown, Code: code}
}

// IsKey reports whether the event is a key press or release.
func (e Input) IsKey() bool {
	return e.Kind == KindKeyPress || e.Kind == KindKeyRelease
}

// IsButton reports whether the event is a button press or release.
func (e Input) IsButton() bool {
	return e.Kind == KindButtonPress || e.Kind == KindButtonRelease
}

// KeyName renders the key as persisted, including Unknown(<n>).
func (e Input) KeyName() string {
	if e.Key == KeyUnknown {
		return unknownName(e.Code)
	}
	return e.Key.String()
}

// ButtonName renders the button as persisted, including Unknown(<n>).
func (e Input) ButtonName() string {
	if e.Button == ButtonUnknown {
		return unknownName(e.Code)
	}
	return e.Button.String()
}

// Label is the human-readable tag used in files and live notifications.
func (e Input) Label() string {
	switch e.Kind {
	case KindKeyPress:
		return "Key Press"
	case KindKeyRelease:
		return "Key Release"
	case KindButtonPress:
		return "Button Press " + e.ButtonName()
	case KindButtonRelease:
		return "Button Release " + e.ButtonName()
	case KindWheel:
		return "Mouse Wheel"
	case KindMouseMove:
		return "Mouse Move"
	default:
		return e.Kind.String()
	}
}

func (e Input) String() string {
	switch {
	case e.IsKey():
		return e.Kind.String() + "(" + e.KeyName() + ")"
	case e.IsButton():
		return e.Kind.String() + "(" + e.ButtonName() + ")"
	case e.Kind == KindMouseMove:
		return fmt.Sprintf("MouseMove(%s)", FormatPoint(e.X, e.Y))
	case e.Kind == KindWheel:
		return fmt.Sprintf("Wheel(%s)", FormatDelta(e.DeltaX, e.DeltaY))
	default:
		return e.Kind.String()
	}
}

// Recorded is an Input captured during a recording session. Value is the
// text rendering of the payload: the key name for key events, "x, y" for
// buttons, "dx, dy" for the wheel. Offset is seconds since the recording
// epoch.
type Recorded struct {
	Event  Input
	Value  string
	Offset float32
}

// Label is the kind label shown to the UI and written to files.
func (r Recorded) Label() string {
	return r.Event.Label()
}

// MarshalJSON renders the notification shape: kind label, value, offset.
func (r Recorded) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string  `json:"kind"`
		Value  string  `json:"value"`
		Offset float32 `json:"offset"`
	}{r.Label(), r.Value, r.Offset})
}

// FormatPoint renders pointer coordinates as stored in Recorded.Value.
func FormatPoint(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + ", " + strconv.FormatFloat(y, 'f', -1, 64)
}

// ParsePoint parses an "x, y" value back into coordinates.
func ParsePoint(value string) (float64, float64, error) {
	a, b, err := splitPair(value)
	if err != nil {
		return 0, 0, err
	}
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing x of %q: %w", value, err)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing y of %q: %w", value, err)
	}
	return x, y, nil
}

// FormatDelta renders wheel deltas as stored in Recorded.Value.
func FormatDelta(dx, dy int64) string {
	return strconv.FormatInt(dx, 10) + ", " + strconv.FormatInt(dy, 10)
}

// ParseDelta parses a "dx, dy" value back into wheel deltas.
func ParseDelta(value string) (int64, int64, error) {
	a, b, err := splitPair(value)
	if err != nil {
		return 0, 0, err
	}
	dx, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing delta_x of %q: %w", value, err)
	}
	dy, err := strconv.ParseInt(b, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing delta_y of %q: %w", value, err)
	}
	return dx, dy, nil
}

func splitPair(value string) (string, string, error) {
	parts := strings.Split(value, ", ")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected two comma-separated values, got %q", value)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
